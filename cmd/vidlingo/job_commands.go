package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/vidlingo/internal/adapter/http/validation"
	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/service"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var (
		lang  string
		dub   bool
		voice string
	)

	cmd := &cobra.Command{
		Use:   "submit <youtube-url>",
		Short: "Create a job and put it on the work queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceURL := strings.TrimSpace(args[0])
			if err := validation.Submission(sourceURL, lang, dub, voice); err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			job, err := a.jobService().Create(cmd.Context(), service.CreateJobRequest{
				SourceURL:  sourceURL,
				TargetLang: lang,
				EnableDub:  dub,
				VoiceID:    voice,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Queued job %s (%s)\n", job.ID, domain.LanguageName(job.TargetLang))
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "vi", "Target language ("+strings.Join(domain.SupportedLanguages, ", ")+")")
	cmd.Flags().BoolVar(&dub, "dub", false, "Also synthesize a dubbed audio track and video")
	cmd.Flags().StringVar(&voice, "voice", domain.VoiceFemaleSoft, "Voice profile for the dub ("+strings.Join(domain.VoiceProfiles, ", ")+")")
	return cmd
}

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List recent jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			jobs, err := a.jobService().List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			stats, err := a.jobService().QueueStats(cmd.Context())
			if err != nil {
				return err
			}
			printJobs(cmd.OutOrStdout(), jobs, stats, time.Now())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", service.DefaultListLimit, "Maximum number of jobs to show")
	return cmd
}

func newJobCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "job <id>",
		Short: "Show a job and its assets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			details, err := a.jobService().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("job %s: %w", args[0], err)
			}
			printJob(cmd.OutOrStdout(), details)
			return nil
		},
	}
}

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply job store migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			// Opening the app applies migrations to SQL stores.
			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.sql == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "The json store has no migrations.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied (%s).\n", a.sql.Dialect())
			return nil
		},
	}
}

func printJobs(w io.Writer, jobs []*domain.Job, stats domain.QueueStats, now time.Time) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs yet.")
	} else {
		rows := make([][]string, 0, len(jobs))
		for _, job := range jobs {
			rows = append(rows, []string{
				job.ID,
				string(job.Status),
				strconv.Itoa(job.Progress) + "%",
				domain.LanguageName(job.TargetLang),
				yesNo(job.EnableDub),
				truncate(displayTitle(job), 40),
				humanize.RelTime(job.CreatedAt, now, "ago", "from now"),
			})
		}
		fmt.Fprintln(w, renderTable(
			[]string{"ID", "Status", "Progress", "Language", "Dub", "Title", "Created"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight},
		))
	}
	fmt.Fprintf(w, "Queue: %d pending, %d active, %d completed, %d failed\n",
		stats.Pending, stats.Active, stats.Completed, stats.Failed)
}

func printJob(w io.Writer, details *service.JobDetails) {
	job := details.Job
	fields := [][]string{
		{"ID", job.ID},
		{"Source", job.SourceURL},
		{"Title", displayTitle(job)},
		{"Status", string(job.Status)},
		{"Progress", strconv.Itoa(job.Progress) + "%"},
		{"Target", domain.LanguageName(job.TargetLang)},
		{"Dub", yesNo(job.EnableDub)},
	}
	if job.DetectedLang != "" {
		fields = append(fields, []string{"Detected", domain.LanguageName(job.DetectedLang)})
	}
	if job.DurationSeconds > 0 {
		fields = append(fields, []string{"Duration", domain.FormatDuration(float64(job.DurationSeconds))})
	}
	if job.ErrorMessage != "" {
		fields = append(fields, []string{"Error", job.ErrorMessage})
	}
	fields = append(fields, []string{"Created", job.CreatedAt.Local().Format(time.DateTime)})
	if job.CompletedAt != nil {
		fields = append(fields, []string{"Completed", job.CompletedAt.Local().Format(time.DateTime)})
	}
	fmt.Fprintln(w, renderTable([]string{"Field", "Value"}, fields, nil))

	if len(details.Assets) == 0 {
		fmt.Fprintln(w, "No assets.")
		return
	}
	assets := append([]domain.Asset(nil), details.Assets...)
	sort.SliceStable(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })

	rows := make([][]string, 0, len(assets))
	for _, asset := range assets {
		location := asset.URL
		if location == "" {
			location = asset.Location
		}
		size := "-"
		if asset.Size > 0 {
			size = humanize.Bytes(uint64(asset.Size))
		}
		lang := "-"
		if asset.Language != "" {
			lang = asset.Language
		}
		rows = append(rows, []string{string(asset.Kind), lang, size, location})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Asset", "Lang", "Size", "Location"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	))
}

func displayTitle(job *domain.Job) string {
	if job.Title != "" {
		return job.Title
	}
	return "-"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
