package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/vidlingo/internal/adapter/cmdexec"
	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/port"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains null byte")
)

func validatePath(p string) error {
	if p == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(p, 0) {
		return ErrInvalidPath
	}
	return nil
}

type Toolkit struct {
	ffmpeg  string
	ffprobe string
	runner  cmdexec.Runner
}

type Option func(*Toolkit)

func WithBinaries(ffmpeg, ffprobe string) Option {
	return func(t *Toolkit) {
		if ffmpeg != "" {
			t.ffmpeg = ffmpeg
		}
		if ffprobe != "" {
			t.ffprobe = ffprobe
		}
	}
}

func WithRunner(r cmdexec.Runner) Option {
	return func(t *Toolkit) {
		t.runner = r
	}
}

func NewToolkit(opts ...Option) *Toolkit {
	t := &Toolkit{
		ffmpeg:  "ffmpeg",
		ffprobe: "ffprobe",
		runner:  cmdexec.ExecRunner{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Toolkit) Probe(ctx context.Context, inputPath string) (*domain.ProbeResult, error) {
	if err := validatePath(inputPath); err != nil {
		return nil, fmt.Errorf("invalid input path: %w", err)
	}
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	}
	res, err := t.runner.Run(ctx, t.ffprobe, args...)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe domain.ProbeResult
	if err := json.Unmarshal([]byte(res.Stdout), &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	return &probe, nil
}

// Duration returns the measured length of a media file in seconds.
func (t *Toolkit) Duration(ctx context.Context, path string) (float64, error) {
	probe, err := t.Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	d := probe.DurationSeconds()
	if d <= 0 {
		return 0, fmt.Errorf("no duration reported for %s", path)
	}
	return d, nil
}

func (t *Toolkit) ExtractAudio(ctx context.Context, videoPath, outPath string) error {
	if err := checkPaths(videoPath, outPath); err != nil {
		return err
	}
	return t.ffmpegRun(ctx,
		"-i", videoPath,
		"-vn",
		"-c:a", "libmp3lame",
		"-q:a", "2",
		"-y", outPath,
	)
}

// TimeStretch changes clip duration by factor without shifting pitch. A
// factor above 1 speeds the clip up.
func (t *Toolkit) TimeStretch(ctx context.Context, inPath, outPath string, factor float64) error {
	if err := checkPaths(inPath, outPath); err != nil {
		return err
	}
	if factor < 0.5 || factor > 2.0 {
		return fmt.Errorf("atempo factor %.3f out of range", factor)
	}
	return t.ffmpegRun(ctx,
		"-i", inPath,
		"-filter:a", "atempo="+formatFloat(factor),
		"-y", outPath,
	)
}

// MixAtOffsets delays every clip to its offset and mixes them into one track
// without level normalization.
func (t *Toolkit) MixAtOffsets(ctx context.Context, clips []port.ClipPlacement, outPath string) error {
	if len(clips) == 0 {
		return errors.New("no clips to mix")
	}
	if err := validatePath(outPath); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	args := make([]string, 0, len(clips)*2+10)
	for _, c := range clips {
		if err := validatePath(c.Path); err != nil {
			return fmt.Errorf("invalid input path: %w", err)
		}
		args = append(args, "-i", c.Path)
	}
	args = append(args,
		"-filter_complex", mixFilter(clips),
		"-map", "[out]",
		"-c:a", "libmp3lame",
		"-q:a", "2",
		"-y", outPath,
	)
	return t.ffmpegRun(ctx, args...)
}

// MuxDucked lays voicePath over the video's own audio scaled by duck. The
// video stream is copied untouched.
func (t *Toolkit) MuxDucked(ctx context.Context, videoPath, voicePath, outPath string, duck float64) error {
	if err := checkPaths(videoPath, outPath); err != nil {
		return err
	}
	if err := validatePath(voicePath); err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	return t.ffmpegRun(ctx,
		"-i", videoPath,
		"-i", voicePath,
		"-filter_complex", duckFilter(duck),
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "192k",
		"-y", outPath,
	)
}

func (t *Toolkit) ffmpegRun(ctx context.Context, args ...string) error {
	full := append([]string{"-hide_banner", "-loglevel", "error"}, args...)
	if _, err := t.runner.Run(ctx, t.ffmpeg, full...); err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

func checkPaths(in, out string) error {
	if err := validatePath(in); err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	if err := validatePath(out); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	return nil
}

func mixFilter(clips []port.ClipPlacement) string {
	var b strings.Builder
	for i, c := range clips {
		ms := int64(c.Offset * 1000)
		if ms < 0 {
			ms = 0
		}
		fmt.Fprintf(&b, "[%d:a]adelay=%d:all=1[d%d];", i, ms, i)
	}
	for i := range clips {
		fmt.Fprintf(&b, "[d%d]", i)
	}
	fmt.Fprintf(&b, "amix=inputs=%d:duration=longest:normalize=0[out]", len(clips))
	return b.String()
}

func duckFilter(duck float64) string {
	return fmt.Sprintf("[0:a]volume=%s[a0];[1:a]volume=1.0[a1];[a0][a1]amix=inputs=2:duration=longest[aout]", formatFloat(duck))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var _ port.MediaToolkit = (*Toolkit)(nil)
