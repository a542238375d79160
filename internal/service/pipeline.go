package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/infrastructure/logger"
	"github.com/bnema/vidlingo/internal/port"
	"github.com/bnema/vidlingo/internal/subtitle"
)

const (
	VideoName      = "video.mp4"
	TranscriptName = "transcript.json"
)

func translatedTranscriptName(lang string) string {
	return fmt.Sprintf("transcript_%s.json", lang)
}

func subtitleName(lang string, format subtitle.Format) string {
	return "subtitles_" + lang + format.Extension()
}

// JobDir returns the working namespace owned by one job.
func JobDir(dataDir, jobID string) string {
	return filepath.Join(dataDir, "jobs", jobID)
}

// ArtifactKey is the storage key of a job artifact.
func ArtifactKey(jobID, name string) string {
	return path.Join("jobs", jobID, name)
}

type Stages struct {
	Ingester    *Ingester
	Transcriber *Transcriber
	Translator  *Translator
	Dubber      *Dubber
}

// Pipeline drives one job through ingest, transcription, translation,
// subtitle rendering and optional dubbing. It is the only writer of job and
// asset state.
type Pipeline struct {
	store     port.JobStore
	artifacts port.ArtifactStore
	stages    Stages
	eventBus  EventPublisher
	dataDir   string
}

func NewPipeline(
	store port.JobStore,
	artifacts port.ArtifactStore,
	stages Stages,
	eventBus EventPublisher,
	dataDir string,
) *Pipeline {
	return &Pipeline{
		store:     store,
		artifacts: artifacts,
		stages:    stages,
		eventBus:  eventBus,
		dataDir:   dataDir,
	}
}

// Run executes every stage for desc. On failure the job is left in error
// state at its last checkpoint and the stage error is returned.
func (p *Pipeline) Run(ctx context.Context, desc domain.JobDescriptor) error {
	jobDir := JobDir(p.dataDir, desc.JobID)
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return fmt.Errorf("create job directory: %w", err)
	}

	lock := flock.New(filepath.Join(jobDir, ".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock job directory: %w", err)
	}
	if !locked {
		return fmt.Errorf("job %s is locked by another worker", desc.JobID)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Error.Printf("failed to unlock job %s: %v", desc.JobID, err)
		}
	}()

	r := &run{Pipeline: p, desc: desc, dir: jobDir}
	if err := r.execute(ctx); err != nil {
		if ctx.Err() != nil {
			// Abandoned run; the job now belongs to another worker.
			logger.Warn.Printf("job %s: run cancelled at %d%%, leaving job state untouched", desc.JobID, r.progress)
			return err
		}
		p.fail(ctx, desc.JobID, r.progress, err)
		return err
	}

	logger.L().Info("job completed", zap.String("job_id", desc.JobID), zap.String("target_lang", desc.TargetLang))
	return nil
}

// fail records a failed attempt. When the dispatcher will run the job again
// the job goes back to queued so listeners keep waiting for the next attempt.
func (p *Pipeline) fail(ctx context.Context, jobID string, progress int, cause error) {
	msg := cause.Error()
	status := domain.JobStatusError
	if domain.IsRetryable(cause) && retryAllowed(ctx) {
		status = domain.JobStatusQueued
	}
	logger.L().Error("job attempt failed",
		zap.String("job_id", jobID),
		zap.Int("progress", progress),
		zap.Bool("retrying", status == domain.JobStatusQueued),
		zap.String("cause", logger.SanitizeForLog(msg)))

	ctx = context.WithoutCancel(ctx)
	if err := p.store.UpdateJobStatus(ctx, jobID, status, progress, msg); err != nil {
		logger.Error.Printf("failed to record failure for job %s: %v", jobID, err)
	}
	p.publish(jobID, EventTypeStatus, status, progress, msg)
}

func (p *Pipeline) publish(jobID, eventType string, status domain.JobStatus, progress int, message string) {
	if p.eventBus != nil {
		p.eventBus.Publish(jobID, Event{
			Type:     eventType,
			Status:   string(status),
			Progress: progress,
			Message:  message,
		})
	}
}

// run holds the state of one attempt.
type run struct {
	*Pipeline
	desc     domain.JobDescriptor
	dir      string
	progress int
}

type artifact struct {
	kind        domain.AssetKind
	name        string
	path        string
	contentType string
	language    string
}

func (r *run) execute(ctx context.Context) error {
	id := r.desc.JobID

	if err := r.store.UpdateJobStatus(ctx, id, domain.JobStatusRunning, domain.ProgressQueued, ""); err != nil {
		return fmt.Errorf("mark job running: %w", err)
	}
	r.publish(id, EventTypeStatus, domain.JobStatusRunning, domain.ProgressQueued, "")

	wantsDub := r.desc.WantsDub()
	if wantsDub {
		if r.stages.Dubber == nil {
			return domain.NewStageError(domain.StagePreflight, domain.ErrConfiguration, fmt.Errorf("dubbing is not configured"))
		}
		if err := r.stages.Dubber.Preflight(r.desc.TargetLang, r.desc.VoiceID); err != nil {
			return err
		}
	}

	ingested, err := r.stages.Ingester.Ingest(ctx, r.desc.SourceURL, r.dir)
	if err != nil {
		return err
	}
	// Metadata goes first: the video asset row is the last write of the stage.
	if err := r.store.UpdateJobMetadata(ctx, id, ingested.Metadata); err != nil {
		return domain.NewStageError(domain.StageIngest, domain.ErrIngest, fmt.Errorf("save metadata: %w", err))
	}
	if err := r.persist(ctx, domain.StageIngest, domain.ErrIngest, artifact{
		kind:        domain.AssetOriginalVideo,
		name:        VideoName,
		path:        ingested.VideoPath,
		contentType: "video/mp4",
	}); err != nil {
		return err
	}
	logger.Info.Printf("job %s ingested: title=%q, duration=%ds, lang=%s",
		id, logger.SanitizeForLog(ingested.Metadata.Title), ingested.Metadata.DurationSeconds, ingested.DetectedLang)
	if err := r.checkpoint(ctx, domain.ProgressIngested); err != nil {
		return err
	}

	segments, err := r.stages.Transcriber.Transcribe(ctx, ingested.AudioPath)
	if err != nil {
		return err
	}
	transcriptPath := filepath.Join(r.dir, TranscriptName)
	if err := writeTranscript(transcriptPath, ingested.DetectedLang, segments); err != nil {
		return domain.NewStageError(domain.StageTranscribe, domain.ErrTranscription, err)
	}
	if err := r.persist(ctx, domain.StageTranscribe, domain.ErrTranscription, artifact{
		kind:        domain.AssetTranscript,
		name:        TranscriptName,
		path:        transcriptPath,
		contentType: "application/json",
		language:    ingested.DetectedLang,
	}); err != nil {
		return err
	}
	if err := r.checkpoint(ctx, domain.ProgressTranscribed); err != nil {
		return err
	}

	localized, translated, err := r.stages.Translator.Translate(ctx, segments, ingested.DetectedLang, r.desc.TargetLang)
	if err != nil {
		return err
	}
	if translated {
		name := translatedTranscriptName(r.desc.TargetLang)
		p := filepath.Join(r.dir, name)
		if err := writeTranscript(p, r.desc.TargetLang, localized); err != nil {
			return domain.NewStageError(domain.StageTranslate, domain.ErrTranslation, err)
		}
		if err := r.persist(ctx, domain.StageTranslate, domain.ErrTranslation, artifact{
			kind:        domain.AssetTranscript,
			name:        name,
			path:        p,
			contentType: "application/json",
			language:    r.desc.TargetLang,
		}); err != nil {
			return err
		}
	}
	if err := r.checkpoint(ctx, domain.ProgressTranslated); err != nil {
		return err
	}

	subs := make([]artifact, 0, 2)
	for _, format := range []subtitle.Format{subtitle.FormatSRT, subtitle.FormatVTT} {
		data, err := subtitle.Render(format, localized)
		if err != nil {
			return domain.NewStageError(domain.StageSubtitles, domain.ErrSubtitleRender, err)
		}
		name := subtitleName(r.desc.TargetLang, format)
		p := filepath.Join(r.dir, name)
		if err := os.WriteFile(p, data, 0644); err != nil {
			return domain.NewStageError(domain.StageSubtitles, domain.ErrSubtitleRender, fmt.Errorf("write %s: %w", name, err))
		}
		kind := domain.AssetSRT
		if format == subtitle.FormatVTT {
			kind = domain.AssetVTT
		}
		subs = append(subs, artifact{
			kind:        kind,
			name:        name,
			path:        p,
			contentType: format.ContentType(),
			language:    r.desc.TargetLang,
		})
	}
	if err := r.persist(ctx, domain.StageSubtitles, domain.ErrSubtitleRender, subs...); err != nil {
		return err
	}
	if err := r.checkpoint(ctx, domain.ProgressSubtitled); err != nil {
		return err
	}

	if wantsDub {
		dubbed, err := r.stages.Dubber.Dub(ctx, r.dir, ingested.VideoPath, localized, r.desc.TargetLang, r.desc.VoiceID)
		if err != nil {
			return err
		}
		if err := r.persist(ctx, domain.StageDub, domain.ErrMux,
			artifact{
				kind:        domain.AssetDubAudio,
				name:        DubAudioName,
				path:        dubbed.AudioPath,
				contentType: "audio/mpeg",
				language:    r.desc.TargetLang,
			},
			artifact{
				kind:        domain.AssetDubVideo,
				name:        DubVideoName,
				path:        dubbed.VideoPath,
				contentType: "video/mp4",
				language:    r.desc.TargetLang,
			},
		); err != nil {
			return err
		}
		if err := r.checkpoint(ctx, domain.ProgressDubbed); err != nil {
			return err
		}
	}

	if err := r.store.UpdateJobStatus(ctx, id, domain.JobStatusDone, domain.ProgressComplete, ""); err != nil {
		return fmt.Errorf("%s: mark job done: %w", domain.StageFinalize, err)
	}
	r.progress = domain.ProgressComplete
	r.publish(id, EventTypeStatus, domain.JobStatusDone, domain.ProgressComplete, "")
	return nil
}

func (r *run) checkpoint(ctx context.Context, progress int) error {
	if err := r.store.UpdateJobStatus(ctx, r.desc.JobID, domain.JobStatusRunning, progress, ""); err != nil {
		return fmt.Errorf("record progress %d: %w", progress, err)
	}
	r.progress = progress
	r.publish(r.desc.JobID, EventTypeProgress, domain.JobStatusRunning, progress, "")
	return nil
}

// persist uploads every artifact, then records the stage's asset rows in a
// single store call. A failure at either step leaves no rows for the stage.
func (r *run) persist(ctx context.Context, stage domain.Stage, kind error, items ...artifact) error {
	assets := make([]*domain.Asset, 0, len(items))
	for _, it := range items {
		obj, err := r.artifacts.Put(ctx, ArtifactKey(r.desc.JobID, it.name), it.path, it.contentType)
		if err != nil {
			return domain.NewStageError(stage, kind, fmt.Errorf("store %s: %w", it.name, err))
		}
		assets = append(assets, &domain.Asset{
			JobID:    r.desc.JobID,
			Kind:     it.kind,
			Location: obj.Location,
			URL:      obj.URL,
			Size:     obj.Size,
			Language: it.language,
		})
	}

	if err := r.store.CreateAssets(ctx, assets); err != nil {
		return domain.NewStageError(stage, kind, fmt.Errorf("record %s assets: %w", stage, err))
	}
	return nil
}

type transcriptFile struct {
	Language string           `json:"language"`
	Segments []domain.Segment `json:"segments"`
}

func writeTranscript(p, lang string, segments []domain.Segment) error {
	data, err := json.MarshalIndent(transcriptFile{Language: lang, Segments: segments}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
