package service

import (
	"context"
	"fmt"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/infrastructure/logger"
	"github.com/bnema/vidlingo/internal/port"
)

const DefaultListLimit = 50

type CreateJobRequest struct {
	SourceURL  string
	TargetLang string
	EnableDub  bool
	VoiceID    string
}

type JobDetails struct {
	Job    *domain.Job    `json:"job"`
	Assets []domain.Asset `json:"assets"`
}

// JobService is the request-side entry point: it creates jobs and hands them
// to the work queue, and reads job state back.
type JobService struct {
	store port.JobStore
	queue port.WorkQueue
}

func NewJobService(store port.JobStore, queue port.WorkQueue) *JobService {
	return &JobService{store: store, queue: queue}
}

func (s *JobService) Create(ctx context.Context, req CreateJobRequest) (*domain.Job, error) {
	if !domain.IsSupportedLanguage(req.TargetLang) {
		return nil, fmt.Errorf("%w: unsupported target language %q", domain.ErrInvalidInput, req.TargetLang)
	}
	voiceID := ""
	if req.EnableDub {
		if !domain.IsVoiceProfile(req.VoiceID) {
			return nil, fmt.Errorf("%w: unknown voice %q", domain.ErrInvalidInput, req.VoiceID)
		}
		voiceID = req.VoiceID
	}

	job := domain.NewJob(req.SourceURL, req.TargetLang, req.EnableDub, voiceID)
	if err := s.store.CreateJob(ctx, job); err != nil {
		logger.Error.Printf("failed to save job %s: %v", job.ID, err)
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	if err := s.queue.Enqueue(ctx, job.Descriptor()); err != nil {
		logger.Error.Printf("failed to enqueue job %s: %v", job.ID, err)
		msg := fmt.Sprintf("enqueue: %v", err)
		if uerr := s.store.UpdateJobStatus(context.WithoutCancel(ctx), job.ID, domain.JobStatusError, domain.ProgressQueued, msg); uerr != nil {
			logger.Error.Printf("failed to mark job %s as error: %v", job.ID, uerr)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrQueue, err)
	}

	logger.Info.Printf("job queued: id=%s, url=%s, lang=%s, dub=%t",
		job.ID, logger.SanitizeForLog(job.SourceURL), job.TargetLang, job.EnableDub)
	return job, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*JobDetails, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	assets, err := s.store.ListAssets(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return &JobDetails{Job: job, Assets: assets}, nil
}

func (s *JobService) List(ctx context.Context, limit int) ([]*domain.Job, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.store.ListJobs(ctx, limit)
}

// Assets returns the job's assets grouped by kind.
func (s *JobService) Assets(ctx context.Context, jobID string) (map[domain.AssetKind][]domain.Asset, error) {
	if _, err := s.store.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	assets, err := s.store.ListAssets(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return domain.GroupAssets(assets), nil
}

func (s *JobService) QueueStats(ctx context.Context) (domain.QueueStats, error) {
	return s.queue.Stats(ctx)
}
