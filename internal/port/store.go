package port

import (
	"context"

	"github.com/bnema/vidlingo/internal/domain"
)

// JobStore persists jobs and their assets. Implementations return
// domain.ErrNotFound for unknown ids.
type JobStore interface {
	CreateJob(ctx context.Context, job *domain.Job) error
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	ListJobs(ctx context.Context, limit int) ([]*domain.Job, error)
	UpdateJobStatus(ctx context.Context, id string, status domain.JobStatus, progress int, errMsg string) error
	UpdateJobMetadata(ctx context.Context, id string, meta domain.JobMetadata) error
	// CreateAssets records every asset or none of them. An asset whose job
	// already holds one of the same kind and language is left as it was and
	// the existing row is loaded into it.
	CreateAssets(ctx context.Context, assets []*domain.Asset) error
	ListAssets(ctx context.Context, jobID string) ([]domain.Asset, error)
}

// ArtifactStore moves a finished local file to durable storage.
type ArtifactStore interface {
	Put(ctx context.Context, key, localPath, contentType string) (domain.StoredObject, error)
}
