package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/port"
)

const jobColumns = `id, source_url, target_lang, enable_dub, voice_id, status, progress,
	error_message, title, duration_seconds, detected_lang, created_at, updated_at, completed_at`

func (s *Store) CreateJob(ctx context.Context, job *domain.Job) error {
	_, err := s.exec(ctx, `INSERT INTO jobs (`+jobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.SourceURL, job.TargetLang, job.EnableDub, job.VoiceID,
		string(job.Status), job.Progress, job.ErrorMessage, job.Title,
		job.DurationSeconds, job.DetectedLang,
		job.CreatedAt.UTC(), job.UpdatedAt.UTC(), nullTime(job.CompletedAt))
	if err != nil {
		return fmt.Errorf("insert job %s: %w", job.ID, err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	row := s.queryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return job, nil
}

func (s *Store) ListJobs(ctx context.Context, limit int) ([]*domain.Job, error) {
	rows, err := s.query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (s *Store) UpdateJobStatus(ctx context.Context, id string, status domain.JobStatus, progress int, errMsg string) error {
	now := time.Now().UTC()
	var completedAt any
	if status == domain.JobStatusDone {
		completedAt = now
	}
	res, err := s.exec(ctx, `UPDATE jobs
		SET status = ?, progress = ?, error_message = ?, updated_at = ?, completed_at = ?
		WHERE id = ?`,
		string(status), progress, errMsg, now, completedAt, id)
	if err != nil {
		return fmt.Errorf("update job %s status: %w", id, err)
	}
	return requireRow(res, id)
}

func (s *Store) UpdateJobMetadata(ctx context.Context, id string, meta domain.JobMetadata) error {
	res, err := s.exec(ctx, `UPDATE jobs
		SET title = ?, duration_seconds = ?, detected_lang = ?, updated_at = ?
		WHERE id = ?`,
		meta.Title, meta.DurationSeconds, meta.DetectedLang, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update job %s metadata: %w", id, err)
	}
	return requireRow(res, id)
}

// CreateAssets inserts the batch in one transaction.
func (s *Store) CreateAssets(ctx context.Context, assets []*domain.Asset) error {
	if len(assets) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin asset batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, asset := range assets {
		if err := s.insertAsset(ctx, tx, asset); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit asset batch: %w", err)
	}
	return nil
}

func (s *Store) insertAsset(ctx context.Context, tx *sql.Tx, asset *domain.Asset) error {
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = time.Now().UTC()
	}
	err := tx.QueryRowContext(ctx, s.rebind(`INSERT INTO assets (job_id, kind, location, url, size, language, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (job_id, kind, language) DO NOTHING
		RETURNING id`),
		asset.JobID, string(asset.Kind), asset.Location, asset.URL, asset.Size, asset.Language, asset.CreatedAt.UTC(),
	).Scan(&asset.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("insert asset %s/%s: %w", asset.JobID, asset.Kind, err)
	}

	// Already recorded by an earlier attempt; keep the original row.
	err = tx.QueryRowContext(ctx, s.rebind(`SELECT id, location, url, size, created_at FROM assets
		WHERE job_id = ? AND kind = ? AND language = ?`),
		asset.JobID, string(asset.Kind), asset.Language,
	).Scan(&asset.ID, &asset.Location, &asset.URL, &asset.Size, &asset.CreatedAt)
	if err != nil {
		return fmt.Errorf("load existing asset %s/%s: %w", asset.JobID, asset.Kind, err)
	}
	return nil
}

func (s *Store) ListAssets(ctx context.Context, jobID string) ([]domain.Asset, error) {
	rows, err := s.query(ctx, `SELECT id, job_id, kind, location, url, size, language, created_at
		FROM assets WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list assets for %s: %w", jobID, err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		var (
			a    domain.Asset
			kind string
		)
		if err := rows.Scan(&a.ID, &a.JobID, &kind, &a.Location, &a.URL, &a.Size, &a.Language, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		a.Kind = domain.AssetKind(kind)
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		job         domain.Job
		status      string
		completedAt sql.NullTime
	)
	if err := row.Scan(
		&job.ID, &job.SourceURL, &job.TargetLang, &job.EnableDub, &job.VoiceID,
		&status, &job.Progress, &job.ErrorMessage, &job.Title, &job.DurationSeconds,
		&job.DetectedLang, &job.CreatedAt, &job.UpdatedAt, &completedAt,
	); err != nil {
		return nil, err
	}
	job.Status = domain.JobStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		job.CompletedAt = &t
	}
	return &job, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ port.JobStore = (*Store)(nil)
