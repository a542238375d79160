// Package jsonfile keeps jobs and assets in a single JSON document, for
// single-process setups without a database.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/port"
)

const fileName = "jobs.json"

type document struct {
	Jobs        []*domain.Job  `json:"jobs"`
	Assets      []domain.Asset `json:"assets"`
	NextAssetID int64          `json:"next_asset_id"`
}

type Store struct {
	mu          sync.RWMutex
	path        string
	jobs        map[string]*domain.Job
	assets      map[string][]domain.Asset
	nextAssetID int64
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	store := &Store{
		path:        filepath.Join(dir, fileName),
		jobs:        make(map[string]*domain.Job),
		assets:      make(map[string][]domain.Asset),
		nextAssetID: 1,
	}

	if err := store.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return store, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}

	for _, j := range doc.Jobs {
		s.jobs[j.ID] = j
	}
	for _, a := range doc.Assets {
		s.assets[a.JobID] = append(s.assets[a.JobID], a)
	}
	if doc.NextAssetID > s.nextAssetID {
		s.nextAssetID = doc.NextAssetID
	}

	return nil
}

// save must be called with the write lock held.
func (s *Store) save() error {
	tmpPath := s.path + ".tmp"

	doc := document{
		Jobs:        make([]*domain.Job, 0, len(s.jobs)),
		Assets:      []domain.Asset{},
		NextAssetID: s.nextAssetID,
	}
	for _, j := range s.jobs {
		doc.Jobs = append(doc.Jobs, j)
	}
	sort.Slice(doc.Jobs, func(a, b int) bool { return doc.Jobs[a].CreatedAt.Before(doc.Jobs[b].CreatedAt) })
	for _, j := range doc.Jobs {
		doc.Assets = append(doc.Assets, s.assets[j.ID]...)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.path)
}

func (s *Store) CreateJob(_ context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("job %s already exists", job.ID)
	}
	cp := *job
	s.jobs[job.ID] = &cp
	return s.save()
}

func (s *Store) GetJob(_ context.Context, id string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	cp := *j
	return &cp, nil
}

func (s *Store) ListJobs(_ context.Context, limit int) ([]*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*domain.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		cp := *j
		jobs = append(jobs, &cp)
	}
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].CreatedAt.After(jobs[b].CreatedAt) })
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (s *Store) UpdateJobStatus(_ context.Context, id string, status domain.JobStatus, progress int, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}

	now := time.Now().UTC()
	j.Status = status
	j.Progress = progress
	j.ErrorMessage = errMsg
	j.UpdatedAt = now
	j.CompletedAt = nil
	if status == domain.JobStatusDone {
		j.CompletedAt = &now
	}
	return s.save()
}

func (s *Store) UpdateJobMetadata(_ context.Context, id string, meta domain.JobMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}

	j.Title = meta.Title
	j.DurationSeconds = meta.DurationSeconds
	j.DetectedLang = meta.DetectedLang
	j.UpdatedAt = time.Now().UTC()
	return s.save()
}

// CreateAssets applies the batch in memory and writes the document once.
// If the write fails the in-memory state is put back.
func (s *Store) CreateAssets(_ context.Context, assets []*domain.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, asset := range assets {
		if _, ok := s.jobs[asset.JobID]; !ok {
			return fmt.Errorf("asset for job %s: %w", asset.JobID, domain.ErrNotFound)
		}
	}

	prevNext := s.nextAssetID
	prev := make(map[string][]domain.Asset, len(assets))
	now := time.Now().UTC()
	added := 0

	for _, asset := range assets {
		current := s.assets[asset.JobID]
		if _, saved := prev[asset.JobID]; !saved {
			prev[asset.JobID] = current
		}
		if existing, ok := findAsset(current, asset.Kind, asset.Language); ok {
			*asset = existing
			continue
		}

		asset.ID = s.nextAssetID
		s.nextAssetID++
		if asset.CreatedAt.IsZero() {
			asset.CreatedAt = now
		}
		// Copy so the saved slice is never appended into.
		next := make([]domain.Asset, len(current), len(current)+1)
		copy(next, current)
		s.assets[asset.JobID] = append(next, *asset)
		added++
	}
	if added == 0 {
		return nil
	}

	if err := s.save(); err != nil {
		s.nextAssetID = prevNext
		for jobID, list := range prev {
			if list == nil {
				delete(s.assets, jobID)
			} else {
				s.assets[jobID] = list
			}
		}
		return fmt.Errorf("save assets: %w", err)
	}
	return nil
}

func findAsset(list []domain.Asset, kind domain.AssetKind, lang string) (domain.Asset, bool) {
	for _, a := range list {
		if a.Kind == kind && a.Language == lang {
			return a, true
		}
	}
	return domain.Asset{}, false
}

func (s *Store) ListAssets(_ context.Context, jobID string) ([]domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Asset{}, s.assets[jobID]...), nil
}

var _ port.JobStore = (*Store)(nil)
