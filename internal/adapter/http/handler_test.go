package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/vidlingo/internal/adapter/blob/localfs"
	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

type fakeJobs struct {
	jobs     map[string]*domain.Job
	assets   map[string][]domain.Asset
	created  []service.CreateJobRequest
	createFn func(service.CreateJobRequest) error
	listed   int
	statsErr error
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{jobs: make(map[string]*domain.Job), assets: make(map[string][]domain.Asset)}
}

func (f *fakeJobs) Create(_ context.Context, req service.CreateJobRequest) (*domain.Job, error) {
	if f.createFn != nil {
		if err := f.createFn(req); err != nil {
			return nil, err
		}
	}
	f.created = append(f.created, req)
	job := domain.NewJob(req.SourceURL, req.TargetLang, req.EnableDub, req.VoiceID)
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeJobs) Get(_ context.Context, id string) (*service.JobDetails, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &service.JobDetails{Job: job, Assets: f.assets[id]}, nil
}

func (f *fakeJobs) List(_ context.Context, limit int) ([]*domain.Job, error) {
	f.listed = limit
	var out []*domain.Job
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobs) Assets(_ context.Context, jobID string) (map[domain.AssetKind][]domain.Asset, error) {
	if _, ok := f.jobs[jobID]; !ok {
		return nil, domain.ErrNotFound
	}
	return domain.GroupAssets(f.assets[jobID]), nil
}

func (f *fakeJobs) QueueStats(context.Context) (domain.QueueStats, error) {
	return domain.QueueStats{Pending: 2, Active: 1}, f.statsErr
}

func (f *fakeJobs) add(job *domain.Job) *domain.Job {
	f.jobs[job.ID] = job
	return job
}

func newTestServer(t *testing.T, jobs *fakeJobs, files FileStore) *Server {
	t.Helper()
	return NewServer(jobs, files, service.NewEventBus(), "test", 0, false)
}

func do(s http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestCreateJob(t *testing.T) {
	jobs := newFakeJobs()
	srv := newTestServer(t, jobs, nil)

	rec := do(srv, http.MethodPost, "/api/jobs",
		`{"youtube_url":" `+watchURL+` ","target_lang":"vi","enable_dub":true,"voice_id":"female_soft"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var job domain.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, domain.JobStatusQueued, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.Equal(t, "/api/jobs/"+job.ID, rec.Header().Get("Location"))

	require.Len(t, jobs.created, 1)
	assert.Equal(t, service.CreateJobRequest{
		SourceURL: watchURL, TargetLang: "vi", EnableDub: true, VoiceID: "female_soft",
	}, jobs.created[0])
}

func TestCreateJob_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"youtube_url":`, "invalid JSON body"},
		{"unknown field", `{"youtube_url":"` + watchURL + `","target_lang":"vi","extra":1}`, "invalid JSON body"},
		{"bad url", `{"youtube_url":"https://vimeo.com/1","target_lang":"vi"}`, "unsupported host"},
		{"bad language", `{"youtube_url":"` + watchURL + `","target_lang":"klingon"}`, "target_lang"},
		{"bad voice", `{"youtube_url":"` + watchURL + `","target_lang":"vi","enable_dub":true,"voice_id":"x"}`, "voice_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := newFakeJobs()
			rec := do(newTestServer(t, jobs, nil), http.MethodPost, "/api/jobs", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.Empty(t, jobs.created)
		})
	}
}

func TestCreateJob_InternalErrorIsOpaque(t *testing.T) {
	jobs := newFakeJobs()
	jobs.createFn = func(service.CreateJobRequest) error {
		return errors.New("disk full at /var/lib/secret")
	}

	rec := do(newTestServer(t, jobs, nil), http.MethodPost, "/api/jobs",
		`{"youtube_url":"`+watchURL+`","target_lang":"vi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestListJobs(t *testing.T) {
	jobs := newFakeJobs()
	jobs.add(domain.NewJob(watchURL, "vi", false, ""))
	srv := newTestServer(t, jobs, nil)

	rec := do(srv, http.MethodGet, "/api/jobs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.DefaultListLimit, jobs.listed)

	var body struct {
		Jobs []domain.Job `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Jobs, 1)

	do(srv, http.MethodGet, "/api/jobs?limit=5", "")
	assert.Equal(t, 5, jobs.listed)

	assert.Equal(t, http.StatusBadRequest, do(srv, http.MethodGet, "/api/jobs?limit=zero", "").Code)
}

func TestListJobs_EmptyIsArray(t *testing.T) {
	rec := do(newTestServer(t, newFakeJobs(), nil), http.MethodGet, "/api/jobs", "")

	assert.JSONEq(t, `{"jobs":[]}`, rec.Body.String())
}

func TestGetJob(t *testing.T) {
	jobs := newFakeJobs()
	job := jobs.add(domain.NewJob(watchURL, "ja", false, ""))
	jobs.assets[job.ID] = []domain.Asset{{JobID: job.ID, Kind: domain.AssetSRT, Language: "ja"}}
	srv := newTestServer(t, jobs, nil)

	rec := do(srv, http.MethodGet, "/api/jobs/"+job.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var details service.JobDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	assert.Equal(t, job.ID, details.Job.ID)
	require.Len(t, details.Assets, 1)
	assert.Equal(t, domain.AssetSRT, details.Assets[0].Kind)

	missing := do(srv, http.MethodGet, "/api/jobs/nope", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestJobAssets_Grouped(t *testing.T) {
	jobs := newFakeJobs()
	job := jobs.add(domain.NewJob(watchURL, "ko", false, ""))
	jobs.assets[job.ID] = []domain.Asset{
		{Kind: domain.AssetSRT, Language: "ko"},
		{Kind: domain.AssetVTT, Language: "ko"},
		{Kind: domain.AssetTranscript, Language: "en"},
		{Kind: domain.AssetTranscript, Language: "ko"},
	}

	rec := do(newTestServer(t, jobs, nil), http.MethodGet, "/api/assets/"+job.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		JobID  string                             `json:"job_id"`
		Assets map[domain.AssetKind][]domain.Asset `json:"assets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, job.ID, body.JobID)
	assert.Len(t, body.Assets[domain.AssetTranscript], 2)
	assert.Len(t, body.Assets[domain.AssetSRT], 1)
}

func TestServeFile(t *testing.T) {
	root := t.TempDir()
	files := localfs.New(root, "http://localhost:7890")
	jobs := newFakeJobs()
	job := domain.NewJob(watchURL, "vi", false, "")
	job.Title = "My Talk"
	jobs.add(job)

	dir := filepath.Join(root, "jobs", job.ID)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subtitles_vi.srt"), []byte("1\n00:00:00,000 --> 00:00:01,000\nXin chào\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subtitles_vi.vtt"), []byte("WEBVTT\n"), 0o644))
	srv := newTestServer(t, jobs, files)

	rec := do(srv, http.MethodGet, "/files/jobs/"+job.ID+"/subtitles_vi.srt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Xin chào")
	assert.Equal(t, `attachment; filename="My Talk - subtitles_vi.srt"`, rec.Header().Get("Content-Disposition"))

	vtt := do(srv, http.MethodGet, "/files/jobs/"+job.ID+"/subtitles_vi.vtt", "")
	require.Equal(t, http.StatusOK, vtt.Code)
	assert.Equal(t, "text/vtt; charset=utf-8", vtt.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(vtt.Header().Get("Content-Disposition"), "inline;"))

	assert.Equal(t, http.StatusNotFound, do(srv, http.MethodGet, "/files/jobs/"+job.ID+"/missing.srt", "").Code)
	assert.Equal(t, http.StatusNotFound, do(srv, http.MethodGet, "/files/jobs/"+job.ID, "").Code)
}

func TestServeFile_OnlyPublishesJobArtifacts(t *testing.T) {
	root := t.TempDir()
	files := localfs.New(root, "http://localhost:7890")
	jobs := newFakeJobs()
	job := domain.NewJob(watchURL, "vi", false, "")
	jobs.add(job)

	dir := filepath.Join(root, "jobs", job.ID)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "segments"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "jobs", ".trash"), 0o755))
	for _, name := range []string{
		"vidlingo.db", "vidlingo.db-wal", "jobs.json", ".env",
		"jobs/" + job.ID + "/.lock",
		"jobs/" + job.ID + "/audio.mp3",
		"jobs/" + job.ID + "/segments/0001.mp3",
		"jobs/.trash/video.mp4",
		"jobs/" + job.ID + "/video.mp4",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(name)), []byte("x"), 0o644))
	}
	srv := newTestServer(t, jobs, files)

	for _, key := range []string{
		"vidlingo.db",
		"vidlingo.db-wal",
		"jobs.json",
		".env",
		"jobs/" + job.ID + "/.lock",
		"jobs/" + job.ID + "/audio.mp3",
		"jobs/" + job.ID + "/segments/0001.mp3",
		"jobs/.trash/video.mp4",
	} {
		t.Run(key, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, do(srv, http.MethodGet, "/files/"+key, "").Code)
		})
	}

	assert.Equal(t, http.StatusOK, do(srv, http.MethodGet, "/files/jobs/"+job.ID+"/video.mp4", "").Code)
}

func TestServeFile_NotRoutedWithoutLocalStore(t *testing.T) {
	rec := do(newTestServer(t, newFakeJobs(), nil), http.MethodGet, "/files/jobs/x/video.mp4", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	jobs := newFakeJobs()
	srv := newTestServer(t, jobs, nil)

	rec := do(srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"version":"test"`)

	jobs.statsErr = errors.New("redis down")
	rec = do(srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "redis down")
}

func TestJobIDFromKey(t *testing.T) {
	id, ok := jobIDFromKey("jobs/abc/video.mp4")
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	id, ok = jobIDFromKey("jobs/abc/subtitles_pt-BR.vtt")
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	for _, key := range []string{
		"jobs/abc",
		"other/abc/video.mp4",
		"vidlingo.db",
		"jobs//video.mp4",
		"jobs/.hidden/video.mp4",
		"jobs/abc/.lock",
		"jobs/abc/audio.mp3",
		"jobs/abc/subtitles_vi.ass",
		"jobs/abc/sub/video.mp4",
	} {
		_, ok = jobIDFromKey(key)
		assert.False(t, ok, key)
	}
}
