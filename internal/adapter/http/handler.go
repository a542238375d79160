package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/bnema/vidlingo/internal/adapter/http/validation"
	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/infrastructure/logger"
	"github.com/bnema/vidlingo/internal/service"
)

const maxBodyBytes = 16 << 10

type JobService interface {
	Create(ctx context.Context, req service.CreateJobRequest) (*domain.Job, error)
	Get(ctx context.Context, id string) (*service.JobDetails, error)
	List(ctx context.Context, limit int) ([]*domain.Job, error)
	Assets(ctx context.Context, jobID string) (map[domain.AssetKind][]domain.Asset, error)
	QueueStats(ctx context.Context) (domain.QueueStats, error)
}

// FileStore resolves artifact keys to files on local disk.
type FileStore interface {
	Path(key string) (string, error)
}

type Handlers struct {
	jobs    JobService
	files   FileStore
	version string
}

func NewHandlers(jobs JobService, files FileStore, version string) *Handlers {
	return &Handlers{jobs: jobs, files: files, version: version}
}

type createJobBody struct {
	SourceURL  string `json:"youtube_url"`
	TargetLang string `json:"target_lang"`
	EnableDub  bool   `json:"enable_dub"`
	VoiceID    string `json:"voice_id"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handlers) CreateJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createJobBody
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
			return
		}

		if err := validation.Submission(body.SourceURL, body.TargetLang, body.EnableDub, body.VoiceID); err != nil {
			writeError(w, err)
			return
		}

		job, err := h.jobs.Create(r.Context(), service.CreateJobRequest{
			SourceURL:  strings.TrimSpace(body.SourceURL),
			TargetLang: body.TargetLang,
			EnableDub:  body.EnableDub,
			VoiceID:    body.VoiceID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Location", "/api/jobs/"+job.ID)
		writeJSON(w, http.StatusCreated, job)
	}
}

func (h *Handlers) ListJobs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := service.DefaultListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 500 {
				writeJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be between 1 and 500"})
				return
			}
			limit = n
		}

		jobs, err := h.jobs.List(r.Context(), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		if jobs == nil {
			jobs = []*domain.Job{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
	}
}

func (h *Handlers) GetJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := h.jobs.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		if details.Assets == nil {
			details.Assets = []domain.Asset{}
		}
		writeJSON(w, http.StatusOK, details)
	}
}

func (h *Handlers) JobAssets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := r.PathValue("jobId")
		grouped, err := h.jobs.Assets(r.Context(), jobID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"job_id": jobID, "assets": grouped})
	}
}

// ServeFile streams a locally stored artifact. Media opens inline so players
// can seek; everything else downloads. Only published job artifacts are
// reachable: the database, queue files and scratch output share the data
// directory.
func (h *Handlers) ServeFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("path")
		jobID, ok := jobIDFromKey(key)
		if !ok {
			http.NotFound(w, r)
			return
		}
		fullPath, err := h.files.Path(key)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		var title string
		if details, err := h.jobs.Get(r.Context(), jobID); err == nil {
			title = details.Job.Title
		}

		ext := strings.ToLower(path.Ext(key))
		inline := ext == ".mp4" || ext == ".mp3" || ext == ".vtt"
		w.Header().Set("Content-Disposition", validation.ContentDisposition(validation.DownloadName(title, key), inline))
		if ext == ".vtt" {
			w.Header().Set("Content-Type", "text/vtt; charset=utf-8")
		}
		http.ServeFile(w, r, fullPath)
	}
}

func (h *Handlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.jobs.QueueStats(r.Context())
		if err != nil {
			logger.Warn.Printf("health check: queue stats failed: %v", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":  "degraded",
				"version": h.version,
				"error":   "queue unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"version": h.version,
			"queue":   stats,
		})
	}
}

// jobIDFromKey extracts the id from keys shaped like "jobs/<id>/<name>".
var artifactName = regexp.MustCompile(`^(video\.mp4|transcript\.json|transcript_[A-Za-z0-9-]+\.json|subtitles_[A-Za-z0-9-]+\.(srt|vtt)|dub_audio\.mp3|dub_video\.mp4)$`)

// jobIDFromKey accepts jobs/<id>/<artifact> keys and returns the job ID.
func jobIDFromKey(key string) (string, bool) {
	parts := strings.Split(key, "/")
	if len(parts) != 3 || parts[0] != "jobs" {
		return "", false
	}
	id, name := parts[1], parts[2]
	if id == "" || strings.HasPrefix(id, ".") || !artifactName.MatchString(name) {
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug.Printf("write response: %v", err)
	}
}

// writeError maps domain errors onto status codes. Internal failures are
// logged and reported without detail.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	default:
		logger.Error.Printf("request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
