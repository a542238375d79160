package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusQueued  JobStatus = "queued"
	JobStatusRunning JobStatus = "running"
	JobStatusDone    JobStatus = "done"
	JobStatusError   JobStatus = "error"
)

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusDone || s == JobStatusError
}

// Progress checkpoints reached after each pipeline stage.
const (
	ProgressQueued      = 0
	ProgressIngested    = 20
	ProgressTranscribed = 40
	ProgressTranslated  = 60
	ProgressSubtitled   = 70
	ProgressDubbed      = 90
	ProgressComplete    = 100
)

type Job struct {
	ID              string     `json:"id"`
	SourceURL       string     `json:"youtube_url"`
	TargetLang      string     `json:"target_lang"`
	EnableDub       bool       `json:"enable_dub"`
	VoiceID         string     `json:"voice_id,omitempty"`
	Status          JobStatus  `json:"status"`
	Progress        int        `json:"progress"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	Title           string     `json:"video_title,omitempty"`
	DurationSeconds int        `json:"video_duration,omitempty"`
	DetectedLang    string     `json:"original_lang,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

func NewJob(sourceURL, targetLang string, enableDub bool, voiceID string) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:         uuid.NewString(),
		SourceURL:  sourceURL,
		TargetLang: targetLang,
		EnableDub:  enableDub,
		VoiceID:    voiceID,
		Status:     JobStatusQueued,
		Progress:   ProgressQueued,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (j *Job) Descriptor() JobDescriptor {
	return JobDescriptor{
		JobID:      j.ID,
		SourceURL:  j.SourceURL,
		TargetLang: j.TargetLang,
		EnableDub:  j.EnableDub,
		VoiceID:    j.VoiceID,
	}
}

// JobDescriptor is the queue payload handed to the orchestrator.
type JobDescriptor struct {
	JobID      string `json:"job_id"`
	SourceURL  string `json:"source_url"`
	TargetLang string `json:"target_lang"`
	EnableDub  bool   `json:"enable_dub"`
	VoiceID    string `json:"voice_id,omitempty"`
}

// WantsDub reports whether the dubbing stage runs for this descriptor.
func (d JobDescriptor) WantsDub() bool {
	return d.EnableDub && d.VoiceID != ""
}

type JobMetadata struct {
	Title           string
	DurationSeconds int
	DetectedLang    string
}
