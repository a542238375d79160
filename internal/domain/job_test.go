package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewJob(t *testing.T) {
	job := NewJob("https://youtu.be/abc", "vi", true, VoiceFemaleSoft)

	assert.NotEmpty(t, job.ID, "ID should be generated")
	assert.Len(t, job.ID, 36, "ID should be a UUID")
	assert.Equal(t, JobStatusQueued, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.Nil(t, job.CompletedAt)
	assert.False(t, job.CreatedAt.IsZero())

	other := NewJob("https://youtu.be/abc", "vi", true, VoiceFemaleSoft)
	assert.NotEqual(t, job.ID, other.ID)
}

func TestJob_Descriptor(t *testing.T) {
	job := NewJob("https://youtu.be/abc", "vi", true, VoiceMaleWarm)
	desc := job.Descriptor()

	assert.Equal(t, job.ID, desc.JobID)
	assert.Equal(t, "https://youtu.be/abc", desc.SourceURL)
	assert.Equal(t, "vi", desc.TargetLang)
	assert.True(t, desc.WantsDub())
}

func TestJobDescriptor_WantsDub(t *testing.T) {
	tests := []struct {
		name string
		desc JobDescriptor
		want bool
	}{
		{"dub with voice", JobDescriptor{EnableDub: true, VoiceID: VoiceFemaleSoft}, true},
		{"dub without voice", JobDescriptor{EnableDub: true}, false},
		{"voice without dub", JobDescriptor{VoiceID: VoiceFemaleSoft}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.desc.WantsDub())
		})
	}
}

func TestJobStatus_IsTerminal(t *testing.T) {
	assert.False(t, JobStatusQueued.IsTerminal())
	assert.False(t, JobStatusRunning.IsTerminal())
	assert.True(t, JobStatusDone.IsTerminal())
	assert.True(t, JobStatusError.IsTerminal())
}

func TestStageError(t *testing.T) {
	cause := errors.New("yt-dlp exited with status 1")
	err := NewStageError(StageIngest, ErrIngest, cause)

	assert.Equal(t, "ingest: yt-dlp exited with status 1", err.Error())
	assert.ErrorIs(t, err, ErrIngest)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTranscription)

	wrapped := fmt.Errorf("run job: %w", err)
	var se *StageError
	assert.True(t, errors.As(wrapped, &se))
	assert.Equal(t, StageIngest, se.Stage)
	assert.Equal(t, ErrIngest, FailureKind(wrapped))
}

func TestStageError_NilCause(t *testing.T) {
	err := NewStageError(StageTranslate, ErrTranslation, nil)
	assert.ErrorIs(t, err, ErrTranslation)
	assert.Equal(t, "translate: translation failure", err.Error())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"ingest", NewStageError(StageIngest, ErrIngest, errors.New("boom")), true},
		{"synthesis", fmt.Errorf("%w: provider 500", ErrSynthesis), true},
		{"configuration", NewStageError(StagePreflight, ErrConfiguration, errors.New("no key")), false},
		{"invalid input", fmt.Errorf("%w: bad url", ErrInvalidInput), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
