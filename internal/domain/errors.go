package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrLeaseLost means another worker has taken over a claimed entry.
	ErrLeaseLost = errors.New("queue lease lost")
)

// Failure kinds. Every pipeline error carries exactly one of these.
var (
	ErrIngest         = errors.New("ingest failure")
	ErrTranscription  = errors.New("transcription failure")
	ErrTranslation    = errors.New("translation failure")
	ErrSubtitleRender = errors.New("subtitle render failure")
	ErrSynthesis      = errors.New("synthesis failure")
	ErrMux            = errors.New("mux failure")
	ErrConfiguration  = errors.New("configuration failure")
	ErrQueue          = errors.New("queue failure")
)

var failureKinds = []error{
	ErrConfiguration,
	ErrIngest,
	ErrTranscription,
	ErrTranslation,
	ErrSubtitleRender,
	ErrSynthesis,
	ErrMux,
	ErrQueue,
}

type Stage string

const (
	StagePreflight  Stage = "preflight"
	StageIngest     Stage = "ingest"
	StageTranscribe Stage = "transcribe"
	StageTranslate  Stage = "translate"
	StageSubtitles  Stage = "subtitles"
	StageDub        Stage = "dub"
	StageFinalize   Stage = "finalize"
)

// StageError ties a failure to the stage that produced it. errors.Is matches
// both the failure kind and the underlying cause.
type StageError struct {
	Stage Stage
	Kind  error
	Err   error
}

func NewStageError(stage Stage, kind, err error) *StageError {
	if err == nil {
		err = kind
	}
	return &StageError{Stage: stage, Kind: kind, Err: err}
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// FailureKind returns the failure sentinel carried by err, or nil.
func FailureKind(err error) error {
	for _, kind := range failureKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// IsRetryable reports whether rerunning the job could change the outcome.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrConfiguration) && !errors.Is(err, ErrInvalidInput)
}
