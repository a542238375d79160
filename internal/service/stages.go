package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/port"
)

// callWithTimeout runs fn under a derived deadline. A zero timeout leaves ctx
// untouched.
func callWithTimeout(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := fn(ctx)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("timed out after %s: %w", timeout, err)
	}
	return err
}

// IngestOutput is the typed result handed from Ingest to the later stages.
type IngestOutput struct {
	VideoPath    string
	AudioPath    string
	Metadata     domain.JobMetadata
	DetectedLang string
}

type Ingester struct {
	source  port.MediaSource
	timeout time.Duration
}

func NewIngester(source port.MediaSource, timeout time.Duration) *Ingester {
	return &Ingester{source: source, timeout: timeout}
}

func (i *Ingester) Ingest(ctx context.Context, url, workDir string) (*IngestOutput, error) {
	var res *port.IngestResult
	err := callWithTimeout(ctx, i.timeout, func(ctx context.Context) error {
		var err error
		res, err = i.source.Fetch(ctx, url, workDir)
		return err
	})
	if err != nil {
		return nil, domain.NewStageError(domain.StageIngest, domain.ErrIngest, err)
	}
	if res == nil || res.VideoPath == "" || res.AudioPath == "" {
		return nil, domain.NewStageError(domain.StageIngest, domain.ErrIngest, errors.New("source produced no media tracks"))
	}

	lang := strings.ToLower(strings.TrimSpace(res.DetectedLang))
	if lang == "" {
		lang = domain.DefaultSourceLanguage
	}

	return &IngestOutput{
		VideoPath: res.VideoPath,
		AudioPath: res.AudioPath,
		Metadata: domain.JobMetadata{
			Title:           strings.TrimSpace(res.Title),
			DurationSeconds: int(res.DurationSeconds),
			DetectedLang:    lang,
		},
		DetectedLang: lang,
	}, nil
}

type Transcriber struct {
	recognizer port.SpeechRecognizer
	timeout    time.Duration
}

func NewTranscriber(recognizer port.SpeechRecognizer, timeout time.Duration) *Transcriber {
	return &Transcriber{recognizer: recognizer, timeout: timeout}
}

// Transcribe returns normalized segments numbered from 1.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) ([]domain.Segment, error) {
	var raw []domain.Segment
	err := callWithTimeout(ctx, t.timeout, func(ctx context.Context) error {
		var err error
		raw, err = t.recognizer.Transcribe(ctx, audioPath)
		return err
	})
	if err != nil {
		return nil, domain.NewStageError(domain.StageTranscribe, domain.ErrTranscription, err)
	}

	segments := domain.NormalizeSegments(raw)
	if len(segments) == 0 {
		return nil, domain.NewStageError(domain.StageTranscribe, domain.ErrTranscription, errors.New("no speech detected"))
	}
	return segments, nil
}
