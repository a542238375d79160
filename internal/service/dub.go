package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/infrastructure/logger"
	"github.com/bnema/vidlingo/internal/port"
)

const (
	DubAudioName = "dub_audio.mp3"
	DubVideoName = "dub_video.mp4"

	// OriginalDuckVolume is the gain applied to the source audio under the
	// voiceover.
	OriginalDuckVolume = 0.2
)

type DubOutput struct {
	AudioPath string
	VideoPath string
}

type Dubber struct {
	synth   port.SpeechSynthesizer
	media   port.MediaToolkit
	timeout time.Duration
}

func NewDubber(synth port.SpeechSynthesizer, media port.MediaToolkit, timeout time.Duration) *Dubber {
	return &Dubber{synth: synth, media: media, timeout: timeout}
}

// Preflight reports configuration problems before any upstream work runs.
func (d *Dubber) Preflight(targetLang, voiceID string) error {
	if err := d.synth.Ready(); err != nil {
		return domain.NewStageError(domain.StagePreflight, domain.ErrConfiguration, err)
	}
	if _, err := domain.ResolveVoice(targetLang, voiceID); err != nil {
		return domain.NewStageError(domain.StagePreflight, domain.ErrConfiguration, err)
	}
	return nil
}

// Dub synthesizes every segment, fits each clip to its window and lays the
// result over videoPath. Per-segment clips live in a scratch directory under
// jobDir that is removed before Dub returns.
func (d *Dubber) Dub(ctx context.Context, jobDir, videoPath string, segments []domain.Segment, targetLang, voiceID string) (*DubOutput, error) {
	voice, err := domain.ResolveVoice(targetLang, voiceID)
	if err != nil {
		return nil, domain.NewStageError(domain.StageDub, domain.ErrConfiguration, err)
	}

	scratch, err := os.MkdirTemp(jobDir, "dub-*")
	if err != nil {
		return nil, domain.NewStageError(domain.StageDub, domain.ErrSynthesis, fmt.Errorf("create scratch dir: %w", err))
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			logger.Error.Printf("failed to remove dub scratch dir %s: %v", scratch, err)
		}
	}()

	clips := make([]port.ClipPlacement, 0, len(segments))
	for _, seg := range segments {
		clip, err := d.segmentClip(ctx, scratch, seg, voice)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}

	out := &DubOutput{
		AudioPath: filepath.Join(jobDir, DubAudioName),
		VideoPath: filepath.Join(jobDir, DubVideoName),
	}

	err = callWithTimeout(ctx, d.timeout, func(ctx context.Context) error {
		return d.media.MixAtOffsets(ctx, clips, out.AudioPath)
	})
	if err != nil {
		removeOutputs(out)
		return nil, domain.NewStageError(domain.StageDub, domain.ErrMux, fmt.Errorf("mix dub track: %w", err))
	}

	err = callWithTimeout(ctx, d.timeout, func(ctx context.Context) error {
		return d.media.MuxDucked(ctx, videoPath, out.AudioPath, out.VideoPath, OriginalDuckVolume)
	})
	if err != nil {
		removeOutputs(out)
		return nil, domain.NewStageError(domain.StageDub, domain.ErrMux, fmt.Errorf("mux dub video: %w", err))
	}

	return out, nil
}

func (d *Dubber) segmentClip(ctx context.Context, scratch string, seg domain.Segment, voice string) (port.ClipPlacement, error) {
	raw := filepath.Join(scratch, fmt.Sprintf("segment_%d.wav", seg.ID))

	err := callWithTimeout(ctx, d.timeout, func(ctx context.Context) error {
		return d.synth.Synthesize(ctx, seg.Text, voice, raw)
	})
	if err != nil {
		return port.ClipPlacement{}, domain.NewStageError(domain.StageDub, domain.ErrSynthesis, fmt.Errorf("segment %d: %w", seg.ID, err))
	}

	var actual float64
	err = callWithTimeout(ctx, d.timeout, func(ctx context.Context) error {
		var err error
		actual, err = d.media.Duration(ctx, raw)
		return err
	})
	if err != nil {
		return port.ClipPlacement{}, domain.NewStageError(domain.StageDub, domain.ErrMux, fmt.Errorf("measure segment %d: %w", seg.ID, err))
	}

	plan := PlanStretch(actual, seg.Duration())
	if !plan.Apply {
		return port.ClipPlacement{Path: raw, Offset: seg.Start}, nil
	}
	if plan.Clamped {
		logger.Debug.Printf("segment %d: stretch clamped to %.2f (clip %.2fs, window %.2fs)", seg.ID, plan.Factor, actual, seg.Duration())
	}

	stretched := filepath.Join(scratch, fmt.Sprintf("stretched_%d.wav", seg.ID))
	err = callWithTimeout(ctx, d.timeout, func(ctx context.Context) error {
		return d.media.TimeStretch(ctx, raw, stretched, plan.Factor)
	})
	if err != nil {
		return port.ClipPlacement{}, domain.NewStageError(domain.StageDub, domain.ErrMux, fmt.Errorf("stretch segment %d: %w", seg.ID, err))
	}
	return port.ClipPlacement{Path: stretched, Offset: seg.Start}, nil
}

func removeOutputs(out *DubOutput) {
	_ = os.Remove(out.AudioPath)
	_ = os.Remove(out.VideoPath)
}
