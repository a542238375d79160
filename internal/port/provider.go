package port

import (
	"context"

	"github.com/bnema/vidlingo/internal/domain"
)

// IngestResult is what a media source hands back for one URL.
type IngestResult struct {
	VideoPath       string
	AudioPath       string
	Title           string
	DurationSeconds float64
	DetectedLang    string
}

type MediaSource interface {
	Fetch(ctx context.Context, url, workDir string) (*IngestResult, error)
}

type SpeechRecognizer interface {
	Transcribe(ctx context.Context, audioPath string) ([]domain.Segment, error)
}

// TextTranslator translates a block of "[N] text" lines and must keep the
// tags intact.
type TextTranslator interface {
	TranslateBatch(ctx context.Context, tagged, sourceLang, targetLang string) (string, error)
}

type SpeechSynthesizer interface {
	// Ready reports whether credentials are configured.
	Ready() error
	Synthesize(ctx context.Context, text, voice, outPath string) error
}

// ClipPlacement positions one audio clip on the dub timeline.
type ClipPlacement struct {
	Path   string
	Offset float64
}

type MediaToolkit interface {
	Duration(ctx context.Context, path string) (float64, error)
	ExtractAudio(ctx context.Context, videoPath, outPath string) error
	TimeStretch(ctx context.Context, inPath, outPath string, factor float64) error
	MixAtOffsets(ctx context.Context, clips []ClipPlacement, outPath string) error
	MuxDucked(ctx context.Context, videoPath, voicePath, outPath string, duck float64) error
}
