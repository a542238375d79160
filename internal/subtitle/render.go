// Package subtitle renders transcripts into SRT and WebVTT.
package subtitle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/vidlingo/internal/domain"
)

type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

const vttHeader = "WEBVTT"

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) ContentType() string {
	if f == FormatVTT {
		return "text/vtt; charset=utf-8"
	}
	return "application/x-subrip; charset=utf-8"
}

// RenderSRT emits one index cue per segment in id order.
func RenderSRT(segments []domain.Segment) string {
	var b strings.Builder
	writeCues(&b, ordered(segments), SeparatorSRT)
	return b.String()
}

// RenderVTT emits the WEBVTT header followed by the same cues with a
// period millisecond separator.
func RenderVTT(segments []domain.Segment) string {
	var b strings.Builder
	b.WriteString(vttHeader)
	b.WriteString("\n\n")
	writeCues(&b, ordered(segments), SeparatorVTT)
	return b.String()
}

// Render validates segments and renders them in format.
func Render(format Format, segments []domain.Segment) ([]byte, error) {
	if err := Validate(segments); err != nil {
		return nil, err
	}
	switch format {
	case FormatSRT:
		return []byte(RenderSRT(segments)), nil
	case FormatVTT:
		return []byte(RenderVTT(segments)), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", domain.ErrSubtitleRender, format)
	}
}

// Validate rejects transcripts that cannot produce a well-formed cue list.
func Validate(segments []domain.Segment) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: empty transcript", domain.ErrSubtitleRender)
	}
	seen := make(map[int]struct{}, len(segments))
	for _, s := range segments {
		if s.Start < 0 || s.End <= s.Start {
			return fmt.Errorf("%w: segment %d has invalid window %.3f-%.3f", domain.ErrSubtitleRender, s.ID, s.Start, s.End)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate segment id %d", domain.ErrSubtitleRender, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

func writeCues(b *strings.Builder, segments []domain.Segment, sep byte) {
	for _, s := range segments {
		fmt.Fprintf(b, "%d\n%s --> %s\n%s\n\n",
			s.ID,
			FormatTimestamp(s.Start, sep),
			FormatTimestamp(s.End, sep),
			s.Text,
		)
	}
}

func ordered(segments []domain.Segment) []domain.Segment {
	out := make([]domain.Segment, len(segments))
	copy(out, segments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
