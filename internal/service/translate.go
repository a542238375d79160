package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/infrastructure/logger"
	"github.com/bnema/vidlingo/internal/port"
)

const DefaultTranslateBatchSize = 20

var taggedLine = regexp.MustCompile(`^\s*\[(\d+)\]\s*(.+?)\s*$`)

type Translator struct {
	provider  port.TextTranslator
	timeout   time.Duration
	batchSize int
}

func NewTranslator(provider port.TextTranslator, timeout time.Duration) *Translator {
	return &Translator{
		provider:  provider,
		timeout:   timeout,
		batchSize: DefaultTranslateBatchSize,
	}
}

// Translate returns segments with their text replaced and ids and timings
// kept. The bool is false when source and target match and nothing ran.
func (t *Translator) Translate(ctx context.Context, segments []domain.Segment, sourceLang, targetLang string) ([]domain.Segment, bool, error) {
	if sourceLang == targetLang {
		return segments, false, nil
	}

	out := make([]domain.Segment, 0, len(segments))
	for offset := 0; offset < len(segments); offset += t.batchSize {
		end := min(offset+t.batchSize, len(segments))

		translated, err := t.translateBatch(ctx, segments[offset:end], offset, sourceLang, targetLang)
		if err != nil {
			return nil, false, domain.NewStageError(domain.StageTranslate, domain.ErrTranslation, err)
		}
		out = append(out, translated...)
	}
	return out, true, nil
}

func (t *Translator) translateBatch(ctx context.Context, batch []domain.Segment, offset int, sourceLang, targetLang string) ([]domain.Segment, error) {
	var reply string
	err := callWithTimeout(ctx, t.timeout, func(ctx context.Context) error {
		var err error
		reply, err = t.provider.TranslateBatch(ctx, tagBatch(batch, offset), sourceLang, targetLang)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("batch at %d: %w", offset, err)
	}

	lines := parseTaggedLines(reply, offset, len(batch))
	if len(lines) == 0 {
		return nil, fmt.Errorf("batch at %d: no numbered lines in reply", offset)
	}

	result := make([]domain.Segment, len(batch))
	for i, seg := range batch {
		result[i] = seg
		if text, ok := lines[i]; ok {
			result[i].Text = text
		} else {
			logger.Warn.Printf("translation missing line [%d], keeping original text", offset+i+1)
		}
	}
	return result, nil
}

// tagBatch numbers lines by their position in the whole transcript.
func tagBatch(batch []domain.Segment, offset int) string {
	var b strings.Builder
	for i, seg := range batch {
		text := strings.Join(strings.Fields(seg.Text), " ")
		fmt.Fprintf(&b, "[%d] %s\n", offset+i+1, text)
	}
	return b.String()
}

// parseTaggedLines maps batch-relative indexes to translated text. The first
// line for a tag wins and tags outside the batch are ignored.
func parseTaggedLines(reply string, offset, size int) map[int]string {
	lines := make(map[int]string, size)
	for _, line := range strings.Split(reply, "\n") {
		m := taggedLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		idx := n - offset - 1
		if idx < 0 || idx >= size {
			continue
		}
		if _, seen := lines[idx]; !seen {
			lines[idx] = m[2]
		}
	}
	return lines
}
