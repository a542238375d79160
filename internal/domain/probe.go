package domain

import (
	"fmt"
	"strconv"
)

// ProbeResult holds the fields of `ffprobe -show_format -show_streams` JSON
// that duration measurement needs.
type ProbeResult struct {
	Format  ProbeFormat   `json:"format"`
	Streams []ProbeStream `json:"streams"`
}

type ProbeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

type ProbeStream struct {
	CodecType string `json:"codec_type"`
	Duration  string `json:"duration"`
}

// DurationSeconds returns the container duration, or the first audio
// stream's when the container reports none. Synthesized WAV clips often only
// carry the latter.
func (p *ProbeResult) DurationSeconds() float64 {
	if d := parseSeconds(p.Format.Duration); d > 0 {
		return d
	}
	for _, s := range p.Streams {
		if s.CodecType == "audio" {
			return parseSeconds(s.Duration)
		}
	}
	return 0
}

func parseSeconds(v string) float64 {
	if v == "" || v == "N/A" {
		return 0
	}
	d, err := strconv.ParseFloat(v, 64)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// FormatDuration renders whole seconds as m:ss or h:mm:ss.
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0:00"
	}
	total := int(seconds)
	h, m, s := total/3600, total%3600/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
