package domain

import (
	"sort"
	"strings"
)

// Segment is one timed utterance. Offsets are in seconds.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// NormalizeSegments drops segments with a non-positive window or blank text,
// orders the rest by start time and renumbers them from 1.
func NormalizeSegments(raw []Segment) []Segment {
	out := make([]Segment, 0, len(raw))
	for _, s := range raw {
		s.Text = strings.TrimSpace(s.Text)
		if s.End <= s.Start || s.Text == "" {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	for i := range out {
		out[i].ID = i + 1
	}
	return out
}

// SameTimeline reports whether b carries exactly the ids and windows of a.
func SameTimeline(a, b []Segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Start != b[i].Start || a[i].End != b[i].End {
			return false
		}
	}
	return true
}
