package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSegments(t *testing.T) {
	raw := []Segment{
		{ID: 0, Start: 3.0, End: 4.5, Text: " second "},
		{ID: 1, Start: 0.0, End: 2.0, Text: "first"},
		{ID: 2, Start: 5.0, End: 5.0, Text: "zero window"},
		{ID: 3, Start: 6.0, End: 7.0, Text: "   "},
		{ID: 4, Start: 8.0, End: 7.0, Text: "negative"},
		{ID: 5, Start: 9.0, End: 10.0, Text: "third"},
	}

	got := NormalizeSegments(raw)

	require.Len(t, got, 3)
	assert.Equal(t, Segment{ID: 1, Start: 0.0, End: 2.0, Text: "first"}, got[0])
	assert.Equal(t, Segment{ID: 2, Start: 3.0, End: 4.5, Text: "second"}, got[1])
	assert.Equal(t, Segment{ID: 3, Start: 9.0, End: 10.0, Text: "third"}, got[2])
}

func TestNormalizeSegments_Empty(t *testing.T) {
	assert.Empty(t, NormalizeSegments(nil))
}

func TestSameTimeline(t *testing.T) {
	a := []Segment{{ID: 1, Start: 0, End: 1, Text: "hi"}, {ID: 2, Start: 1, End: 2, Text: "there"}}
	b := []Segment{{ID: 1, Start: 0, End: 1, Text: "xin chào"}, {ID: 2, Start: 1, End: 2, Text: "bạn"}}

	assert.True(t, SameTimeline(a, b))
	assert.False(t, SameTimeline(a, b[:1]))

	shifted := []Segment{{ID: 1, Start: 0, End: 1}, {ID: 2, Start: 1.5, End: 2}}
	assert.False(t, SameTimeline(a, shifted))
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Vietnamese", LanguageName("vi"))
	assert.Equal(t, "English", LanguageName("en"))
	assert.Equal(t, "Japanese", LanguageName("ja"))
	assert.Equal(t, "??", LanguageName("??"))
}

func TestIsSupportedLanguage(t *testing.T) {
	for _, code := range SupportedLanguages {
		assert.True(t, IsSupportedLanguage(code), code)
	}
	assert.False(t, IsSupportedLanguage("xx"))
	assert.False(t, IsSupportedLanguage("EN"))
}

func TestResolveVoice(t *testing.T) {
	tests := []struct {
		name    string
		lang    string
		profile string
		want    string
		wantErr bool
	}{
		{"vietnamese female", "vi", VoiceFemaleSoft, "vi-VN-HoaiMyNeural", false},
		{"vietnamese male", "vi", VoiceMaleWarm, "vi-VN-NamMinhNeural", false},
		{"english female", "en", VoiceFemaleSoft, "en-US-JennyNeural", false},
		{"fallback to english table", "fr", VoiceMaleWarm, "en-US-GuyNeural", false},
		{"unknown profile", "vi", "robot", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveVoice(tt.lang, tt.profile)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupAssets(t *testing.T) {
	assets := []Asset{
		{Kind: AssetSRT, Language: "vi"},
		{Kind: AssetOriginalVideo},
		{Kind: AssetSRT, Language: "en"},
	}

	grouped := GroupAssets(assets)
	assert.Len(t, grouped[AssetSRT], 2)
	assert.Len(t, grouped[AssetOriginalVideo], 1)
	assert.True(t, HasAsset(assets, AssetSRT))
	assert.False(t, HasAsset(assets, AssetDubVideo))
}

func TestProbeResult_DurationSeconds(t *testing.T) {
	p := &ProbeResult{Format: ProbeFormat{Duration: "2.500000"}}
	assert.InDelta(t, 2.5, p.DurationSeconds(), 1e-9)

	p = &ProbeResult{
		Format:  ProbeFormat{Duration: "N/A"},
		Streams: []ProbeStream{{CodecType: "audio", Duration: "1.25"}},
	}
	assert.InDelta(t, 1.25, p.DurationSeconds(), 1e-9)

	assert.Equal(t, 0.0, (&ProbeResult{}).DurationSeconds())
	assert.Equal(t, 0.0, (&ProbeResult{Format: ProbeFormat{Duration: "garbage"}}).DurationSeconds())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "0:09", FormatDuration(9.7))
	assert.Equal(t, "1:05", FormatDuration(65))
	assert.Equal(t, "1:01:01", FormatDuration(3661))
}

func TestTranslationPrompt(t *testing.T) {
	p := TranslationPrompt("en", "ja")
	assert.Contains(t, p, "from English to Japanese")
	assert.Contains(t, p, "[N]")
}
