package logger

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"forged log line", "title\n2026-01-01 ERROR admin login", `title\n2026-01-01 ERROR admin login`},
		{"crlf", "a\r\nb", `a\r\nb`},
		{"tab", "a\tb", `a\tb`},
		{"null byte", "a\x00b", `a\x00b`},
		{"ansi colour", "\x1b[31mred\x1b[0m", `\x1b[31mred\x1b[0m`},
		{"delete", "a\x7fb", `a\x7fb`},
		{"bell", "\a", `\x07`},
		{"vietnamese", "Xin chào thế giới", "Xin chào thế giới"},
		{"cjk and emoji", "字幕 🎬", "字幕 🎬"},
		{"invalid utf8", "a\xffb", `a�b`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeForLog(tt.in))
		})
	}
}

func TestSanitizeForLog_OutputHasNoControlCharacters(t *testing.T) {
	var in strings.Builder
	for r := rune(0); r < 0x80; r++ {
		in.WriteRune(r)
	}

	out := SanitizeForLog(in.String())

	for _, r := range out {
		assert.False(t, r < 0x20 || r == 0x7f, "control rune %U leaked", r)
	}
}

func TestSanitizeForLog_Truncates(t *testing.T) {
	in := strings.Repeat("é", MaxLogValue)

	out := SanitizeForLog(in)

	assert.True(t, utf8.ValidString(out))
	assert.Less(t, len(out), len(in))
	assert.True(t, strings.HasSuffix(out, " bytes)"))
	assert.Contains(t, out, "...(+")
}

func TestSanitizeForLog_ShortValuesAreNotMarked(t *testing.T) {
	in := strings.Repeat("a", MaxLogValue)

	assert.Equal(t, in, SanitizeForLog(in))
}
