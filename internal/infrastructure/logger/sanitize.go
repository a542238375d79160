package logger

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxLogValue caps a sanitized value so one provider error body cannot flood
// the log.
const MaxLogValue = 1024

// SanitizeForLog makes an untrusted string safe to embed in a log line.
// Control characters, including ANSI escapes, are rendered as Go escapes and
// printable Unicode is kept. Values longer than MaxLogValue bytes are cut and
// marked with the number of bytes dropped.
func SanitizeForLog(s string) string {
	var b strings.Builder
	b.Grow(min(len(s), MaxLogValue) + 16)

	for i, r := range s {
		if b.Len() >= MaxLogValue {
			b.WriteString("...(+")
			b.WriteString(strconv.Itoa(len(s) - i))
			b.WriteString(" bytes)")
			break
		}
		switch {
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == utf8.RuneError:
			b.WriteString(`�`)
		case r < 0x20 || r == 0x7f:
			b.WriteString(`\x`)
			if r < 0x10 {
				b.WriteByte('0')
			}
			b.WriteString(strconv.FormatInt(int64(r), 16))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
