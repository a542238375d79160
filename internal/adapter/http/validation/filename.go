package validation

import (
	"mime"
	"path"
	"strings"
	"unicode/utf8"
)

const maxNameBytes = 200

// unsafeRunes break header quoting or act as path separators.
var unsafeRunes = map[rune]bool{
	'"':  true,
	'\\': true,
	'/':  true,
	':':  true,
	'*':  true,
	'?':  true,
	'<':  true,
	'>':  true,
	'|':  true,
}

// CleanName replaces control characters and separators with underscores and
// caps the result at maxNameBytes. Empty input becomes "file".
func CleanName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if r < 0x20 || r == 0x7f || unsafeRunes[r] {
			sb.WriteRune('_')
			continue
		}
		sb.WriteRune(r)
	}

	out := strings.Trim(strings.TrimSpace(sb.String()), "._")
	if out == "" {
		return "file"
	}
	return truncateUTF8(out, maxNameBytes)
}

// DownloadName builds the name offered for an artifact: the video title when
// known, then the stored file's base name, e.g. "My Talk - subtitles_vi.srt".
func DownloadName(title, key string) string {
	base := path.Base(key)
	if base == "." || base == "/" {
		base = "file"
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return CleanName(base)
	}

	ext := path.Ext(base)
	stem := truncateUTF8(CleanName(title+" - "+strings.TrimSuffix(base, ext)), maxNameBytes-len(ext))
	return stem + ext
}

// ContentDisposition formats the header for name. Non-ASCII names are sent
// with the RFC 2231 filename* parameter.
func ContentDisposition(name string, inline bool) string {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	v := mime.FormatMediaType(disposition, map[string]string{"filename": CleanName(name)})
	if v == "" {
		return disposition
	}
	return v
}

func truncateUTF8(s string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(s) <= maxBytes {
		return s
	}
	s = s[:maxBytes]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
