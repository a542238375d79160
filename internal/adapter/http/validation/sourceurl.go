package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/bnema/vidlingo/internal/domain"
)

var (
	watchHosts = map[string]bool{
		"youtube.com":     true,
		"www.youtube.com": true,
		"m.youtube.com":   true,
	}
	videoID = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)
)

// SourceURL accepts YouTube watch URLs and youtu.be short links and returns
// the trimmed input.
func SourceURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: youtube_url is required", domain.ErrInvalidInput)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return "", fmt.Errorf("%w: youtube_url must be an http(s) URL", domain.ErrInvalidInput)
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case watchHosts[host]:
		if u.Path != "/watch" || !videoID.MatchString(u.Query().Get("v")) {
			return "", fmt.Errorf("%w: not a YouTube watch URL", domain.ErrInvalidInput)
		}
	case host == "youtu.be":
		if !videoID.MatchString(strings.Trim(u.Path, "/")) {
			return "", fmt.Errorf("%w: not a YouTube short link", domain.ErrInvalidInput)
		}
	default:
		return "", fmt.Errorf("%w: unsupported host %q", domain.ErrInvalidInput, host)
	}
	return raw, nil
}

// Submission checks a job request before it reaches the store.
func Submission(sourceURL, targetLang string, enableDub bool, voiceID string) error {
	if _, err := SourceURL(sourceURL); err != nil {
		return err
	}
	if !domain.IsSupportedLanguage(targetLang) {
		return fmt.Errorf("%w: target_lang must be one of %s",
			domain.ErrInvalidInput, strings.Join(domain.SupportedLanguages, ", "))
	}
	if enableDub && !domain.IsVoiceProfile(voiceID) {
		return fmt.Errorf("%w: voice_id must be one of %s",
			domain.ErrInvalidInput, strings.Join(domain.VoiceProfiles, ", "))
	}
	return nil
}
