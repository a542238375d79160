// Package azuretts synthesizes speech through the Azure Speech REST API.
package azuretts

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/bnema/vidlingo/internal/adapter/provider/apiclient"
	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/port"
)

const (
	outputFormat = "riff-24khz-16bit-mono-pcm"
	userAgent    = "vidlingo"
)

type Synthesizer struct {
	key      string
	region   string
	endpoint string
	http     *apiclient.Client
}

type Option func(*Synthesizer)

// WithEndpoint overrides the regional endpoint, for tests and sovereign clouds.
func WithEndpoint(endpoint string) Option {
	return func(s *Synthesizer) {
		s.endpoint = endpoint
	}
}

func NewSynthesizer(key, region string, transport *apiclient.Client, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		key:    strings.TrimSpace(key),
		region: strings.TrimSpace(region),
		http:   transport,
	}
	if s.region == "" {
		s.region = "eastus"
	}
	if s.http == nil {
		s.http = apiclient.New()
	}
	s.endpoint = fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", s.region)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Synthesizer) Ready() error {
	if s.key == "" {
		return fmt.Errorf("%w: AZURE_TTS_KEY is not set", domain.ErrConfiguration)
	}
	return nil
}

// Synthesize writes a WAV clip of text spoken by voice to outPath.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voice, outPath string) error {
	const op = "azure tts"
	if err := s.Ready(); err != nil {
		return err
	}
	ssml, err := buildSSML(text, voice)
	if err != nil {
		return fmt.Errorf("%s: build ssml: %w", op, err)
	}

	body, err := s.http.Do(ctx, op, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(ssml))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", s.key)
		req.Header.Set("Content-Type", "application/ssml+xml")
		req.Header.Set("X-Microsoft-OutputFormat", outputFormat)
		req.Header.Set("User-Agent", userAgent)
		return req, nil
	})
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("%s: empty audio for voice %s", op, voice)
	}
	if err := os.WriteFile(outPath, body, 0644); err != nil {
		return fmt.Errorf("%s: write clip: %w", op, err)
	}
	return nil
}

// voiceLocale extracts "vi-VN" from "vi-VN-HoaiMyNeural".
func voiceLocale(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) < 3 {
		return "en-US"
	}
	return parts[0] + "-" + parts[1]
}

func buildSSML(text, voice string) ([]byte, error) {
	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(text)); err != nil {
		return nil, err
	}
	var voiceAttr bytes.Buffer
	if err := xml.EscapeText(&voiceAttr, []byte(voice)); err != nil {
		return nil, err
	}
	return fmt.Appendf(nil,
		`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang="%s"><voice name="%s">%s</voice></speak>`,
		voiceLocale(voice), voiceAttr.String(), escaped.String()), nil
}

var _ port.SpeechSynthesizer = (*Synthesizer)(nil)
