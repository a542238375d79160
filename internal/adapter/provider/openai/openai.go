// Package openai implements speech recognition with Whisper and translation
// with chat completions.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/vidlingo/internal/adapter/provider/apiclient"
	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/port"
)

const DefaultBaseURL = "https://api.openai.com/v1"

type Config struct {
	APIKey          string
	BaseURL         string
	TranscribeModel string
	TranslateModel  string
}

type Client struct {
	cfg  Config
	http *apiclient.Client
}

func NewClient(cfg Config, transport *apiclient.Client) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = "whisper-1"
	}
	if cfg.TranslateModel == "" {
		cfg.TranslateModel = "gpt-4o-mini"
	}
	if transport == nil {
		transport = apiclient.New()
	}
	return &Client{cfg: cfg, http: transport}
}

func (c *Client) endpoint(path string) (string, error) {
	return url.JoinPath(c.cfg.BaseURL, path)
}

func (c *Client) requireKey(op string) error {
	if c.cfg.APIKey == "" {
		return fmt.Errorf("%s: %w: OPENAI_API_KEY is not set", op, domain.ErrConfiguration)
	}
	return nil
}

type transcriptionResponse struct {
	Language string `json:"language"`
	Segments []struct {
		ID    int     `json:"id"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe uploads the audio file and returns Whisper's timed segments.
func (c *Client) Transcribe(ctx context.Context, audioPath string) ([]domain.Segment, error) {
	const op = "whisper transcribe"
	if err := c.requireKey(op); err != nil {
		return nil, err
	}
	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%s: audio file is empty", op)
	}
	endpoint, err := c.endpoint("audio/transcriptions")
	if err != nil {
		return nil, fmt.Errorf("%s: build url: %w", op, err)
	}

	body, err := c.http.Do(ctx, op, func(ctx context.Context) (*http.Request, error) {
		payload, contentType, err := c.transcriptionForm(audioPath)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, payload)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		req.Header.Set("Content-Type", contentType)
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	segments := make([]domain.Segment, 0, len(parsed.Segments))
	for _, s := range parsed.Segments {
		segments = append(segments, domain.Segment{
			ID:    s.ID + 1,
			Start: s.Start,
			End:   s.End,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	return segments, nil
}

func (c *Client) transcriptionForm(audioPath string) (io.Reader, string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	fields := [][2]string{
		{"model", c.cfg.TranscribeModel},
		{"response_format", "verbose_json"},
		{"timestamp_granularities[]", "segment"},
	}
	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) TranslateBatch(ctx context.Context, tagged, sourceLang, targetLang string) (string, error) {
	const op = "chat translate"
	if err := c.requireKey(op); err != nil {
		return "", err
	}
	endpoint, err := c.endpoint("chat/completions")
	if err != nil {
		return "", fmt.Errorf("%s: build url: %w", op, err)
	}
	encoded, err := json.Marshal(chatRequest{
		Model: c.cfg.TranslateModel,
		Messages: []chatMessage{
			{Role: "system", Content: domain.TranslationPrompt(sourceLang, targetLang)},
			{Role: "user", Content: tagged},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("%s: encode body: %w", op, err)
	}

	body, err := c.http.Do(ctx, op, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", op, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%s: api error: %s", op, strings.TrimSpace(parsed.Error.Message))
	}
	for _, choice := range parsed.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			return content, nil
		}
		if choice.Message.Refusal != "" {
			return "", fmt.Errorf("%s: model refused: %s", op, choice.Message.Refusal)
		}
	}
	return "", errors.New(op + ": empty completion")
}

var (
	_ port.SpeechRecognizer = (*Client)(nil)
	_ port.TextTranslator   = (*Client)(nil)
)
