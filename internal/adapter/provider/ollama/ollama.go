// Package ollama translates tagged subtitle lines with a local Ollama model.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/vidlingo/internal/adapter/provider/apiclient"
	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/port"
)

const (
	DefaultURL   = "http://localhost:11434"
	DefaultModel = "llama3.1"
)

type Translator struct {
	baseURL string
	model   string
	http    *apiclient.Client
}

func NewTranslator(baseURL, model string, transport *apiclient.Client) *Translator {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}
	if transport == nil {
		transport = apiclient.New()
	}
	return &Translator{baseURL: baseURL, model: model, http: transport}
}

type generateRequest struct {
	Model   string         `json:"model"`
	System  string         `json:"system"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}

func (t *Translator) TranslateBatch(ctx context.Context, tagged, sourceLang, targetLang string) (string, error) {
	const op = "ollama translate"
	endpoint, err := url.JoinPath(t.baseURL, "api", "generate")
	if err != nil {
		return "", fmt.Errorf("%s: build url: %w", op, err)
	}
	encoded, err := json.Marshal(generateRequest{
		Model:   t.model,
		System:  domain.TranslationPrompt(sourceLang, targetLang),
		Prompt:  tagged,
		Stream:  false,
		Options: map[string]any{"temperature": 0.3},
	})
	if err != nil {
		return "", fmt.Errorf("%s: encode body: %w", op, err)
	}

	body, err := t.http.Do(ctx, op, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return "", err
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", op, err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("%s: %s", op, parsed.Error)
	}
	out := strings.TrimSpace(parsed.Response)
	if out == "" {
		return "", errors.New(op + ": empty response")
	}
	return out, nil
}

var _ port.TextTranslator = (*Translator)(nil)
