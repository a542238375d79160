package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/vidlingo/internal/adapter/provider/apiclient"
	"github.com/bnema/vidlingo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL, key string) *Client {
	return NewClient(Config{APIKey: key, BaseURL: serverURL},
		apiclient.New(apiclient.WithSleeper(func(time.Duration) {})))
}

func TestTranscribe(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "audio.mp3")
	require.NoError(t, os.WriteFile(audio, []byte("ID3fake"), 0644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "verbose_json", r.FormValue("response_format"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "audio.mp3", hdr.Filename)
		assert.Equal(t, "ID3fake", string(data))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"language": "english",
			"segments": []map[string]any{
				{"id": 0, "start": 0.0, "end": 2.4, "text": " Hello there."},
				{"id": 1, "start": 2.4, "end": 5.1, "text": " General Kenobi."},
			},
		})
	}))
	defer server.Close()

	segs, err := newTestClient(server.URL, "sk-test").Transcribe(context.Background(), audio)

	require.NoError(t, err)
	assert.Equal(t, []domain.Segment{
		{ID: 1, Start: 0, End: 2.4, Text: "Hello there."},
		{ID: 2, Start: 2.4, End: 5.1, Text: "General Kenobi."},
	}, segs)
}

func TestTranscribe_EmptyAudio(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "audio.mp3")
	require.NoError(t, os.WriteFile(audio, nil, 0644))

	_, err := newTestClient("http://127.0.0.1:0", "sk").Transcribe(context.Background(), audio)
	assert.ErrorContains(t, err, "audio file is empty")
}

func TestTranscribe_MissingKey(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:0", "").Transcribe(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestTranslateBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.InDelta(t, 0.3, req.Temperature, 1e-9)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[0].Content, "from English to Vietnamese")
		assert.Equal(t, "[1] Hello\n[2] Bye\n", req.Messages[1].Content)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": "[1] Xin chào\n[2] Tạm biệt\n"}}},
		})
	}))
	defer server.Close()

	out, err := newTestClient(server.URL, "sk").TranslateBatch(context.Background(), "[1] Hello\n[2] Bye\n", "en", "vi")

	require.NoError(t, err)
	assert.Equal(t, "[1] Xin chào\n[2] Tạm biệt", out)
}

func TestTranslateBatch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"empty choices", 200, `{"choices":[]}`, "empty completion"},
		{"refusal", 200, `{"choices":[{"message":{"content":"","refusal":"no"}}]}`, "model refused"},
		{"api error", 200, `{"error":{"message":"model not found"}}`, "model not found"},
		{"bad request", 400, `{"error":{"message":"bad"}}`, "http 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL, "sk").TranslateBatch(context.Background(), "[1] a", "en", "fr")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
