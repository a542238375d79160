package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bnema/vidlingo/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submit(srv http.Handler, remote, forwarded string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/jobs",
		strings.NewReader(`{"youtube_url":"`+watchURL+`","target_lang":"vi"}`))
	req.RemoteAddr = remote
	if forwarded != "" {
		req.Header.Set("X-Forwarded-For", forwarded)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestServer_SubmitRateLimit(t *testing.T) {
	srv := NewServer(newFakeJobs(), nil, service.NewEventBus(), "test", 2, false)

	assert.Equal(t, http.StatusCreated, submit(srv, "10.0.0.1:5000", "").Code)
	assert.Equal(t, http.StatusCreated, submit(srv, "10.0.0.1:5001", "").Code)

	limited := submit(srv, "10.0.0.1:5002", "")
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusCreated, submit(srv, "10.0.0.2:5000", "").Code, "other clients are unaffected")
}

func TestServer_SubmitRateLimitIgnoresForwardedUnlessTrusted(t *testing.T) {
	srv := NewServer(newFakeJobs(), nil, service.NewEventBus(), "test", 1, false)

	assert.Equal(t, http.StatusCreated, submit(srv, "10.0.0.1:1", "203.0.113.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, submit(srv, "10.0.0.1:2", "203.0.113.2").Code)
}

func TestServer_SubmitRateLimitBehindProxy(t *testing.T) {
	srv := NewServer(newFakeJobs(), nil, service.NewEventBus(), "test", 1, true)

	assert.Equal(t, http.StatusCreated, submit(srv, "10.0.0.1:1", "203.0.113.1, 10.0.0.1").Code)
	assert.Equal(t, http.StatusCreated, submit(srv, "10.0.0.1:2", "203.0.113.2").Code)
	assert.Equal(t, http.StatusTooManyRequests, submit(srv, "10.0.0.1:3", "203.0.113.1").Code)
}

func TestServer_ReadsAreNotLimited(t *testing.T) {
	srv := NewServer(newFakeJobs(), nil, service.NewEventBus(), "test", 1, false)

	for range 5 {
		assert.Equal(t, http.StatusOK, do(srv, http.MethodGet, "/api/jobs", "").Code)
	}
}

func TestServer_SecurityHeadersOnEveryRoute(t *testing.T) {
	srv := NewServer(newFakeJobs(), nil, service.NewEventBus(), "test", 0, false)

	for _, target := range []string{"/healthz", "/api/jobs", "/api/jobs/missing", "/nowhere"} {
		rec := do(srv, http.MethodGet, target, "")
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"), target)
		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'none'", target)
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := NewServer(newFakeJobs(), nil, service.NewEventBus(), "test", 0, false)

	assert.Equal(t, http.StatusMethodNotAllowed, do(srv, http.MethodDelete, "/api/jobs", "").Code)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		proxy   bool
		want    string
	}{
		{"remote addr", "192.0.2.7:4431", nil, false, "192.0.2.7"},
		{"ipv6 remote", "[2001:db8::1]:80", nil, false, "2001:db8::1"},
		{"no port", "192.0.2.7", nil, false, "192.0.2.7"},
		{"forwarded untrusted", "192.0.2.7:1", map[string]string{"X-Forwarded-For": "203.0.113.9"}, false, "192.0.2.7"},
		{"forwarded first hop", "192.0.2.7:1", map[string]string{"X-Forwarded-For": "203.0.113.9, 192.0.2.7"}, true, "203.0.113.9"},
		{"real ip", "192.0.2.7:1", map[string]string{"X-Real-IP": "203.0.113.5"}, true, "203.0.113.5"},
		{"proxy without headers", "192.0.2.7:1", nil, true, "192.0.2.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req, tt.proxy))
		})
	}
}
