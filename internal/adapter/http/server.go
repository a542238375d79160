package http

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/vidlingo/internal/adapter/http/middleware"
	"github.com/bnema/vidlingo/internal/infrastructure/logger"
	"github.com/bnema/vidlingo/internal/ratelimit"
)

const submitWindow = time.Minute

type Server struct {
	mux           *http.ServeMux
	handlers      *Handlers
	sseHandler    *SSEHandler
	files         FileStore
	submitLimiter *ratelimit.WindowLimiter
	behindProxy   bool
}

// NewServer wires the JSON API. files may be nil when artifacts live in
// object storage; /files is then not served.
func NewServer(jobs JobService, files FileStore, events EventSource, version string, submitRateMax int, behindProxy bool) *Server {
	s := &Server{
		mux:           http.NewServeMux(),
		handlers:      NewHandlers(jobs, files, version),
		sseHandler:    NewSSEHandler(events, jobs),
		files:         files,
		submitLimiter: ratelimit.NewWindowLimiter(submitRateMax, submitWindow),
		behindProxy:   behindProxy,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /api/jobs", s.limitSubmit(s.handlers.CreateJob()))
	s.mux.HandleFunc("GET /api/jobs", s.handlers.ListJobs())
	s.mux.HandleFunc("GET /api/jobs/{id}", s.handlers.GetJob())
	s.mux.HandleFunc("GET /api/jobs/{id}/events", s.sseHandler.Events())
	s.mux.HandleFunc("GET /api/assets/{jobId}", s.handlers.JobAssets())
	s.mux.HandleFunc("GET /healthz", s.handlers.Health())

	if s.files != nil {
		s.mux.HandleFunc("GET /files/{path...}", s.handlers.ServeFile())
	}
}

// limitSubmit caps job submissions per client address.
func (s *Server) limitSubmit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r, s.behindProxy)
		allowed, wait := s.submitLimiter.Check(client)
		if !allowed {
			logger.Warn.Printf("submit rate limit hit: client=%s", logger.SanitizeForLog(client))
			seconds := int(wait.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "too many submissions, retry later"})
			return
		}
		next(w, r)
	}
}

// SweepLimits drops idle limiter keys until ctx ends.
func (s *Server) SweepLimits(ctx context.Context) {
	s.submitLimiter.Cleanup(ctx, 5*time.Minute)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.SecurityHeaders(s.mux).ServeHTTP(w, r)
}

func clientIP(r *http.Request, behindProxy bool) string {
	if behindProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
