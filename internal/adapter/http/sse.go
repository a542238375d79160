package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/service"
)

const defaultKeepAlive = 15 * time.Second

type EventSource interface {
	Subscribe(jobID string) chan service.Event
	Unsubscribe(jobID string, ch chan service.Event)
}

type SSEHandler struct {
	events    EventSource
	jobs      JobService
	keepAlive time.Duration
}

func NewSSEHandler(events EventSource, jobs JobService) *SSEHandler {
	return &SSEHandler{events: events, jobs: jobs, keepAlive: defaultKeepAlive}
}

// sseWrite writes one event. Multi-line payloads become several data lines.
func sseWrite(w http.ResponseWriter, eventName, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\n", eventName)
	for _, line := range strings.Split(data, "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = fmt.Fprint(w, "\n")
	flush(w)
}

func sendKeepAlive(w http.ResponseWriter) {
	_, _ = fmt.Fprint(w, ": keep-alive\n\n")
	flush(w)
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func sendEvent(w http.ResponseWriter, event service.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	sseWrite(w, event.Type, string(data))
}

// snapshot turns stored job state into the event a late subscriber would
// have seen last.
func snapshot(job *domain.Job) service.Event {
	return service.Event{
		Type:     service.EventTypeStatus,
		Status:   string(job.Status),
		Progress: job.Progress,
		Message:  job.ErrorMessage,
	}
}

// Events streams a job's progress. The first event is the stored state; the
// stream closes after a done or error status.
func (h *SSEHandler) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		// Subscribe before reading state so no update falls between the two.
		ch := h.events.Subscribe(id)
		defer h.events.Unsubscribe(id, ch)

		details, err := h.jobs.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		current := snapshot(details.Job)
		sendEvent(w, current)
		if current.Terminal() {
			return
		}

		ctx := r.Context()
		keepAlive := time.NewTicker(h.keepAlive)
		defer keepAlive.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-keepAlive.C:
				sendKeepAlive(w)
			case event, ok := <-ch:
				if !ok {
					return
				}
				sendEvent(w, event)
				if event.Terminal() {
					return
				}
			}
		}
	}
}
