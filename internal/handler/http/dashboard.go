package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/emsuite/ems-backend-go/internal/domain/dashboard"
	"github.com/emsuite/ems-backend-go/internal/handler/http/response"
	"github.com/emsuite/ems-backend-go/internal/pkg/jwt"
	"github.com/emsuite/ems-backend-go/internal/pkg/sse"
)

type DashboardHandler interface {
	Counters(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	jwtService       jwt.Service
	hub              *sse.Hub
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, jwtService jwt.Service, hub *sse.Hub) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
		jwtService:       jwtService,
		hub:              hub,
	}
}

// Counters implements DashboardHandler.
func (h *dashboardHandlerImpl) Counters(w http.ResponseWriter, r *http.Request) {
	resp, err := h.dashboardService.Counters(r.Context())
	if err != nil {
		slog.Error("Counters service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Stream implements DashboardHandler. EventSource cannot send an
// Authorization header, so the connection authenticates with a short-lived
// token in the query string.
func (h *dashboardHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "Query parameter 'token' is required")
		return
	}

	userID, _, err := h.jwtService.ValidateSSEToken(token)
	if err != nil {
		response.Unauthorized(w, "Invalid or expired stream token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	countersCh, unsubCounters := h.hub.Subscribe(sse.TopicDashboardCounters)
	defer unsubCounters()
	announceCh, unsubAnnounce := h.hub.Subscribe(sse.TopicAnnouncements)
	defer unsubAnnounce()
	userCh, unsubUser := h.hub.Subscribe(sse.UserTopic(userID))
	defer unsubUser()

	// Send the current snapshot right away so the client does not wait for
	// the next mutation
	if counters, err := h.dashboardService.Counters(r.Context()); err == nil {
		writeSSEEvent(w, "counters", counters)
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-countersCh:
			if !ok {
				return
			}
			writeSSEEvent(w, ev.Event, ev.Data)
			flusher.Flush()
		case ev, ok := <-announceCh:
			if !ok {
				return
			}
			writeSSEEvent(w, ev.Event, ev.Data)
			flusher.Flush()
		case ev, ok := <-userCh:
			if !ok {
				return
			}
			writeSSEEvent(w, ev.Event, ev.Data)
			flusher.Flush()
		}
	}
}

func writeSSEEvent(w http.ResponseWriter, event string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal SSE event", "event", event, "error", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}
