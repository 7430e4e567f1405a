package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/compliance-risk-go/internal/handler/http/response"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/sse"
	"github.com/go-chi/jwtauth/v5"
)

type EventsHandler interface {
	// GetSSEToken issues a short-lived token for the event stream
	GetSSEToken(w http.ResponseWriter, r *http.Request)

	// Stream handles the SSE connection for scan events
	Stream(w http.ResponseWriter, r *http.Request)
}

type sseTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type eventsHandlerImpl struct {
	jwtService jwt.Service
	hub        *sse.Hub
}

func NewEventsHandler(jwtService jwt.Service, hub *sse.Hub) EventsHandler {
	return &eventsHandlerImpl{
		jwtService: jwtService,
		hub:        hub,
	}
}

// GetSSEToken handles POST /events/token. EventSource clients cannot
// set headers, so the stream authenticates with a short-lived token in
// the query string instead of the access token.
func (h *eventsHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	claims, err := token.AsMap(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	subject, _ := claims["sub"].(string)

	sseToken, expiresIn, err := h.jwtService.GenerateSSEToken(subject)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, sseTokenResponse{
		Token:     sseToken,
		ExpiresIn: expiresIn,
	})
}

// Stream handles GET /events as a server-sent event stream.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	subject, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	events, cleanup := h.hub.Subscribe()
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"subject\":%q}\n\n", subject)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
