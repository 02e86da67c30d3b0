package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
)

// SSEHandler streams board order-change events to connected clients.
type SSEHandler struct {
	broadcaster *Broadcaster
	logger      aqm.Logger
}

func NewSSEHandler(broadcaster *Broadcaster, logger aqm.Logger) *SSEHandler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &SSEHandler{
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (h *SSEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	subscriberID := uuid.New().String()
	h.logger.Info("new SSE connection", "subscriber_id", subscriberID)

	eventChan := h.broadcaster.Subscribe(subscriberID)
	defer h.broadcaster.Unsubscribe(subscriberID)

	fmt.Fprintf(w, ": connected\n\n")
	fmt.Fprintf(w, "retry: 2000\n\n")

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("SSE client disconnected", "subscriber_id", subscriberID)
			return

		case <-ticker.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}

		case evt, ok := <-eventChan:
			if !ok {
				h.logger.Info("event channel closed", "subscriber_id", subscriberID)
				return
			}

			payload, err := json.Marshal(evt)
			if err != nil {
				h.logger.Error("failed to marshal board event", "error", err)
				continue
			}

			fmt.Fprintf(w, "event: order-update\n")
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}
}
