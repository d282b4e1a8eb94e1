package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/mentra/group-booking/internal/middleware"
	"github.com/mentra/group-booking/pkg/metrics"
)

// TokenEvent carries one streamed piece of the assistant reply.
type TokenEvent struct {
	Token string `json:"token"`
	Index int    `json:"index"`
}

// StreamErrorEvent is sent when generation fails mid-stream.
type StreamErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stream handles POST /chat/stream. It answers like /chat but delivers the
// reply as server-sent events: token events, then a done event carrying the
// full response.
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := h.decodeChat(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	index := 0
	reply, err := h.extractor.StreamResponse(ctx, req.Message, req.ConversationHistory, func(token string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev := &TokenEvent{Token: token, Index: index}
		index++
		return sendSSEEvent(w, flusher, "token", ev)
	})
	if err != nil {
		h.logger.WithRequest(middleware.GetCorrelationID(ctx)).Error("chat stream failed", zap.Error(err))
		_ = sendSSEEvent(w, flusher, "error", &StreamErrorEvent{
			Code:    "stream_error",
			Message: "Failed to process chat message",
		})
		return
	}

	_ = sendSSEEvent(w, flusher, "done", map[string]string{"response": reply})
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	flusher.Flush()

	return nil
}
