package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mentra/group-booking/internal/middleware"
	"github.com/mentra/group-booking/internal/service"
	"github.com/mentra/group-booking/pkg/logger"
)

// HandoffHandler serves therapist handoff summaries.
type HandoffHandler struct {
	handoffs *service.HandoffService
	logger   *logger.Logger
}

// NewHandoffHandler creates a new handoff handler.
func NewHandoffHandler(handoffs *service.HandoffService, log *logger.Logger) *HandoffHandler {
	return &HandoffHandler{
		handoffs: handoffs,
		logger:   log.Component("handoff"),
	}
}

// Get handles GET /handoff/{groupId}
func (h *HandoffHandler) Get(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	if err := middleware.ValidateID(groupID); err != nil {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}

	resp, err := h.handoffs.Generate(r.Context(), groupID)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to generate handoff")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
