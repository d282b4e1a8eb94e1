package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mentra/group-booking/internal/middleware"
	"github.com/mentra/group-booking/internal/model"
	"github.com/mentra/group-booking/internal/service"
	"github.com/mentra/group-booking/pkg/logger"
)

// GroupHandler serves the group catalog.
type GroupHandler struct {
	catalog *service.GroupCatalog
	logger  *logger.Logger
}

// NewGroupHandler creates a new group handler.
func NewGroupHandler(catalog *service.GroupCatalog, log *logger.Logger) *GroupHandler {
	return &GroupHandler{
		catalog: catalog,
		logger:  log.Component("groups"),
	}
}

// List handles GET /groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.catalog.ListGroups(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to fetch groups")
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// Get handles GET /groups/{id}
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateID(id); err != nil {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}

	group, err := h.catalog.GetGroup(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to fetch group")
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// Slots handles POST /groups/slots/generate
func (h *GroupHandler) Slots(w http.ResponseWriter, r *http.Request) {
	var req model.SlotsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GroupID == "" {
		writeError(w, http.StatusBadRequest, "groupId is required")
		return
	}

	slots, err := h.catalog.ListAvailableSlots(r.Context(), req.GroupID)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to generate slots")
		return
	}
	writeJSON(w, http.StatusOK, &model.SlotsResponse{AvailableSlots: slots})
}
