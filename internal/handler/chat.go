// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mentra/group-booking/internal/middleware"
	"github.com/mentra/group-booking/internal/model"
	"github.com/mentra/group-booking/internal/service"
	"github.com/mentra/group-booking/pkg/logger"
)

// ChatHandler handles the intake conversation endpoints.
type ChatHandler struct {
	extractor *service.InsightExtractor
	profiles  *service.ProfileService
	logger    *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(extractor *service.InsightExtractor, profiles *service.ProfileService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		extractor: extractor,
		profiles:  profiles,
		logger:    log.Component("chat"),
	}
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeChat(w, r)
	if !ok {
		return
	}

	reply, err := h.extractor.GenerateResponse(r.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to process chat message")
		return
	}

	writeJSON(w, http.StatusOK, &model.ChatResponse{Response: reply})
}

// Insights handles POST /insights
func (h *ChatHandler) Insights(w http.ResponseWriter, r *http.Request) {
	var req model.InsightsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ConversationHistory == nil {
		writeError(w, http.StatusBadRequest, "Conversation history is required")
		return
	}

	profile, err := h.profiles.BuildProfile(r.Context(), sanitizeHistory(req.ConversationHistory))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to extract insights")
		return
	}

	h.logger.Debug("profile built",
		zap.Int("themes", len(profile.Themes)),
		zap.Int("recommendations", len(profile.RecommendedGroups)),
	)
	writeJSON(w, http.StatusOK, profile)
}

// decodeChat reads and cleans a chat request, answering 400 on bad input.
func (h *ChatHandler) decodeChat(w http.ResponseWriter, r *http.Request) (*model.ChatRequest, bool) {
	var req model.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	req.Message = middleware.SanitizeText(req.Message)
	if err := middleware.ValidateMessageContent(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	req.ConversationHistory = sanitizeHistory(req.ConversationHistory)
	return &req, true
}

// sanitizeHistory strips markup from user turns. Assistant turns are model
// output the client echoes back and are left as is.
func sanitizeHistory(history []model.ConversationMessage) []model.ConversationMessage {
	out := make([]model.ConversationMessage, len(history))
	for i, msg := range history {
		if msg.Role == model.RoleUser {
			msg.Content = middleware.SanitizeText(msg.Content)
		}
		out[i] = msg
	}
	return out
}
