package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mentra/group-booking/internal/middleware"
	"github.com/mentra/group-booking/internal/model"
	"github.com/mentra/group-booking/internal/service"
	"github.com/mentra/group-booking/pkg/logger"
)

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookings *service.BookingStore
	logger   *logger.Logger
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookings *service.BookingStore, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		logger:   log.Component("booking"),
	}
}

// Create handles POST /booking
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserName = middleware.SanitizeText(req.UserName)
	req.UserEmail = middleware.SanitizeText(req.UserEmail)

	result, err := h.bookings.CreateBooking(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to create booking")
		return
	}

	h.logger.WithRequest(middleware.GetCorrelationID(r.Context())).Info("booking confirmed",
		zap.String("booking_id", result.Booking.ID),
		zap.String("group_id", result.Booking.GroupID),
	)
	writeJSON(w, http.StatusOK, &model.CreateBookingResponse{
		Success:        true,
		Booking:        result.Booking,
		RemainingSeats: result.RemainingSeats,
	})
}

// Get handles GET /booking/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateID(id); err != nil {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to fetch booking")
		return
	}
	writeJSON(w, http.StatusOK, booking)
}
