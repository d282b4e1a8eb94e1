package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentra/group-booking/internal/model"
	"github.com/mentra/group-booking/internal/store"
	"github.com/mentra/group-booking/pkg/logger"
	"github.com/mentra/group-booking/pkg/metrics"
)

// EventPublisher receives domain events after state changes. Publishing is
// best effort: failures are logged, never surfaced to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event *model.Event) error
}

// BookingResult is a created booking and the seats left in its session.
type BookingResult struct {
	Booking        *model.Booking
	RemainingSeats int
}

// BookingStore creates and reads bookings.
type BookingStore struct {
	files     *store.Files
	publisher EventPublisher
	logger    *logger.Logger

	now   func() time.Time
	newID func() string
}

// BookingOption customises a BookingStore.
type BookingOption func(*BookingStore)

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) BookingOption {
	return func(s *BookingStore) { s.now = now }
}

// WithIDGenerator overrides booking ID generation.
func WithIDGenerator(next func() string) BookingOption {
	return func(s *BookingStore) { s.newID = next }
}

// NewBookingStore creates a new booking store.
func NewBookingStore(files *store.Files, publisher EventPublisher, log *logger.Logger, opts ...BookingOption) *BookingStore {
	s := &BookingStore{
		files:     files,
		publisher: publisher,
		logger:    log.Component("booking"),
		now:       time.Now,
		newID:     NewBookingID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewBookingID returns a unique, time-ordered booking ID.
func NewBookingID() string {
	return "BK-" + uuid.Must(uuid.NewV7()).String()
}

// CreateBooking reserves one seat in the requested session.
//
// The capacity check, the booking append and the seat increment run inside a
// single store mutation, so concurrent requests for the last seat cannot both
// succeed.
func (s *BookingStore) CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*BookingResult, error) {
	if err := validateStruct(req); err != nil {
		metrics.RecordBooking(req.GroupID, "invalid")
		return nil, err
	}

	var result BookingResult
	err := s.files.Mutate(ctx, func(snap *store.Snapshot) error {
		group, err := findGroup(snap.Groups, req.GroupID)
		if err != nil {
			return err
		}
		session, ok := group.Session(req.SessionID)
		if !ok {
			return ErrSessionNotFound
		}
		if session.BookedSeats >= group.Capacity {
			return ErrCapacityExceeded
		}

		booking := &model.Booking{
			ID:          s.newID(),
			GroupID:     group.ID,
			SessionID:   session.ID,
			GroupName:   group.Name,
			SessionDate: session.Date,
			SessionTime: session.Time,
			Therapist:   session.Therapist,
			UserName:    req.UserName,
			UserEmail:   req.UserEmail,
			CreatedAt:   s.now().UTC(),
		}
		snap.Bookings = append(snap.Bookings, *booking)
		session.BookedSeats++

		result = BookingResult{
			Booking:        booking,
			RemainingSeats: group.Capacity - session.BookedSeats,
		}
		return nil
	})
	if err != nil {
		metrics.RecordBooking(req.GroupID, bookingOutcome(err))
		return nil, err
	}

	metrics.RecordBooking(req.GroupID, "created")
	metrics.SetSeatsRemaining(req.GroupID, req.SessionID, result.RemainingSeats)
	s.logger.Info("booking created",
		zap.String("booking_id", result.Booking.ID),
		zap.String("group_id", req.GroupID),
		zap.String("session_id", req.SessionID),
		zap.Int("remaining_seats", result.RemainingSeats),
	)

	s.publish(ctx, &model.Event{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Type:      model.EventTypeBookingCreated,
		GroupID:   req.GroupID,
		SessionID: req.SessionID,
		Payload:   result.Booking,
		CreatedAt: s.now().UTC(),
	})

	return &result, nil
}

// GetBooking returns the booking with the given ID.
func (s *BookingStore) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	bookings, err := s.files.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			return &bookings[i], nil
		}
	}
	return nil, ErrBookingNotFound
}

// BookingsForGroup returns the group's bookings in creation order.
func (s *BookingStore) BookingsForGroup(ctx context.Context, groupID string) ([]model.Booking, error) {
	bookings, err := s.files.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Booking, 0)
	for _, b := range bookings {
		if b.GroupID == groupID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *BookingStore) publish(ctx context.Context, event *model.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
	}
}

func bookingOutcome(err error) string {
	switch {
	case errors.Is(err, ErrCapacityExceeded):
		return "full"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
