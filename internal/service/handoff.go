package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentra/group-booking/internal/llm"
	"github.com/mentra/group-booking/internal/model"
	"github.com/mentra/group-booking/pkg/logger"
	"github.com/mentra/group-booking/pkg/metrics"
)

// MaxHandoffParticipants caps the roster sent to the summarizer.
const MaxHandoffParticipants = 3

const (
	bookedParticipantConcern = "Individual concerns from intake process"
	groupConversationSummary = "Group members have completed intake and are preparing for their first session. Common themes include anxiety management and work-life balance."
)

// syntheticParticipants pad the roster so a demo handoff always has company.
var syntheticParticipants = []model.Participant{
	{Name: "Alex M.", Concern: "Managing work-related anxiety"},
	{Name: "Jordan K.", Concern: "Coping with recent life changes"},
}

// HandoffSummarizer asks the model for a therapist-facing group summary.
type HandoffSummarizer struct {
	llm    llm.Client
	logger *logger.Logger
	model  string
}

// NewHandoffSummarizer creates a new summarizer.
func NewHandoffSummarizer(client llm.Client, log *logger.Logger, model string) *HandoffSummarizer {
	return &HandoffSummarizer{
		llm:    client,
		logger: log.Component("handoff"),
		model:  model,
	}
}

// GenerateHandoffSummary builds the summary. Unlike recommendations there is
// no fallback: malformed output is an ErrGeneration.
func (s *HandoffSummarizer) GenerateHandoffSummary(ctx context.Context, groupID string, participants []model.Participant, conversationSummary string) (*model.HandoffSummary, error) {
	req := llm.UserPrompt("handoff", handoffPrompt(groupID, participants, conversationSummary))
	req.Model = s.model

	resp, err := s.llm.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	decoded := llm.DecodeObject[model.HandoffSummary](resp.Content)
	metrics.RecordJSONDecode("handoff", decoded.Parsed())
	if !decoded.Parsed() {
		s.logger.Warn("handoff output malformed",
			zap.String("group_id", groupID),
			zap.Error(decoded.Err),
		)
		return nil, fmt.Errorf("%w: %v", ErrGeneration, decoded.Err)
	}

	return &decoded.Value, nil
}

// BuildRoster lists the group's booked participants followed by the synthetic
// ones, truncated to MaxHandoffParticipants.
func BuildRoster(bookings []model.Booking) []model.Participant {
	roster := make([]model.Participant, 0, len(bookings)+len(syntheticParticipants))
	for _, b := range bookings {
		roster = append(roster, model.Participant{
			Name:    strings.TrimSpace(b.UserName),
			Concern: bookedParticipantConcern,
		})
	}
	roster = append(roster, syntheticParticipants...)

	if len(roster) > MaxHandoffParticipants {
		roster = roster[:MaxHandoffParticipants]
	}
	return roster
}

// HandoffService assembles a handoff for one group from its bookings.
type HandoffService struct {
	catalog    *GroupCatalog
	bookings   *BookingStore
	summarizer *HandoffSummarizer
	publisher  EventPublisher
	logger     *logger.Logger
	now        func() time.Time
}

// NewHandoffService creates a new handoff service.
func NewHandoffService(catalog *GroupCatalog, bookings *BookingStore, summarizer *HandoffSummarizer, publisher EventPublisher, log *logger.Logger) *HandoffService {
	return &HandoffService{
		catalog:    catalog,
		bookings:   bookings,
		summarizer: summarizer,
		publisher:  publisher,
		logger:     log.Component("handoff"),
		now:        time.Now,
	}
}

// Generate builds the roster for groupID and summarises it.
func (s *HandoffService) Generate(ctx context.Context, groupID string) (*model.HandoffResponse, error) {
	if _, err := s.catalog.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.BookingsForGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	participants := BuildRoster(bookings)

	summary, err := s.summarizer.GenerateHandoffSummary(ctx, groupID, participants, groupConversationSummary)
	if err != nil {
		return nil, err
	}

	resp := &model.HandoffResponse{
		GroupID:      groupID,
		Handoff:      summary,
		Participants: participants,
		GeneratedAt:  s.now().UTC(),
	}

	if s.publisher != nil {
		event := &model.Event{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Type:      model.EventTypeHandoffGenerated,
			GroupID:   groupID,
			Payload:   resp,
			CreatedAt: resp.GeneratedAt,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish event", zap.String("type", string(event.Type)), zap.Error(err))
		}
	}

	return resp, nil
}
