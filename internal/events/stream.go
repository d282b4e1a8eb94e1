package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/mentra/group-booking/internal/model"
	"github.com/mentra/group-booking/pkg/metrics"
)

const (
	// StreamName is the JetStream stream holding booking platform events.
	StreamName = "BOOKINGS"

	// SubjectPrefix is the prefix for all event subjects.
	SubjectPrefix = "mentra"
)

// publishAPI is the part of jetstream.JetStream the publisher needs.
type publishAPI interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Publisher writes domain events to the BOOKINGS stream.
type Publisher struct {
	js publishAPI
}

// NewPublisher creates a publisher on the client's JetStream context.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{js: client.JetStream()}
}

// EnsureStream creates the BOOKINGS stream if it does not exist yet.
func EnsureStream(ctx context.Context, js jetstream.JetStream) error {
	if _, err := js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{SubjectPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      90 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Description: "Bookings and therapist handoffs",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// Subject returns the subject for an event, e.g. mentra.booking.created.g1.
func Subject(eventType model.EventType, groupID string) string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, eventType, groupID)
}

// GroupFilter matches every event for one group.
func GroupFilter(groupID string) string {
	return fmt.Sprintf("%s.*.*.%s", SubjectPrefix, groupID)
}

// Publish sends the event and waits for the stream ack. The event ID is used
// as the message ID so retries are deduplicated by the server.
func (p *Publisher) Publish(ctx context.Context, event *model.Event) error {
	if event.GroupID == "" {
		return errors.New("events: event has no group")
	}

	data, err := json.Marshal(event)
	if err != nil {
		metrics.RecordEvent(string(event.Type), false)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	var opts []jetstream.PublishOpt
	if event.ID != "" {
		opts = append(opts, jetstream.WithMsgID(event.ID))
	}

	if _, err := p.js.Publish(ctx, Subject(event.Type, event.GroupID), data, opts...); err != nil {
		metrics.RecordEvent(string(event.Type), false)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	metrics.RecordEvent(string(event.Type), true)
	return nil
}

// fetchPage is the page size used while scanning a group's events.
const fetchPage = 100

// Recent returns the newest limit events stored for a group, oldest first.
// A limit of zero or less returns every event.
func Recent(ctx context.Context, js jetstream.JetStream, groupID string, limit int) ([]model.Event, error) {
	consumer, err := js.OrderedConsumer(ctx, StreamName, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{GroupFilter(groupID)},
		DeliverPolicy:  jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	return tail(func(n int) ([][]byte, error) {
		batch, err := consumer.FetchNoWait(n)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch events: %w", err)
		}
		var page [][]byte
		for msg := range batch.Messages() {
			page = append(page, msg.Data())
		}
		if err := batch.Error(); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("batch error: %w", err)
		}
		return page, nil
	}, limit)
}

// tail drains fetch page by page and keeps the last limit decodable events.
// A short page ends the scan.
func tail(fetch func(n int) ([][]byte, error), limit int) ([]model.Event, error) {
	var out []model.Event
	for {
		page, err := fetch(fetchPage)
		if err != nil {
			return nil, err
		}
		for _, data := range page {
			var event model.Event
			if err := json.Unmarshal(data, &event); err != nil {
				continue
			}
			out = append(out, event)
			if limit > 0 && len(out) > limit {
				out = out[len(out)-limit:]
			}
		}
		if len(page) < fetchPage {
			return out, nil
		}
	}
}
