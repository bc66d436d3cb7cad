package events

import (
	"context"
	"fmt"
	"time"

	"hotelbooking/pkg/kafka"
	"hotelbooking/pkg/middleware"
	"hotelbooking/pkg/model"
)

type EventType string

const (
	BookingCreated   EventType = "booking.created"
	BookingUpdated   EventType = "booking.updated"
	BookingCancelled EventType = "booking.cancelled"

	SchemaVersion = "1"
)

// BookingEvent is the payload published after a booking write commits.
type BookingEvent struct {
	EventType  EventType   `json:"event_type"`
	BookingID  string      `json:"booking_id"`
	Name       string      `json:"name,omitempty"`
	StartDate  *model.Date `json:"start_date,omitempty"`
	EndDate    *model.Date `json:"end_date,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewBookingEvent(eventType EventType, booking *model.Booking) BookingEvent {
	return BookingEvent{
		EventType:  eventType,
		BookingID:  booking.ID,
		Name:       booking.Name,
		StartDate:  booking.StartDate,
		EndDate:    booking.EndDate,
		OccurredAt: time.Now().UTC(),
	}
}

func NewCancelledEvent(bookingID string) BookingEvent {
	return BookingEvent{
		EventType:  BookingCancelled,
		BookingID:  bookingID,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }

// MessageProducer is the part of kafka.Producer the publisher needs.
type MessageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	producer MessageProducer
	source   string
}

func NewKafkaPublisher(producer MessageProducer, source string) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		source:   source,
	}
}

// Publish sends event keyed by booking ID so a booking's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, event BookingEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithTimestamp(event.OccurredAt).
		WithEventType(string(event.EventType)).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", event.EventType, err)
	}

	return p.producer.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
