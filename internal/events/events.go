package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

const (
	EventDayLoaded      = "day_loaded"
	EventBookingCreated = "booking_created"
	EventBookingDeleted = "booking_deleted"
	EventBookingFailed  = "booking_failed"
)

// ConsoleEventPayload is the snapshot published after a console action settles.
type ConsoleEventPayload struct {
	Date      string  `json:"date"`
	BookingID string  `json:"booking_id,omitempty"`
	Title     string  `json:"title,omitempty"`
	Name      string  `json:"name,omitempty"`
	Action    string  `json:"action,omitempty"`
	Message   string  `json:"message,omitempty"`
	Count     int     `json:"count,omitempty"`
	Hours     float64 `json:"hours,omitempty"`
}

// Event is one console occurrence with a JSON payload.
type Event struct {
	Type    string
	Payload json.RawMessage
}

func (e *Event) Decode(out any) error {
	return json.Unmarshal(e.Payload, out)
}

type EventHandler func(event *Event) error

// EventBus fans events out to in-process handlers. Handlers run on the
// publisher's goroutine, in subscription order.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[string][]EventHandler)}
}

// Subscribe registers handler for one event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.SubscribeAll(handler, eventType)
}

// SubscribeAll registers handler for each of the given event types.
func (b *EventBus) SubscribeAll(handler EventHandler, eventTypes ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range eventTypes {
		b.handlers[t] = append(b.handlers[t], handler)
	}
}

func (b *EventBus) handlersFor(eventType string) []EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]EventHandler(nil), b.handlers[eventType]...)
}

// Publish runs every handler for the event's type. A failing handler does
// not stop the rest; their errors come back joined.
func (b *EventBus) Publish(event *Event) error {
	if b == nil || event == nil {
		return nil
	}
	var errs []error
	for _, handle := range b.handlersFor(event.Type) {
		if err := handle(event); err != nil {
			errs = append(errs, fmt.Errorf("%s handler: %w", event.Type, err))
		}
	}
	return errors.Join(errs...)
}

// PublishJSON encodes payload and publishes it. A nil bus is a no-op.
func (b *EventBus) PublishJSON(eventType string, payload any) error {
	if b == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return b.Publish(&Event{Type: eventType, Payload: raw})
}
