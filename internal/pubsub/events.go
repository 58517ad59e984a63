// Package pubsub provides a generic publish/subscribe event system used to
// carry background notifications (snapshot reloads, log lines) into the
// Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// LoadedEvent is published the first time a value becomes available.
	LoadedEvent EventType = "loaded"
	// ReloadedEvent is published when a previously loaded value was replaced.
	ReloadedEvent EventType = "reloaded"
	// FailedEvent is published when a reload failed and the old value was kept.
	FailedEvent EventType = "failed"
	// LoggedEvent is published for every emitted log line.
	LoggedEvent EventType = "logged"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
