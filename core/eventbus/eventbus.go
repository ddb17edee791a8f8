// Package eventbus provides the asynchronous bus that carries diagnostic
// events from controllers and dispatchers to UI bridges and log sinks.
package eventbus

import (
	"mvvmkit-go/core/event"
)

// EventBus is the interface for the event bus.
type EventBus interface {
	// Publish publishes an event to all subscribers.
	// This method is non-blocking; events are queued for async dispatch.
	Publish(e event.Event)

	// Subscribe subscribes to all events.
	// Returns a subscription ID that can be used to unsubscribe.
	Subscribe(handler EventHandler) string

	// SubscribeContext subscribes to events from a specific session context.
	// Only events implementing ContextEvent with matching ContextID will be delivered.
	SubscribeContext(contextID string, handler EventHandler) string

	// Unsubscribe removes a subscription by its ID.
	Unsubscribe(subscriptionID string)

	// Close drains queued events, then stops delivery.
	// After Close is called, Publish will be a no-op.
	Close()
}

// EventHandler is a function that handles an event.
type EventHandler func(e event.Event)
