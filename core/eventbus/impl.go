package eventbus

import (
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"mvvmkit-go/core/event"
)

// subscription represents a single event subscription.
type subscription struct {
	id        string
	seq       uint64
	handler   EventHandler
	contextID string // Empty string means subscribe to all events
}

// channelEventBus is a channel-based implementation of EventBus.
type channelEventBus struct {
	eventChan     chan event.Event
	subscriptions map[string]*subscription
	mu            sync.RWMutex
	closed        atomic.Bool
	dropped       atomic.Uint64
	wg            sync.WaitGroup
	nextID        atomic.Uint64
	logger        *slog.Logger
}

// New creates a new EventBus with the specified buffer size.
func New(bufferSize int, logger *slog.Logger) EventBus {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}

	bus := &channelEventBus{
		eventChan:     make(chan event.Event, bufferSize),
		subscriptions: make(map[string]*subscription),
		logger:        logger.With("component", "eventbus"),
	}

	bus.wg.Add(1)
	go bus.dispatch()

	return bus
}

// Publish publishes an event to all subscribers.
func (b *channelEventBus) Publish(e event.Event) {
	if b.closed.Load() {
		return
	}

	defer func() {
		// Close raced with this send.
		_ = recover()
	}()

	select {
	case b.eventChan <- e:
	default:
		n := b.dropped.Add(1)
		b.logger.Warn("Event dropped, buffer full", "event", e.EventName(), "dropped_total", n)
	}
}

// Subscribe subscribes to all events.
func (b *channelEventBus) Subscribe(handler EventHandler) string {
	return b.subscribe("", handler)
}

// SubscribeContext subscribes to events from a specific session context.
func (b *channelEventBus) SubscribeContext(contextID string, handler EventHandler) string {
	return b.subscribe(contextID, handler)
}

func (b *channelEventBus) subscribe(contextID string, handler EventHandler) string {
	seq := b.nextID.Add(1)
	id := "sub-" + strconv.FormatUint(seq, 10)

	b.mu.Lock()
	b.subscriptions[id] = &subscription{
		id:        id,
		seq:       seq,
		handler:   handler,
		contextID: contextID,
	}
	b.mu.Unlock()

	return id
}

// Unsubscribe removes a subscription by its ID.
func (b *channelEventBus) Unsubscribe(subscriptionID string) {
	b.mu.Lock()
	delete(b.subscriptions, subscriptionID)
	b.mu.Unlock()
}

// Close shuts down the event bus.
func (b *channelEventBus) Close() {
	if b.closed.Swap(true) {
		return // Already closed
	}

	close(b.eventChan)
	b.wg.Wait()
}

// dispatch is the main event dispatch loop.
func (b *channelEventBus) dispatch() {
	defer b.wg.Done()

	for e := range b.eventChan {
		b.deliverEvent(e)
	}
}

// deliverEvent delivers an event to all matching subscribers in subscription order.
func (b *channelEventBus) deliverEvent(e event.Event) {
	b.mu.RLock()
	subs := make([]*subscription, 0, len(b.subscriptions))
	for _, sub := range b.subscriptions {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	sort.Slice(subs, func(i, j int) bool { return subs[i].seq < subs[j].seq })

	var eventContextID string
	if ce, ok := e.(event.ContextEvent); ok {
		eventContextID = ce.ContextID()
	}

	for _, sub := range subs {
		if sub.contextID != "" {
			if eventContextID == "" || sub.contextID != eventContextID {
				continue
			}
		}

		// One bad handler must not starve the others.
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("Event handler panicked", "event", e.EventName(), "subscription", sub.id, "panic", r)
				}
			}()
			sub.handler(e)
		}()
	}
}
