// Package observer provides synchronous multi-subscriber notification lists.
// Delivery happens on the caller's goroutine, in registration order.
package observer

import (
	"sync"
	"sync/atomic"
)

// Unit is the empty notification payload.
type Unit struct{}

// Observer receives values from an observable source.
type Observer[T any] interface {
	OnNext(value T)
	OnError(err error)
	OnCompleted()
}

// Func adapts a plain callback to Observer. OnError and OnCompleted are no-ops.
type Func[T any] func(value T)

func (f Func[T]) OnNext(value T) { f(value) }
func (f Func[T]) OnError(error)  {}
func (f Func[T]) OnCompleted()   {}

type entry[T any] struct {
	id      uint64
	handler func(T)
}

// List is an ordered registry of handlers. Subscribing the same handler twice
// delivers it twice.
type List[T any] struct {
	entries []entry[T]
	mu      sync.RWMutex
	nextID  atomic.Uint64
}

// Subscribe registers handler and returns a handle that removes it.
func (l *List[T]) Subscribe(handler func(T)) *Subscription {
	id := l.nextID.Add(1)

	l.mu.Lock()
	l.entries = append(l.entries, entry[T]{id: id, handler: handler})
	l.mu.Unlock()

	return &Subscription{release: func() { l.remove(id) }}
}

// Notify delivers value to every handler registered at the time of the call.
// Handlers may subscribe or release re-entrantly.
func (l *List[T]) Notify(value T) {
	l.mu.RLock()
	if len(l.entries) == 0 {
		l.mu.RUnlock()
		return
	}
	snapshot := make([]entry[T], len(l.entries))
	copy(snapshot, l.entries)
	l.mu.RUnlock()

	for _, e := range snapshot {
		e.handler(value)
	}
}

// Len returns the number of live subscriptions.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *List[T]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

// Subscription is a scoped-release handle returned by Subscribe.
type Subscription struct {
	once    sync.Once
	release func()
}

// Release removes the subscription. Safe to call more than once.
func (s *Subscription) Release() {
	if s == nil {
		return
	}
	s.once.Do(s.release)
}

// Group releases several subscriptions together.
type Group []*Subscription

// Release releases every subscription in the group.
func (g Group) Release() {
	for _, s := range g {
		s.Release()
	}
}
