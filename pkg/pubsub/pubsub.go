// Package pubsub provides a typed in-process publish/subscribe registry
// with explicit unsubscribe handles.
package pubsub

import (
	"sync"

	"go.uber.org/zap"
)

// Topic fans out published values to registered subscribers. Delivery is
// synchronous and in registration order; subscribers must not block.
// A zero Topic is not usable, construct with NewTopic.
type Topic[T any] struct {
	logger *zap.Logger

	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]func(T)
	closed bool
}

// Subscription detaches one subscriber from its topic.
type Subscription struct {
	unsubscribe func()
	once        sync.Once
}

// Unsubscribe removes the subscriber. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.unsubscribe)
}

// NewTopic constructs a Topic.
func NewTopic[T any](logger *zap.Logger) *Topic[T] {
	return &Topic[T]{
		logger: logger,
		subs:   make(map[uint64]func(T)),
	}
}

// Subscribe registers fn for future publications and returns a handle
// that stops delivery.
func (t *Topic[T]) Subscribe(fn func(T)) *Subscription {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	if !t.closed {
		t.subs[id] = fn
	}

	return &Subscription{unsubscribe: func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subs, id)
	}}
}

// Publish delivers v to every current subscriber. Publications on a
// closed topic are dropped.
func (t *Topic[T]) Publish(v T) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	fns := make([]func(T), 0, len(t.subs))
	for _, fn := range t.subs {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
	if t.logger != nil {
		t.logger.Debug("published", zap.Int("subscribers", len(fns)))
	}
}

// Close drops all subscribers and rejects further publications.
func (t *Topic[T]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.subs = make(map[uint64]func(T))
}
