package store

import (
	"fmt"
	"slices"
)

type subscription[T any] struct {
	run        Subscriber[T]
	invalidate Invalidator
}

// Store holds a value and notifies its subscribers when it changes.
//
// The start hook runs when the subscriber count goes from zero to one and its
// returned stop hook runs when it drops back to zero. While there are no
// subscribers the store is inactive: Set still updates the value but nobody is
// notified.
type Store[T any] struct {
	d     *Dispatcher
	id    uint64
	name  string
	value T
	equal func(a, b T) bool

	subs  []*subscription[T]
	start StartStopNotifier[T]
	stop  Unsubscriber
}

var _ Writable[int] = (*Store[int])(nil)

type config struct {
	name  string
	equal any
}

type Option func(*config)

// WithName labels the store in errors and logs.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithEqual replaces SafeEqual as the change test. The function's type must
// match the store's value type.
func WithEqual[T any](fn func(a, b T) bool) Option {
	return func(c *config) {
		c.equal = fn
	}
}

// NewWritable creates a store holding initial. start may be nil.
func NewWritable[T any](d *Dispatcher, initial T, start StartStopNotifier[T], opts ...Option) *Store[T] {
	d = orDefault(d)
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Store[T]{
		d:     d,
		id:    d.nextID(),
		name:  cfg.name,
		value: initial,
		equal: SafeEqual[T],
		start: start,
	}
	if s.name == "" {
		s.name = fmt.Sprintf("store-%d", s.id)
	}
	if cfg.equal != nil {
		eq, ok := cfg.equal.(func(a, b T) bool)
		if !ok {
			panic(fmt.Sprintf("store %s: equality func %T does not match value type %T", s.name, cfg.equal, initial))
		}
		s.equal = eq
	}
	return s
}

func (s *Store[T]) ID() uint64 {
	return s.id
}

func (s *Store[T]) Name() string {
	return s.name
}

// Dispatcher returns the dispatcher the store delivers through.
func (s *Store[T]) Dispatcher() *Dispatcher {
	return s.d
}

// Value returns the current value without subscribing.
func (s *Store[T]) Value() T {
	return s.value
}

func (s *Store[T]) active() bool {
	return s.stop != nil
}

// Set stores value if it differs from the current one and, when the store is
// active, invalidates every subscriber and queues their notifications.
func (s *Store[T]) Set(value T) {
	if s.equal(s.value, value) {
		return
	}
	s.value = value
	if !s.active() || len(s.subs) == 0 {
		return
	}

	subs := slices.Clone(s.subs)
	s.d.Batch(func() {
		for _, sub := range subs {
			sub.invalidate()
			run := sub.run
			s.d.enqueue(s.id, func() {
				run(value)
			})
		}
	})
}

func (s *Store[T]) Update(fn Updater[T]) {
	s.Set(fn(s.value))
}

// Subscribe registers run, calls it with the current value before returning,
// and again on every accepted change. invalidate may be nil.
func (s *Store[T]) Subscribe(run Subscriber[T], invalidate Invalidator) Unsubscriber {
	if invalidate == nil {
		invalidate = noop
	}
	sub := &subscription[T]{run: run, invalidate: invalidate}
	s.subs = append(s.subs, sub)
	if len(s.subs) == 1 {
		s.activate(sub)
	}
	run(s.value)

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true

		i := slices.Index(s.subs, sub)
		if i < 0 {
			return
		}
		s.subs = slices.Delete(s.subs, i, i+1)
		if len(s.subs) == 0 {
			s.deactivate()
		}
	}
}

// activate runs the start hook for first, the subscription that made the
// store active. If the hook panics, first is dropped again so the next
// Subscribe retries the start.
func (s *Store[T]) activate(first *subscription[T]) {
	started := false
	defer func() {
		if !started {
			s.subs = slices.DeleteFunc(s.subs, func(sub *subscription[T]) bool {
				return sub == first
			})
		}
	}()

	var stop Unsubscriber
	if s.start != nil {
		stop = s.start(s.Set, s.Update)
	}
	started = true
	if stop == nil {
		stop = noop
	}
	s.stop = stop
	s.d.logger.Debug("store started", "store", s.name, "id", s.id)
}

func (s *Store[T]) deactivate() {
	stop := s.stop
	s.stop = nil
	if stop != nil {
		stop()
	}
	s.d.logger.Debug("store stopped", "store", s.name, "id", s.id)
}
