package store

// ReadonlyStore exposes only the reading half of a store.
type ReadonlyStore[T any] struct {
	r Readable[T]
}

var _ Readable[int] = (*ReadonlyStore[int])(nil)

// NewReadable creates a store whose value can only be changed by its start
// hook.
func NewReadable[T any](d *Dispatcher, initial T, start StartStopNotifier[T], opts ...Option) *ReadonlyStore[T] {
	return Readonly[T](NewWritable(d, initial, start, opts...))
}

// Readonly hides the Set and Update methods of r.
func Readonly[T any](r Readable[T]) *ReadonlyStore[T] {
	if ro, ok := r.(*ReadonlyStore[T]); ok {
		return ro
	}
	return &ReadonlyStore[T]{r: r}
}

func (ro *ReadonlyStore[T]) Subscribe(run Subscriber[T], invalidate Invalidator) Unsubscriber {
	return ro.r.Subscribe(run, invalidate)
}

func (ro *ReadonlyStore[T]) Value() T {
	return ro.r.Value()
}

// ID returns the wrapped store's ID, or 0 when it has none.
func (ro *ReadonlyStore[T]) ID() uint64 {
	if n, ok := ro.r.(interface{ ID() uint64 }); ok {
		return n.ID()
	}
	return 0
}

// Dispatcher returns the wrapped store's dispatcher, or nil when it has none.
func (ro *ReadonlyStore[T]) Dispatcher() *Dispatcher {
	if b, ok := ro.r.(interface{ Dispatcher() *Dispatcher }); ok {
		return b.Dispatcher()
	}
	return nil
}

// Name returns the wrapped store's name, or "" when it has none.
func (ro *ReadonlyStore[T]) Name() string {
	if n, ok := ro.r.(interface{ Name() string }); ok {
		return n.Name()
	}
	return ""
}

// Get returns the current value of s. Stores that expose Value are read
// directly; anything else is subscribed to and immediately released.
func Get[T any](s Subscribable[T]) T {
	if r, ok := s.(Readable[T]); ok {
		return r.Value()
	}
	var v T
	unsub := s.Subscribe(func(value T) {
		v = value
	}, nil)
	unsub()
	return v
}
