package store

// Subscriber receives a store's current value and every accepted change.
type Subscriber[T any] func(value T)

// Invalidator is called the moment a change is accepted, before the new value
// has necessarily reached every subscriber.
type Invalidator func()

// Unsubscriber detaches a subscription. Calling it more than once is a no-op.
type Unsubscriber func()

// Updater maps the current value to the next one.
type Updater[T any] func(T) T

// Cleanup releases whatever a manual derivation acquired on its last run.
type Cleanup func()

// StartStopNotifier runs when a store gains its first subscriber. The returned
// Unsubscriber, if non-nil, runs when the last subscriber leaves.
type StartStopNotifier[T any] func(set func(T), update func(Updater[T])) Unsubscriber

// Subscribable is the only capability a derivation needs from its sources.
type Subscribable[T any] interface {
	Subscribe(run Subscriber[T], invalidate Invalidator) Unsubscriber
}

type Readable[T any] interface {
	Subscribable[T]
	Value() T
}

type Writable[T any] interface {
	Readable[T]
	Set(value T)
	Update(fn Updater[T])
}

func noop() {}
