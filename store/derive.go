package store

import (
	"fmt"
	"reflect"
)

// maxSources is the width of the pending mask.
const maxSources = 64

// source is a type-erased Subscribable. d is set when the source reports
// the dispatcher it is bound to.
type source struct {
	subscribe func(run func(any), invalidate Invalidator) Unsubscriber
	d         *Dispatcher
}

func erase[S any](s Subscribable[S]) source {
	if isNil(s) {
		return source{}
	}
	src := source{
		subscribe: func(run func(any), invalidate Invalidator) Unsubscriber {
			return s.Subscribe(func(v S) { run(v) }, invalidate)
		},
	}
	if bound, ok := s.(interface{ Dispatcher() *Dispatcher }); ok {
		src.d = bound.Dispatcher()
	}
	return src
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// valueAt reads a source value, tolerating nil interface values.
func valueAt[S any](values []any, i int) S {
	v, _ := values[i].(S)
	return v
}

// computeFunc is the unified shape of auto and manual derivations. Auto
// derivations call set themselves and return a nil Cleanup.
type computeFunc[T any] func(values []any, set func(T), update func(Updater[T])) (Cleanup, error)

func autoCompute[T any](fn func(values []any) (T, error)) computeFunc[T] {
	return func(values []any, set func(T), _ func(Updater[T])) (Cleanup, error) {
		v, err := fn(values)
		if err != nil {
			return nil, err
		}
		set(v)
		return nil, nil
	}
}

// derived overrides Value so an inactive derivation is computed on demand
// rather than reporting a value nobody has recomputed.
type derived[T any] struct {
	*Store[T]
}

func (s derived[T]) Value() T {
	if s.active() {
		s.d.flushStale()
		return s.value
	}
	unsub := s.Subscribe(func(T) {}, nil)
	unsub()
	return s.value
}

func newDerived[T any](d *Dispatcher, sources []source, compute computeFunc[T], initial T, opts []Option) (*ReadonlyStore[T], error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if len(sources) > maxSources {
		return nil, fmt.Errorf("%w: got %d", ErrTooManySources, len(sources))
	}
	for i, src := range sources {
		if src.subscribe == nil {
			return nil, fmt.Errorf("%w: index %d", ErrNilSource, i)
		}
	}

	// a nil dispatcher follows the sources so one graph drains in one loop
	if d == nil {
		for _, src := range sources {
			if src.d != nil {
				d = src.d
				break
			}
		}
	}
	d = orDefault(d)
	for i, src := range sources {
		if src.d != nil && src.d != d {
			return nil, fmt.Errorf("%w: index %d", ErrDispatcherMismatch, i)
		}
	}

	var s *Store[T]
	start := func(set func(T), update func(Updater[T])) Unsubscriber {
		return activate(d, s, sources, compute, set, update)
	}
	s = NewWritable(d, initial, start, opts...)
	return Readonly[T](derived[T]{Store: s}), nil
}

// activation is the state of one subscribed lifetime of a derived store.
// Each start gets a fresh one so deliveries still queued from a torn-down
// lifetime find inited false and are ignored.
type activation[T any] struct {
	d       *Dispatcher
	s       *Store[T]
	compute computeFunc[T]
	set     func(T)
	update  func(Updater[T])

	sources []source
	values  []any
	pending uint64
	inited  bool
	cleanup Cleanup

	// stale holds the pending bits of an aborted wave until resync.
	stale        uint64
	resyncQueued bool
}

func activate[T any](d *Dispatcher, s *Store[T], sources []source, compute computeFunc[T], set func(T), update func(Updater[T])) Unsubscriber {
	a := &activation[T]{
		d:       d,
		s:       s,
		compute: compute,
		set:     set,
		update:  update,
		sources: sources,
		values:  make([]any, len(sources)),
	}

	unsubs := make([]Unsubscriber, 0, len(sources))
	stop := func() {
		for _, unsub := range unsubs {
			unsub()
		}
		a.runCleanup()
		a.inited = false
	}
	started := false
	defer func() {
		if !started {
			stop()
		}
	}()

	for i, src := range sources {
		bit := uint64(1) << i
		unsubs = append(unsubs, src.subscribe(func(v any) {
			a.values[i] = v
			a.pending &^= bit
			if a.inited {
				a.sync()
			}
		}, func() {
			if a.pending == 0 {
				d.track(a)
			}
			a.pending |= bit
		}))
	}
	a.inited = true
	a.sync()
	started = true

	return stop
}

func (a *activation[T]) sync() {
	if a.pending != 0 {
		return
	}
	a.runCleanup()

	cleanup, err := a.compute(a.values, a.set, a.update)
	if err != nil {
		a.d.reportError(&ComputeError{StoreID: a.s.id, Store: a.s.name, Err: err})
		return
	}
	a.cleanup = cleanup
}

func (a *activation[T]) abortWave() bool {
	if !a.inited || a.pending == 0 {
		return false
	}
	a.stale |= a.pending
	a.pending = 0
	if a.resyncQueued {
		return false
	}
	a.resyncQueued = true
	return true
}

// resync re-reads the sources whose deliveries were dropped and recomputes.
func (a *activation[T]) resync() {
	a.resyncQueued = false
	mask := a.stale
	a.stale = 0
	if !a.inited || mask == 0 {
		return
	}
	for i, src := range a.sources {
		if mask&(uint64(1)<<i) == 0 {
			continue
		}
		unsub := src.subscribe(func(v any) {
			a.values[i] = v
		}, noop)
		unsub()
	}
	a.sync()
}

func (a *activation[T]) runCleanup() {
	cleanup := a.cleanup
	a.cleanup = nil
	if cleanup != nil {
		cleanup()
	}
}

// Derive creates a store computed from a single source. fn receives the
// source's bare value and its result becomes the derived value.
func Derive[S, T any](d *Dispatcher, src Subscribable[S], fn func(S) (T, error), initial T, opts ...Option) (*ReadonlyStore[T], error) {
	return newDerived(d, []source{erase(src)}, autoCompute(func(values []any) (T, error) {
		return fn(valueAt[S](values, 0))
	}), initial, opts)
}

// DeriveAll creates a store computed from several sources of the same type.
// fn is not called again until every source invalidated in the current wave
// has delivered its new value.
func DeriveAll[S, T any](d *Dispatcher, srcs []Subscribable[S], fn func([]S) (T, error), initial T, opts ...Option) (*ReadonlyStore[T], error) {
	return newDerived(d, eraseAll(srcs), autoCompute(func(values []any) (T, error) {
		return fn(valuesOf[S](values))
	}), initial, opts)
}

// DeriveManual is Derive for compute functions that push values themselves,
// possibly later or not at all. The returned Cleanup runs before the next
// computation and when the derived store stops.
func DeriveManual[S, T any](d *Dispatcher, src Subscribable[S], fn func(S, func(T), func(Updater[T])) (Cleanup, error), initial T, opts ...Option) (*ReadonlyStore[T], error) {
	return newDerived(d, []source{erase(src)}, func(values []any, set func(T), update func(Updater[T])) (Cleanup, error) {
		return fn(valueAt[S](values, 0), set, update)
	}, initial, opts)
}

func DeriveAllManual[S, T any](d *Dispatcher, srcs []Subscribable[S], fn func([]S, func(T), func(Updater[T])) (Cleanup, error), initial T, opts ...Option) (*ReadonlyStore[T], error) {
	return newDerived(d, eraseAll(srcs), func(values []any, set func(T), update func(Updater[T])) (Cleanup, error) {
		return fn(valuesOf[S](values), set, update)
	}, initial, opts)
}

func eraseAll[S any](srcs []Subscribable[S]) []source {
	sources := make([]source, len(srcs))
	for i, src := range srcs {
		sources[i] = erase(src)
	}
	return sources
}

func valuesOf[S any](values []any) []S {
	out := make([]S, len(values))
	for i := range values {
		out[i] = valueAt[S](values, i)
	}
	return out
}
