package store

import (
	"io"
	"log/slog"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

// WaveStats describes one drained batch of deliveries.
type WaveStats struct {
	Started    time.Time
	Duration   time.Duration
	Deliveries int
	// Stores is the number of distinct stores that enqueued deliveries.
	Stores int
}

// FlushHook observes every wave after the dispatcher has been reset, so it
// may safely set stores itself.
type FlushHook func(stats WaveStats)

type delivery struct {
	store uint64
	run   func()
}

// waveListener is a derivation that was invalidated during a wave. If the
// wave is aborted by a panic its pending deliveries are lost, so it must
// re-read its sources before the next wave.
type waveListener interface {
	abortWave() bool
	resync()
}

// Dispatcher owns the notification queue shared by every store bound to it.
//
// The first Set (or Batch) that finds the dispatcher idle becomes the owner of
// the wave: its invalidations run, its deliveries are queued, and it drains the
// queue before returning. Sets that happen while a wave is being drained only
// append, so a whole cascade is delivered by a single flat loop in enqueue
// order.
//
// A Dispatcher and its stores must be used from one goroutine.
type Dispatcher struct {
	queue    []delivery
	flushing bool
	touched  mapset.Set[uint64]
	lastID   uint64

	invalidated []waveListener
	stale       []waveListener

	logger  *slog.Logger
	onError OnErrorFunc
	hooks   []FlushHook
}

type DispatcherOption func(*Dispatcher)

func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func WithErrorHandler(fn OnErrorFunc) DispatcherOption {
	return func(d *Dispatcher) {
		d.onError = fn
	}
}

func WithFlushHook(fn FlushHook) DispatcherOption {
	return func(d *Dispatcher) {
		if fn != nil {
			d.hooks = append(d.hooks, fn)
		}
	}
}

func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		touched: mapset.NewThreadUnsafeSet[uint64](),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDispatcher = NewDispatcher()

// Default returns the package-level dispatcher. Constructors given a nil
// *Dispatcher use it.
func Default() *Dispatcher {
	return defaultDispatcher
}

func orDefault(d *Dispatcher) *Dispatcher {
	if d == nil {
		return defaultDispatcher
	}
	return d
}

// Flushing reports whether a wave is currently being collected or drained.
func (d *Dispatcher) Flushing() bool {
	return d.flushing
}

// Pending is the number of deliveries currently queued.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// Batch runs fn as the owner of a wave. Every Set made inside fn invalidates
// immediately but is delivered only after fn returns. Nested calls simply run
// fn inside the enclosing wave.
func (d *Dispatcher) Batch(fn func()) {
	if d.flushing {
		fn()
		return
	}

	d.flushing = true
	started := time.Now()
	var stats WaveStats
	func() {
		completed := false
		defer func() {
			d.reset(!completed)
		}()
		d.resync()
		fn()
		stats = d.drain(started)
		completed = true
	}()

	if stats.Deliveries == 0 {
		return
	}
	d.logger.Debug("store wave flushed",
		"deliveries", stats.Deliveries,
		"stores", stats.Stores,
		"duration", stats.Duration,
	)
	for _, hook := range d.hooks {
		hook(stats)
	}
}

func (d *Dispatcher) enqueue(store uint64, run func()) {
	d.queue = append(d.queue, delivery{store: store, run: run})
	d.touched.Add(store)
}

// drain re-reads the queue length on every step so deliveries appended by
// reentrant sets are reached by this same loop.
func (d *Dispatcher) drain(started time.Time) WaveStats {
	for i := 0; i < len(d.queue); i++ {
		d.queue[i].run()
	}
	return WaveStats{
		Started:    started,
		Duration:   time.Since(started),
		Deliveries: len(d.queue),
		Stores:     d.touched.Cardinality(),
	}
}

// track records a derivation invalidated in the current wave.
func (d *Dispatcher) track(l waveListener) {
	d.invalidated = append(d.invalidated, l)
}

// resync brings derivations left behind by an aborted wave up to date. It
// runs at the start of the next owned wave, outside the panic that caused
// the abort.
func (d *Dispatcher) resync() {
	for len(d.stale) > 0 {
		l := d.stale[0]
		d.stale = d.stale[1:]
		l.resync()
	}
	d.stale = nil
}

// flushStale starts an empty wave when derivations are waiting to resync.
func (d *Dispatcher) flushStale() {
	if len(d.stale) > 0 && !d.flushing {
		d.Batch(func() {})
	}
}

func (d *Dispatcher) reset(aborted bool) {
	if aborted {
		for _, l := range d.invalidated {
			if l.abortWave() {
				d.stale = append(d.stale, l)
			}
		}
	}
	clear(d.invalidated)
	d.invalidated = d.invalidated[:0]

	clear(d.queue)
	d.queue = d.queue[:0]
	d.touched.Clear()
	d.flushing = false
}

func (d *Dispatcher) nextID() uint64 {
	d.lastID++
	return d.lastID
}

func (d *Dispatcher) reportError(err error) {
	d.logger.Error("store compute failed", "error", err)
	if d.onError == nil {
		panic(err)
	}
	d.onError(err)
}
