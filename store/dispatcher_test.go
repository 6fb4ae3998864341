package store_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/delaneyj/storeparty/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeIsDeliveredBeforeSetReturns(t *testing.T) {
	d := store.NewDispatcher()
	a := store.NewWritable(d, 0, nil, store.WithName("a"))
	b := store.NewWritable(d, 0, nil, store.WithName("b"))

	var trace []string
	unsubA := a.Subscribe(func(v int) {
		trace = append(trace, fmt.Sprintf("a1=%d", v))
		b.Set(v * 10)
		trace = append(trace, fmt.Sprintf("a1 done, pending=%d", d.Pending()))
	}, nil)
	defer unsubA()
	unsubA2 := a.Subscribe(func(v int) {
		trace = append(trace, fmt.Sprintf("a2=%d", v))
	}, nil)
	defer unsubA2()
	unsubB := b.Subscribe(func(v int) {
		trace = append(trace, fmt.Sprintf("b=%d", v))
	}, nil)
	defer unsubB()
	trace = trace[:0]

	a.Set(1)
	assert.Equal(t, []string{
		"a1=1",
		"a1 done, pending=3",
		"a2=1",
		"b=10",
	}, trace, "the nested set is appended behind the outer wave, not flushed recursively")
	assert.False(t, d.Flushing())
	assert.Zero(t, d.Pending())
}

func TestBatchDefersDelivery(t *testing.T) {
	d := store.NewDispatcher()
	a := store.NewWritable(d, 0, nil)
	b := store.NewWritable(d, "", nil)

	var trace []string
	unsubA := a.Subscribe(func(v int) { trace = append(trace, fmt.Sprint("a=", v)) }, func() { trace = append(trace, "a!") })
	defer unsubA()
	unsubB := b.Subscribe(func(v string) { trace = append(trace, "b="+v) }, func() { trace = append(trace, "b!") })
	defer unsubB()
	trace = trace[:0]

	d.Batch(func() {
		a.Set(1)
		b.Set("x")
		assert.True(t, d.Flushing())
		assert.Equal(t, []string{"a!", "b!"}, trace)
	})
	assert.Equal(t, []string{"a!", "b!", "a=1", "b=x"}, trace)
}

func TestNestedBatchJoinsOuterWave(t *testing.T) {
	d := store.NewDispatcher()
	a := store.NewWritable(d, 0, nil)
	log, unsub := collect[int](a)
	defer unsub()

	d.Batch(func() {
		d.Batch(func() {
			a.Set(1)
		})
		assert.Equal(t, []int{0}, *log)
	})
	assert.Equal(t, []int{0, 1}, *log)
}

func TestFlushHookStats(t *testing.T) {
	var waves []store.WaveStats
	d := store.NewDispatcher(store.WithFlushHook(func(s store.WaveStats) {
		waves = append(waves, s)
	}))
	a := store.NewWritable(d, 0, nil)
	b := store.NewWritable(d, 0, nil)
	_, unsubA1 := collect[int](a)
	defer unsubA1()
	_, unsubA2 := collect[int](a)
	defer unsubA2()
	_, unsubB := collect[int](b)
	defer unsubB()

	d.Batch(func() {
		a.Set(1)
		b.Set(1)
	})
	a.Set(1)
	d.Batch(func() {})

	require.Len(t, waves, 1)
	assert.Equal(t, 3, waves[0].Deliveries)
	assert.Equal(t, 2, waves[0].Stores)
	assert.False(t, waves[0].Started.IsZero())
	assert.GreaterOrEqual(t, waves[0].Duration.Nanoseconds(), int64(0))
}

func TestFlushHookMaySetStores(t *testing.T) {
	var a *store.Store[int]
	hooked := 0
	d := store.NewDispatcher(store.WithFlushHook(func(store.WaveStats) {
		hooked++
		if a.Value() < 3 {
			a.Set(a.Value() + 1)
		}
	}))
	a = store.NewWritable(d, 0, nil)
	log, unsub := collect[int](a)
	defer unsub()

	a.Set(1)
	assert.Equal(t, []int{0, 1, 2, 3}, *log)
	assert.Equal(t, 3, hooked)
}

func TestPanicDuringFlushResetsQueue(t *testing.T) {
	d := store.NewDispatcher()
	a := store.NewWritable(d, 0, nil)
	unsubBad := a.Subscribe(func(v int) {
		if v == 1 {
			panic("subscriber failed")
		}
	}, nil)
	log, unsub := collect[int](a)
	defer unsub()

	assert.PanicsWithValue(t, "subscriber failed", func() {
		a.Set(1)
	})
	assert.False(t, d.Flushing())
	assert.Zero(t, d.Pending())

	unsubBad()
	a.Set(2)
	assert.Equal(t, []int{0, 2}, *log)
}

func TestLoggerReceivesWaves(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d := store.NewDispatcher(store.WithLogger(logger))
	a := store.NewWritable(d, 0, nil, store.WithName("counter"))
	_, unsub := collect[int](a)
	a.Set(1)
	unsub()

	out := buf.String()
	assert.Contains(t, out, "store started")
	assert.Contains(t, out, "store=counter")
	assert.Contains(t, out, "store wave flushed")
	assert.Contains(t, out, "deliveries=1")
	assert.Contains(t, out, "store stopped")
}

func TestErrorHandlerReceivesComputeErrors(t *testing.T) {
	var got []error
	d := store.NewDispatcher(store.WithErrorHandler(func(err error) {
		got = append(got, err)
	}))
	boom := errors.New("boom")
	src := store.NewWritable(d, 1, nil)
	dv, err := store.Derive(d, src, func(v int) (int, error) {
		if v < 0 {
			return 0, boom
		}
		return v * 2, nil
	}, 0, store.WithName("double"))
	require.NoError(t, err)

	log, unsub := collect[int](dv)
	defer unsub()

	src.Set(-1)
	assert.Equal(t, []int{2}, *log, "a failed computation leaves the value unchanged")
	assert.Equal(t, 2, dv.Value())
	require.Len(t, got, 1)

	var ce *store.ComputeError
	require.ErrorAs(t, got[0], &ce)
	assert.Equal(t, "double", ce.Store)
	assert.ErrorIs(t, got[0], boom)
	assert.Equal(t, "store double: compute: boom", got[0].Error())

	src.Set(4)
	assert.Equal(t, []int{2, 8}, *log)
}

func TestComputeErrorWithoutHandlerPanics(t *testing.T) {
	d := store.NewDispatcher()
	boom := errors.New("boom")
	src := store.NewWritable(d, 1, nil)
	dv, err := store.Derive(d, src, func(v int) (int, error) {
		if v < 0 {
			return 0, boom
		}
		return v, nil
	}, 0)
	require.NoError(t, err)
	log, unsub := collect[int](dv)
	defer unsub()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, dv.Value())
		assert.False(t, d.Flushing())

		src.Set(5)
		assert.Equal(t, []int{1, 5}, *log)
	}()
	src.Set(-1)
	t.Fatal("set should have panicked")
}

func TestAbortedWaveResyncsDerivations(t *testing.T) {
	d := store.NewDispatcher()
	a := store.NewWritable(d, 0, nil)
	bad, err := store.Derive(d, a, func(v int) (int, error) {
		if v == 1 {
			panic("bad source")
		}
		return v * 10, nil
	}, 0)
	require.NoError(t, err)
	c, err := store.Derive2(d, bad, a, func(b, a int) (int, error) {
		return b + a, nil
	}, 0)
	require.NoError(t, err)
	log, unsub := collect[int](c)
	defer unsub()

	// the panic drops c's delivery of a=1
	assert.PanicsWithValue(t, "bad source", func() {
		a.Set(1)
	})
	assert.False(t, d.Flushing())

	assert.Equal(t, 1, c.Value(), "bad keeps 0, a is 1")
	assert.Equal(t, []int{0, 1}, *log)

	a.Set(2)
	assert.Equal(t, []int{0, 1, 22}, *log)
}

func TestAbortedWaveResyncsOnNextWave(t *testing.T) {
	d := store.NewDispatcher()
	a := store.NewWritable(d, 0, nil)
	bad, err := store.Derive(d, a, func(v int) (int, error) {
		if v == 1 {
			panic("bad source")
		}
		return v, nil
	}, 0)
	require.NoError(t, err)
	c, err := store.Derive2(d, bad, a, func(b, a int) (int, error) {
		return b + a, nil
	}, 0)
	require.NoError(t, err)
	log, unsub := collect[int](c)
	defer unsub()

	assert.Panics(t, func() {
		a.Set(1)
	})
	assert.Equal(t, []int{0}, *log)

	other := store.NewWritable(d, "", nil)
	otherLog, unsubOther := collect[string](other)
	defer unsubOther()
	other.Set("x")

	assert.Equal(t, []int{0, 1}, *log)
	assert.Equal(t, []string{"", "x"}, *otherLog)
}
