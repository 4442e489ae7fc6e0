package reactive

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestVar_SetNotifiesWatchers(t *testing.T) {
	t.Parallel()

	v := NewVar(1)
	var got [][2]int
	v.Watch(func(prev, next int) { got = append(got, [2]int{prev, next}) })

	v.Set(2)
	v.Update(func(x int) int { return x * 10 })

	assert.Equal(t, 20, v.Now())
	assert.Equal(t, [][2]int{{1, 2}, {2, 20}}, got)
}

func TestVar_CancelStopsNotifications(t *testing.T) {
	t.Parallel()

	v := NewVar("a")
	calls := 0
	sub := v.Observe(func() { calls++ })

	v.Set("b")
	sub.Cancel()
	sub.Cancel()
	v.Set("c")

	assert.Equal(t, 1, calls)
	assert.Zero(t, v.watchers.count())
}

func TestVar_WatchersRunInRegistrationOrder(t *testing.T) {
	t.Parallel()

	v := NewVar(0)
	var order []int
	for i := range 5 {
		v.Observe(func() { order = append(order, i) })
	}
	v.Set(1)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestConstant_NeverNotifies(t *testing.T) {
	t.Parallel()

	c := Constant(42)
	assert.Equal(t, 42, c.Now())
	c.Observe(func() { t.Fatal("constant must not notify") }).Cancel()
	c.Watch(func(int, int) { t.Fatal("constant must not notify") }).Cancel()
}

func TestDependencies_DropsNil(t *testing.T) {
	t.Parallel()

	a := NewVar(1)
	deps := Dependencies(a, nil, Constant(2))
	assert.Len(t, deps, 2)
}

func TestBinding_RecomputesOncePerChange(t *testing.T) {
	t.Parallel()

	a := NewVar(1)
	b := NewVar(2)
	computes := 0
	sum := Binding(Dependencies(a, b), func() int {
		computes++
		return a.Now() + b.Now()
	})

	require.Equal(t, 3, sum.Now())
	require.Equal(t, 1, computes)

	a.Set(10)
	assert.Equal(t, 12, sum.Now())
	assert.Equal(t, 2, computes)
	assert.Equal(t, uint64(1), sum.Recomputations())

	b.Set(5)
	assert.Equal(t, 15, sum.Now())
	assert.Equal(t, uint64(2), sum.Recomputations())
}

func TestBinding_IgnoresUndeclaredReads(t *testing.T) {
	t.Parallel()

	declared := NewVar(1)
	hidden := NewVar(100)
	out := Binding(Dependencies(declared), func() int { return declared.Now() + hidden.Now() })

	hidden.Set(200)
	assert.Equal(t, 101, out.Now())
	declared.Set(2)
	assert.Equal(t, 202, out.Now())
}

func TestBinding_WatchersSeeOldAndNew(t *testing.T) {
	t.Parallel()

	a := NewVar(1)
	double := Map(a, func(x int) int { return x * 2 })

	var seen [][2]int
	double.Watch(func(prev, next int) { seen = append(seen, [2]int{prev, next}) })
	a.Set(3)

	assert.Equal(t, [][2]int{{2, 6}}, seen)
}

func TestBinding_Chained(t *testing.T) {
	t.Parallel()

	a := NewVar(2)
	sq := Map(a, func(x int) int { return x * x })
	label := Map(sq, func(x int) string { return time.Duration(x).String() })

	a.Set(3)
	assert.Equal(t, 9, sq.Now())
	assert.Equal(t, "9ns", label.Now())
}

func TestBinding_CloseDetaches(t *testing.T) {
	t.Parallel()

	a := NewVar(1)
	m := Map(a, func(x int) int { return x + 1 })
	require.Equal(t, 1, a.watchers.count())

	m.Close()
	m.Close()
	a.Set(5)

	assert.Equal(t, 2, m.Now())
	assert.Zero(t, a.watchers.count())
	assert.Zero(t, m.Recomputations())
}

func TestFlatMap_SwitchesInner(t *testing.T) {
	t.Parallel()

	left := NewVar("L1")
	right := NewVar("R1")
	useLeft := NewVar(true)

	selected := FlatMap(useLeft, func(l bool) Value[string] {
		if l {
			return left
		}
		return right
	})
	require.Equal(t, "L1", selected.Now())

	left.Set("L2")
	assert.Equal(t, "L2", selected.Now())

	useLeft.Set(false)
	assert.Equal(t, "R1", selected.Now())
	assert.Zero(t, left.watchers.count(), "previous inner must be dropped")

	left.Set("L3")
	assert.Equal(t, "R1", selected.Now())
	right.Set("R2")
	assert.Equal(t, "R2", selected.Now())

	selected.Close()
	assert.Zero(t, right.watchers.count())
	assert.Zero(t, useLeft.watchers.count())
}

func TestBinding_RecoversAfterComputePanic(t *testing.T) {
	t.Parallel()

	v := NewVar(1)
	b := Binding(Dependencies(v), func() int {
		x := v.Now()
		if x == 2 {
			panic("boom")
		}
		return x * 10
	})
	defer b.Close()

	require.PanicsWithValue(t, "boom", func() { v.Set(2) })
	assert.Equal(t, 10, b.Now())

	done := make(chan struct{})
	go func() {
		v.Set(3)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("binding blocked after a panic in compute")
	}
	assert.Equal(t, 30, b.Now())
	assert.Equal(t, uint64(1), b.Recomputations())
}

func TestVar_UpdatePanicKeepsValue(t *testing.T) {
	t.Parallel()

	v := NewVar(1)
	require.Panics(t, func() { v.Update(func(int) int { panic("boom") }) })
	assert.Equal(t, 1, v.Now())

	v.Set(2)
	assert.Equal(t, 2, v.Now())
}

func TestBinding_PanicInInitialComputeDetaches(t *testing.T) {
	t.Parallel()

	v := NewVar(1)
	require.Panics(t, func() {
		Binding(Dependencies(v), func() int { panic("boom") })
	})
	assert.Zero(t, v.watchers.count())
}

func TestBinding_ChangeDuringInitialComputeIsNotLost(t *testing.T) {
	t.Parallel()

	v := NewVar(1)
	var calls atomic.Int32
	done := make(chan struct{})

	b := Binding(Dependencies(v), func() int {
		x := v.Now()
		if calls.Add(1) == 1 {
			go func() {
				v.Set(2)
				close(done)
			}()
			for v.Now() != 2 {
				runtime.Gosched()
			}
		}
		return x * 10
	})
	defer b.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("change during the initial computation was never applied")
	}
	assert.Equal(t, 20, b.Now())
	assert.Equal(t, int32(2), calls.Load())
}

func TestBinding_WatchPairsChainOnOneGoroutine(t *testing.T) {
	t.Parallel()

	v := NewVar(0)
	b := Map(v, func(x int) int { return x + 1 })
	defer b.Close()

	var pairs [][2]int
	b.Watch(func(prev, next int) { pairs = append(pairs, [2]int{prev, next}) })
	for i := 1; i <= 4; i++ {
		v.Set(i)
	}

	require.Len(t, pairs, 4)
	for i := 1; i < len(pairs); i++ {
		assert.Equal(t, pairs[i-1][1], pairs[i][0])
	}
	assert.Equal(t, b.Now(), pairs[len(pairs)-1][1])
}

func TestOptions_LoggerAndHooks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var names []string
	a := NewVar(1)
	b := Map(a, func(x int) int { return x },
		WithName("identity"),
		WithLogger(logger),
		WithLogger(nil),
		WithHooks(Hooks{OnRecompute: func(name string, _ time.Duration) { names = append(names, name) }}),
	)
	a.Set(2)

	assert.Equal(t, 2, b.Now())
	assert.Equal(t, []string{"identity"}, names)
	assert.Contains(t, buf.String(), "binding recomputed")
	assert.Contains(t, buf.String(), "binding=identity")
}

func TestBinding_ConcurrentSetsAreAtomic(t *testing.T) {
	t.Parallel()

	type pair struct{ X, Double int }
	src := NewVar(0)
	p := Map(src, func(x int) pair { return pair{X: x, Double: 2 * x} })

	var torn atomic.Int32
	var mu sync.Mutex
	observed := 0
	p.Watch(func(_, next pair) {
		if next.Double != 2*next.X {
			torn.Add(1)
		}
		mu.Lock()
		observed++
		mu.Unlock()
	})

	g, ctx := errgroup.WithContext(context.Background())
	for w := range 8 {
		g.Go(func() error {
			for i := range 200 {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				src.Set(w*1000 + i)
			}
			return nil
		})
	}
	g.Go(func() error {
		for range 2000 {
			if v := p.Now(); v.Double != 2*v.X {
				torn.Add(1)
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())

	assert.Zero(t, torn.Load())
	assert.Equal(t, uint64(8*200), p.Recomputations())
	mu.Lock()
	assert.Equal(t, 8*200, observed)
	mu.Unlock()
}
