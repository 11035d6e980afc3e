package status

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMetricMapCachesPointer(t *testing.T) {
	m := NewMetricMap[Float]()
	a := m.Get("x")
	a.Store(1.5)
	assert.Same(t, a, m.Get("x"))
	assert.Equal(t, 1.5, m.Get("x").Load())
	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("y"))
	assert.Equal(t, 1, m.Count())
}

func TestMetricMapRangeSorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("b").Store(2)
	r.Ints.Get("a").Store(1)
	r.Ints.Get("c").Store(3)

	var names []string
	r.Ints.Range(func(name string, _ *atomic.Int64) { names = append(names, name) })
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestFloatConcurrentAdd(t *testing.T) {
	var f Float
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 4000.0, f.Load())
}

func TestFieldsRunsCollectors(t *testing.T) {
	r := NewRegistry()
	r.Bools.Get("feed.up").Store(true)
	r.Floats.Get("sim.time").Store(2.5)
	calls := 0
	r.AddCollector(func(r *Registry) {
		calls++
		r.Ints.Get("feed.received").Store(7)
	})

	fields := r.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "feed.up", fields[0].Key)
	assert.Equal(t, "feed.received", fields[1].Key)
	assert.Equal(t, int64(7), fields[1].Integer)
	assert.Equal(t, "sim.time", fields[2].Key)
	assert.Equal(t, 3, r.TotalCount())
}

func TestReportLogsFinalSnapshot(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRegistry()
	r.Ints.Get("game.launches").Store(4)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Report(ctx, r, time.Hour, zap.New(core))
		close(done)
	}()
	cancel()
	<-done

	entries := logs.FilterMessage("final metrics").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(4), entries[0].ContextMap()["game.launches"])
}
