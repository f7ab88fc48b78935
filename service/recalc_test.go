package service

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_RunsLastTriggerOnce(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 5; i++ {
		i := i
		d.Trigger(func() {
			calls.Add(1)
			last.Store(int32(i))
		})
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(5), last.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	assert.False(t, d.Stop())
	d.Trigger(func() { calls.Add(1) })
	assert.True(t, d.Stop())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestRequestTracker_DiscardsStale(t *testing.T) {
	var tracker RequestTracker

	first := tracker.Next()
	second := tracker.Next()
	assert.Greater(t, second, first)
	assert.False(t, tracker.IsCurrent(first))
	assert.True(t, tracker.IsCurrent(second))

	applied := ""
	// The older response arrives last and must not overwrite the newer one.
	assert.True(t, tracker.Apply(second, func() { applied = "second" }))
	assert.False(t, tracker.Apply(first, func() { applied = "first" }))
	assert.Equal(t, "second", applied)
}

func TestRequestTracker_Concurrent(t *testing.T) {
	var tracker RequestTracker
	var wg sync.WaitGroup
	tokens := make(chan uint64, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens <- tracker.Next()
		}()
	}
	wg.Wait()
	close(tokens)

	seen := map[uint64]bool{}
	for tok := range tokens {
		assert.False(t, seen[tok], "token %d issued twice", tok)
		seen[tok] = true
	}
	assert.True(t, tracker.IsCurrent(100))
}
