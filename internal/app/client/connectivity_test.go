package client

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserverFiresOncePerRecovery(t *testing.T) {
	events := make(chan bool)
	o := NewObserver(events, 20*time.Millisecond, true, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		o.Watch(ctx, func(context.Context) { fired.Add(1) })
	}()

	events <- false
	assert.Eventually(t, func() bool { return !o.Online() }, time.Second, time.Millisecond)

	events <- true
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)

	// A second stable recovery fires again.
	events <- false
	events <- true
	require.Eventually(t, func() bool { return fired.Load() == 2 }, time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestObserverDebouncesFlapping(t *testing.T) {
	events := make(chan bool)
	o := NewObserver(events, 50*time.Millisecond, false, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		o.Watch(ctx, func(context.Context) { fired.Add(1) })
	}()

	// Flap inside the debounce window: up, down, up. Only the final
	// stable recovery may fire, and only once.
	events <- true
	events <- false
	events <- true

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)

	// Quiet period: no further triggers.
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	cancel()
	<-done
}

func TestObserverDropCancelsPendingTrigger(t *testing.T) {
	events := make(chan bool)
	o := NewObserver(events, 40*time.Millisecond, false, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		o.Watch(ctx, func(context.Context) { fired.Add(1) })
	}()

	// Up then down before the window elapses: the trigger is cancelled.
	events <- true
	events <- false

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
	assert.False(t, o.Online())

	cancel()
	<-done
}

func TestObserverRepeatedOnlineEventsNoRetrigger(t *testing.T) {
	events := make(chan bool)
	o := NewObserver(events, 20*time.Millisecond, false, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		o.Watch(ctx, func(context.Context) { fired.Add(1) })
	}()

	events <- true
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)

	// Already online: repeated online events are not edges.
	events <- true
	events <- true

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	cancel()
	<-done
}
