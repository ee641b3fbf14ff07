package client

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"
)

// Observer tracks online/offline transitions from an injected event source
// and fires the sync trigger once per offline-to-online edge. Purely
// event-driven: no polling. A flapping connection is debounced so
// overlapping passes are never launched from here (the engine's busy flag
// guards the rest).
type Observer struct {
	events   <-chan bool
	debounce time.Duration
	online   atomic.Bool
	log      *slog.Logger
}

func NewObserver(events <-chan bool, debounce time.Duration, startOnline bool, log *slog.Logger) *Observer {
	o := &Observer{
		events:   events,
		debounce: debounce,
		log:      log.With("component", "connectivity"),
	}
	o.online.Store(startOnline)
	return o
}

// Online reports the current connectivity state. Capture reads this to
// pick the online or offline path.
func (o *Observer) Online() bool {
	return o.online.Load()
}

// SetOnline flips the state directly, for callers that learn about
// connectivity out of band (e.g. a failed gateway call).
func (o *Observer) SetOnline(v bool) {
	o.online.Store(v)
}

// Watch consumes the event source until ctx is done. onRecover runs once
// per stable offline-to-online transition. A pass in flight when the
// connection drops again is left to fail naturally on its own calls.
func (o *Observer) Watch(ctx context.Context, onRecover func(context.Context)) {
	var timer *time.Timer
	var timerC <-chan time.Time

	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			stopTimer()
			return

		case online, ok := <-o.events:
			if !ok {
				stopTimer()
				return
			}
			was := o.online.Swap(online)
			switch {
			case online && !was:
				// Edge up: arm (or re-arm) the debounce window.
				o.log.Debug("connection recovered, debouncing")
				stopTimer()
				timer = time.NewTimer(o.debounce)
				timerC = timer.C
			case !online && was:
				// Edge down inside the window cancels the trigger.
				o.log.Debug("connection lost")
				stopTimer()
			}

		case <-timerC:
			stopTimer()
			if o.online.Load() {
				o.log.Info("connectivity restored, triggering sync")
				onRecover(ctx)
			}
		}
	}
}
