package game

import (
	"sync"
	"time"
)

// Timer reports the time elapsed since an epoch about once per interval.
// It has no pause: a round's clock runs from Start until Stop.
type Timer struct {
	interval time.Duration
	onTick   func(elapsed time.Duration)

	mu     sync.Mutex
	epoch  time.Time
	ticker *time.Ticker
	stop   chan struct{}
}

// NewTimer creates a stopped Timer. A non-positive interval uses DefaultTickInterval.
func NewTimer(interval time.Duration, onTick func(elapsed time.Duration)) *Timer {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Timer{interval: interval, onTick: onTick}
}

// Start starts ticking relative to epoch, restarting the timer if it was running.
func (t *Timer) Start(epoch time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.epoch = epoch
	t.ticker = time.NewTicker(t.interval)
	t.stop = make(chan struct{})
	go t.loop(t.ticker, t.stop, epoch)
}

// Stop stops the timer. It is safe to call on a stopped timer.
// A tick already being delivered may still complete; owners that need a hard
// cut-off check their own state in onTick, as the Controller does.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Running reports whether the timer was started and not stopped.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

// Elapsed returns the time since the last Start epoch.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Since(t.epoch)
}

func (t *Timer) stopLocked() {
	if t.stop == nil {
		return
	}
	t.ticker.Stop()
	close(t.stop)
	t.ticker = nil
	t.stop = nil
}

func (t *Timer) loop(ticker *time.Ticker, stop <-chan struct{}, epoch time.Time) {
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			t.mu.Lock()
			stopped := t.stop != stop
			t.mu.Unlock()
			if stopped {
				return
			}
			t.onTick(now.Sub(epoch))
		}
	}
}
