package game

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"
)

type tickRecorder struct {
	mu    sync.Mutex
	ticks []time.Duration
}

func (r *tickRecorder) onTick(elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, elapsed)
}

func (r *tickRecorder) get() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.ticks...)
}

func TestTimerTicks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &tickRecorder{}
		timer := NewTimer(time.Second, rec.onTick)
		if timer.Running() {
			t.Fatalf("New timer should be stopped")
		}
		timer.Start(time.Now())
		if !timer.Running() {
			t.Fatalf("Timer should be running after Start")
		}

		time.Sleep(3500 * time.Millisecond)
		synctest.Wait()
		ticks := rec.get()
		if len(ticks) != 3 {
			t.Fatalf("Expected 3 ticks after 3.5s, got %v", ticks)
		}
		for i, elapsed := range ticks {
			if want := time.Duration(i+1) * time.Second; elapsed != want {
				t.Errorf("Tick %d: expected elapsed %v, got %v", i, want, elapsed)
			}
		}
		if got := timer.Elapsed(); got != 3500*time.Millisecond {
			t.Errorf("Expected Elapsed()=3.5s, got %v", got)
		}

		timer.Stop()
		timer.Stop() // Idempotent.
		if timer.Running() {
			t.Errorf("Timer should be stopped")
		}
		time.Sleep(5 * time.Second)
		synctest.Wait()
		if got := len(rec.get()); got != 3 {
			t.Errorf("Expected no ticks after Stop, got %d in total", got)
		}
	})
}

func TestTimerRestart(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &tickRecorder{}
		timer := NewTimer(time.Second, rec.onTick)
		timer.Start(time.Now())
		time.Sleep(1500 * time.Millisecond)

		// Restarting with an epoch in the past: elapsed counts from that epoch.
		timer.Start(time.Now().Add(-10 * time.Second))
		time.Sleep(1200 * time.Millisecond)
		synctest.Wait()
		timer.Stop()

		ticks := rec.get()
		if len(ticks) != 2 {
			t.Fatalf("Expected 2 ticks, got %v", ticks)
		}
		if ticks[0] != time.Second {
			t.Errorf("First tick: expected 1s, got %v", ticks[0])
		}
		if want := 11 * time.Second; ticks[1] != want {
			t.Errorf("Tick after restart: expected %v, got %v", want, ticks[1])
		}
	})
}

func TestTimerDefaultInterval(t *testing.T) {
	timer := NewTimer(0, func(time.Duration) {})
	if timer.interval != DefaultTickInterval {
		t.Errorf("Expected default interval %v, got %v", DefaultTickInterval, timer.interval)
	}
	timer.Stop()
}
