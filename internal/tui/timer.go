package tui

import "time"

// holdState tracks the hold timer.
type holdState int

const (
	holdIdle holdState = iota
	holdRunning
	holdPaused
)

// holdTimer counts down the target of a timed exercise. It is driven by the
// app tick so it never reads the wall clock itself.
type holdTimer struct {
	state holdState

	exerciseID string
	name       string
	seconds    int

	remaining time.Duration
	lastTick  time.Time
}

func (h *holdTimer) start(exerciseID, name string, seconds int, now time.Time) {
	h.state = holdRunning
	h.exerciseID = exerciseID
	h.name = name
	h.seconds = seconds
	h.remaining = time.Duration(seconds) * time.Second
	h.lastTick = now
}

// tick advances the countdown to now and reports whether it just expired.
func (h *holdTimer) tick(now time.Time) bool {
	if h.state != holdRunning {
		return false
	}
	if elapsed := now.Sub(h.lastTick); elapsed > 0 {
		h.remaining -= elapsed
	}
	h.lastTick = now
	if h.remaining > 0 {
		return false
	}
	h.remaining = 0
	h.state = holdIdle
	return true
}

func (h *holdTimer) pause() {
	if h.state != holdRunning {
		return
	}
	h.state = holdPaused
}

func (h *holdTimer) resume(now time.Time) {
	if h.state != holdPaused {
		return
	}
	h.state = holdRunning
	h.lastTick = now
}

func (h *holdTimer) toggle(now time.Time) {
	switch h.state {
	case holdRunning:
		h.pause()
	case holdPaused:
		h.resume(now)
	}
}

func (h *holdTimer) cancel() {
	*h = holdTimer{}
}

func (h holdTimer) active() bool {
	return h.state != holdIdle
}

func (h holdTimer) paused() bool {
	return h.state == holdPaused
}

// fraction is the share of the hold already done, 0..1.
func (h holdTimer) fraction() float64 {
	if h.seconds <= 0 {
		return 0
	}
	total := time.Duration(h.seconds) * time.Second
	return 1 - float64(h.remaining)/float64(total)
}
