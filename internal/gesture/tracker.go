// Package gesture turns raw pointer events into transition gesture samples.
package gesture

import (
	"time"

	"github.com/jask/sidemenu/internal/transition"
)

// DefaultWindow is how far back pointer positions count toward the release
// velocity.
const DefaultWindow = 100 * time.Millisecond

type point struct {
	x  float64
	at time.Time
}

// Tracker follows one pointer along the horizontal axis. A press followed
// by motion is a pan (Began, Changed..., Ended); a press released without
// motion is a tap.
type Tracker struct {
	scale  float64
	window time.Duration

	pressed bool
	moved   bool
	origin  float64
	recent  []point
}

// NewTracker returns a tracker reporting translation in cells and velocity
// in cells per second multiplied by velocityScale. A non-positive scale is
// treated as 1.
func NewTracker(velocityScale float64) *Tracker {
	scale := velocityScale
	if scale <= 0 {
		scale = 1
	}
	return &Tracker{scale: scale, window: DefaultWindow}
}

// Active reports whether a press is being tracked.
func (t *Tracker) Active() bool { return t.pressed }

// Press starts tracking at column x. Nothing is emitted until the pointer
// moves or is released.
func (t *Tracker) Press(x int, at time.Time) {
	t.pressed = true
	t.moved = false
	t.origin = float64(x)
	t.recent = append(t.recent[:0], point{x: float64(x), at: at})
}

// Move reports pointer motion. The first motion away from the press point
// emits Began before Changed.
func (t *Tracker) Move(x int, at time.Time) []transition.GestureSample {
	if !t.pressed {
		return nil
	}
	t.record(float64(x), at)
	if !t.moved && float64(x) == t.origin {
		return nil
	}
	var out []transition.GestureSample
	if !t.moved {
		t.moved = true
		out = append(out, transition.GestureSample{Kind: transition.Pan, Phase: transition.Began})
	}
	return append(out, t.sample(transition.Changed))
}

// Release ends the gesture at column x.
func (t *Tracker) Release(x int, at time.Time) []transition.GestureSample {
	if !t.pressed {
		return nil
	}
	t.pressed = false
	if !t.moved && float64(x) == t.origin {
		return []transition.GestureSample{{Kind: transition.Tap, Phase: transition.Ended}}
	}
	t.record(float64(x), at)
	var out []transition.GestureSample
	if !t.moved {
		t.moved = true
		out = append(out, transition.GestureSample{Kind: transition.Pan, Phase: transition.Began})
	}
	return append(out, t.sample(transition.Ended))
}

// Cancel abandons a pan in progress, e.g. when the pointer leaves the
// window.
func (t *Tracker) Cancel() []transition.GestureSample {
	if !t.pressed {
		return nil
	}
	t.pressed = false
	if !t.moved {
		return nil
	}
	return []transition.GestureSample{t.sample(transition.Cancelled)}
}

func (t *Tracker) record(x float64, at time.Time) {
	t.recent = append(t.recent, point{x: x, at: at})
	cutoff := at.Add(-t.window)
	drop := 0
	for drop < len(t.recent)-2 && t.recent[drop].at.Before(cutoff) {
		drop++
	}
	t.recent = t.recent[drop:]
}

func (t *Tracker) sample(phase transition.Phase) transition.GestureSample {
	last := t.recent[len(t.recent)-1]
	return transition.GestureSample{
		Kind:        transition.Pan,
		Phase:       phase,
		Translation: last.x - t.origin,
		Velocity:    t.velocity(),
	}
}

// velocity is the slope between the oldest and newest point in the window.
func (t *Tracker) velocity() float64 {
	if len(t.recent) < 2 {
		return 0
	}
	first, last := t.recent[0], t.recent[len(t.recent)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.x - first.x) * t.scale / dt
}
