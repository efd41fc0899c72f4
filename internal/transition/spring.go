package transition

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	springFPS       = 60
	settleDistance  = 1e-3
	settleVelocity  = 1e-2
	maxSettleFactor = 10
)

// spring animates a single progress value toward 0 or 1. The harmonica
// spring is integrated at a fixed sub-step so the outcome does not depend on
// how the caller slices time.
type spring struct {
	s       harmonica.Spring
	omega   float64
	damping float64
	step    time.Duration
	pos     float64
	vel     float64
	target  float64
	elapsed time.Duration
	limit   time.Duration
	carry   time.Duration
}

// angularFrequency picks the spring stiffness so one oscillation period
// matches the configured duration.
func angularFrequency(d time.Duration) float64 {
	return 2 * math.Pi / d.Seconds()
}

func newSpring(c Config, from, vel, target float64) *spring {
	omega := angularFrequency(c.Duration)
	return &spring{
		s:       harmonica.NewSpring(harmonica.FPS(springFPS), omega, c.DampingRatio),
		omega:   omega,
		damping: c.DampingRatio,
		step:    time.Second / springFPS,
		pos:     from,
		vel:     vel,
		target:  target,
		limit:   c.Duration * maxSettleFactor,
	}
}

// advance integrates dt worth of motion and reports whether the spring has
// settled. A settled spring sits exactly on its target.
func (sp *spring) advance(dt time.Duration) bool {
	if dt <= 0 {
		if sp.settled() {
			sp.snap()
			return true
		}
		return false
	}
	sp.carry += dt
	for sp.carry >= sp.step {
		sp.carry -= sp.step
		sp.elapsed += sp.step
		sp.pos, sp.vel = sp.s.Update(sp.pos, sp.vel, sp.target)
		if sp.settled() || sp.elapsed >= sp.limit {
			sp.snap()
			return true
		}
	}
	return false
}

// value is the position to present. Time left over after the last whole
// sub-step is integrated on a copy, so frames shorter than a sub-step still
// move without making the stepped state depend on frame length.
func (sp *spring) value() float64 {
	if sp.carry <= 0 {
		return sp.pos
	}
	partial := harmonica.NewSpring(sp.carry.Seconds(), sp.omega, sp.damping)
	pos, _ := partial.Update(sp.pos, sp.vel, sp.target)
	return pos
}

func (sp *spring) snap() {
	sp.pos, sp.vel = sp.target, 0
	sp.carry = 0
}

func (sp *spring) settled() bool {
	return math.Abs(sp.target-sp.pos) < settleDistance && math.Abs(sp.vel) < settleVelocity
}

// retarget points the spring somewhere else without losing its momentum.
func (sp *spring) retarget(target float64) {
	sp.target = target
	sp.elapsed = 0
}
