package transition

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig is returned for configs with non-finite or out of range
// fields.
var ErrInvalidConfig = errors.New("invalid transition config")

// FlingVelocity is the release velocity above which a pan always commits to
// open.
const FlingVelocity = 500.0

const (
	defaultWidthFraction   = 0.4
	defaultOffsetYFraction = 0.15
	defaultContentScale    = 0.85
	defaultDuration        = 400 * time.Millisecond
	defaultDampingRatio    = 0.8
	defaultCornerRadius    = 40
	defaultOverlayOpacity  = 0.9
)

// Config describes what "open" looks like and how the spring gets there.
type Config struct {
	// MenuWidth is the panel width and the distance a pan must cover to
	// reach full progress.
	MenuWidth float64
	// ContentScale is applied to the content when fully open.
	ContentScale float64
	// ContentOffsetX and ContentOffsetY translate the content when open.
	ContentOffsetX float64
	ContentOffsetY float64
	CornerRadius   float64
	// OverlayOpacity is the dim/blur overlay alpha when fully open.
	OverlayOpacity float64

	Duration        time.Duration
	DampingRatio    float64
	InitialVelocity float64
	// FlingVelocity overrides the package FlingVelocity when non-zero.
	FlingVelocity float64
}

// DefaultConfig sizes a config against a container of the given bounds.
func DefaultConfig(width, height float64) Config {
	w := width * defaultWidthFraction
	return Config{
		MenuWidth:      w,
		ContentScale:   defaultContentScale,
		ContentOffsetX: w,
		ContentOffsetY: height * defaultOffsetYFraction,
		CornerRadius:   defaultCornerRadius,
		OverlayOpacity: defaultOverlayOpacity,
		Duration:       defaultDuration,
		DampingRatio:   defaultDampingRatio,
		FlingVelocity:  FlingVelocity,
	}
}

// NewConfig validates c and returns it with FlingVelocity filled in.
func NewConfig(c Config) (Config, error) {
	if c.FlingVelocity == 0 {
		c.FlingVelocity = FlingVelocity
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first field that is non-finite or out of range.
// Values are never clamped.
func (c Config) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"menu width", c.MenuWidth},
		{"content scale", c.ContentScale},
		{"content offset x", c.ContentOffsetX},
		{"content offset y", c.ContentOffsetY},
		{"corner radius", c.CornerRadius},
		{"overlay opacity", c.OverlayOpacity},
		{"damping ratio", c.DampingRatio},
		{"initial velocity", c.InitialVelocity},
		{"fling velocity", c.FlingVelocity},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, f.name)
		}
	}
	switch {
	case c.MenuWidth <= 0:
		return fmt.Errorf("%w: menu width must be positive, got %v", ErrInvalidConfig, c.MenuWidth)
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidConfig, c.Duration)
	case c.DampingRatio <= 0:
		return fmt.Errorf("%w: damping ratio must be positive, got %v", ErrInvalidConfig, c.DampingRatio)
	case c.FlingVelocity < 0:
		return fmt.Errorf("%w: fling velocity must not be negative, got %v", ErrInvalidConfig, c.FlingVelocity)
	}
	return nil
}

func (c Config) flingVelocity() float64 {
	if c.FlingVelocity == 0 {
		return FlingVelocity
	}
	return c.FlingVelocity
}
