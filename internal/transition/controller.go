package transition

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// Sink receives presentation targets and reports the container bounds.
type Sink interface {
	Apply(Presentation)
	Bounds() Size
}

// Observer is called once per committed state change.
type Observer func(State)

type observerEntry struct {
	id int
	fn Observer
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for state changes. Defaults to a no-op
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithInitialState starts the controller resting in s.
func WithInitialState(s State) Option {
	return func(c *Controller) {
		c.state = s
		c.target = s
		c.progress = s.progress()
	}
}

// Controller is the single source of truth for whether the menu is open.
type Controller struct {
	cfg    Config
	sink   Sink
	logger *zap.Logger

	state    State
	target   State
	progress float64 // last applied, always in [0, 1]

	panning  bool
	baseline float64
	// baseTranslation is the gesture translation at which the baseline was
	// taken. It is non-zero when a drag resumes after Open/Close cut in.
	baseTranslation float64
	lastTranslation float64
	anim     *spring
	gen      uint64

	observers []observerEntry
	nextID    int
}

// NewController validates cfg and pushes the resting presentation to sink.
func NewController(cfg Config, sink Sink, opts ...Option) (*Controller, error) {
	if sink == nil {
		return nil, errors.New("transition: nil sink")
	}
	cfg, err := NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		cfg:    cfg,
		sink:   sink,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.apply(c.progress)
	return c, nil
}

// IsOpen reports the committed state. It does not change mid-gesture or
// mid-animation.
func (c *Controller) IsOpen() bool { return c.state == Open }

// State returns the committed state.
func (c *Controller) State() State { return c.state }

// Target is the state the controller is currently heading to. At rest it
// equals State.
func (c *Controller) Target() State { return c.target }

// Animating reports whether a spring is in flight.
func (c *Controller) Animating() bool { return c.anim != nil }

// Interacting reports whether a pan gesture is in progress.
func (c *Controller) Interacting() bool { return c.panning }

// Progress is the last applied progress in [0, 1].
func (c *Controller) Progress() float64 { return c.progress }

// Config returns the active config.
func (c *Controller) Config() Config { return c.cfg }

// Generation changes whenever an animation is started, retargeted or
// cancelled. Frame ticks scheduled for an older generation must be dropped.
func (c *Controller) Generation() uint64 { return c.gen }

// Presentation returns the presentation for the current progress.
func (c *Controller) Presentation() Presentation {
	return PresentationAt(c.progress, c.cfg, c.sink.Bounds())
}

// Subscribe registers fn for state changes and returns a function that
// removes it.
func (c *Controller) Subscribe(fn Observer) (unsubscribe func()) {
	c.nextID++
	id := c.nextID
	c.observers = append(c.observers, observerEntry{id: id, fn: fn})
	return func() {
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// Open animates to the open state. It is a no-op when already open or
// already heading there.
func (c *Controller) Open() { c.animateTo(Open) }

// Close animates to the closed state. It is a no-op when already closed or
// already heading there.
func (c *Controller) Close() { c.animateTo(Closed) }

// Toggle closes when the committed state is open and opens otherwise. While
// an animation is in flight that resolves to a no-op for the direction it is
// already heading.
func (c *Controller) Toggle() {
	if c.IsOpen() {
		c.Close()
		return
	}
	c.Open()
}

// HandleGesture feeds one gesture sample into the state machine.
func (c *Controller) HandleGesture(s GestureSample) {
	if s.Kind == Tap {
		if s.Phase == Ended {
			c.Close()
		}
		return
	}

	switch s.Phase {
	case Began:
		c.beginInteraction(0)
	case Changed:
		if !c.panning {
			c.beginInteraction(c.lastTranslation)
		}
		c.lastTranslation = s.Translation
		c.apply(Progress(c.baseline, s.Translation-c.baseTranslation, c.cfg.MenuWidth))
	case Ended, Cancelled:
		c.panning = false
		c.lastTranslation = 0
		if c.shouldOpen(s) {
			c.Open()
		} else {
			c.Close()
		}
	}
}

func (c *Controller) shouldOpen(s GestureSample) bool {
	return s.Velocity > c.cfg.flingVelocity() || s.Translation > c.cfg.MenuWidth/2
}

// beginInteraction stops any running spring where it is and uses that value
// as the baseline for the drag. translation is where the gesture already is,
// so only motion after this point moves the menu.
func (c *Controller) beginInteraction(translation float64) {
	if c.anim != nil {
		c.anim = nil
		c.gen++
	}
	c.panning = true
	c.baseline = c.progress
	c.baseTranslation = translation
	c.lastTranslation = translation
}

// Step advances the in-flight animation by dt and reports whether it is
// still running. The state is committed, and observers notified, on the
// step that settles the spring.
func (c *Controller) Step(dt time.Duration) bool {
	if c.anim == nil {
		return false
	}
	done := c.anim.advance(dt)
	c.apply(c.anim.value())
	if !done {
		return true
	}
	c.anim = nil
	c.commit(c.target)
	return false
}

// Reconfigure swaps the config. The current progress is kept and an
// in-flight spring continues with the new parameters.
func (c *Controller) Reconfigure(cfg Config) error {
	cfg, err := NewConfig(cfg)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.anim != nil {
		c.anim = newSpring(cfg, c.anim.value(), c.anim.vel, c.anim.target)
		c.gen++
	}
	c.apply(c.progress)
	return nil
}

// Relayout re-pushes the current presentation, e.g. after the container was
// resized.
func (c *Controller) Relayout() { c.apply(c.progress) }

// Restore jumps straight to s without animating or notifying observers.
func (c *Controller) Restore(s State) {
	if c.anim != nil {
		c.anim = nil
		c.gen++
	}
	c.panning = false
	c.state = s
	c.target = s
	c.apply(s.progress())
}

func (c *Controller) animateTo(s State) {
	c.panning = false
	goal := s.progress()

	if c.anim != nil {
		if c.anim.target == goal {
			return
		}
		c.target = s
		c.anim.retarget(goal)
		c.gen++
		return
	}
	if c.state == s && c.target == s && c.progress == goal {
		return
	}

	c.target = s
	c.gen++
	vel := c.cfg.InitialVelocity * (goal - c.progress)
	c.anim = newSpring(c.cfg, c.progress, vel, goal)
	c.logger.Debug("menu transition started",
		zap.Stringer("target", s),
		zap.Float64("from", c.progress),
		zap.Uint64("generation", c.gen))
}

func (c *Controller) apply(p float64) {
	c.progress = clamp01(p)
	c.sink.Apply(PresentationAt(c.progress, c.cfg, c.sink.Bounds()))
}

func (c *Controller) commit(s State) {
	if s == c.state {
		return
	}
	c.state = s
	c.logger.Info("menu state committed", zap.Stringer("state", s))
	observers := append([]observerEntry(nil), c.observers...)
	for _, o := range observers {
		o.fn(s)
	}
}
