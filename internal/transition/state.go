// Package transition drives a slide-out menu between its closed and open
// states.
//
// A Controller owns the committed State, the interactive progress of a pan
// gesture and an in-flight spring animation. It never touches concrete views:
// every change is pushed to a Sink as a Presentation value, and animation
// time only advances when the owner calls Step. The package is
// single-threaded; all methods must be called from the same loop.
package transition

// State is the committed state of the menu.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	default:
		return "closed"
	}
}

// progress is the interpolation value the state rests at.
func (s State) progress() float64 {
	if s == Open {
		return 1
	}
	return 0
}

// ParseState maps "open"/"closed" back to a State. Anything else is Closed.
func ParseState(s string) State {
	if s == "open" {
		return Open
	}
	return Closed
}

// Phase is the lifecycle stage of a gesture sample.
type Phase int

const (
	Began Phase = iota
	Changed
	Ended
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Began:
		return "began"
	case Changed:
		return "changed"
	case Ended:
		return "ended"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// GestureKind distinguishes a continuous drag from a discrete tap.
type GestureKind int

const (
	Pan GestureKind = iota
	Tap
)

// GestureSample is one input event along the primary (horizontal) axis.
// Translation is measured from where the gesture began; Velocity is in
// units per second.
type GestureSample struct {
	Kind        GestureKind
	Phase       Phase
	Translation float64
	Velocity    float64
}

// Size is the container's bounds.
type Size struct {
	Width  float64
	Height float64
}
