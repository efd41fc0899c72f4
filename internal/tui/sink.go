package tui

import "github.com/jask/sidemenu/internal/transition"

// termSink keeps the last presentation for View to draw. Bounds are the
// terminal cells below which the footer starts.
type termSink struct {
	bounds  transition.Size
	last    transition.Presentation
	applied int
}

func (s *termSink) Apply(p transition.Presentation) {
	s.last = p
	s.applied++
}

func (s *termSink) Bounds() transition.Size { return s.bounds }
