package transition

// Presentation is everything the view layer needs to draw the menu at a
// given progress. It is a pure function of progress, Config and the
// container bounds.
type Presentation struct {
	Progress float64

	// Content transform.
	Scale        float64
	TranslateX   float64
	TranslateY   float64
	CornerRadius float64

	// Menu panel frame. PanelOffset is the panel's x origin: -MenuWidth when
	// closed, 0 when open.
	PanelOffset float64
	PanelWidth  float64
	PanelHeight float64

	OverlayOpacity float64
}

// PresentationAt interpolates linearly between the closed and open targets.
// p is clamped to [0, 1].
func PresentationAt(p float64, c Config, bounds Size) Presentation {
	p = clamp01(p)
	return Presentation{
		Progress:       p,
		Scale:          lerp(1, c.ContentScale, p),
		TranslateX:     lerp(0, c.ContentOffsetX, p),
		TranslateY:     lerp(0, c.ContentOffsetY, p),
		CornerRadius:   lerp(0, c.CornerRadius, p),
		PanelOffset:    lerp(-c.MenuWidth, 0, p),
		PanelWidth:     c.MenuWidth,
		PanelHeight:    bounds.Height,
		OverlayOpacity: lerp(0, c.OverlayOpacity, p),
	}
}

// ClosedPresentation is the resting closed target.
func ClosedPresentation(c Config, bounds Size) Presentation {
	return PresentationAt(0, c, bounds)
}

// OpenPresentation is the resting open target.
func OpenPresentation(c Config, bounds Size) Presentation {
	return PresentationAt(1, c, bounds)
}

// Progress converts a pan translation into interaction progress on top of a
// baseline, clamped to [0, 1].
func Progress(baseline, translation, menuWidth float64) float64 {
	if menuWidth <= 0 {
		return clamp01(baseline)
	}
	return clamp01(baseline + translation/menuWidth)
}

// lerp returns exact endpoints at 0 and 1 so resting values never drift.
func lerp(from, to, p float64) float64 {
	switch p {
	case 0:
		return from
	case 1:
		return to
	}
	return from + (to-from)*p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
