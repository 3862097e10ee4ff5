package geometry

// Position is where an overlay's top-left corner is drawn, together with the
// placement that was actually used.
type Position struct {
	Top       int       `json:"top" yaml:"top"`
	Left      int       `json:"left" yaml:"left"`
	Placement Placement `json:"placement" yaml:"placement"`
}

// Flipped reports whether the resolved placement differs from requested.
func (p Position) Flipped(requested Placement) bool {
	return p.Placement != requested
}

// Resolve computes the overlay position for the requested placement.
//
// The overlay is centered on the trigger's cross axis and pushed offset cells
// away from it on the primary axis. Unless disableFlip is set, a placement
// whose far edge leaves the viewport is replaced by its opposite. The flip is
// evaluated once: the opposite side is used even if it overflows as well.
//
// If either rectangle is empty the zero position is returned with the
// requested placement.
func Resolve(trigger, overlay Rect, placement Placement, offset int, vp Viewport, disableFlip bool) Position {
	if !placement.Valid() {
		placement = Top
	}
	if trigger.Empty() || overlay.Empty() {
		return Position{Placement: placement}
	}

	pos := place(trigger, overlay, placement, offset)
	if disableFlip {
		return pos
	}

	if overflows(pos, overlay, vp) {
		return place(trigger, overlay, placement.Opposite(), offset)
	}
	return pos
}

// place applies the per-placement anchor formula.
func place(trigger, overlay Rect, placement Placement, offset int) Position {
	pos := Position{Placement: placement}
	switch placement {
	case Top:
		pos.Top = trigger.Y - overlay.H - offset
		pos.Left = trigger.X + (trigger.W-overlay.W)/2
	case Bottom:
		pos.Top = trigger.Bottom() + offset
		pos.Left = trigger.X + (trigger.W-overlay.W)/2
	case Left:
		pos.Top = trigger.Y + (trigger.H-overlay.H)/2
		pos.Left = trigger.X - overlay.W - offset
	case Right:
		pos.Top = trigger.Y + (trigger.H-overlay.H)/2
		pos.Left = trigger.Right() + offset
	}
	return pos
}

// overflows checks the far side of the placement's primary axis only.
func overflows(pos Position, overlay Rect, vp Viewport) bool {
	switch pos.Placement {
	case Top:
		return pos.Top < 0
	case Bottom:
		return pos.Top+overlay.H > vp.Height
	case Left:
		return pos.Left < 0
	case Right:
		return pos.Left+overlay.W > vp.Width
	}
	return false
}
