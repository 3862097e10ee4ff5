package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var roomy = Viewport{Width: 400, Height: 300}

func TestResolve_Formulas(t *testing.T) {
	trigger := Rect{X: 100, Y: 100, W: 20, H: 4}
	overlay := Rect{W: 10, H: 2}

	tests := []struct {
		name      string
		placement Placement
		wantTop   int
		wantLeft  int
	}{
		{"top", Top, 100 - 2 - 3, 100 + (20-10)/2},
		{"bottom", Bottom, 104 + 3, 100 + (20-10)/2},
		{"left", Left, 100 + (4-2)/2, 100 - 10 - 3},
		{"right", Right, 100 + (4-2)/2, 120 + 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := Resolve(trigger, overlay, tt.placement, 3, roomy, false)
			assert.Equal(t, tt.wantTop, pos.Top)
			assert.Equal(t, tt.wantLeft, pos.Left)
			assert.Equal(t, tt.placement, pos.Placement)
			assert.False(t, pos.Flipped(tt.placement))

			// Same inputs, same output.
			assert.Equal(t, pos, Resolve(trigger, overlay, tt.placement, 3, roomy, false))
		})
	}
}

func TestResolve_FlipsTopToBottom(t *testing.T) {
	trigger := Rect{X: 10, Y: 10, W: 100, H: 40}
	overlay := Rect{W: 80, H: 30}
	vp := Viewport{Width: 800, Height: 600}

	pos := Resolve(trigger, overlay, Top, 8, vp, false)
	assert.Equal(t, Bottom, pos.Placement)
	assert.Equal(t, 58, pos.Top)
	assert.Equal(t, 20, pos.Left)
	assert.True(t, pos.Flipped(Top))

	pos = Resolve(trigger, overlay, Top, 8, vp, true)
	assert.Equal(t, Top, pos.Placement)
	assert.Equal(t, -28, pos.Top)
}

func TestResolve_FlipBoundaries(t *testing.T) {
	overlay := Rect{W: 10, H: 4}
	vp := Viewport{Width: 100, Height: 50}

	tests := []struct {
		name      string
		trigger   Rect
		placement Placement
		wantFlip  bool
	}{
		// top: trigger.Y - H - offset < 0
		{"top_exact_fit", Rect{X: 40, Y: 5, W: 10, H: 2}, Top, false},
		{"top_one_over", Rect{X: 40, Y: 4, W: 10, H: 2}, Top, true},
		// bottom: trigger.Bottom + offset + H > height
		{"bottom_exact_fit", Rect{X: 40, Y: 43, W: 10, H: 2}, Bottom, false},
		{"bottom_one_over", Rect{X: 40, Y: 44, W: 10, H: 2}, Bottom, true},
		// left: trigger.X - W - offset < 0
		{"left_exact_fit", Rect{X: 11, Y: 20, W: 10, H: 2}, Left, false},
		{"left_one_over", Rect{X: 10, Y: 20, W: 10, H: 2}, Left, true},
		// right: trigger.Right + offset + W > width
		{"right_exact_fit", Rect{X: 79, Y: 20, W: 10, H: 2}, Right, false},
		{"right_one_over", Rect{X: 80, Y: 20, W: 10, H: 2}, Right, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := Resolve(tt.trigger, overlay, tt.placement, 1, vp, false)
			if tt.wantFlip {
				assert.Equal(t, tt.placement.Opposite(), pos.Placement)
				assert.Equal(t, place(tt.trigger, overlay, tt.placement.Opposite(), 1), pos)
			} else {
				assert.Equal(t, tt.placement, pos.Placement)
			}

			// Never flips when disabled.
			noFlip := Resolve(tt.trigger, overlay, tt.placement, 1, vp, true)
			assert.Equal(t, tt.placement, noFlip.Placement)
			assert.Equal(t, place(tt.trigger, overlay, tt.placement, 1), noFlip)
		})
	}
}

func TestResolve_FlipIsEvaluatedOnce(t *testing.T) {
	// Overlay taller than the viewport overflows on both sides.
	trigger := Rect{X: 0, Y: 2, W: 10, H: 2}
	overlay := Rect{W: 10, H: 30}
	vp := Viewport{Width: 40, Height: 20}

	pos := Resolve(trigger, overlay, Top, 1, vp, false)
	assert.Equal(t, Bottom, pos.Placement)
	assert.Equal(t, 5, pos.Top)
	assert.Greater(t, pos.Top+overlay.H, vp.Height, "opposite side still overflows")
}

func TestResolve_Unmeasured(t *testing.T) {
	tests := []struct {
		name    string
		trigger Rect
		overlay Rect
	}{
		{"no_trigger", Rect{}, Rect{W: 5, H: 1}},
		{"no_overlay", Rect{X: 3, Y: 3, W: 5, H: 1}, Rect{}},
		{"zero_height_overlay", Rect{X: 3, Y: 3, W: 5, H: 1}, Rect{W: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := Resolve(tt.trigger, tt.overlay, Left, 8, roomy, false)
			assert.Equal(t, Position{Top: 0, Left: 0, Placement: Left}, pos)
		})
	}
}

func TestResolve_AlwaysValidPlacement(t *testing.T) {
	trigger := Rect{X: 0, Y: 0, W: 1, H: 1}
	overlay := Rect{W: 50, H: 50}
	vp := Viewport{Width: 10, Height: 10}

	for _, p := range Placements {
		for _, disable := range []bool{false, true} {
			pos := Resolve(trigger, overlay, p, 8, vp, disable)
			assert.True(t, pos.Placement.Valid(), "placement %v disable=%v", p, disable)
		}
	}

	pos := Resolve(trigger, overlay, Placement(42), 0, roomy, true)
	assert.Equal(t, Top, pos.Placement)
}
