package geometry

// Rect is an axis-aligned rectangle in cells. X and Y locate the top-left
// corner; W and H are the size.
type Rect struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// Empty reports whether the rectangle has no area. An empty rectangle is
// treated as "not yet measured".
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Right returns the X coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the Y coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether the cell (x, y) lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	if r.Empty() {
		return false
	}
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Union returns the smallest rectangle containing both r and o.
// Empty rectangles do not contribute.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	return Rect{
		X: x,
		Y: y,
		W: max(r.Right(), o.Right()) - x,
		H: max(r.Bottom(), o.Bottom()) - y,
	}
}

// Viewport is the size of the visible screen area.
type Viewport struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Empty reports whether the viewport size is still unknown.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}
