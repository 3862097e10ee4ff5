// Package geometry resolves where an overlay is drawn relative to its trigger.
//
// Coordinates are terminal cells with the origin in the top-left corner of
// the screen. Nothing in this package has side effects.
package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPlacement is returned when a placement name cannot be parsed.
var ErrInvalidPlacement = errors.New("invalid placement")

// Placement is the side of the trigger an overlay appears on.
type Placement int

const (
	Top Placement = iota
	Right
	Bottom
	Left
)

// Placements lists every placement in declaration order.
var Placements = []Placement{Top, Right, Bottom, Left}

// String returns the lowercase name of the placement.
func (p Placement) String() string {
	switch p {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("placement(%d)", int(p))
	}
}

// Valid reports whether p is one of the four placements.
func (p Placement) Valid() bool {
	return p >= Top && p <= Left
}

// Opposite returns the placement on the other side of the trigger.
func (p Placement) Opposite() Placement {
	switch p {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	default:
		return p
	}
}

// ParsePlacement converts a name such as "top" into a Placement.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return Top, nil
	case "right":
		return Right, nil
	case "bottom":
		return Bottom, nil
	case "left":
		return Left, nil
	}
	return Top, fmt.Errorf("%w: %q", ErrInvalidPlacement, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Placement) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlacement, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Placement) UnmarshalText(text []byte) error {
	parsed, err := ParsePlacement(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
