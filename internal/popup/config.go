package popup

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/tooltui/internal/geometry"
)

// DefaultOffset is the gap in cells between trigger and overlay when neither
// popup config sets one.
const DefaultOffset = 8

// Content is what an overlay displays: either fixed text or a factory that is
// handed the close function of its own popup kind.
type Content struct {
	text string
	fn   func(closePopup func()) string
}

// Text returns static content.
func Text(s string) Content {
	return Content{text: s}
}

// Func returns content produced by fn on every render. fn receives the close
// function of the popup it is rendered into, so a button inside the content
// can dismiss it.
func Func(fn func(closePopup func()) string) Content {
	return Content{fn: fn}
}

// Render produces the content string.
func (c Content) Render(closePopup func()) string {
	if c.fn != nil {
		return c.fn(closePopup)
	}
	return c.text
}

// PopupConfig configures one popup kind.
type PopupConfig struct {
	Content Content

	// Offset overrides the trigger/overlay gap. Nil falls through to the
	// other kind's offset and then to the widget default.
	Offset *int

	// NoDefaultStyle drops the default overlay style so only Style applies.
	NoDefaultStyle bool

	// Style is layered over the default overlay style. Rules set here win.
	Style lipgloss.Style

	OnOpen  func()
	OnClose func()
}

// HoverConfig configures a hover popup.
type HoverConfig struct {
	PopupConfig

	OpenDelay  time.Duration
	CloseDelay time.Duration

	// Enterable keeps the popup open while the pointer travels from the
	// trigger onto the overlay.
	Enterable bool
}

// Entry holds the popups attached at one placement. Either side may be nil.
type Entry struct {
	Placement geometry.Placement
	Hover     *HoverConfig
	Click     *PopupConfig
}

// Config lists entries in priority order. Only the first entry is used; a
// Tooltip shows its popups at a single placement.
type Config []Entry

// At starts a Config with a single entry.
func At(p geometry.Placement, hover *HoverConfig, click *PopupConfig) Config {
	return Config{{Placement: p, Hover: hover, Click: click}}
}

// With returns c with another entry appended.
func (c Config) With(p geometry.Placement, hover *HoverConfig, click *PopupConfig) Config {
	return append(c, Entry{Placement: p, Hover: hover, Click: click})
}

// Active returns the entry in effect. An empty Config yields an entry at
// the top placement with no popups.
func (c Config) Active() Entry {
	if len(c) == 0 {
		return Entry{Placement: geometry.Top}
	}
	e := c[0]
	if !e.Placement.Valid() {
		e.Placement = geometry.Top
	}
	return e
}

// Offset returns a pointer to n, for PopupConfig.Offset.
func Offset(n int) *int {
	return &n
}

// Trigger is what the trigger element displays.
type Trigger struct {
	text string
	fn   func(open bool) string
}

// TriggerText returns a fixed trigger label.
func TriggerText(s string) Trigger {
	return Trigger{text: s}
}

// TriggerFunc returns a trigger rendered by fn, which is told whether either
// popup is open.
func TriggerFunc(fn func(open bool) string) Trigger {
	return Trigger{fn: fn}
}

// Render produces the trigger label.
func (t Trigger) Render(open bool) string {
	if t.fn != nil {
		return t.fn(open)
	}
	return t.text
}

// Callbacks are caller hooks fired in addition to the popup's own handling.
type Callbacks struct {
	OnClick      func()
	OnMouseEnter func()
	OnMouseLeave func()
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
