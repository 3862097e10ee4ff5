// Package popup attaches hover and click overlays to a trigger in a Bubble
// Tea program.
//
// A Tooltip owns one trigger and up to two overlays, one per interaction
// kind. The host renders the trigger with View at the cell passed to
// SetOrigin, forwards every message to Update, and paints the open overlays
// over its finished frame with Overlay. Overlay positions are resolved on
// every render from the measured trigger and overlay sizes, so a popup that
// would leave the screen flips to the opposite side.
package popup

import (
	"log/slog"
	"maps"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/tooltui/internal/document"
	"github.com/jmylchreest/tooltui/internal/geometry"
	"github.com/jmylchreest/tooltui/internal/ids"
	"github.com/jmylchreest/tooltui/internal/interaction"
	"github.com/jmylchreest/tooltui/internal/theme"
	"github.com/jmylchreest/tooltui/internal/timer"
)

// Role and Live are the accessibility role and live-region politeness of
// every overlay.
const (
	Role = "tooltip"
	Live = "polite"
)

// DefaultOverlayStyle returns the overlay style used unless a popup config
// sets NoDefaultStyle.
func DefaultOverlayStyle() lipgloss.Style {
	return theme.NewDefaultTheme().OverlayStyle()
}

// Accessibility describes the trigger/overlay relationship for assistive
// output.
type Accessibility struct {
	// Role and ID describe the overlay.
	Role string
	ID   string
	Live string

	// DescribedBy is the overlay ID while the hover popup is open.
	DescribedBy string
	// HasPopup is set when a click popup is configured.
	HasPopup bool
	// Expanded is nil without a click popup, otherwise it reports whether
	// the click popup is open.
	Expanded *bool
}

// Tooltip is a trigger with hover and click popups.
type Tooltip struct {
	id        string
	placement geometry.Placement
	hoverCfg  *HoverConfig
	clickCfg  *PopupConfig
	trigger   Trigger
	opts      options
	logger    *slog.Logger

	hover *interaction.Machine
	click *interaction.Machine
	queue *timer.Queue

	doc    *document.Document
	ownDoc bool
	scope  *document.Scope

	originX, originY int
	viewport         geometry.Viewport
	focused          bool
	consumed         bool
	disposed         bool

	// Pointer location relative to the hit regions at the last mouse event.
	inTrigger  bool
	inOverlay  bool
	inCorridor bool
}

// New creates a tooltip for trigger with the popups described by cfg.
// Only the first entry of cfg is used.
func New(cfg Config, trigger Trigger, opts ...Option) *Tooltip {
	o := options{
		defaultOffset: DefaultOffset,
		keys:          DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.ids == nil {
		o.ids = ids.ULID()
	}
	if o.clock == nil {
		o.clock = timer.SystemClock()
	}
	if o.triggerStyle == nil {
		o.triggerStyle = func(bool, bool) lipgloss.Style { return lipgloss.NewStyle() }
	}
	if o.overlayStyle == nil {
		style := DefaultOverlayStyle()
		o.overlayStyle = &style
	}

	active := cfg.Active()
	t := &Tooltip{
		id:        o.ids.Next(),
		placement: active.Placement,
		hoverCfg:  active.Hover,
		clickCfg:  active.Click,
		trigger:   trigger,
		opts:      o,
	}
	t.logger = o.logger.With("tooltip", t.id)
	for _, extra := range cfg[min(1, len(cfg)):] {
		t.logger.Debug("ignoring extra placement", "placement", extra.Placement, "active", t.placement)
	}

	t.doc = o.doc
	if t.doc == nil {
		t.doc = document.New(t.logger)
		t.ownDoc = true
	}
	t.scope = t.doc.NewScope(t.id)
	t.queue = timer.NewQueue(t.id, o.clock)

	if h := t.hoverCfg; h != nil {
		t.hover = interaction.New(interaction.Hover, t.queue, interaction.Options{
			OpenDelay:  h.OpenDelay,
			CloseDelay: h.CloseDelay,
			OnOpen:     h.OnOpen,
			OnClose:    h.OnClose,
			Logger:     t.logger,
		})
	}
	if c := t.clickCfg; c != nil {
		t.click = interaction.New(interaction.Click, t.queue, interaction.Options{
			OnOpen:   c.OnOpen,
			OnClose:  c.OnClose,
			OnChange: t.clickChanged,
			Logger:   t.logger,
		})
	}
	return t
}

// ID returns the overlay handle.
func (t *Tooltip) ID() string { return t.id }

// Placement returns the configured placement.
func (t *Tooltip) Placement() geometry.Placement { return t.placement }

// Has reports whether a popup of the given kind is configured.
func (t *Tooltip) Has(kind interaction.Kind) bool {
	return t.machine(kind) != nil
}

// IsOpen reports whether the popup of the given kind is shown.
func (t *Tooltip) IsOpen(kind interaction.Kind) bool {
	m := t.machine(kind)
	return m != nil && m.IsOpen()
}

// State returns the state of the popup of the given kind. Unconfigured
// popups are always closed.
func (t *Tooltip) State(kind interaction.Kind) interaction.State {
	if m := t.machine(kind); m != nil {
		return m.State()
	}
	return interaction.Closed
}

// AnyOpen reports whether either popup is shown.
func (t *Tooltip) AnyOpen() bool {
	return t.IsOpen(interaction.Hover) || t.IsOpen(interaction.Click)
}

// Open opens the popup of the given kind, honoring hover delays.
func (t *Tooltip) Open(kind interaction.Kind) tea.Cmd {
	if m := t.machine(kind); m != nil && !t.disposed {
		m.Open()
	}
	return t.queue.Cmd()
}

// Close closes the popup of the given kind, honoring hover delays.
func (t *Tooltip) Close(kind interaction.Kind) tea.Cmd {
	if m := t.machine(kind); m != nil && !t.disposed {
		m.Close()
	}
	return t.queue.Cmd()
}

// CloseAll closes both popups.
func (t *Tooltip) CloseAll() tea.Cmd {
	t.closeAll()
	return t.queue.Cmd()
}

// Focus gives the trigger keyboard focus.
func (t *Tooltip) Focus() { t.focused = true }

// Blur removes keyboard focus from the trigger.
func (t *Tooltip) Blur() { t.focused = false }

// Focused reports whether the trigger has keyboard focus.
func (t *Tooltip) Focused() bool { return t.focused }

// SetOrigin sets the screen cell of the trigger's top-left corner.
func (t *Tooltip) SetOrigin(x, y int) {
	t.originX, t.originY = x, y
}

// SetViewport sets the screen size used for flipping. Update does this for
// tea.WindowSizeMsg.
func (t *Tooltip) SetViewport(width, height int) {
	t.viewport = geometry.Viewport{Width: width, Height: height}
}

// Attributes returns a copy of the pass-through trigger attributes.
func (t *Tooltip) Attributes() map[string]string {
	return maps.Clone(t.opts.attrs)
}

// KeyMap returns the trigger key bindings.
func (t *Tooltip) KeyMap() KeyMap { return t.opts.keys }

// Accessibility returns the current accessibility relationships.
func (t *Tooltip) Accessibility() Accessibility {
	a := Accessibility{
		Role:     Role,
		ID:       t.id,
		Live:     Live,
		HasPopup: t.click != nil,
	}
	if t.IsOpen(interaction.Hover) {
		a.DescribedBy = t.id
	}
	if t.click != nil {
		expanded := t.click.IsOpen()
		a.Expanded = &expanded
	}
	return a
}

// Update handles a message and returns the timer commands it produced.
func (t *Tooltip) Update(msg tea.Msg) tea.Cmd {
	if t.disposed {
		return nil
	}
	if t.ownDoc {
		t.doc.Dispatch(msg)
	}

	switch msg := msg.(type) {
	case timer.FiredMsg:
		t.queue.Handle(msg)
	case tea.WindowSizeMsg:
		t.SetViewport(msg.Width, msg.Height)
	case tea.MouseMsg:
		t.handleMouse(msg)
	case tea.KeyMsg:
		if t.focused {
			t.handleKey(msg)
		}
	}
	return t.queue.Cmd()
}

// HandleKey is Update for key messages that also reports whether the key
// was used. A consumed key must not trigger the host's own binding for it.
func (t *Tooltip) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	t.consumed = false
	cmd := t.Update(msg)
	return cmd, t.consumed
}

// ExpireTimers fires every pending delay due at or before now. Hosts that
// do not deliver timer.FiredMsg can call it instead.
func (t *Tooltip) ExpireTimers(now time.Time) int {
	if t.disposed {
		return 0
	}
	return t.queue.Expire(now)
}

// PendingTimers returns the number of delays that have not fired.
func (t *Tooltip) PendingTimers() int { return t.queue.Pending() }

// Dispose cancels pending delays and removes screen-wide listeners. The
// tooltip ignores every later message.
func (t *Tooltip) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	if t.hover != nil {
		t.hover.Dispose()
	}
	if t.click != nil {
		t.click.Dispose()
	}
	t.scope.Release()
	t.queue.Stop()
	t.logger.Debug("tooltip disposed")
}

// Disposed reports whether Dispose has been called.
func (t *Tooltip) Disposed() bool { return t.disposed }

func (t *Tooltip) machine(kind interaction.Kind) *interaction.Machine {
	switch kind {
	case interaction.Hover:
		return t.hover
	case interaction.Click:
		return t.click
	default:
		return nil
	}
}

func (t *Tooltip) closeAll() {
	if t.disposed {
		return
	}
	if t.hover != nil {
		t.hover.Close()
	}
	if t.click != nil {
		t.click.Close()
	}
}

func (t *Tooltip) closeHover() {
	if t.hover != nil && !t.disposed {
		t.hover.Close()
	}
}

func (t *Tooltip) closeClick() {
	if t.click != nil && !t.disposed {
		t.click.Close()
	}
}

func (t *Tooltip) enterable() bool {
	return t.hoverCfg != nil && t.hoverCfg.Enterable
}

func (t *Tooltip) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, t.opts.keys.Activate):
		if t.click != nil {
			t.click.Open()
			t.consumed = true
		}
	case key.Matches(msg, t.opts.keys.Dismiss):
		t.consumed = t.AnyOpen()
		t.closeAll()
	}
}

func (t *Tooltip) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y
	trigger := t.TriggerRect()

	var overlay, corridor geometry.Rect
	if t.enterable() && t.IsOpen(interaction.Hover) {
		overlay = t.OverlayRect(interaction.Hover)
		corridor = trigger.Union(overlay)
	}

	inTrigger := trigger.Contains(x, y)
	inOverlay := overlay.Contains(x, y)
	inCorridor := corridor.Contains(x, y)

	switch {
	case inTrigger && !t.inTrigger:
		t.logger.Debug("pointer entered trigger", "x", x, "y", y)
		if t.hover != nil {
			t.hover.Open()
		}
		call(t.opts.callbacks.OnMouseEnter)
	case !inTrigger && t.inTrigger:
		t.logger.Debug("pointer left trigger", "x", x, "y", y)
		if !t.enterable() || !inCorridor {
			t.closeHover()
		}
		call(t.opts.callbacks.OnMouseLeave)
	}

	if t.enterable() && t.hover.IsOpen() {
		switch {
		case inOverlay && !t.inOverlay:
			t.hover.CancelTimers()
		case !inOverlay && t.inOverlay && !inCorridor:
			t.hover.Close()
		case !inCorridor && t.inCorridor && !inTrigger && !t.inTrigger && !t.inOverlay:
			// Left through the gap between trigger and overlay.
			t.hover.Close()
		}
	}

	t.inTrigger, t.inOverlay, t.inCorridor = inTrigger, inOverlay, inCorridor

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && inTrigger {
		if t.click != nil {
			t.click.Toggle()
		}
		call(t.opts.callbacks.OnClick)
	}
}

// clickChanged keeps the screen-wide listeners attached exactly while the
// click popup is open.
func (t *Tooltip) clickChanged(open bool) {
	if open {
		t.scope.Acquire(t.outsidePress, t.escape)
		return
	}
	t.scope.Release()
}

func (t *Tooltip) outsidePress(msg tea.Msg) {
	mouse, ok := msg.(tea.MouseMsg)
	// Wheel events arrive as presses but must not dismiss the popup.
	if !ok || mouse.Action != tea.MouseActionPress || tea.MouseEvent(mouse).IsWheel() {
		return
	}
	if t.TriggerRect().Contains(mouse.X, mouse.Y) {
		return
	}
	for _, kind := range []interaction.Kind{interaction.Hover, interaction.Click} {
		if t.IsOpen(kind) && t.OverlayRect(kind).Contains(mouse.X, mouse.Y) {
			return
		}
	}
	t.logger.Debug("press outside popup", "x", mouse.X, "y", mouse.Y)
	t.closeClick()
}

func (t *Tooltip) escape(msg tea.Msg) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || !key.Matches(k, t.opts.keys.Dismiss) {
		return
	}
	// A focused trigger handles its own Escape in Update.
	if t.focused {
		return
	}
	t.closeAll()
}
