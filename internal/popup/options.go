package popup

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/tooltui/internal/document"
	"github.com/jmylchreest/tooltui/internal/ids"
	"github.com/jmylchreest/tooltui/internal/theme"
	"github.com/jmylchreest/tooltui/internal/timer"
)

type options struct {
	disableFlip   bool
	defaultOffset int
	triggerStyle  func(focused, open bool) lipgloss.Style
	overlayStyle  *lipgloss.Style
	attrs         map[string]string
	callbacks     Callbacks
	ids           ids.Generator
	logger        *slog.Logger
	clock         timer.Clock
	doc           *document.Document
	keys          KeyMap
}

// Option configures a Tooltip.
type Option func(*options)

// WithDisableFlip keeps the configured placement even when the overlay
// would leave the viewport.
func WithDisableFlip(disable bool) Option {
	return func(o *options) { o.disableFlip = disable }
}

// WithDefaultOffset sets the gap used when neither popup config sets one.
func WithDefaultOffset(cells int) Option {
	return func(o *options) { o.defaultOffset = cells }
}

// WithTriggerStyle sets a fixed style for the trigger.
func WithTriggerStyle(style lipgloss.Style) Option {
	return func(o *options) {
		o.triggerStyle = func(bool, bool) lipgloss.Style { return style }
	}
}

// WithTheme takes the default overlay style and the trigger styles from t.
func WithTheme(t *theme.Theme) Option {
	return func(o *options) {
		if t == nil {
			return
		}
		style := t.OverlayStyle()
		o.overlayStyle = &style
		o.triggerStyle = t.TriggerStyle
	}
}

// WithOverlayStyle replaces the default overlay style.
func WithOverlayStyle(style lipgloss.Style) Option {
	return func(o *options) { o.overlayStyle = &style }
}

// WithAttributes attaches pass-through key/value attributes to the trigger.
func WithAttributes(attrs map[string]string) Option {
	return func(o *options) {
		if o.attrs == nil {
			o.attrs = make(map[string]string, len(attrs))
		}
		for k, v := range attrs {
			o.attrs[k] = v
		}
	}
}

// WithCallbacks sets the caller's trigger hooks.
func WithCallbacks(cb Callbacks) Option {
	return func(o *options) { o.callbacks = cb }
}

// WithIDGenerator sets the source of the overlay handle.
func WithIDGenerator(g ids.Generator) Option {
	return func(o *options) { o.ids = g }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock sets the clock used to stamp timer deadlines.
func WithClock(c timer.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithDocument registers the tooltip's screen-wide listeners on doc. Without
// it the tooltip keeps a private document and feeds it from Update.
func WithDocument(doc *document.Document) Option {
	return func(o *options) { o.doc = doc }
}

// WithKeyMap replaces the trigger key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(o *options) { o.keys = k }
}
