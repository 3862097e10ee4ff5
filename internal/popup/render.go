package popup

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/tooltui/internal/geometry"
	"github.com/jmylchreest/tooltui/internal/interaction"
)

// View renders the trigger.
func (t *Tooltip) View() string {
	style := t.opts.triggerStyle(t.focused, t.AnyOpen())
	return style.Render(t.trigger.Render(t.AnyOpen()))
}

// TriggerRect returns the trigger's screen rectangle.
func (t *Tooltip) TriggerRect() geometry.Rect {
	view := t.View()
	return geometry.Rect{
		X: t.originX,
		Y: t.originY,
		W: lipgloss.Width(view),
		H: lipgloss.Height(view),
	}
}

// Offset returns the gap between trigger and overlay: the hover offset, else
// the click offset, else the widget default. Both popups share it.
func (t *Tooltip) Offset() int {
	if t.hoverCfg != nil && t.hoverCfg.Offset != nil {
		return *t.hoverCfg.Offset
	}
	if t.clickCfg != nil && t.clickCfg.Offset != nil {
		return *t.clickCfg.Offset
	}
	return t.opts.defaultOffset
}

// RenderOverlay renders the overlay of the given kind whether or not it is
// open. It returns "" for an unconfigured kind.
func (t *Tooltip) RenderOverlay(kind interaction.Kind) string {
	cfg := t.popupConfig(kind)
	if cfg == nil {
		return ""
	}
	closePopup := t.closeHover
	if kind == interaction.Click {
		closePopup = t.closeClick
	}
	return t.overlayStyle(cfg).Render(cfg.Content.Render(closePopup))
}

// Position resolves where the overlay of the given kind is drawn. Before the
// screen size is known, or for an unconfigured kind, it returns the zero
// position at the configured placement.
func (t *Tooltip) Position(kind interaction.Kind) geometry.Position {
	return t.resolve(t.RenderOverlay(kind))
}

// OverlayRect returns the screen rectangle of the overlay of the given kind.
func (t *Tooltip) OverlayRect(kind interaction.Kind) geometry.Rect {
	view := t.RenderOverlay(kind)
	if view == "" {
		return geometry.Rect{}
	}
	pos := t.resolve(view)
	return geometry.Rect{
		X: pos.Left,
		Y: pos.Top,
		W: lipgloss.Width(view),
		H: lipgloss.Height(view),
	}
}

// Overlay paints the open overlays onto frame, hover first, then click.
func (t *Tooltip) Overlay(frame string) string {
	if t.disposed {
		return frame
	}
	for _, kind := range []interaction.Kind{interaction.Hover, interaction.Click} {
		if !t.IsOpen(kind) {
			continue
		}
		view := t.RenderOverlay(kind)
		if view == "" {
			continue
		}
		pos := t.resolve(view)
		frame = Composite(frame, view, pos.Left, pos.Top, t.viewport.Width)
	}
	return frame
}

func (t *Tooltip) resolve(view string) geometry.Position {
	if view == "" || t.viewport.Empty() {
		return geometry.Position{Placement: t.placement}
	}
	overlay := geometry.Rect{W: lipgloss.Width(view), H: lipgloss.Height(view)}
	return geometry.Resolve(t.TriggerRect(), overlay, t.placement, t.Offset(), t.viewport, t.opts.disableFlip)
}

func (t *Tooltip) popupConfig(kind interaction.Kind) *PopupConfig {
	switch kind {
	case interaction.Hover:
		if t.hoverCfg != nil {
			return &t.hoverCfg.PopupConfig
		}
	case interaction.Click:
		return t.clickCfg
	}
	return nil
}

// overlayStyle layers the popup's own style over the default one. Rules set
// on the popup style win. lipgloss does not inherit padding, so it is copied
// across when the popup style sets none.
func (t *Tooltip) overlayStyle(cfg *PopupConfig) lipgloss.Style {
	if cfg.NoDefaultStyle {
		return cfg.Style
	}
	base := *t.opts.overlayStyle
	style := cfg.Style.Inherit(base)
	if cfg.Style.GetHorizontalPadding() == 0 && cfg.Style.GetVerticalPadding() == 0 {
		style = style.Padding(base.GetPadding())
	}
	return style
}
