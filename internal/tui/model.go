// Package tui provides the BubbleTea demo application that hosts several
// tooltips side by side.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/tooltui/internal/config"
	"github.com/jmylchreest/tooltui/internal/document"
	"github.com/jmylchreest/tooltui/internal/geometry"
	"github.com/jmylchreest/tooltui/internal/ids"
	"github.com/jmylchreest/tooltui/internal/interaction"
	"github.com/jmylchreest/tooltui/internal/popup"
	"github.com/jmylchreest/tooltui/internal/theme"
	"github.com/jmylchreest/tooltui/internal/timer"
)

// closeLabel is the button drawn inside click menus.
const closeLabel = "[ close ]"

const maxEvents = 5

// demoTip is one trigger on the demo screen.
type demoTip struct {
	name      string
	tip       *popup.Tooltip
	x, y      int
	closeMenu func()
	place     func(width, height, triggerWidth int) (x, y int)
}

type event struct {
	at   time.Time
	text string
}

// eventLog is shared by pointer so tooltip callbacks, which outlive any
// single copy of the Model, can append to it.
type eventLog struct {
	entries []event
	now     func() time.Time
}

func (l *eventLog) add(format string, args ...any) {
	l.entries = append(l.entries, event{at: l.now(), text: fmt.Sprintf(format, args...)})
	if len(l.entries) > maxEvents {
		l.entries = l.entries[len(l.entries)-maxEvents:]
	}
}

func (l *eventLog) hook(format string, args ...any) func() {
	return func() { l.add(format, args...) }
}

// configChangedMsg carries a configuration reloaded from disk.
type configChangedMsg struct {
	cfg *config.Config
}

// Options configures the demo model.
type Options struct {
	Theme  *theme.Theme
	Logger *slog.Logger
	Clock  timer.Clock
}

// Model is the demo TUI model.
type Model struct {
	cfg    *config.Config
	theme  *theme.Theme
	logger *slog.Logger
	clock  timer.Clock

	doc         *document.Document
	tips        []*demoTip
	focus       int
	disableFlip bool
	events      *eventLog

	width  int
	height int
	ready  bool

	keys     KeyMap
	help     help.Model
	showHelp bool
}

// New creates the demo model.
func New(cfg *config.Config, opts Options) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Theme == nil {
		opts.Theme = theme.NewDefaultTheme()
	}
	if opts.Clock == nil {
		opts.Clock = timer.SystemClock()
	}

	m := Model{
		cfg:         cfg,
		theme:       opts.Theme,
		logger:      opts.Logger,
		clock:       opts.Clock,
		doc:         document.New(opts.Logger),
		focus:       -1,
		disableFlip: cfg.Widget.DisableFlip,
		events:      &eventLog{now: opts.Clock.Now},
		keys:        DefaultKeyMap(),
		help:        help.New(),
		showHelp:    false,
	}
	m.buildTips()
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// buildTips (re)creates every tooltip from the current configuration.
func (m *Model) buildTips() {
	for _, dt := range m.tips {
		dt.tip.Dispose()
	}

	openDelay, closeDelay, err := m.cfg.Hover.Delays()
	if err != nil {
		m.logger.Warn("invalid hover delays, using none", "error", err)
		openDelay, closeDelay = 0, 0
	}
	gen, err := ids.ByName(m.cfg.Widget.IDGenerator)
	if err != nil {
		m.logger.Warn("unknown id generator, using ulid", "error", err)
		gen = ids.ULID()
	}
	placement, err := geometry.ParsePlacement(m.cfg.Demo.Placement)
	if err != nil {
		placement = geometry.Top
	}

	opts := []popup.Option{
		popup.WithTheme(m.theme),
		popup.WithDocument(m.doc),
		popup.WithIDGenerator(gen),
		popup.WithLogger(m.logger),
		popup.WithClock(m.clock),
		popup.WithDisableFlip(m.disableFlip),
		popup.WithDefaultOffset(m.cfg.Widget.DefaultOffset),
	}

	hover := func(name, text string, enterable bool) *popup.HoverConfig {
		return &popup.HoverConfig{
			PopupConfig: popup.PopupConfig{
				Content: popup.Text(text),
				OnOpen:  m.events.hook("%s: hover open", name),
				OnClose: m.events.hook("%s: hover close", name),
			},
			OpenDelay:  openDelay,
			CloseDelay: closeDelay,
			Enterable:  enterable,
		}
	}

	m.tips = nil
	add := func(name string, cfg popup.Config, trigger popup.Trigger, place func(w, h, tw int) (int, int)) *demoTip {
		dt := &demoTip{name: name, place: place}
		dt.tip = popup.New(cfg, trigger, append(opts, popup.WithCallbacks(popup.Callbacks{
			OnClick: m.events.hook("%s: click", name),
		}))...)
		m.tips = append(m.tips, dt)
		return dt
	}
	menu := func(name string, dt **demoTip) *popup.PopupConfig {
		return &popup.PopupConfig{
			Content: popup.Func(func(closePopup func()) string {
				(*dt).closeMenu = closePopup
				return "Rich content\nThis menu holds several lines.\n\n" + closeLabel
			}),
			Offset:  popup.Offset(m.cfg.Widget.DefaultOffset),
			OnOpen:  m.events.hook("%s: menu open", name),
			OnClose: m.events.hook("%s: menu close", name),
		}
	}

	add("hover",
		popup.At(placement, hover("hover", "This is a simple hover tooltip", false), nil),
		popup.TriggerText(fmt.Sprintf(" Hover me (%s) ", placement)),
		func(w, _, tw int) (int, int) { return (w - tw) / 2, 2 })

	var menuTip *demoTip
	menuTip = add("menu",
		popup.At(geometry.Bottom, nil, menu("menu", &menuTip)),
		popup.TriggerFunc(func(open bool) string {
			if open {
				return " ▾ Click me (bottom) "
			}
			return " ▸ Click me (bottom) "
		}),
		func(w, h, tw int) (int, int) { return (w - tw) / 2, h - 10 })

	add("card",
		popup.At(geometry.Right, hover("card", "Enterable card\nMove the pointer in here,\nit stays open.", true), nil),
		popup.TriggerText(" Enterable (right) "),
		func(_, h, _ int) (int, int) { return 2, h/2 - 2 })

	var bothTip *demoTip
	bothTip = add("both",
		popup.At(geometry.Left, hover("both", "Hover hint,\nclick for the menu", false), menu("both", &bothTip)),
		popup.TriggerText(" Both (left) "),
		func(w, h, tw int) (int, int) { return w - tw - 2, h/2 - 2 })

	m.setFocus(m.focus)
}

// layout places the triggers for the current screen size.
func (m *Model) layout() {
	for _, dt := range m.tips {
		dt.x, dt.y = dt.place(m.width, m.height, lipgloss.Width(dt.tip.View()))
		dt.x, dt.y = max(dt.x, 0), max(dt.y, 1)
		dt.tip.SetOrigin(dt.x, dt.y)
		dt.tip.SetViewport(m.width, m.height)
	}
}

func (m *Model) setFocus(i int) {
	if i >= len(m.tips) {
		i = -1
	}
	m.focus = i
	for j, dt := range m.tips {
		if j == i {
			dt.tip.Focus()
		} else {
			dt.tip.Blur()
		}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		m.doc.Dispatch(msg)
		if m.focus >= 0 {
			cmd, consumed := m.tips[m.focus].tip.HandleKey(msg)
			if consumed {
				return m, cmd
			}
			cmds = append(cmds, cmd)
		}
		return m.handleKey(msg, cmds)

	case tea.MouseMsg:
		m.doc.Dispatch(msg)
		if dt := m.pressedClose(msg); dt != nil && dt.closeMenu != nil {
			dt.closeMenu()
		}

	case configChangedMsg:
		sameTheme := m.theme != nil &&
			msg.cfg.Theme.Name == m.cfg.Theme.Name && msg.cfg.Theme.Dir == m.cfg.Theme.Dir
		m.cfg = msg.cfg
		m.disableFlip = msg.cfg.Widget.DisableFlip
		if sameTheme {
			if _, err := m.theme.Reload(); err != nil {
				m.logger.Warn("failed to reload theme", "theme", msg.cfg.Theme.Name, "error", err)
			}
		} else if th, err := theme.Load(msg.cfg.Theme.Name, msg.cfg.Theme.Dir); err == nil {
			m.theme = th
		} else {
			m.logger.Warn("failed to load theme", "theme", msg.cfg.Theme.Name, "error", err)
		}
		m.buildTips()
		m.layout()
		m.events.add("config reloaded")
		return m, nil
	}

	for _, dt := range m.tips {
		cmds = append(cmds, dt.tip.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

// handleKey handles the demo's own bindings.
func (m Model) handleKey(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		for _, dt := range m.tips {
			dt.tip.Dispose()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.setFocus((m.focus + 1) % len(m.tips))

	case key.Matches(msg, m.keys.Prev):
		if m.focus <= 0 {
			m.setFocus(len(m.tips) - 1)
		} else {
			m.setFocus(m.focus - 1)
		}

	case key.Matches(msg, m.keys.ToggleFlip):
		m.disableFlip = !m.disableFlip
		m.buildTips()
		m.layout()
		m.events.add("flip %s", onOff(!m.disableFlip))

	case key.Matches(msg, m.keys.Clear):
		m.events.entries = nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}

	return m, tea.Batch(cmds...)
}

// pressedClose returns the tooltip whose menu close button was pressed.
func (m Model) pressedClose(msg tea.MouseMsg) *demoTip {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	for _, dt := range m.tips {
		if !dt.tip.IsOpen(interaction.Click) {
			continue
		}
		rect := dt.tip.OverlayRect(interaction.Click)
		lines := strings.Split(ansi.Strip(dt.tip.RenderOverlay(interaction.Click)), "\n")
		for i, line := range lines {
			col := strings.Index(line, closeLabel)
			if col < 0 || msg.Y != rect.Y+i {
				continue
			}
			x0 := rect.X + ansi.StringWidth(line[:col])
			if msg.X >= x0 && msg.X < x0+len(closeLabel) {
				return dt
			}
		}
	}
	return nil
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	frame := blank(m.width, m.height)

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	title := titleStyle.Render("tooltui demo") + "  " +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("hover or click the triggers, tab to focus, enter/space to open")
	frame = popup.Composite(frame, title, 2, 0, m.width)

	for _, dt := range m.tips {
		frame = popup.Composite(frame, dt.tip.View(), dt.x, dt.y, m.width)
	}

	m.help.ShowAll = m.showHelp
	helpView := m.help.View(m.keys)
	if m.focus >= 0 {
		helpView = m.help.View(helpKeys{m.keys, m.tips[m.focus].tip.KeyMap()})
	}
	helpY := m.height - lipgloss.Height(helpView)
	frame = popup.Composite(frame, helpView, 2, helpY, m.width)

	status := m.renderStatus()
	frame = popup.Composite(frame, status, 2, helpY-lipgloss.Height(status)-1, m.width)

	for _, dt := range m.tips {
		frame = dt.tip.Overlay(frame)
	}
	return frame
}

func (m Model) renderStatus() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	focused := "none"
	if m.focus >= 0 {
		focused = m.tips[m.focus].name
	}
	lines := []string{
		dim.Render("flip ") + keyStyle.Render(onOff(!m.disableFlip)) +
			dim.Render("  theme ") + keyStyle.Render(m.theme.Name) +
			dim.Render("  focus ") + keyStyle.Render(focused),
	}
	for _, e := range m.events.entries {
		lines = append(lines, dim.Render(humanize.Time(e.at)+"  ")+e.text)
	}
	return strings.Join(lines, "\n")
}

// helpKeys joins the demo bindings with the focused tooltip's bindings.
type helpKeys struct {
	demo KeyMap
	tip  popup.KeyMap
}

func (h helpKeys) ShortHelp() []key.Binding {
	return append(h.tip.ShortHelp(), h.demo.ShortHelp()...)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return append(h.tip.FullHelp(), h.demo.FullHelp()...)
}

func blank(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	row := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // Path to watch for changes (empty = no watching)
	Logger     *slog.Logger
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	th, err := theme.Load(cfg.Theme.Name, cfg.Theme.Dir)
	if err != nil {
		logger.Warn("failed to load theme, using default", "theme", cfg.Theme.Name, "error", err)
		th = theme.NewDefaultTheme()
	}

	m := New(cfg, Options{Theme: th, Logger: logger})

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Demo.MouseMotion {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	} else {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, programOpts...)

	// Start file watcher if a config path was provided
	var watcher *config.FileWatcher
	if opts.ConfigPath != "" {
		watcher, err = config.NewFileWatcher(opts.ConfigPath, func(c *config.Config) {
			p.Send(configChangedMsg{cfg: c})
		}, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		}
	}

	_, err = p.Run()

	// Stop watcher on exit
	if watcher != nil {
		_ = watcher.Stop()
	}

	return err
}
