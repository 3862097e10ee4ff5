package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// Theme is a named set of overlay and trigger colors.
type Theme struct {
	Name      string       `toml:"-"`
	Path      string       `toml:"-"` // Empty for bundled themes
	ModTime   time.Time    `toml:"-"`
	IsDefault bool         `toml:"-"`
	Overlay   OverlayTheme `toml:"overlay"`
	Trigger   TriggerTheme `toml:"trigger"`
}

// OverlayTheme describes how popup panels are drawn.
type OverlayTheme struct {
	Foreground  string `toml:"foreground"`
	Background  string `toml:"background"`
	Border      string `toml:"border"` // normal, rounded, thick, double, hidden, none
	BorderColor string `toml:"border_color"`
	PaddingX    int    `toml:"padding_x"`
	PaddingY    int    `toml:"padding_y"`
}

// TriggerTheme describes how triggers are drawn in each state.
type TriggerTheme struct {
	Foreground      string `toml:"foreground"`
	FocusForeground string `toml:"focus_foreground"`
	OpenForeground  string `toml:"open_foreground"`
	UnderlineFocus  bool   `toml:"underline_focus"`
}

// Parse decodes a theme from TOML source.
func Parse(name string, data []byte) (*Theme, error) {
	t := &Theme{Name: name}
	if err := toml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse theme %q: %w", name, err)
	}
	return t, nil
}

// NewTheme loads a theme from a TOML file.
func NewTheme(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	t.Path = path
	t.ModTime = info.ModTime()
	return t, nil
}

// NewDefaultTheme creates the embedded default theme.
func NewDefaultTheme() *Theme {
	src, _ := GetEmbeddedTheme(DefaultThemeName)
	t, err := Parse(DefaultThemeName, []byte(src))
	if err != nil {
		// The bundled file is part of the binary; a parse failure is a
		// build defect, so fall back to an unstyled theme.
		t = &Theme{Name: DefaultThemeName}
	}
	t.IsDefault = true
	return t
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tooltui", "themes"), nil
}

// Load resolves a theme by name. Themes in dir (the user themes directory
// when dir is empty) take precedence over bundled themes of the same name.
func Load(name, dir string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}

	if dir == "" {
		if d, err := ThemesDir(); err == nil {
			dir = d
		}
	}

	if dir != "" {
		path := filepath.Join(dir, name+".toml")
		if _, err := os.Stat(path); err == nil {
			return NewTheme(name, path)
		}
	}

	src, found := GetEmbeddedTheme(name)
	if !found {
		return nil, fmt.Errorf("theme %q not found", name)
	}
	t, err := Parse(name, []byte(src))
	if err != nil {
		return nil, err
	}
	t.IsDefault = name == DefaultThemeName
	return t, nil
}

// Reload re-reads a file-backed theme. It reports whether the file changed.
func (t *Theme) Reload() (bool, error) {
	if t.Path == "" {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	fresh, err := NewTheme(t.Name, t.Path)
	if err != nil {
		return false, err
	}
	changed := fresh.Overlay != t.Overlay || fresh.Trigger != t.Trigger
	t.Overlay = fresh.Overlay
	t.Trigger = fresh.Trigger
	t.ModTime = fresh.ModTime
	return changed, nil
}

// OverlayStyle returns the default presentation of a popup panel.
func (t *Theme) OverlayStyle() lipgloss.Style {
	o := t.Overlay
	s := lipgloss.NewStyle().Padding(o.PaddingY, o.PaddingX)
	if o.Foreground != "" {
		s = s.Foreground(lipgloss.Color(o.Foreground))
	}
	if o.Background != "" {
		s = s.Background(lipgloss.Color(o.Background))
	}
	if border, ok := borderByName(o.Border); ok {
		s = s.Border(border)
		if o.BorderColor != "" {
			s = s.BorderForeground(lipgloss.Color(o.BorderColor))
		}
		if o.Background != "" {
			s = s.BorderBackground(lipgloss.Color(o.Background))
		}
	}
	return s
}

// TriggerStyle returns the style for a trigger in the given state.
func (t *Theme) TriggerStyle(focused, open bool) lipgloss.Style {
	tr := t.Trigger
	s := lipgloss.NewStyle()

	color := tr.Foreground
	switch {
	case open && tr.OpenForeground != "":
		color = tr.OpenForeground
	case focused && tr.FocusForeground != "":
		color = tr.FocusForeground
	}
	if color != "" {
		s = s.Foreground(lipgloss.Color(color))
	}
	if focused && tr.UnderlineFocus {
		s = s.Underline(true)
	}
	return s
}

func borderByName(name string) (lipgloss.Border, bool) {
	switch strings.ToLower(name) {
	case "normal":
		return lipgloss.NormalBorder(), true
	case "rounded":
		return lipgloss.RoundedBorder(), true
	case "thick":
		return lipgloss.ThickBorder(), true
	case "double":
		return lipgloss.DoubleBorder(), true
	case "hidden":
		return lipgloss.HiddenBorder(), true
	default:
		return lipgloss.Border{}, false
	}
}

// ThemeInfo provides basic theme information for listing.
type ThemeInfo struct {
	Name      string
	Path      string
	IsDefault bool
	IsBundled bool
}

// ListAvailableThemes lists bundled themes followed by user themes.
func ListAvailableThemes() ([]ThemeInfo, error) {
	seen := make(map[string]bool)
	var themes []ThemeInfo

	for _, name := range ListEmbeddedThemes() {
		if !seen[name] {
			seen[name] = true
			themes = append(themes, ThemeInfo{
				Name:      name,
				IsDefault: name == DefaultThemeName,
				IsBundled: true,
			})
		}
	}

	themesDir, err := ThemesDir()
	if err != nil {
		return themes, nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".toml" {
			themeName := strings.TrimSuffix(name, ".toml")
			if !seen[themeName] {
				seen[themeName] = true
				themes = append(themes, ThemeInfo{
					Name: themeName,
					Path: filepath.Join(themesDir, name),
				})
			}
		}
	}

	return themes, nil
}
