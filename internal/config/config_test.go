package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Widget.DisableFlip)
	assert.Equal(t, 1, cfg.Widget.DefaultOffset)
	assert.Equal(t, "ulid", cfg.Widget.IDGenerator)
	assert.Equal(t, "150ms", cfg.Hover.OpenDelay)
	assert.Equal(t, "200ms", cfg.Hover.CloseDelay)
	assert.True(t, cfg.Hover.Enterable)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, "top", cfg.Demo.Placement)
	assert.True(t, cfg.Demo.MouseMotion)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[widget]
disable_flip = true
default_offset = 2
id_generator = "sequence"

[hover]
open_delay = "300ms"
close_delay = "1s"
enterable = false

[theme]
name = "catppuccin"
dir = "/tmp/themes"

[demo]
placement = "left"
mouse_motion = false
show_help = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Widget.DisableFlip)
	assert.Equal(t, 2, cfg.Widget.DefaultOffset)
	assert.Equal(t, "sequence", cfg.Widget.IDGenerator)
	assert.False(t, cfg.Hover.Enterable)
	assert.Equal(t, "catppuccin", cfg.Theme.Name)
	assert.Equal(t, "/tmp/themes", cfg.Theme.Dir)
	assert.Equal(t, "left", cfg.Demo.Placement)
	assert.False(t, cfg.Demo.MouseMotion)
	assert.False(t, cfg.Demo.ShowHelp)

	open, closeDelay, err := cfg.Hover.Delays()
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, open)
	assert.Equal(t, time.Second, closeDelay)
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
widget:
  default_offset: 3
hover:
  open_delay: "0"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Widget.DefaultOffset)
	assert.Equal(t, "0", cfg.Hover.OpenDelay)
	assert.Equal(t, DefaultCloseDelay, cfg.Hover.CloseDelay, "unset fields keep defaults")

	open, _, err := cfg.Hover.Delays()
	require.NoError(t, err)
	assert.Zero(t, open)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("[widget]\ndisable_flip = true\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Widget.DisableFlip)
	assert.Equal(t, DefaultOffset, cfg.Widget.DefaultOffset)
	assert.Equal(t, DefaultOpenDelay, cfg.Hover.OpenDelay)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad_toml", "config.toml", `this is not valid toml [`},
		{"bad_delay", "config.toml", "[hover]\nopen_delay = \"soon\"\n"},
		{"negative_delay", "config.toml", "[hover]\nclose_delay = \"-1s\"\n"},
		{"negative_offset", "config.toml", "[widget]\ndefault_offset = -1\n"},
		{"bad_placement", "config.toml", "[demo]\nplacement = \"center\"\n"},
		{"bad_yaml", "config.yml", "widget: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "subdir", name)

			cfg := DefaultConfig()
			cfg.Widget.DisableFlip = true
			cfg.Hover.CloseDelay = "750ms"
			require.NoError(t, cfg.Save(path))

			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestConfig_Encode(t *testing.T) {
	cfg := DefaultConfig()

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf, "toml"))
	assert.Contains(t, buf.String(), "default_offset")

	buf.Reset()
	require.NoError(t, cfg.Encode(&buf, "yaml"))
	assert.Contains(t, buf.String(), "open_delay: 150ms")

	err := cfg.Encode(&buf, "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, "yaml", FormatForPath("a/b.yaml"))
	assert.Equal(t, "yaml", FormatForPath("B.YML"))
	assert.Equal(t, "toml", FormatForPath("config.toml"))
	assert.Equal(t, "toml", FormatForPath("config"))
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/tooltui/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, ConfigPath(), filepath.Join("tooltui", "config.toml"))
}
