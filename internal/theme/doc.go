// Package theme provides the colors and borders used to draw overlays and
// triggers. Themes are small TOML files; a few are bundled and users can
// add or override them in ~/.config/tooltui/themes/.
package theme
