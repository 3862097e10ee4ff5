package popup

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

func splitStripped(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}
