package popup

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Composite draws fg over bg with its top-left corner at cell (x, y).
//
// Both strings may contain ANSI styling. Rows of fg that fall outside bg are
// dropped. Columns left of zero are cut from fg, and if width is positive,
// columns at or past width are cut too. Short bg lines are padded with
// spaces.
func Composite(bg, fg string, x, y, width int) string {
	if fg == "" {
		return bg
	}
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	for i, line := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}

		col := x
		if col < 0 {
			line = ansi.TruncateLeft(line, -col, "")
			col = 0
		}
		if width > 0 {
			if col >= width {
				continue
			}
			line = ansi.Truncate(line, width-col, "")
		}
		lineWidth := ansi.StringWidth(line)
		if lineWidth == 0 {
			continue
		}

		under := bgLines[row]
		if w := ansi.StringWidth(under); w < col {
			under += strings.Repeat(" ", col-w)
		}
		left := ansi.Truncate(under, col, "")
		right := ansi.TruncateLeft(under, col+lineWidth, "")

		bgLines[row] = left + ansi.ResetStyle + line + ansi.ResetStyle + right
	}
	return strings.Join(bgLines, "\n")
}
