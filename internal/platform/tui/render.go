package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-wego/internal/core"
)

// palette maps core colors to ANSI 256-color codes. ColorDefault is absent
// and leaves the terminal's own color.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorDarkGreen:     "22",
	core.ColorOlive:         "100",
	core.ColorBrown:         "94",
	core.ColorDarkGray:      "238",
}

// cellStyle is the part of a cell that decides how it is styled.
type cellStyle struct {
	fg    core.Color
	shade core.Color
}

func (cs cellStyle) lipglossStyle() lipgloss.Style {
	st := lipgloss.NewStyle()
	if c, ok := palette[cs.fg]; ok {
		st = st.Foreground(c)
	}
	if c, ok := palette[cs.shade]; ok {
		st = st.Background(c)
	}
	return st
}

// styleRun is a stretch of one row whose cells share a style.
type styleRun struct {
	style cellStyle
	text  string
}

// rowRuns splits row y into runs of equal foreground and shade.
func rowRuns(s *core.Screen, y int) []styleRun {
	var runs []styleRun
	x := 0
	for x < s.Width() {
		first := s.GetCell(x, y)
		style := cellStyle{fg: first.Color, shade: first.Shade}

		var text strings.Builder
		for ; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Color != style.fg || cell.Shade != style.shade {
				break
			}
			text.WriteRune(cell.Rune)
		}
		runs = append(runs, styleRun{style: style, text: text.String()})
	}
	return runs
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Terrain shades become the cell background, so a regiment keeps the shade
// of the ground it stands on.
func RenderScreen(s *core.Screen) string {
	// Per call: SSH sessions render concurrently
	styles := make(map[cellStyle]lipgloss.Style)

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, run := range rowRuns(s, y) {
			st, ok := styles[run.style]
			if !ok {
				st = run.style.lipglossStyle()
				styles[run.style] = st
			}
			sb.WriteString(st.Render(run.text))
		}
	}
	return sb.String()
}
