package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/store-dash/internal/core"
)

// palette maps core.Color to ANSI 256-color codes.
var palette = map[core.Color]string{
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightBlue:   "12",
	core.ColorOrange:       "208",
	core.ColorGray:         "245",
}

// colorStyles holds one lipgloss style per color. Bright colors are bold
// so the player and the banners stand out on dim terminals.
var colorStyles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}
	for c, code := range palette {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(code))
		switch c {
		case core.ColorBrightRed, core.ColorBrightGreen, core.ColorBrightYellow, core.ColorBrightBlue:
			style = style.Bold(true)
		}
		styles[c] = style
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color are rendered as a single run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		renderRow(&sb, s, y)
	}
	return sb.String()
}

func renderRow(sb *strings.Builder, s *core.Screen, y int) {
	var run strings.Builder
	runColor := core.ColorDefault

	flush := func() {
		if run.Len() > 0 {
			sb.WriteString(styleFor(runColor).Render(run.String()))
			run.Reset()
		}
	}

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != runColor {
			flush()
			runColor = cell.Color
		}
		run.WriteRune(cell.Rune)
	}
	flush()
}
