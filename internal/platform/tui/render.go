package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// ansiColors maps core.Color to terminal colors. ColorDefault has no entry
// and keeps the terminal's own color.
var ansiColors = map[core.Color]lipgloss.Color{
	core.ColorBlack:  lipgloss.Color("0"),
	core.ColorBlue:   lipgloss.Color("4"),
	core.ColorWhite:  lipgloss.Color("15"),
	core.ColorGray:   lipgloss.Color("245"),
	core.ColorYellow: lipgloss.Color("11"),
}

// colorPair is the style key of a run of cells.
type colorPair struct {
	fg, bg core.Color
}

// styleFor returns the lipgloss style for a foreground/background pair.
func styleFor(p colorPair, cache map[colorPair]lipgloss.Style) lipgloss.Style {
	if s, ok := cache[p]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if c, ok := ansiColors[p.fg]; ok {
		s = s.Foreground(c)
	}
	if c, ok := ansiColors[p.bg]; ok {
		s = s.Background(c)
	}
	cache[p] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Half blocks are 3 bytes; leave room for escape codes on top
	sb.Grow(s.Width()*s.Height()*4 + s.Height())
	cache := make(map[colorPair]lipgloss.Style)

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			pair := colorPair{fg: cell.Fg, bg: cell.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Fg != pair.fg || cell.Bg != pair.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(pair, cache).Render(run.String()))
		}
	}
	return sb.String()
}
