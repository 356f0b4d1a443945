// Package tui runs pong in a terminal with Bubble Tea, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the model to run one frame.
type TickMsg time.Time

// frameInterval converts a frame rate to the delay between ticks.
// Rates of zero or less fall back to 60 fps.
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

func tickCmd(fps int) tea.Cmd {
	return tea.Tick(frameInterval(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}
