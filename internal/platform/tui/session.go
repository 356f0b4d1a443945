package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// SessionOptions configure a menu and game session.
type SessionOptions struct {
	Store        *storage.Store
	Config       core.RuntimeConfig
	Player       string
	HoldWindowMS int
	Logger       *log.Logger
	Clock        core.Clock
}

// SessionModel runs menu, scoreboard and games in one program, so the
// player moves between them without the screen flashing. Each SSH
// connection gets one; `pong menu` runs one locally.
type SessionModel struct {
	opts       SessionOptions
	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *Model
	notice     string // Shown above the menu after a failed start
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Store, opts.Config),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Config.ScreenW = wsm.Width
		m.opts.Config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menuModel, ok := next.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.opts.Store, m.menu.cursorGameID(), m.opts.Config.ScreenW, m.opts.Config.ScreenH)
		m.scoreboard = &sb
		return m, m.scoreboard.Init()
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	game, err := m.startGame(selected.GameID)
	if err != nil {
		m.opts.Logger.Error("could not start game", "game", selected.GameID, "error", err)
		m.notice = fmt.Sprintf("could not start %s: %v", selected.Title, err)
		m.menu = m.freshMenu()
		return m, nil
	}

	m.notice = ""
	m.opts.Config = m.menu.Config()
	gm := NewModel(game, ModelOptions{
		Store:        m.opts.Store,
		Config:       m.opts.Config,
		Clock:        m.opts.Clock,
		Logger:       m.opts.Logger,
		Player:       m.opts.Player,
		HoldWindowMS: m.opts.HoldWindowMS,
		Demo:         m.menu.Demo(),
		AllowBack:    true,
	})
	m.gameModel = &gm
	return m, m.gameModel.Init()
}

// startGame creates and resets the chosen variant.
func (m SessionModel) startGame(id string) (registry.Game, error) {
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if err := game.Reset(); err != nil {
		return nil, fmt.Errorf("reset %s: %w", id, err)
	}
	return game, nil
}

// updateScoreboard handles updates while the scoreboard is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	switch {
	case m.scoreboard.IsGoingBack():
		m.scoreboard = nil
		m.menu = m.freshMenu()
		return m, m.menu.Init()
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(Model); ok {
		m.gameModel = &gm
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.menu = m.freshMenu()
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		if err := m.gameModel.Err(); err != nil {
			m.opts.Logger.Error("game ended with error", "error", err)
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// freshMenu rebuilds the menu so best scores are current.
func (m SessionModel) freshMenu() MenuModel {
	return NewMenuModel(m.opts.Store, m.opts.Config)
}

// InGame reports whether a game is running.
func (m SessionModel) InGame() bool {
	return m.gameModel != nil
}

// IsQuitting returns true if the session is over.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.gameModel != nil {
		return m.gameModel.View()
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	if m.notice != "" {
		return missStyle.Render(m.notice) + "\n" + m.menu.View()
	}
	return m.menu.View()
}

// RunSession runs a session full screen until the player quits.
func RunSession(opts SessionOptions) error {
	final, err := tea.NewProgram(NewSessionModel(opts), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(SessionModel); ok && m.gameModel != nil {
		return m.gameModel.Err()
	}
	return nil
}
