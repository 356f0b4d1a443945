package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// statusLines is how many rows below the field the model reserves.
const statusLines = 1

// ModelOptions configure a game model.
type ModelOptions struct {
	Store        *storage.Store // nil disables rally saving
	Config       core.RuntimeConfig
	Clock        core.Clock // nil uses the system clock
	Logger       *log.Logger
	Player       string // Recorded with saved rallies
	HoldWindowMS int    // How long a key press counts as held
	Demo         bool   // Let the autopilot play
	AllowBack    bool   // b leaves the game when paused or over
}

// autopilotSource is implemented by games the autopilot can drive.
type autopilotSource interface {
	GameState() *pong.GameState
}

// Model is the Bubble Tea model for running a game in the terminal.
// The game must already be Reset.
type Model struct {
	game   registry.Game
	screen *core.Screen
	raster *core.Raster
	config core.RuntimeConfig
	clock  core.Clock
	logger *log.Logger
	player string

	keyMapper *KeyMapper
	holds     *HoldTracker
	input     core.InputFrame
	state     core.GameState
	demo      bool
	allowBack bool

	recorder *storage.Recorder

	quitting   bool
	backToMenu bool
	err        error
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts ModelOptions) Model {
	if opts.Clock == nil {
		opts.Clock = core.NewSystemClock()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = storage.LocalPlayer
	}

	w, h := game.FieldSize()
	screen := core.NewScreen(opts.Config.ScreenW, max(opts.Config.ScreenH-statusLines, 0))

	m := Model{
		game:      game,
		screen:    screen,
		raster:    core.NewRaster(w, h, screen),
		config:    opts.Config,
		clock:     opts.Clock,
		logger:    opts.Logger,
		player:    opts.Player,
		keyMapper: NewKeyMapper(),
		holds:     NewHoldTracker(opts.HoldWindowMS),
		input:     core.NewInputFrame(),
		state:     game.State(),
		demo:      opts.Demo,
		allowBack: opts.AllowBack,
	}

	rec, err := storage.NewRecorder(opts.Store, game.ID(), opts.Player, opts.Demo)
	if err != nil {
		m.logger.Warn("could not load best rally", "game", game.ID(), "error", err)
	}
	m.recorder = rec
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("game started", "game", m.game.ID(), "player", m.player, "demo", m.demo)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keyMapper.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		m.logger.Info("game quit", "game", m.game.ID(), "returns", m.state.Score)
		return m, tea.Quit
	case core.ActionBack:
		if m.allowBack && (m.state.GameOver || m.state.Paused) {
			m.backToMenu = true
			return m, tea.Quit
		}
	case core.ActionUp, core.ActionDown:
		m.holds.Press(action, m.clock.Ticks())
	case core.ActionPause, core.ActionRestart:
		m.input.Set(action)
	}

	return m, nil
}

// handleResize re-fits the raster to the new terminal size.
// The rally continues; only the presentation scale changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-statusLines, 0))
	m.raster.Resize()
	return m, nil
}

// handleTick runs one frame: input, physics, then render unless paused.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	now := m.clock.Ticks()

	if m.input.Has(core.ActionRestart) {
		m.holds.Release()
		m.recorder.Restart()
	}
	m.holds.Apply(&m.input, now)
	if m.demo {
		m.applyAutopilot()
	}

	res := m.game.Frame(now, m.input)
	m.state = res.State
	m.input.Clear()

	if m.state.Paused {
		m.drawPausedOverlay()
	} else if err := m.game.Render(m.raster); err != nil && !errors.Is(err, core.ErrEmptySurface) {
		m.err = fmt.Errorf("render %s: %w", m.game.ID(), err)
		m.logger.Error("render failed", "error", err)
		m.quitting = true
		return m, tea.Quit
	}

	m.recordRally(now)

	return m, tickCmd(m.config.TickRate)
}

// applyAutopilot holds the keys the autopilot picks for this frame.
func (m *Model) applyAutopilot() {
	src, ok := m.game.(autopilotSource)
	if !ok || src.GameState() == nil {
		return
	}
	gs := src.GameState()
	pong.NewAutopilot(gs.Params()).Steer(gs, &m.input)
}

// recordRally feeds the frame to the recorder, which saves a missed rally once.
func (m *Model) recordRally(now uint64) {
	rally, done, err := m.recorder.Observe(now, m.state)
	if !done {
		return
	}
	m.logger.Info("rally over", "game", rally.Variant, "returns", rally.Returns, "duration", rally.Duration)
	if err != nil {
		m.logger.Warn("could not save rally", "error", err)
	}
}

// drawPausedOverlay writes the pause banner over the last presented frame.
func (m *Model) drawPausedOverlay() {
	if m.screen.Height() == 0 {
		return
	}
	m.screen.DrawTextCentered(m.screen.Height()/2, " PAUSED ")
}

// saveScreenshot writes the current frame, with colors, to ~/.pong/screenshots.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	dir := filepath.Join(home, ".pong", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.ans", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(RenderScreen(m.screen)+"\n"), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	scoreStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	missStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// statusLine summarizes the rally under the field.
func (m Model) statusLine() string {
	score := scoreStyle.Render(fmt.Sprintf("%s  returns %d  best %d", m.game.Title(), m.state.Score, m.recorder.Best()))

	var hint string
	switch {
	case m.state.GameOver:
		hint = missStyle.Render("  missed!") + statusStyle.Render("  r: serve again  b: menu  esc: quit")
	case m.state.Paused:
		hint = statusStyle.Render("  space: resume  b: menu  esc: quit")
	case m.demo:
		hint = statusStyle.Render("  autopilot  space: pause  esc: quit")
	default:
		hint = statusStyle.Render("  ↑/↓: move  space: pause  r: restart  esc: quit")
	}
	return score + hint
}

// View renders the last presented frame and the status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

// Err returns the error that ended the game, if any.
func (m Model) Err() error {
	return m.err
}

// IsQuitting returns true if the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state after the last frame.
func (m Model) State() core.GameState {
	return m.state
}

// Screen returns the screen frames are presented to.
func (m Model) Screen() *core.Screen {
	return m.screen
}

// Result is how a terminal game ended.
type Result struct {
	BackToMenu bool
	State      core.GameState
}

// Run starts the Bubble Tea program with the given model.
// The game must already be Reset.
func Run(game registry.Game, opts ModelOptions) (Result, error) {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	fm, ok := final.(Model)
	if !ok {
		return Result{}, nil
	}
	return Result{BackToMenu: fm.BackToMenu(), State: fm.State()}, fm.Err()
}
