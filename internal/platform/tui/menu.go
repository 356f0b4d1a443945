package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// MenuItem is one paddle variant on the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // 0 when nothing is recorded
}

// menuExit is how the menu was left.
type menuExit int

const (
	menuOpen menuExit = iota
	menuPlay
	menuScores
	menuQuit
)

// MenuModel picks a variant and whether the autopilot plays it.
type MenuModel struct {
	items  []MenuItem
	cursor int
	demo   bool
	exit   menuExit

	config core.RuntimeConfig
	keys   *KeyMapper
}

// NewMenuModel lists every registered variant with its best rally.
// store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, info := range registry.List() {
		item := MenuItem{GameID: info.ID, Title: info.Title}
		if store != nil {
			item.Best, _ = store.BestReturns(info.ID)
		}
		items = append(items, item)
	}
	return MenuModel{items: items, config: cfg, keys: NewKeyMapper()}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

func (m MenuModel) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
	case MenuActionToggleDemo:
		m.demo = !m.demo
	case MenuActionSelect:
		if len(m.items) > 0 {
			return m.leave(menuPlay)
		}
	case MenuActionScoreboard:
		return m.leave(menuScores)
	case MenuActionQuit:
		return m.leave(menuQuit)
	}
	return m, nil
}

func (m MenuModel) leave(how menuExit) (tea.Model, tea.Cmd) {
	m.exit = how
	return m, tea.Quit
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 2)
	menuItemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const menuHelp = "↑/↓ choose · enter play · a autopilot · tab scores · q quit"

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.exit == menuQuit {
		return ""
	}

	rows := make([]string, 0, len(m.items))
	for i, item := range m.items {
		rows = append(rows, m.itemLine(i, item))
	}

	who := "you"
	if m.demo {
		who = "autopilot"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		"",
		menuTitleStyle.Render("P O N G"),
		"",
		"Select a paddle",
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		"Player: "+who,
		"",
		menuHelpStyle.Render(menuHelp),
	)
	return lipgloss.PlaceHorizontal(m.config.ScreenW, lipgloss.Center, body)
}

func (m MenuModel) itemLine(i int, item MenuItem) string {
	marker, style := "  ", menuItemStyle
	if i == m.cursor {
		marker, style = "> ", menuCurStyle
	}
	line := marker + item.Title
	if item.Best > 0 {
		line += "  (best " + strconv.Itoa(item.Best) + ")"
	}
	return style.Render(line)
}

// Selected returns the chosen item, or nil until Enter is pressed.
func (m MenuModel) Selected() *MenuItem {
	if m.exit != menuPlay {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

func (m MenuModel) cursorGameID() string {
	if len(m.items) == 0 {
		return ""
	}
	return m.items[m.cursor].GameID
}

// Demo reports whether the autopilot should play.
func (m MenuModel) Demo() bool { return m.demo }

// IsQuitting reports whether the player left the menu without choosing.
func (m MenuModel) IsQuitting() bool { return m.exit == menuQuit }

// WantsScoreboard reports whether Tab was pressed.
func (m MenuModel) WantsScoreboard() bool { return m.exit == menuScores }

// Config is the runtime config including any resize seen by the menu.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// centerStyled pads a single styled line so it sits centered in width.
func centerStyled(text string, width int) string {
	if pad := (width - lipgloss.Width(text)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + text
	}
	return text
}
