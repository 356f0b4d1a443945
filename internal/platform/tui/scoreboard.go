package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

const (
	maxRallies      = 100 // Rows loaded per variant
	statsPanelWidth = 24
	minWidthForSide = 80 // Below this the stats panel goes under the table
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next paddle")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev paddle")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	activeTabStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1)
	boxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardModel is the Bubble Tea model for the best-rallies screen.
type ScoreboardModel struct {
	variants []registry.GameInfo
	current  int
	store    *storage.Store
	rallies  []storage.Rally
	stats    storage.VariantStats

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard sized width x height.
// If gameID names a registered variant, the scoreboard opens on it.
// A nil store shows empty tables.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
		width:    width,
		height:   height,
	}
	for i, v := range m.variants {
		if v.ID == gameID {
			m.current = i
		}
	}
	m.table = m.newTable()
	m.load()
	return m
}

// wide reports whether the stats panel fits beside the table.
func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSide
}

// newTable builds the rally table for the current size.
func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Returns", Width: 8},
		{Title: "Time", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: 12},
	}
	room := m.width - 6
	if m.wide() {
		room -= statsPanelWidth + 4
	}
	if spare := room - 53; spare > 0 {
		columns[3].Width += min(spare, 12)
	}

	rows := m.height - 9 // title, tabs, borders, help
	if !m.wide() {
		rows -= 6
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(rows, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("4")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the current variant's rallies and stats.
func (m *ScoreboardModel) load() {
	m.rallies = nil
	m.stats = storage.VariantStats{}
	if len(m.variants) == 0 || m.store == nil {
		m.table.SetRows(nil)
		return
	}

	id := m.variants[m.current].ID
	if rallies, err := m.store.TopRallies(id, maxRallies); err == nil {
		m.rallies = rallies
	}
	if stats, err := m.store.Stats(id); err == nil {
		m.stats = stats
	}

	rows := make([]table.Row, len(m.rallies))
	for i, r := range m.rallies {
		rows[i] = table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(r.Returns),
			FormatDuration(r.Duration),
			r.Player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// FormatDuration renders a rally length as m:ss.
func FormatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycle moves to the next (+1) or previous (-1) variant.
func (m *ScoreboardModel) cycle(step int) {
	if n := len(m.variants); n > 0 {
		m.current = (m.current + step + n) % n
		m.load()
	}
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(boardTitleStyle.Render("BEST RALLIES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(m.tabs(), m.width))
	b.WriteString("\n\n")

	board := boxStyle.Render(m.tableView())
	panel := boxStyle.Width(statsPanelWidth).Render(m.statsPanel())
	body := lipgloss.JoinVertical(lipgloss.Center, board, panel)
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, board, " ", panel)
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders one tab per variant with the current one highlighted.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			parts[i] = activeTabStyle.Render(v.Title)
		} else {
			parts[i] = tabStyle.Render(v.Title)
		}
	}
	return strings.Join(parts, " ")
}

func (m ScoreboardModel) tableView() string {
	if len(m.rallies) == 0 {
		return emptyStyle.Render("No rallies recorded yet.\nReturn the ball at least once to get on the board!")
	}
	return m.table.View()
}

// statsPanel summarizes the selected variant.
func (m ScoreboardModel) statsPanel() string {
	s := m.stats
	if s.Rallies == 0 {
		return dimStyle.Render("0 rallies")
	}
	lines := []string{
		boardTitleStyle.Render(fmt.Sprintf("best %d", s.BestReturns)),
		fmt.Sprintf("%d rallies", s.Rallies),
		fmt.Sprintf("avg %.1f returns", s.AvgReturns),
		FormatDuration(s.TotalPlay) + " played",
	}
	if !s.LastPlayed.IsZero() {
		lines = append(lines, dimStyle.Render("last "+s.LastPlayed.Format("Jan 02 15:04")))
	}
	return strings.Join(lines, "\n")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard until the user leaves it.
// goBack is true if they asked for the menu rather than to quit.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, gameID, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
