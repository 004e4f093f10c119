package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-wego/internal/core"
	"github.com/vovakirdan/tui-wego/internal/storage"
)

// History layout constants
const (
	minWidthForReport = 100 // Minimum width to show the turn report beside the table
	reportWidth       = 44
	maxBattles        = 100 // Max battles to load
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Delete, k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "turns"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete battle"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded battles.
type HistoryModel struct {
	store     *storage.Store
	battles   []storage.BattleSummary
	turns     []storage.TurnRecord // Turns of the opened battle
	opened    string               // ID of the opened battle, "" in the battle list
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	status    string
	now       func() time.Time
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewHistoryModel creates a new history model. store may be nil.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		now:    time.Now,
		width:  width,
		height: height,
	}
	m.loadBattles()
	return m
}

// battleColumns returns the battle list columns for the current width.
func (m *HistoryModel) battleColumns() []table.Column {
	columns := []table.Column{
		{Title: "Scenario", Width: 14},
		{Title: "Source", Width: 9},
		{Title: "Turns", Width: 6},
		{Title: "Started", Width: 16},
		{Title: "Last turn", Width: 16},
	}
	if m.width < 70 {
		// Narrow: drop the source column
		columns = append(columns[:1], columns[2:]...)
	}
	return columns
}

func turnColumns() []table.Column {
	return []table.Column{
		{Title: "Turn", Width: 6},
		{Title: "Ticks", Width: 7},
		{Title: "Orders", Width: 7},
		{Title: "Recorded", Width: 16},
	}
}

// createTable creates a new table with the given columns.
func (m *HistoryModel) createTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadBattles shows the battle list.
func (m *HistoryModel) loadBattles() {
	m.opened = ""
	m.turns = nil
	m.battles = nil
	if m.store != nil {
		battles, err := m.store.RecentBattles(maxBattles)
		if err != nil {
			m.status = err.Error()
		} else {
			m.battles = battles
		}
	}

	columns := m.battleColumns()
	m.table = m.createTable(columns)
	rows := make([]table.Row, len(m.battles))
	for i, b := range m.battles {
		row := table.Row{
			b.ScenarioID,
			b.Source,
			humanize.Comma(int64(b.Turns)),
			humanize.RelTime(b.CreatedAt, m.now(), "ago", "from now"),
			humanize.RelTime(b.LastPlayed, m.now(), "ago", "from now"),
		}
		if len(columns) == 4 {
			row = append(row[:1], row[2:]...)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// openBattle shows the turns of a battle.
func (m *HistoryModel) openBattle(id string) {
	if m.store == nil {
		return
	}
	turns, err := m.store.Turns(id)
	if err != nil {
		m.status = err.Error()
		return
	}

	m.opened = id
	m.turns = turns
	m.table = m.createTable(turnColumns())
	rows := make([]table.Row, len(turns))
	for i, t := range turns {
		orders := 0
		for _, r := range t.Snapshot.Regiments {
			if r.HasOrder {
				orders++
			}
		}
		rows[i] = table.Row{
			humanize.Ordinal(t.Turn),
			humanize.Comma(int64(t.Ticks)),
			fmt.Sprintf("%d", orders),
			humanize.RelTime(t.CreatedAt, m.now(), "ago", "from now"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoBottom()
}

// selectedBattle returns the battle under the table cursor.
func (m HistoryModel) selectedBattle() (storage.BattleSummary, bool) {
	i := m.table.Cursor()
	if m.opened != "" || i < 0 || i >= len(m.battles) {
		return storage.BattleSummary{}, false
	}
	return m.battles[i], true
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.opened != "" {
				m.loadBattles()
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Open):
			if b, ok := m.selectedBattle(); ok {
				m.openBattle(b.ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if b, ok := m.selectedBattle(); ok && m.store != nil {
				if err := m.store.DeleteBattle(b.ID); err != nil {
					m.status = err.Error()
				} else {
					m.loadBattles()
					m.status = "Deleted battle " + shortID(b.ID)
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.opened != "" {
			m.openBattle(m.opened)
		} else {
			m.loadBattles()
		}
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "BATTLE HISTORY"
	if m.opened != "" {
		title = "BATTLE " + shortID(m.opened)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := boxStyle.Render(m.renderTableContent())
	if m.opened != "" && len(m.turns) > 0 && m.width >= minWidthForReport {
		report := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(reportWidth).
			Padding(0, 1).
			Render(m.turnReport())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", report)
	}
	b.WriteString(content)

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	empty := (m.opened == "" && len(m.battles) == 0) || (m.opened != "" && len(m.turns) == 0)
	if !empty {
		return m.table.View()
	}

	msg := "No battles recorded yet.\nPlay a scenario to start one!"
	if m.opened != "" {
		msg = "No turns resolved in this battle."
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4).
		Render(msg)
}

// turnReport renders the snapshot of the turn under the cursor.
func (m HistoryModel) turnReport() string {
	i := core.Clamp(m.table.Cursor(), 0, len(m.turns)-1)
	return BattleReport(m.turns[i].Snapshot)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// shortID abbreviates a battle UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
