package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/quantum-squares/internal/match"
)

// History layout constants
const (
	maxRows       = 100 // rows loaded per tab
	minTableWidth = 50
)

// HistorySource provides the matches finished in this process.
type HistorySource interface {
	Recent(limit int) []match.Result
	Standings(limit int) []match.Standing
}

type historyTab int

const (
	tabRecent historyTab = iota
	tabLeaders
)

func (t historyTab) String() string {
	if t == tabLeaders {
		return "Leaderboard"
	}
	return "Matches"
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
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
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "switch view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "switch view"),
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

// HistoryModel shows the matches finished since start-up and the standings
// they add up to.
type HistoryModel struct {
	source    HistorySource
	tab       historyTab
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	rows      []table.Row
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates the history screen on the recent matches tab.
func NewHistoryModel(source HistorySource, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		source: source,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	return m
}

func (m *HistoryModel) columns() []table.Column {
	if m.tab == tabLeaders {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: 16},
			{Title: "Wins", Width: 6},
			{Title: "Played", Width: 8},
			{Title: "Points", Width: 8},
		}
	}
	return []table.Column{
		{Title: "Time", Width: 8},
		{Title: "Mode", Width: 9},
		{Title: "Board", Width: 6},
		{Title: "Winner", Width: 12},
		{Title: "Scores", Width: max(m.width-4-8-9-6-12-8-12-14, minTableWidth-40)},
		{Title: "End", Width: 8},
	}
}

// load refreshes the rows of the current tab.
func (m *HistoryModel) load() {
	m.rows = nil
	if m.source != nil {
		switch m.tab {
		case tabRecent:
			m.rows = matchRows(m.source.Recent(maxRows))
		case tabLeaders:
			m.rows = standingRows(m.source.Standings(maxRows))
		}
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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
	m.table = t
}

func matchRows(results []match.Result) []table.Row {
	rows := make([]table.Row, len(results))
	for i, r := range results {
		scores := make([]string, len(r.Players))
		for j, p := range r.Players {
			scores[j] = fmt.Sprintf("%s %d", p, r.Scores[p])
		}
		rows[i] = table.Row{
			r.StartedAt.Local().Format("15:04:05"),
			r.Mode.String(),
			fmt.Sprintf("%dx%d", r.Size, r.Size),
			string(r.Winner),
			strings.Join(scores, ", "),
			r.Reason.String(),
		}
	}
	return rows
}

func standingRows(standings []match.Standing) []table.Row {
	rows := make([]table.Row, len(standings))
	for i, s := range standings {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			string(s.Player),
			fmt.Sprintf("%d", s.Wins),
			fmt.Sprintf("%d", s.Played),
			fmt.Sprintf("%d", s.Points),
		}
	}
	return rows
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
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.PrevTab):
			m.tab = 1 - m.tab
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.load()
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
	b.WriteString("\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(boxStyle.Render(m.content()), m.width))

	b.WriteString("\n")
	b.WriteString(menuDim.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) tabs() string {
	labels := make([]string, 0, 2)
	for _, t := range []historyTab{tabRecent, tabLeaders} {
		if t == m.tab {
			labels = append(labels, menuActive.Padding(0, 1).Render(t.String()))
		} else {
			labels = append(labels, menuDim.Render(" "+t.String()+" "))
		}
	}
	return strings.Join(labels, "  ")
}

func (m HistoryModel) content() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	if len(m.rows) == 0 {
		return empty.Render("No matches finished yet.\nFinish a game to see it here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}
