// Package tui provides the Bubble Tea screens of the game. The game itself
// is played on a line console; the TUI is used for the run history viewer.
package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/chimera/internal/storage"
)

// History layout constants
const (
	maxRuns       = 100
	runTimeFormat = "Jan 02 15:04:05"
	openRunLabel  = "in progress"
)

// HistorySource is the part of the run journal the viewer reads.
type HistorySource interface {
	RecentRuns(limit int) ([]storage.Run, error)
	RunTransitions(runID string) ([]storage.TransitionEntry, error)
	GetStats() (*storage.Stats, error)
}

// HistoryKeyMap defines the key bindings for the history viewer.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
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
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "transitions"),
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

// HistoryModel is the Bubble Tea model for the run history screen. It
// lists recent runs and drills into one run's state transitions.
type HistoryModel struct {
	source      HistorySource
	runs        []storage.Run
	transitions []storage.TransitionEntry
	selected    *storage.Run // Set while showing a run's transitions
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	err         error
	width       int
	height      int
	quitting    bool
}

// NewHistoryModel creates the viewer and loads the most recent runs.
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
	m.loadRuns()
	return m
}

func (m *HistoryModel) loadRuns() {
	m.selected = nil
	m.transitions = nil
	m.runs, m.err = m.source.RecentRuns(maxRuns)
	m.table = m.newTable(runColumns(), runRows(m.runs))
}

func (m *HistoryModel) loadTransitions(run storage.Run) {
	m.selected = &run
	m.transitions, m.err = m.source.RunTransitions(run.ID)
	m.table = m.newTable(transitionColumns(), transitionRows(m.transitions))
}

func (m HistoryModel) newTable(columns []table.Column, rows []table.Row) table.Model {
	height := m.height - 8 // Leave room for title, help and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
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

func runColumns() []table.Column {
	return []table.Column{
		{Title: "Run", Width: 8},
		{Title: "Story", Width: 10},
		{Title: "Origin", Width: 14},
		{Title: "Started", Width: 16},
		{Title: "Ended", Width: 16},
		{Title: "Steps", Width: 6},
	}
}

func runRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row(runFields(r))
	}
	return rows
}

func runFields(r storage.Run) []string {
	ended := openRunLabel
	if !r.EndedAt.IsZero() {
		ended = r.EndedAt.Format(runTimeFormat)
		if r.EndReason != "" {
			ended += " (" + r.EndReason + ")"
		}
	}
	return []string{
		shortID(r.ID),
		r.StoryID,
		r.Origin,
		r.StartedAt.Format(runTimeFormat),
		ended,
		strconv.Itoa(r.Transitions),
	}
}

func transitionColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "From", Width: 14},
		{Title: "To", Width: 14},
		{Title: "At", Width: 16},
	}
}

func transitionRows(entries []storage.TransitionEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			strconv.Itoa(e.Seq),
			e.From.String(),
			e.To.String(),
			e.At.Format(runTimeFormat),
		}
	}
	return rows
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history viewer.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.selected == nil {
				m.quitting = true
				return m, tea.Quit
			}
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if m.selected == nil && len(m.runs) > 0 {
				m.loadTransitions(m.runs[m.table.Cursor()])
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.selected != nil {
			m.table = m.newTable(transitionColumns(), transitionRows(m.transitions))
		} else {
			m.table = m.newTable(runColumns(), runRows(m.runs))
		}
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history viewer.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RUN HISTORY"
	if m.selected != nil {
		title = fmt.Sprintf("RUN %s - %s", shortID(m.selected.ID), m.selected.StoryID)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not read the journal:\n" + m.err.Error())
	case m.selected == nil && len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nStart a new game to begin the journal.")
	case m.selected != nil && len(m.transitions) == 0:
		return emptyStyle.Render("This run has no recorded transitions.")
	}
	return m.table.View()
}

// Viewing returns the run whose transitions are shown, or nil on the run list.
func (m HistoryModel) Viewing() *storage.Run {
	return m.selected
}

// IsQuitting returns true once the user has left the viewer.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history viewer full screen.
func RunHistory(source HistorySource, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// WriteHistory prints recent runs as a plain table with a journal summary
// line, followed by the transitions of each run when withTransitions is set.
func WriteHistory(w io.Writer, source HistorySource, limit int, withTransitions bool) error {
	runs, err := source.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded yet.")
		return err
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers("RUN", "STORY", "ORIGIN", "STARTED", "ENDED", "STEPS")
	for _, r := range runs {
		t.Row(runFields(r)...)
	}
	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}

	stats, err := source.GetStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nRuns: %d  New games: %d  Last played: %s\n",
		stats.Runs, stats.NewGames, stats.LastPlayed.Format(runTimeFormat))

	if !withTransitions {
		return nil
	}
	for _, r := range runs {
		entries, err := source.RunTransitions(r.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\nRun %s\n", r.ID)
		for _, e := range entries {
			fmt.Fprintf(w, "  %3d  %-13s -> %-13s  %s\n", e.Seq, e.From, e.To, e.At.Format(runTimeFormat))
		}
	}
	return nil
}
