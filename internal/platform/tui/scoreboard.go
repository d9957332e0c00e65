package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/funrun/internal/storage"
)

// Scoreboard layout constants
const (
	maxScores   = 100 // rows fetched per load
	loadTimeout = 5 * time.Second
)

// ScoreLister fetches leaderboard rows. bridge.Bridge and api.Client both
// satisfy it.
type ScoreLister interface {
	ListScores(ctx context.Context, limit int) ([]storage.Score, error)
}

// scoresMsg carries the result of a background leaderboard load.
type scoresMsg struct {
	scores []storage.Score
	err    error
}

// loadScoresCmd lists the leaderboard off the tick path.
func loadScoresCmd(l ScoreLister, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		scores, err := l.ListScores(ctx, limit)
		return scoresMsg{scores: scores, err: err}
	}
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("tab", "esc", "b"),
			key.WithHelp("tab/esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the leaderboard overlay shown between runs.
type ScoreboardModel struct {
	player  string // highlighted row
	scores  []storage.Score
	err     error
	loading bool
	table   table.Model
	help    help.Model
	keys    ScoreboardKeyMap
	width   int
	height  int
}

// NewScoreboardModel creates an empty scoreboard in the loading state.
func NewScoreboardModel(width, height int, player string) ScoreboardModel {
	m := ScoreboardModel{
		player:  player,
		loading: true,
		help:    help.New(),
		keys:    DefaultScoreboardKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table sized to the current window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 20},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 14},
	}

	// Give spare width to the name column.
	used := 6 + 20 + 8 + 14 + 12
	if spare := m.width - used; spare > 0 {
		columns[1].Width += min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
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

	return t
}

// SetSize resizes the table.
func (m ScoreboardModel) SetSize(width, height int) ScoreboardModel {
	m.width, m.height = width, height
	m.help.Width = width
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// SetLoading marks a reload in flight.
func (m ScoreboardModel) SetLoading() ScoreboardModel {
	m.loading = true
	return m
}

// SetScores stores a load result.
func (m ScoreboardModel) SetScores(scores []storage.Score, err error) ScoreboardModel {
	m.loading = false
	m.err = err
	if err == nil {
		m.scores = scores
	}
	m.updateTableRows()
	return m
}

// Keys returns the scoreboard bindings.
func (m ScoreboardModel) Keys() ScoreboardKeyMap {
	return m.keys
}

// Scores returns the rows currently shown.
func (m ScoreboardModel) Scores() []storage.Score {
	return m.scores
}

// updateTableRows copies scores into the table and moves the cursor to
// the player's own row when present.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	own := -1
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.User,
			fmt.Sprintf("%d", s.Score),
			s.Timestamp.Local().Format("Jan 02 15:04"),
		}
		if own < 0 && s.User == m.player {
			own = i
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	if own > 0 {
		m.table.SetCursor(own)
	}
}

// Update scrolls the table. Back, quit and refresh are handled by the caller.
func (m ScoreboardModel) Update(msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("LEADERBOARD"), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(boxStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or a status message.
func (m ScoreboardModel) renderTableContent() string {
	msgStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loading && len(m.scores) == 0:
		return msgStyle.Render("Loading scores...")
	case m.err != nil && len(m.scores) == 0:
		return msgStyle.Foreground(lipgloss.Color("9")).Render("Could not load scores.\n" + m.err.Error())
	case len(m.scores) == 0:
		return msgStyle.Render("No scores recorded yet.\nFinish a run to get on the board!")
	}
	return m.table.View()
}

// centerText pads each line of text so that it is centred in width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if pad := (width - lipgloss.Width(l)) / 2; pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + l
		}
	}
	return strings.Join(lines, "\n")
}
