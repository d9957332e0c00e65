package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/funrun/internal/assets"
	"github.com/vovakirdan/funrun/internal/config"
	"github.com/vovakirdan/funrun/internal/core"
	"github.com/vovakirdan/funrun/internal/render"
	"github.com/vovakirdan/funrun/internal/runner"
)

// Options configures one play session.
type Options struct {
	Runner    config.RunnerConfig
	Runtime   core.RuntimeConfig
	Sprites   assets.Set
	Persister runner.Persister // nil disables score writes
	Scores    ScoreLister      // nil hides the leaderboard
	HighScore int              // persisted best, read once at load
	Name      string           // prefilled into the name prompt
	SkipGate  bool             // confirm Name immediately
	SessionID string
	Logger    *log.Logger
}

// Model is the Bubble Tea model for one runner session.
type Model struct {
	game       *runner.Game
	screen     *core.Screen
	sprites    assets.Set
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	nameInput  textinput.Model
	board      ScoreboardModel
	lister     ScoreLister
	showBoard  bool
	gameState  core.GameState
	logger     *log.Logger
	quitting   bool
}

// NewModel creates the model and its game. The game starts idle behind
// the name prompt unless opts.SkipGate is set.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.SessionID != "" {
		logger = logger.With("session", opts.SessionID)
	}

	game := runner.New(opts.Runner, runner.NewRand(cfg.Seed))
	game.SetHighScore(opts.HighScore)
	game.SetPersister(opts.Persister)

	ti := textinput.New()
	ti.Placeholder = opts.Runner.Scoring.DefaultName
	ti.CharLimit = opts.Runner.Scoring.MaxNameLength
	ti.Width = 24
	ti.Prompt = "> "
	ti.SetValue(opts.Name)
	ti.Focus()

	if opts.SkipGate {
		game.ConfirmName(opts.Name)
		ti.Blur()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		sprites:    opts.Sprites,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		nameInput:  ti,
		board:      NewScoreboardModel(cfg.ScreenW, cfg.ScreenH, game.PlayerName()),
		lister:     opts.Scores,
		gameState:  game.State(),
		logger:     logger,
	}
}

// Init starts the tick loop and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case m.game.GateOpen():
			return m.handleGateKey(msg)
		case m.showBoard:
			return m.handleBoardKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.game.GateOpen() && !m.showBoard {
			if action := m.keyMapper.MapMouse(msg); action != core.ActionNone {
				m.inputFrame.Set(action)
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.board = m.board.SetSize(msg.Width, msg.Height)
		return m, nil

	case scoresMsg:
		if msg.err != nil {
			m.logger.Warn("could not load leaderboard", "err", msg.err)
		}
		m.board = m.board.SetScores(msg.scores, msg.err)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	if m.game.GateOpen() {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleGateKey routes keys to the name prompt until it is confirmed.
func (m Model) handleGateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapGateKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionConfirm {
		m.game.ConfirmName(m.nameInput.Value())
		m.nameInput.Blur()
		m.board = NewScoreboardModel(m.config.ScreenW, m.config.ScreenH, m.game.PlayerName())
		m.logger.Info("player joined", "player", m.game.PlayerName())
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleBoardKey drives the leaderboard overlay.
func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.board.Keys()
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		m.showBoard = false
		return m, nil
	case key.Matches(msg, keys.Refresh):
		m.board = m.board.SetLoading()
		return m, loadScoresCmd(m.lister, maxScores)
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

// handleKey maps gameplay keys onto the next input frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionScores:
		// The board is only reachable between runs.
		if m.lister == nil || m.game.Phase() == runner.PhaseRunning {
			return m, nil
		}
		m.showBoard = true
		m.board = m.board.SetLoading()
		return m, loadScoresCmd(m.lister, maxScores)
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.logEvents(result)
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) logEvents(r core.StepResult) {
	ev := r.Events
	if ev.RunStarted {
		m.logger.Debug("run started", "player", m.game.PlayerName())
	}
	if ev.RunEnded {
		m.logger.Info("run ended",
			"player", m.game.PlayerName(),
			"score", r.State.Score,
			"high_score", r.State.HighScore,
			"new_best", ev.NewHighScore,
		)
	}
}

// Game returns the session's game.
func (m Model) Game() *runner.Game {
	return m.game
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showBoard {
		return m.board.View()
	}

	if m.game.GateOpen() {
		return m.namePrompt()
	}

	render.Draw(m.screen, m.game.Snapshot(), m.sprites)
	return RenderScreen(m.screen)
}

// namePrompt is the modal shown until a name is confirmed.
func (m Model) namePrompt() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Render("PROMON FUNRUN")
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("enter to confirm, esc to quit")
	body := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		"Enter your name",
		m.nameInput.View(),
		"",
		hint,
	)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box)
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
