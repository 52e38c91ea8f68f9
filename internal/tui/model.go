package tui

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/wordlebuddy/internal/board"
	"github.com/muurk/wordlebuddy/internal/effect"
	"github.com/muurk/wordlebuddy/internal/gateway"
	"github.com/muurk/wordlebuddy/internal/guess"
	"github.com/muurk/wordlebuddy/internal/input"
	"github.com/muurk/wordlebuddy/internal/logging"
	"github.com/muurk/wordlebuddy/internal/solver"
)

// Field labels
const (
	emptyLabel = "---"
	errorLabel = "Error"
)

// frameInterval is the effect clock period
const frameInterval = 30 * time.Millisecond

// Backend is everything the board needs from the solver service.
// *solver.Client implements it.
type Backend interface {
	gateway.Validator
	gateway.Solver
	gateway.Analyzer
	OptimalGuess(ctx context.Context) (string, error)
	RandomViableGuess(ctx context.Context) (string, error)
	RandomWord(ctx context.Context) (string, error)
	ToggleHardcore(ctx context.Context) error
}

// Options configures a Model
type Options struct {
	Rows int
	Cols int

	// ShowAnalysis opens the analysis panel on start
	ShowAnalysis bool

	// Mouse enables clicking cells and on-screen keys
	Mouse bool

	// AnalysisInterval and AnalysisBurst throttle live analysis requests
	AnalysisInterval time.Duration
	AnalysisBurst    int

	// SubmitTimeout bounds each phase of a submission (0 = client timeout only)
	SubmitTimeout time.Duration

	// Context is the parent of every solver call. Defaults to context.Background.
	Context context.Context

	// Now is the effect clock. Defaults to time.Now.
	Now func() time.Time
}

// Message types for async operations
type submitDoneMsg struct {
	gen     uint64
	outcome gateway.Outcome
}

type analysisMsg struct {
	gen    uint64
	result gateway.AnalysisResult
}

type auxAction int

const (
	auxOptimal auxAction = iota
	auxViable
	auxRandom
	auxHardcore
)

type auxMsg struct {
	gen    uint64
	action auxAction
	word   string
	err    error
}

type frameMsg time.Time

// Model is the interactive board. It is the single writer of the board and
// controller; solver calls run as commands that only see snapshots.
type Model struct {
	Width  int
	Height int

	board   *board.Board
	ctrl    *input.Controller
	effects *effect.Set
	gateway *gateway.Gateway
	backend Backend
	live    *gateway.LiveAnalyzer
	layout  layout
	ctx     context.Context
	now     func() time.Time

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	selRow, selCol int
	showAnalysis   bool
	mouse          bool
	hardcore       bool
	suggestion     string
	remaining      string
	status         string

	// busy counts outstanding auxiliary calls
	busy int
	// generation invalidates replies that belong to a board before ctrl+n
	generation uint64
	ticking    bool
	quitting   bool
}

// New creates the board model
func New(backend Backend, opts Options) Model {
	b := board.New(opts.Rows, opts.Cols)

	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	gw := gateway.New(backend, backend)
	gw.Timeout = opts.SubmitTimeout

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Model{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		board:        b,
		ctrl:         input.NewController(b),
		effects:      &effect.Set{},
		gateway:      gw,
		backend:      backend,
		live:         gateway.NewLiveAnalyzer(backend, opts.AnalysisInterval, opts.AnalysisBurst),
		layout:       layout{rows: b.Rows(), cols: b.Cols()},
		ctx:          opts.Context,
		now:          opts.Now,
		keys:         defaultKeyMap(),
		help:         help.New(),
		spinner:      s,
		showAnalysis: opts.ShowAnalysis,
		mouse:        opts.Mouse,
		suggestion:   emptyLabel,
		remaining:    emptyLabel,
	}
}

// Board returns the board owned by the model
func (m Model) Board() *board.Board {
	return m.board
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("wordlebuddy")
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case analysisMsg:
		m.handleAnalysis(msg)
		return m, nil

	case auxMsg:
		m.handleAux(msg)
		return m, nil

	case frameMsg:
		now := m.now()
		m.effects.Prune(now)
		if m.effects.Active(now) {
			return m, frameTick()
		}
		m.ticking = false
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Pending() && m.busy == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Analysis):
		m.showAnalysis = !m.showAnalysis
		return m, nil

	case key.Matches(msg, m.keys.Optimal):
		return m, m.startAux(auxOptimal)

	case key.Matches(msg, m.keys.Viable):
		return m, m.startAux(auxViable)

	case key.Matches(msg, m.keys.Random):
		return m, m.startAux(auxRandom)

	case key.Matches(msg, m.keys.Hardcore):
		return m, m.startAux(auxHardcore)

	case key.Matches(msg, m.keys.Clear):
		m.suggestion = emptyLabel
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.reset()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1, 0)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1, 0)
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.moveSelection(0, -1)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.moveSelection(0, 1)
		return m, nil

	case key.Matches(msg, m.keys.Cycle):
		return m, m.dispatch(input.ColorClick{Row: m.selRow, Col: m.selCol})
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m, m.dispatch(input.Enter{})
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m, m.dispatch(input.Backspace{})
	case tea.KeySpace:
		return m, m.dispatch(input.LetterKey{Letter: ' '})
	case tea.KeyRunes:
		var cmds []tea.Cmd
		for _, r := range msg.Runes {
			cmds = append(cmds, m.dispatch(input.LetterKey{Letter: r}))
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if row, col, ok := m.layout.cellAt(msg.X, msg.Y); ok {
		m.selRow, m.selCol = row, col
		return m, m.dispatch(input.ColorClick{Row: row, Col: col})
	}
	if k, ok := m.layout.keyAt(msg.X, msg.Y); ok {
		return m, m.dispatch(k.event())
	}
	return m, nil
}

// event converts an on-screen key into the matching input event
func (k screenKey) event() input.Event {
	switch k.kind {
	case keyEnter:
		return input.Enter{}
	case keyBackspace:
		return input.Backspace{}
	case keySpace:
		return input.LetterKey{Letter: ' '}
	default:
		return input.LetterKey{Letter: k.letter}
	}
}

// dispatch feeds an event to the controller and starts whatever the result
// calls for: an effect, a submission or a live analysis request
func (m *Model) dispatch(ev input.Event) tea.Cmd {
	res := m.ctrl.Dispatch(ev)
	if res.Err != nil {
		logging.Warn("Input event failed", zap.Stringer("event", ev), zap.Error(res.Err))
		return nil
	}

	now := m.now()
	switch res.Kind {
	case input.ResultChanged:
		if !res.HasCell {
			return nil
		}
		if _, typed := ev.(input.LetterKey); typed {
			m.effects.Pop(res.Cell.Row, res.Cell.Col, now)
			return m.startFrames()
		}
		m.effects.Touch(res.Cell.Row, res.Cell.Col)

	case input.ResultRecolor:
		m.effects.Touch(res.Cell.Row, res.Cell.Col)
		return m.analyze()

	case input.ResultSubmit:
		m.status = ""
		return tea.Batch(m.submit(*res.Submission), m.spinner.Tick)
	}
	return nil
}

func (m *Model) submit(sub guess.Submission) tea.Cmd {
	gw, ctx, gen := m.gateway, m.ctx, m.generation
	return func() tea.Msg {
		return submitDoneMsg{gen: gen, outcome: gw.Submit(ctx, sub)}
	}
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.generation {
		return m, nil
	}

	out := msg.outcome
	now := m.now()

	if !out.Accepted {
		if row := m.ctrl.Reject(); row >= 0 {
			m.effects.Flash(row, now)
		}
		if out.Reason != nil && !errors.Is(out.Reason, gateway.ErrRejected) {
			m.status = solver.ShortMessage(out.Reason)
		}
		return m, m.startFrames()
	}

	m.ctrl.Accept()
	m.effects.Pulse(out.Row, now)

	switch {
	case out.SolverErr != nil:
		m.suggestion = errorLabel
		m.remaining = errorLabel
		m.status = solver.ShortMessage(out.SolverErr)
	case out.Suggestion != nil:
		m.suggestion = out.Suggestion.Word
		m.remaining = strconv.Itoa(int(out.Suggestion.PossibleWordsLeft))
	}

	return m, m.startFrames()
}

// analyze pushes the whole board to the live analysis channel
func (m *Model) analyze() tea.Cmd {
	records, err := guess.SerializeAll(m.board)
	if records == nil {
		logging.Warn("Cannot serialize board for analysis", zap.Error(err))
		return nil
	}
	if err != nil {
		logging.Debug("Analysing board with untagged cells", zap.Error(err))
	}

	row, _ := m.board.Cursor()
	if row >= m.board.Rows() {
		row = m.board.Rows() - 1
	}

	live, ctx, gen := m.live, m.ctx, m.generation
	seq := live.Next()
	return func() tea.Msg {
		return analysisMsg{gen: gen, result: live.Analyze(ctx, seq, records, row)}
	}
}

func (m *Model) handleAnalysis(msg analysisMsg) {
	res := msg.result
	if msg.gen != m.generation || res.Stale || !m.live.IsCurrent(res.Seq) {
		return
	}
	if res.Err != nil {
		// Best effort: keep the last count
		return
	}
	m.remaining = strconv.Itoa(res.Remaining)
}

func (m *Model) startAux(action auxAction) tea.Cmd {
	m.busy++
	backend, ctx, gen := m.backend, m.ctx, m.generation

	call := func() tea.Msg {
		msg := auxMsg{gen: gen, action: action}
		switch action {
		case auxOptimal:
			msg.word, msg.err = backend.OptimalGuess(ctx)
		case auxViable:
			msg.word, msg.err = backend.RandomViableGuess(ctx)
		case auxRandom:
			msg.word, msg.err = backend.RandomWord(ctx)
		case auxHardcore:
			msg.err = backend.ToggleHardcore(ctx)
		}
		return msg
	}
	return tea.Batch(call, m.spinner.Tick)
}

func (m *Model) handleAux(msg auxMsg) {
	if msg.gen != m.generation {
		return
	}
	if m.busy > 0 {
		m.busy--
	}

	if msg.err != nil {
		logging.Warn("Auxiliary solver call failed", zap.Int("action", int(msg.action)), zap.Error(msg.err))
		m.status = solver.ShortMessage(msg.err)
		if msg.action != auxHardcore {
			m.suggestion = errorLabel
		}
		return
	}

	if msg.action == auxHardcore {
		m.hardcore = !m.hardcore
		return
	}
	m.status = ""
	m.suggestion = msg.word
}

func (m *Model) moveSelection(dRow, dCol int) {
	m.selRow = clamp(m.selRow+dRow, 0, m.board.Rows()-1)
	m.selCol = clamp(m.selCol+dCol, 0, m.board.Cols()-1)
}

func (m *Model) reset() {
	m.generation++
	m.ctrl.Reset()
	m.effects.Clear()
	m.live.Next()
	m.suggestion = emptyLabel
	m.remaining = emptyLabel
	m.status = ""
	m.busy = 0
	m.selRow, m.selCol = 0, 0
}

func (m *Model) startFrames() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
