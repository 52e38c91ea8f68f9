package input

import (
	"strings"
	"unicode"

	"github.com/muurk/wordlebuddy/internal/board"
	"github.com/muurk/wordlebuddy/internal/guess"
)

// State is the coarse controller state derived from the cursor row
type State int

const (
	// StateEntering means the cursor row is still on the board
	StateEntering State = iota
	// StateDone means every row has been committed
	StateDone
)

// String returns a human-readable name
func (s State) String() string {
	switch s {
	case StateEntering:
		return "entering"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// ResultKind tells the caller what a dispatch did
type ResultKind int

const (
	// ResultNone means the event was ignored
	ResultNone ResultKind = iota
	// ResultChanged means a letter was placed or cleared, or the cursor moved
	ResultChanged
	// ResultSubmit means a row is ready for the gateway
	ResultSubmit
	// ResultRecolor means a cell's tag changed
	ResultRecolor
)

// Result describes the effect of one event
type Result struct {
	Kind ResultKind

	// Cell is the cell touched by the event. Valid for ResultChanged when a
	// cell was written or cleared, and for ResultRecolor.
	Cell    guess.Position
	HasCell bool

	// Submission is set for ResultSubmit
	Submission *guess.Submission

	// Err carries an index error from a colour click
	Err error
}

// Controller is the guess-entry state machine. It is not safe for concurrent
// use; the UI event loop is its only caller.
type Controller struct {
	board   *board.Board
	pending bool
}

// NewController wraps b. The board's cursor is used as-is.
func NewController(b *board.Board) *Controller {
	return &Controller{board: b}
}

// Board returns the underlying board
func (c *Controller) Board() *board.Board {
	return c.board
}

// State reports whether entry is still possible
func (c *Controller) State() State {
	row, _ := c.board.Cursor()
	if row >= c.board.Rows() {
		return StateDone
	}
	return StateEntering
}

// Pending reports whether a submission is awaiting Accept or Reject
func (c *Controller) Pending() bool {
	return c.pending
}

// Dispatch applies ev and returns what changed
func (c *Controller) Dispatch(ev Event) Result {
	switch e := ev.(type) {
	case ColorClick:
		return c.colorClick(e)
	case LetterKey:
		if c.State() == StateDone {
			return Result{}
		}
		return c.letter(e.Letter)
	case Backspace:
		if c.State() == StateDone || c.pending {
			return Result{}
		}
		return c.backspace()
	case Enter:
		if c.State() == StateDone || c.pending {
			return Result{}
		}
		return c.enter()
	default:
		return Result{}
	}
}

func (c *Controller) letter(ch rune) Result {
	row, col := c.board.Cursor()
	if col >= c.board.Cols() {
		return Result{}
	}

	var err error
	switch {
	case ch == ' ':
		err = c.board.SetLetter(row, col, board.Placeholder)
	case isGuessLetter(ch):
		if err = c.board.SetLetter(row, col, ch); err == nil {
			err = c.board.SetTag(row, col, board.TagGray)
		}
	default:
		return Result{}
	}
	if err != nil {
		return Result{Err: err}
	}

	_ = c.board.MoveCursor(row, col+1)
	return Result{Kind: ResultChanged, Cell: guess.Position{Row: row, Col: col}, HasCell: true}
}

func (c *Controller) backspace() Result {
	row, col := c.board.Cursor()

	if col > 0 {
		col--
		if err := c.board.ClearCell(row, col); err != nil {
			return Result{Err: err}
		}
		_ = c.board.MoveCursor(row, col)
		return Result{Kind: ResultChanged, Cell: guess.Position{Row: row, Col: col}, HasCell: true}
	}

	if row > 0 {
		// Re-enter the previous row without touching its cells
		_ = c.board.MoveCursor(row-1, c.board.Cols())
		return Result{Kind: ResultChanged}
	}

	return Result{}
}

func (c *Controller) enter() Result {
	row, col := c.board.Cursor()
	if col != c.board.Cols() {
		return Result{}
	}
	if complete, err := c.board.IsRowComplete(row); err != nil || !complete {
		return Result{}
	}

	word, err := c.board.RowWord(row)
	if err != nil {
		return Result{Err: err}
	}

	records, err := guess.SerializeUpTo(c.board, row)
	if records == nil {
		return Result{Err: err}
	}

	c.pending = true
	return Result{
		Kind: ResultSubmit,
		Submission: &guess.Submission{
			Row:      row,
			Word:     strings.ToLower(word),
			Records:  records,
			Untagged: err,
		},
	}
}

func (c *Controller) colorClick(e ColorClick) Result {
	changed, err := c.board.CycleTag(e.Row, e.Col)
	if err != nil {
		return Result{Err: err}
	}
	if !changed {
		return Result{}
	}
	return Result{Kind: ResultRecolor, Cell: guess.Position{Row: e.Row, Col: e.Col}, HasCell: true}
}

// Accept commits the pending row and moves the cursor to the start of the next
func (c *Controller) Accept() {
	if !c.pending {
		return
	}
	c.pending = false

	row, _ := c.board.Cursor()
	_ = c.board.MoveCursor(row+1, 0)
}

// Reject drops the pending submission and returns the rejected row, or -1
// when nothing was pending. The cursor does not move.
func (c *Controller) Reject() int {
	if !c.pending {
		return -1
	}
	c.pending = false

	row, _ := c.board.Cursor()
	return row
}

// Reset clears the board and any pending submission
func (c *Controller) Reset() {
	c.pending = false
	c.board.Reset()
}

func isGuessLetter(ch rune) bool {
	return ch <= unicode.MaxASCII && unicode.IsLetter(ch)
}
