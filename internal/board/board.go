package board

import (
	"strings"
	"unicode"
)

const (
	// DefaultRows is the number of guesses on a standard board
	DefaultRows = 6

	// DefaultCols is the number of letters per guess
	DefaultCols = 5

	// Blank marks an unfilled cell
	Blank rune = 0

	// Placeholder is the glyph for an explicit space typed into a guess.
	// It occupies a cell but is never a letter and never carries a tag.
	Placeholder rune = '⎵'
)

// Cell is a single grid position
type Cell struct {
	Letter rune
	Tag    Tag
}

// IsBlank reports whether the cell has not been filled
func (c Cell) IsBlank() bool {
	return c.Letter == Blank
}

// IsPlaceholder reports whether the cell holds the explicit space glyph
func (c Cell) IsPlaceholder() bool {
	return c.Letter == Placeholder
}

// HasLetter reports whether the cell holds a real letter (not blank, not the placeholder)
func (c Cell) HasLetter() bool {
	return !c.IsBlank() && !c.IsPlaceholder()
}

// Board owns the rows×cols grid and the entry cursor.
//
// A Board has exactly one writer. In the TUI that is the Bubble Tea event
// loop; network commands only ever see serialized snapshots.
type Board struct {
	rows  int
	cols  int
	cells [][]Cell

	cursorRow int
	cursorCol int
}

// New creates an all-blank board with the cursor at (0,0).
// Non-positive dimensions fall back to the defaults.
func New(rows, cols int) *Board {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}

	b := &Board{rows: rows, cols: cols}
	b.Reset()
	return b
}

// Reset returns the board to its creation state
func (b *Board) Reset() {
	b.cells = make([][]Cell, b.rows)
	for r := range b.cells {
		b.cells[r] = make([]Cell, b.cols)
	}
	b.cursorRow = 0
	b.cursorCol = 0
}

// Rows returns the number of rows
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns
func (b *Board) Cols() int { return b.cols }

// Cursor returns the next cell eligible for letter entry.
// Row == Rows() means every row has been committed.
func (b *Board) Cursor() (row, col int) {
	return b.cursorRow, b.cursorCol
}

// MoveCursor repositions the cursor. Row may equal Rows() and col may equal Cols().
func (b *Board) MoveCursor(row, col int) error {
	if row < 0 || row > b.rows {
		return &IndexError{Op: "move cursor", Row: row, Col: col, Rows: b.rows, Cols: b.cols}
	}
	if col < 0 || col > b.cols {
		return &IndexError{Op: "move cursor", Row: row, Col: col, Rows: b.rows, Cols: b.cols}
	}
	b.cursorRow = row
	b.cursorCol = col
	return nil
}

// Cell returns a copy of the cell at (row, col)
func (b *Board) Cell(row, col int) (Cell, error) {
	if err := b.check("get cell", row, col); err != nil {
		return Cell{}, err
	}
	return b.cells[row][col], nil
}

// SetLetter writes a letter into a cell. Letters are stored upper-case.
// Writing Blank or Placeholder clears the tag as a side effect.
func (b *Board) SetLetter(row, col int, ch rune) error {
	if err := b.check("set letter", row, col); err != nil {
		return err
	}

	cell := &b.cells[row][col]
	switch ch {
	case Blank, Placeholder:
		cell.Letter = ch
		cell.Tag = TagNone
	default:
		cell.Letter = unicode.ToUpper(ch)
	}
	return nil
}

// SetTag assigns a feedback tag. Tagging a cell without a letter forces TagNone.
func (b *Board) SetTag(row, col int, tag Tag) error {
	if err := b.check("set tag", row, col); err != nil {
		return err
	}
	if !tag.Valid() {
		return &TagError{Tag: tag}
	}

	cell := &b.cells[row][col]
	if !cell.HasLetter() {
		cell.Tag = TagNone
		return nil
	}
	cell.Tag = tag
	return nil
}

// ClearCell resets a cell to blank
func (b *Board) ClearCell(row, col int) error {
	return b.SetLetter(row, col, Blank)
}

// Row returns a copy of a full row
func (b *Board) Row(row int) ([]Cell, error) {
	if err := b.checkRow("get row", row); err != nil {
		return nil, err
	}
	out := make([]Cell, b.cols)
	copy(out, b.cells[row])
	return out, nil
}

// IsRowComplete reports whether every cell holds a letter and none holds the placeholder
func (b *Board) IsRowComplete(row int) (bool, error) {
	if err := b.checkRow("check row", row); err != nil {
		return false, err
	}
	for _, c := range b.cells[row] {
		if !c.HasLetter() {
			return false, nil
		}
	}
	return true, nil
}

// IsRowEmpty reports whether every cell in the row is blank
func (b *Board) IsRowEmpty(row int) (bool, error) {
	if err := b.checkRow("check row", row); err != nil {
		return false, err
	}
	for _, c := range b.cells[row] {
		if !c.IsBlank() {
			return false, nil
		}
	}
	return true, nil
}

// RowWord returns the row's letters as typed (upper-case, placeholder glyph
// kept, blank cells as spaces)
func (b *Board) RowWord(row int) (string, error) {
	if err := b.checkRow("row word", row); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, c := range b.cells[row] {
		if c.IsBlank() {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(c.Letter)
	}
	return sb.String(), nil
}

// LetterTags returns, for every letter on the board, the strongest tag seen
// (green beats yellow beats gray). Used to tint the on-screen keyboard.
func (b *Board) LetterTags() map[rune]Tag {
	best := make(map[rune]Tag)
	for _, row := range b.cells {
		for _, c := range row {
			if !c.HasLetter() {
				continue
			}
			if c.Tag.rank() > best[c.Letter].rank() {
				best[c.Letter] = c.Tag
			}
		}
	}
	return best
}

func (b *Board) check(op string, row, col int) error {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return &IndexError{Op: op, Row: row, Col: col, Rows: b.rows, Cols: b.cols}
	}
	return nil
}

func (b *Board) checkRow(op string, row int) error {
	if row < 0 || row >= b.rows {
		return &IndexError{Op: op, Row: row, Col: -1, Rows: b.rows, Cols: b.cols}
	}
	return nil
}
