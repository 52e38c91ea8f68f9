// Package guess converts a board into the (word, feedback) records a solver
// understands.
package guess

import (
	"strings"
	"unicode"

	"github.com/muurk/wordlebuddy/internal/board"
)

// ErrorMarker is the feedback entry for a cell without a colour tag
const ErrorMarker = "error"

// Record is one serialized board row
type Record struct {
	Word     string   `json:"word"`
	Feedback []string `json:"feedback"`
}

// Submission is the snapshot handed to the validator and solver when the
// player presses Enter on a full row
type Submission struct {
	Row     int
	Word    string
	Records []Record

	// Untagged is the *UntaggedCellError from serializing, if any
	Untagged error
}

// Position identifies a cell
type Position struct {
	Row int
	Col int
}

// Serialize returns records for rows 0..upToRow inclusive. upToRow == -1
// yields no records.
//
// Lettered cells that carry no tag are still emitted with ErrorMarker; their
// positions are reported through a *UntaggedCellError alongside the records.
func Serialize(b *board.Board, upToRow int) ([]Record, error) {
	if upToRow < -1 || upToRow >= b.Rows() {
		return nil, &board.IndexError{Op: "serialize", Row: upToRow, Col: -1, Rows: b.Rows(), Cols: b.Cols()}
	}

	records := make([]Record, 0, upToRow+1)
	var untagged []Position

	for r := 0; r <= upToRow; r++ {
		cells, err := b.Row(r)
		if err != nil {
			return nil, err
		}

		var word strings.Builder
		feedback := make([]string, len(cells))
		for c, cell := range cells {
			if cell.HasLetter() {
				word.WriteRune(unicode.ToLower(cell.Letter))
			} else {
				word.WriteRune(' ')
			}

			if cell.Tag == board.TagNone {
				feedback[c] = ErrorMarker
				if cell.HasLetter() {
					untagged = append(untagged, Position{Row: r, Col: c})
				}
				continue
			}
			feedback[c] = cell.Tag.String()
		}

		records = append(records, Record{Word: word.String(), Feedback: feedback})
	}

	if len(untagged) > 0 {
		return records, &UntaggedCellError{Cells: untagged}
	}
	return records, nil
}

// SerializeAll serializes every row of the board
func SerializeAll(b *board.Board) ([]Record, error) {
	return Serialize(b, b.Rows()-1)
}

// SerializeUpTo serializes the committed rows plus the given row.
// It is the form used by submission and live analysis.
func SerializeUpTo(b *board.Board, row int) ([]Record, error) {
	return Serialize(b, row)
}

// Words returns the word column of records
func Words(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Word
	}
	return out
}

// Feedback returns the feedback column of records
func Feedback(records []Record) [][]string {
	out := make([][]string, len(records))
	for i, r := range records {
		fb := make([]string, len(r.Feedback))
		copy(fb, r.Feedback)
		out[i] = fb
	}
	return out
}
