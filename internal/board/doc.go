// Package board holds the letter grid of a Wordle helper session.
//
// A Board is a fixed rows×cols array of cells plus a single entry cursor.
// Each cell carries a letter and a feedback tag:
//
//	Letter  Tag
//	------  ----------------------------
//	Blank   always TagNone
//	⎵       always TagNone (explicit space)
//	A..Z    TagGray, TagYellow or TagGreen
//
// # Invariants
//
// Clearing a letter always clears its tag. Tagging a cell without a letter
// forces TagNone. Every index is range-checked; out-of-range calls return an
// *IndexError and leave the grid untouched.
//
// # Colour cycling
//
// Players tag cells by cycling them:
//
//	None → Gray → Yellow → Green → Gray → …
//
// NextTag is the pure transition; (*Board).CycleTag applies it to a cell and is
// a no-op (forcing TagNone) on cells without a letter.
//
// # Cursor
//
// The cursor (row, col) is the next cell eligible for entry. Row may equal
// Rows() once every row has been committed, and col may equal Cols() when the
// current row is full. Movement rules live in package input; this package only
// bounds-checks positions.
package board
