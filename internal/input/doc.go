// Package input implements the guess-entry state machine.
//
// A Controller consumes Events (LetterKey, Backspace, Enter, ColorClick) one
// at a time through Dispatch and mutates the board it wraps. The transition
// table, for a board of R rows and C columns with the cursor at (row, col):
//
//	Event       Condition                     Effect
//	----------  ----------------------------  -----------------------------------
//	LetterKey   col < C                       cell = letter/gray (or ⎵/none), col++
//	LetterKey   col == C                      ignored
//	Backspace   col > 0, not pending          col--, cell cleared
//	Backspace   col == 0, row > 0             cursor = (row-1, C), no cell touched
//	Enter       col == C, row complete,       pending, ResultSubmit
//	            not pending
//	ColorClick  any state                     tag cycled on lettered cells
//
// Once row == R the controller is done and only ColorClick is honoured.
//
// Submissions are two-step: Dispatch(Enter) marks the controller pending and
// hands back a snapshot; the caller later calls Accept (cursor moves to the
// next row) or Reject (cursor stays). While pending, Enter and Backspace are
// ignored.
package input
