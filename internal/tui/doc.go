// Package tui implements the interactive wordlebuddy board.
//
// The board is a Bubble Tea model. It owns the grid and the input controller
// and is the only code that mutates them; solver calls run as tea.Cmd
// functions that work on serialized snapshots and report back with messages.
//
// # Screen
//
//	┌──────────────────────────────────────────────────────────┐
//	│ WORDLEBUDDY vdev  github.com/muurk/wordlebuddy           │
//	├──────────────────────────────────────────────────────────┤
//	│  ╭───╮ ╭───╮ ╭───╮ ╭───╮ ╭───╮     ╭──────────────────╮  │
//	│  │ C │ │ R │ │ A │ │ N │ │ E │     │ ANALYSIS         │  │
//	│  ╰───╯ ╰───╯ ╰───╯ ╰───╯ ╰───╯     │ Suggested Guess: │  │
//	│  ...                               ╰──────────────────╯  │
//	│   Q   W   E   R   T   Y   U   I   O   P                  │
//	│     A   S   D   F   G   H   J   K   L                    │
//	│   ⏎   Z   X   C   V   B   N   M   ⌫                      │
//	│             ⎵                                            │
//	├──────────────────────────────────────────────────────────┤
//	│ tab cycle colour • ctrl+o optimal guess • ? more         │
//	└──────────────────────────────────────────────────────────┘
//
// Every block sits at a fixed offset (see layout.go) so mouse clicks are
// mapped back to cells and keys arithmetically.
//
// # Replies
//
// Submissions, live analysis and auxiliary actions carry the board generation
// they were started in. ctrl+n bumps the generation, so late replies for the
// previous board are dropped. Live analysis replies are further filtered by
// sequence number: only the newest request may update the count.
package tui
