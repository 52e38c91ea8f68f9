package input

import "fmt"

// Event is one keyboard or pointer action. The set of events is closed.
type Event interface {
	isEvent()
	fmt.Stringer
}

// LetterKey types a letter. A space rune is the explicit blank input.
type LetterKey struct {
	Letter rune
}

// Backspace deletes the previous cell or steps back into the previous row
type Backspace struct{}

// Enter submits a full row
type Enter struct{}

// ColorClick cycles the feedback colour of a cell
type ColorClick struct {
	Row int
	Col int
}

func (LetterKey) isEvent()  {}
func (Backspace) isEvent()  {}
func (Enter) isEvent()      {}
func (ColorClick) isEvent() {}

func (e LetterKey) String() string  { return fmt.Sprintf("letter(%q)", e.Letter) }
func (Backspace) String() string    { return "backspace" }
func (Enter) String() string        { return "enter" }
func (e ColorClick) String() string { return fmt.Sprintf("color(%d,%d)", e.Row, e.Col) }
