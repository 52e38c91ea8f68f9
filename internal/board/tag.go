package board

import "fmt"

// Tag is the feedback colour a player assigns to a lettered cell
type Tag int

const (
	// TagNone is the initial/cleared state. It is never a cycle target.
	TagNone Tag = iota
	TagGray
	TagYellow
	TagGreen
)

// String returns the wire name of the tag ("none" for TagNone)
func (t Tag) String() string {
	switch t {
	case TagNone:
		return "none"
	case TagGray:
		return "gray"
	case TagYellow:
		return "yellow"
	case TagGreen:
		return "green"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Valid reports whether t is one of the four known tags
func (t Tag) Valid() bool {
	return t >= TagNone && t <= TagGreen
}

// rank orders tags for keyboard tinting
func (t Tag) rank() int {
	if !t.Valid() {
		return 0
	}
	return int(t)
}

// NextTag returns the tag that follows t when a player cycles a lettered cell:
// None → Gray → Yellow → Green → Gray → …
func NextTag(t Tag) Tag {
	switch t {
	case TagGray:
		return TagYellow
	case TagYellow:
		return TagGreen
	default:
		// TagNone, TagGreen and anything unknown land on gray
		return TagGray
	}
}

// CycleTag advances the tag of a lettered cell and reports whether it changed.
// On a blank or placeholder cell it forces TagNone and returns false.
func (b *Board) CycleTag(row, col int) (bool, error) {
	if err := b.check("cycle tag", row, col); err != nil {
		return false, err
	}

	cell := &b.cells[row][col]
	if !cell.HasLetter() {
		cell.Tag = TagNone
		return false, nil
	}
	cell.Tag = NextTag(cell.Tag)
	return true, nil
}
