package board

import (
	"errors"
	"fmt"
)

// ErrIndex is matched by every *IndexError via errors.Is
var ErrIndex = errors.New("board index out of range")

// IndexError reports access to a cell or row outside the grid
type IndexError struct {
	Op   string
	Row  int
	Col  int // -1 for row-level operations
	Rows int
	Cols int
}

// Error implements the error interface
func (e *IndexError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("%s: row %d out of range [0,%d)", e.Op, e.Row, e.Rows)
	}
	return fmt.Sprintf("%s: cell (%d,%d) out of range [0,%d)x[0,%d)", e.Op, e.Row, e.Col, e.Rows, e.Cols)
}

// Is lets errors.Is(err, ErrIndex) match
func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}

// TagError reports an attempt to store an unknown tag value
type TagError struct {
	Tag Tag
}

// Error implements the error interface
func (e *TagError) Error() string {
	return fmt.Sprintf("unknown tag %s", e.Tag)
}
