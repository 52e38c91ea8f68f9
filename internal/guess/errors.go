package guess

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUntaggedCell is matched by every *UntaggedCellError via errors.Is
var ErrUntaggedCell = errors.New("lettered cell has no colour tag")

// UntaggedCellError lists lettered cells serialized with ErrorMarker
type UntaggedCellError struct {
	Cells []Position
}

// Error implements the error interface
func (e *UntaggedCellError) Error() string {
	parts := make([]string, len(e.Cells))
	for i, p := range e.Cells {
		parts[i] = fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%d untagged cell(s): %s", len(e.Cells), strings.Join(parts, " "))
}

// Is lets errors.Is(err, ErrUntaggedCell) match
func (e *UntaggedCellError) Is(target error) bool {
	return target == ErrUntaggedCell
}
