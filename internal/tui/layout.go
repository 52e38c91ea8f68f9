package tui

// Screen geometry. Every block is left-aligned at a fixed offset so a mouse
// position maps back to a cell or key without inspecting rendered output.
const (
	containerLeft = 1 // outer border
	containerTop  = 3 // outer border + header text + header rule

	marginLeft = 2
	marginTop  = 1

	cellWidth  = 5 // border + 3 inner + border
	cellHeight = 3
	cellGap    = 1

	keyWidth = 3
	keyGap   = 1

	spaceKeyIndent = 10
	spaceKeyWidth  = 19

	panelGap = 4
)

// keyKind identifies an on-screen keyboard key
type keyKind int

const (
	keyLetter keyKind = iota
	keyEnter
	keyBackspace
	keySpace
)

// screenKey is one key of the on-screen keyboard
type screenKey struct {
	kind   keyKind
	letter rune
	label  string
}

// keyboardRows is the QWERTY layout with enter and backspace on the bottom row
var keyboardRows = [][]screenKey{
	letterKeys("QWERTYUIOP"),
	letterKeys("ASDFGHJKL"),
	append(append([]screenKey{{kind: keyEnter, label: "⏎"}}, letterKeys("ZXCVBNM")...), screenKey{kind: keyBackspace, label: "⌫"}),
}

// keyboardIndent is the left indent of each keyboard row
var keyboardIndent = []int{0, 2, 0}

func letterKeys(s string) []screenKey {
	keys := make([]screenKey, 0, len(s))
	for _, r := range s {
		keys = append(keys, screenKey{kind: keyLetter, letter: r, label: string(r)})
	}
	return keys
}

// layout computes screen positions for a board of the given size
type layout struct {
	rows, cols int
}

// gridOrigin returns the screen position of the top-left corner of cell (0, 0)
func (l layout) gridOrigin() (x, y int) {
	return containerLeft + marginLeft, containerTop + marginTop
}

func (l layout) gridWidth() int {
	return l.cols*cellWidth + (l.cols-1)*cellGap
}

func (l layout) gridHeight() int {
	return l.rows * cellHeight
}

func (l layout) keyboardWidth() int {
	return len(keyboardRows[0])*keyWidth + (len(keyboardRows[0])-1)*keyGap
}

// leftWidth is the width of the column holding the grid and keyboard
func (l layout) leftWidth() int {
	if w := l.gridWidth(); w > l.keyboardWidth() {
		return w
	}
	return l.keyboardWidth()
}

// keyboardOrigin returns the screen position of the first keyboard row.
// One blank line separates the grid from the keyboard.
func (l layout) keyboardOrigin() (x, y int) {
	gx, gy := l.gridOrigin()
	return gx, gy + l.gridHeight() + 1
}

// cellAt maps a screen position to a grid cell. Gaps between cells miss.
func (l layout) cellAt(x, y int) (row, col int, ok bool) {
	gx, gy := l.gridOrigin()
	dx, dy := x-gx, y-gy
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}

	col = dx / (cellWidth + cellGap)
	if dx%(cellWidth+cellGap) >= cellWidth {
		return 0, 0, false
	}
	row = dy / cellHeight

	if row >= l.rows || col >= l.cols {
		return 0, 0, false
	}
	return row, col, true
}

// keyAt maps a screen position to an on-screen key
func (l layout) keyAt(x, y int) (screenKey, bool) {
	kx, ky := l.keyboardOrigin()
	line := y - ky

	if line == len(keyboardRows) {
		dx := x - kx - spaceKeyIndent
		if dx >= 0 && dx < spaceKeyWidth {
			return screenKey{kind: keySpace, label: "⎵"}, true
		}
		return screenKey{}, false
	}
	if line < 0 || line > len(keyboardRows) {
		return screenKey{}, false
	}

	dx := x - kx - keyboardIndent[line]
	if dx < 0 || dx%(keyWidth+keyGap) >= keyWidth {
		return screenKey{}, false
	}
	i := dx / (keyWidth + keyGap)
	if i >= len(keyboardRows[line]) {
		return screenKey{}, false
	}
	return keyboardRows[line][i], true
}
