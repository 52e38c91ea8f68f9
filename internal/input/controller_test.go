package input

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/muurk/wordlebuddy/internal/board"
	"github.com/muurk/wordlebuddy/internal/guess"
)

func typeWord(c *Controller, word string) {
	for _, ch := range word {
		c.Dispatch(LetterKey{Letter: ch})
	}
}

func assertCursor(t *testing.T, b *board.Board, wantRow, wantCol int) {
	t.Helper()
	row, col := b.Cursor()
	if row != wantRow || col != wantCol {
		t.Errorf("Cursor() = (%d,%d), want (%d,%d)", row, col, wantRow, wantCol)
	}
}

func snapshot(b *board.Board) [][]board.Cell {
	out := make([][]board.Cell, b.Rows())
	for r := range out {
		out[r], _ = b.Row(r)
	}
	return out
}

func TestLetterKey_TypedWordSerializes(t *testing.T) {
	tests := []string{"h", "ha", "HAP", "happ", "Happy"}

	for _, word := range tests {
		t.Run(word, func(t *testing.T) {
			b := board.New(6, 5)
			c := NewController(b)
			typeWord(c, word)

			records, err := guess.SerializeUpTo(b, 0)
			if err != nil {
				t.Fatalf("SerializeUpTo() error = %v", err)
			}
			got := records[0].Word[:len(word)]
			want := lower(word)
			if got != want {
				t.Errorf("serialized word = %q, want %q", got, want)
			}
			assertCursor(t, b, 0, len(word))
		})
	}
}

func TestLetterKey_DefaultsToGray(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)

	res := c.Dispatch(LetterKey{Letter: 'q'})
	if res.Kind != ResultChanged || !res.HasCell || res.Cell != (guess.Position{Row: 0, Col: 0}) {
		t.Errorf("Dispatch() = %+v, want changed at (0,0)", res)
	}

	cell, _ := b.Cell(0, 0)
	if cell.Letter != 'Q' || cell.Tag != board.TagGray {
		t.Errorf("cell = %+v, want Q/gray", cell)
	}
}

func TestLetterKey_SpaceIsPlaceholder(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)

	c.Dispatch(LetterKey{Letter: ' '})

	cell, _ := b.Cell(0, 0)
	if !cell.IsPlaceholder() || cell.Tag != board.TagNone {
		t.Errorf("cell = %+v, want placeholder/none", cell)
	}
	assertCursor(t, b, 0, 1)
}

func TestLetterKey_IgnoresNonLetters(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)

	for _, ch := range []rune{'1', '!', '\t', 'é'} {
		if res := c.Dispatch(LetterKey{Letter: ch}); res.Kind != ResultNone {
			t.Errorf("Dispatch(%q).Kind = %v, want ResultNone", ch, res.Kind)
		}
	}
	assertCursor(t, b, 0, 0)
}

func TestLetterKey_FullRowIgnored(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "happy")

	before := snapshot(b)
	res := c.Dispatch(LetterKey{Letter: 'z'})

	if res.Kind != ResultNone {
		t.Errorf("Dispatch().Kind = %v, want ResultNone", res.Kind)
	}
	if diff := cmp.Diff(before, snapshot(b)); diff != "" {
		t.Errorf("board changed (-before +after):\n%s", diff)
	}
	assertCursor(t, b, 0, 5)
}

func TestBackspace_ClearsPreviousCell(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "ab")
	_, _ = b.CycleTag(0, 1)

	res := c.Dispatch(Backspace{})

	if res.Kind != ResultChanged || res.Cell != (guess.Position{Row: 0, Col: 1}) {
		t.Errorf("Dispatch(Backspace) = %+v, want changed at (0,1)", res)
	}
	cell, _ := b.Cell(0, 1)
	if !cell.IsBlank() || cell.Tag != board.TagNone {
		t.Errorf("cell (0,1) = %+v, want blank/none", cell)
	}
	assertCursor(t, b, 0, 1)
}

func TestBackspace_AtOriginIgnored(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)

	if res := c.Dispatch(Backspace{}); res.Kind != ResultNone {
		t.Errorf("Dispatch(Backspace).Kind = %v, want ResultNone", res.Kind)
	}
	assertCursor(t, b, 0, 0)
}

func TestBackspace_RowRollbackNeverMutates(t *testing.T) {
	for row := 1; row < 6; row++ {
		b := board.New(6, 5)
		c := NewController(b)
		for r := 0; r < row; r++ {
			typeWord(c, "crane")
			_, _ = b.CycleTag(r, 2)
			c.Dispatch(Enter{})
			c.Accept()
		}

		before := snapshot(b)
		res := c.Dispatch(Backspace{})

		if res.Kind != ResultChanged || res.HasCell {
			t.Errorf("row %d: Dispatch(Backspace) = %+v, want changed without cell", row, res)
		}
		if diff := cmp.Diff(before, snapshot(b)); diff != "" {
			t.Errorf("row %d: rollback mutated cells (-before +after):\n%s", row, diff)
		}
		assertCursor(t, b, row-1, 5)
	}
}

func TestEnter_IncompleteRowNoop(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "happ")

	res := c.Dispatch(Enter{})

	if res.Kind != ResultNone || res.Submission != nil {
		t.Errorf("Dispatch(Enter) = %+v, want no-op", res)
	}
	if c.Pending() {
		t.Error("Pending() = true after incomplete Enter")
	}
	assertCursor(t, b, 0, 4)
}

func TestEnter_PlaceholderRowNoop(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "ha py")

	if res := c.Dispatch(Enter{}); res.Kind != ResultNone {
		t.Errorf("Dispatch(Enter).Kind = %v, want ResultNone", res.Kind)
	}
	assertCursor(t, b, 0, 5)
}

func TestEnter_SubmitAndAccept(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "HAPPY")
	c.Dispatch(ColorClick{Row: 0, Col: 1}) // A: gray -> yellow
	c.Dispatch(ColorClick{Row: 0, Col: 4}) // Y: gray -> yellow
	c.Dispatch(ColorClick{Row: 0, Col: 4}) // Y: yellow -> green

	res := c.Dispatch(Enter{})
	if res.Kind != ResultSubmit || res.Submission == nil {
		t.Fatalf("Dispatch(Enter) = %+v, want submit", res)
	}

	want := &guess.Submission{
		Row:  0,
		Word: "happy",
		Records: []guess.Record{
			{Word: "happy", Feedback: []string{"gray", "yellow", "gray", "gray", "green"}},
		},
	}
	if diff := cmp.Diff(want, res.Submission); diff != "" {
		t.Errorf("Submission mismatch (-want +got):\n%s", diff)
	}
	if !c.Pending() {
		t.Error("Pending() = false after submit")
	}
	assertCursor(t, b, 0, 5)

	c.Accept()

	if c.Pending() {
		t.Error("Pending() = true after Accept")
	}
	assertCursor(t, b, 1, 0)
}

func TestEnter_DebouncedWhilePending(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "happy")

	first := c.Dispatch(Enter{})
	if first.Kind != ResultSubmit {
		t.Fatalf("first Enter kind = %v, want ResultSubmit", first.Kind)
	}

	if res := c.Dispatch(Enter{}); res.Kind != ResultNone {
		t.Errorf("second Enter kind = %v, want ResultNone", res.Kind)
	}
	if res := c.Dispatch(Backspace{}); res.Kind != ResultNone {
		t.Errorf("Backspace while pending kind = %v, want ResultNone", res.Kind)
	}
	assertCursor(t, b, 0, 5)
}

func TestReject_LeavesBoardUnchanged(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "xyzzy")
	c.Dispatch(ColorClick{Row: 0, Col: 0})

	before := snapshot(b)
	c.Dispatch(Enter{})
	row := c.Reject()

	if row != 0 {
		t.Errorf("Reject() = %d, want 0", row)
	}
	if c.Pending() {
		t.Error("Pending() = true after Reject")
	}
	if diff := cmp.Diff(before, snapshot(b)); diff != "" {
		t.Errorf("board changed by rejection (-before +after):\n%s", diff)
	}
	assertCursor(t, b, 0, 5)

	// The row can be edited and resubmitted
	c.Dispatch(Backspace{})
	typeWord(c, "e")
	if res := c.Dispatch(Enter{}); res.Kind != ResultSubmit || res.Submission.Word != "xyzze" {
		t.Errorf("resubmit = %+v, want submit of xyzze", res)
	}
}

func TestAcceptRejectWithoutPending(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "ab")

	c.Accept()
	if got := c.Reject(); got != -1 {
		t.Errorf("Reject() = %d, want -1", got)
	}
	assertCursor(t, b, 0, 2)
}

func TestEndToEnd_BackspaceAfterCommit(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "happy")
	c.Dispatch(ColorClick{Row: 0, Col: 0})
	c.Dispatch(Enter{})
	c.Accept()
	assertCursor(t, b, 1, 0)

	before := snapshot(b)
	c.Dispatch(Backspace{})

	assertCursor(t, b, 0, 5)
	if diff := cmp.Diff(before, snapshot(b)); diff != "" {
		t.Errorf("row 0 altered (-before +after):\n%s", diff)
	}
	word, _ := b.RowWord(0)
	if word != "HAPPY" {
		t.Errorf("RowWord(0) = %q, want HAPPY", word)
	}
}

func TestDoneState(t *testing.T) {
	b := board.New(2, 3)
	c := NewController(b)
	for i := 0; i < 2; i++ {
		typeWord(c, "cat")
		c.Dispatch(Enter{})
		c.Accept()
	}

	if c.State() != StateDone {
		t.Fatalf("State() = %v, want done", c.State())
	}

	for _, ev := range []Event{LetterKey{Letter: 'a'}, Backspace{}, Enter{}} {
		if res := c.Dispatch(ev); res.Kind != ResultNone {
			t.Errorf("Dispatch(%v) in done state kind = %v, want ResultNone", ev, res.Kind)
		}
	}
	assertCursor(t, b, 2, 0)

	// Colour clicks still work
	if res := c.Dispatch(ColorClick{Row: 1, Col: 2}); res.Kind != ResultRecolor {
		t.Errorf("ColorClick in done state kind = %v, want ResultRecolor", res.Kind)
	}

	c.Reset()
	if c.State() != StateEntering {
		t.Errorf("State() after Reset = %v, want entering", c.State())
	}
	assertCursor(t, b, 0, 0)
}

func TestColorClick(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "ab")

	tests := []struct {
		name     string
		ev       ColorClick
		wantKind ResultKind
		wantErr  bool
	}{
		{"lettered", ColorClick{Row: 0, Col: 0}, ResultRecolor, false},
		{"blank", ColorClick{Row: 0, Col: 3}, ResultNone, false},
		{"out of range", ColorClick{Row: 9, Col: 0}, ResultNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Dispatch(tt.ev)
			if res.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", res.Kind, tt.wantKind)
			}
			if (res.Err != nil) != tt.wantErr {
				t.Errorf("Err = %v, wantErr %v", res.Err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(res.Err, board.ErrIndex) {
				t.Errorf("Err = %v, want board.ErrIndex", res.Err)
			}
		})
	}
}

func TestColorClick_CycleLengthThree(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "a")

	for i := 0; i < 3; i++ {
		c.Dispatch(ColorClick{Row: 0, Col: 0})
	}

	cell, _ := b.Cell(0, 0)
	if cell.Tag != board.TagGray {
		t.Errorf("Tag after 3 cycles = %v, want gray", cell.Tag)
	}
}

func TestColorClick_AllowedWhilePending(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "happy")
	c.Dispatch(Enter{})

	if res := c.Dispatch(ColorClick{Row: 0, Col: 2}); res.Kind != ResultRecolor {
		t.Errorf("ColorClick while pending kind = %v, want ResultRecolor", res.Kind)
	}
	if !c.Pending() {
		t.Error("ColorClick cleared the pending flag")
	}
	assertCursor(t, b, 0, 5)
}

func TestEnter_UntaggedCellReported(t *testing.T) {
	b := board.New(6, 5)
	c := NewController(b)
	typeWord(c, "happy")
	_ = b.SetTag(0, 3, board.TagNone)

	res := c.Dispatch(Enter{})
	if res.Kind != ResultSubmit {
		t.Fatalf("Kind = %v, want ResultSubmit", res.Kind)
	}
	if !errors.Is(res.Submission.Untagged, guess.ErrUntaggedCell) {
		t.Errorf("Submission.Untagged = %v, want ErrUntaggedCell", res.Submission.Untagged)
	}
	if got := res.Submission.Records[0].Feedback[3]; got != guess.ErrorMarker {
		t.Errorf("feedback[3] = %q, want %q", got, guess.ErrorMarker)
	}
}

func lower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + ('a' - 'A')
		}
	}
	return string(out)
}
