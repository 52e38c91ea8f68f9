package tui

import (
	"net/http"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/wordlebuddy/internal/board"
	"github.com/muurk/wordlebuddy/internal/effect"
	"github.com/muurk/wordlebuddy/internal/solver"
	"github.com/muurk/wordlebuddy/internal/solver/solvertest"
)

const (
	checkPath  = "/check_word_viability"
	submitPath = "/submit_guess_data"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestModel(t *testing.T) (Model, *solvertest.Server, *clock) {
	t.Helper()
	srv := solvertest.New(t)
	client := solver.NewClient(srv.URL)
	client.SetRetry(0, 0)

	clk := &clock{now: t0}
	m := New(client, Options{
		Rows:         6,
		Cols:         5,
		ShowAnalysis: true,
		Mouse:        true,
		Now:          clk.Now,
	})
	return m, srv, clk
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeWord(m Model, word string) Model {
	for _, r := range word {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, kt tea.KeyType) (Model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: kt})
}

func click(m Model, x, y int) (Model, tea.Cmd) {
	return update(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// drive runs cmd and feeds every solver reply back into m until nothing is
// left. Frame and spinner ticks are dropped.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case submitDoneMsg, analysisMsg, auxMsg:
			var next tea.Cmd
			m, next = update(m, msg)
			queue = append(queue, next)
		}
	}
	return m
}

func assertCursor(t *testing.T, m Model, wantRow, wantCol int) {
	t.Helper()
	row, col := m.Board().Cursor()
	if row != wantRow || col != wantCol {
		t.Errorf("Cursor() = (%d, %d), want (%d, %d)", row, col, wantRow, wantCol)
	}
}

func TestSubmit_AcceptedShowsSuggestion(t *testing.T) {
	m, srv, _ := newTestModel(t)

	m = typeWord(m, "happy")
	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("Enter on a full row returned no command")
	}
	if !m.ctrl.Pending() {
		t.Error("Pending() = false after Enter")
	}
	m = drive(t, m, cmd)

	assertCursor(t, m, 1, 0)
	if m.ctrl.Pending() {
		t.Error("Pending() = true after the reply")
	}

	// Every letter defaults to gray, which leaves only "toned"
	if m.suggestion != "toned" {
		t.Errorf("suggestion = %q, want %q", m.suggestion, "toned")
	}
	if m.remaining != "1" {
		t.Errorf("remaining = %q, want %q", m.remaining, "1")
	}

	submits := srv.Submits()
	if len(submits) != 1 || len(submits[0].Words) != 1 || submits[0].Words[0] != "happy" {
		t.Errorf("Submits() = %+v, want one submission of happy", submits)
	}

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Suggested Guess: toned") {
		t.Errorf("view does not show the suggestion:\n%s", view)
	}
	if !strings.Contains(view, "Possible Words Left: 1") {
		t.Errorf("view does not show the remaining count:\n%s", view)
	}
}

func TestSubmit_IncompleteRowIgnored(t *testing.T) {
	m, srv, _ := newTestModel(t)

	m = typeWord(m, "happ")
	m, cmd := press(m, tea.KeyEnter)
	if cmd != nil {
		m = drive(t, m, cmd)
	}

	assertCursor(t, m, 0, 4)
	if got := srv.Calls(checkPath); got != 0 {
		t.Errorf("validator calls = %d, want 0", got)
	}
}

func TestSubmit_PlaceholderRowIgnored(t *testing.T) {
	m, srv, _ := newTestModel(t)

	m = typeWord(m, "hap")
	m, _ = press(m, tea.KeySpace)
	m = typeWord(m, "y")
	m, cmd := press(m, tea.KeyEnter)
	if cmd != nil {
		m = drive(t, m, cmd)
	}

	assertCursor(t, m, 0, 5)
	if got := srv.Calls(checkPath); got != 0 {
		t.Errorf("validator calls = %d, want 0", got)
	}
	cell, _ := m.Board().Cell(0, 3)
	if !cell.IsPlaceholder() {
		t.Errorf("cell (0,3) = %+v, want placeholder", cell)
	}
}

func TestSubmit_RejectedFlashesAndRestores(t *testing.T) {
	m, srv, clk := newTestModel(t)

	m = typeWord(m, "xxxxx")
	m, cmd := press(m, tea.KeyEnter)
	m = drive(t, m, cmd)

	assertCursor(t, m, 0, 5)
	if m.ctrl.Pending() {
		t.Error("Pending() = true after rejection")
	}
	if got := srv.Calls(submitPath); got != 0 {
		t.Errorf("solver calls = %d, want 0", got)
	}
	if m.status != "" {
		t.Errorf("status = %q, want empty for a plain rejection", m.status)
	}

	for col := 0; col < 5; col++ {
		if f := m.effects.Frame(0, col, clk.Now()); f.Background != effect.FlashColor {
			t.Errorf("col %d: background = %q, want flash", col, f.Background)
		}
	}

	clk.Advance(360 * time.Millisecond)
	m, _ = update(m, frameMsg(clk.Now()))
	if n := m.effects.Len(); n != 0 {
		t.Errorf("effects.Len() after restore = %d, want 0", n)
	}

	word, _ := m.Board().RowWord(0)
	if word != "XXXXX" {
		t.Errorf("RowWord(0) = %q, want letters kept", word)
	}
	for col := 0; col < 5; col++ {
		cell, _ := m.Board().Cell(0, col)
		if cell.Tag != board.TagGray {
			t.Errorf("col %d: tag = %v, want gray kept", col, cell.Tag)
		}
	}

	// The row is editable again
	m, _ = press(m, tea.KeyBackspace)
	assertCursor(t, m, 0, 4)
}

func TestSubmit_EnterIgnoredWhilePending(t *testing.T) {
	m, srv, _ := newTestModel(t)

	m = typeWord(m, "happy")
	m, first := press(m, tea.KeyEnter)
	m, second := press(m, tea.KeyEnter)
	if second != nil {
		t.Error("second Enter while pending returned a command")
	}
	m, _ = press(m, tea.KeyBackspace)
	assertCursor(t, m, 0, 5)

	m = drive(t, m, first)
	if got := srv.Calls(checkPath); got != 1 {
		t.Errorf("validator calls = %d, want 1", got)
	}
	assertCursor(t, m, 1, 0)
}

func TestSubmit_SolverFailureShowsError(t *testing.T) {
	m, srv, _ := newTestModel(t)
	srv.FailWith(submitPath, http.StatusInternalServerError)

	m = typeWord(m, "happy")
	m, cmd := press(m, tea.KeyEnter)
	m = drive(t, m, cmd)

	assertCursor(t, m, 1, 0)
	if m.suggestion != errorLabel || m.remaining != errorLabel {
		t.Errorf("labels = (%q, %q), want both %q", m.suggestion, m.remaining, errorLabel)
	}
	if m.status == "" {
		t.Error("status is empty, want the solver failure")
	}
}

func TestSubmit_ValidatorFailureRejects(t *testing.T) {
	m, srv, clk := newTestModel(t)
	srv.FailWith(checkPath, http.StatusServiceUnavailable)

	m = typeWord(m, "happy")
	m, cmd := press(m, tea.KeyEnter)
	m = drive(t, m, cmd)

	assertCursor(t, m, 0, 5)
	if m.status == "" {
		t.Error("status is empty, want the validator failure")
	}
	if f := m.effects.Frame(0, 0, clk.Now()); f.Background != effect.FlashColor {
		t.Error("row did not flash on validator failure")
	}
}

func TestBackspace_AfterCommit(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = typeWord(m, "happy")
	m, cmd := press(m, tea.KeyEnter)
	m = drive(t, m, cmd)
	assertCursor(t, m, 1, 0)

	m, _ = press(m, tea.KeyBackspace)
	assertCursor(t, m, 0, 5)

	word, _ := m.Board().RowWord(0)
	if word != "HAPPY" {
		t.Errorf("RowWord(0) = %q, want the committed row untouched", word)
	}

	m, _ = press(m, tea.KeyBackspace)
	assertCursor(t, m, 0, 4)
}

func TestTyping_PopsCell(t *testing.T) {
	m, _, clk := newTestModel(t)

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if cmd == nil {
		t.Error("typing returned no frame command")
	}
	if f := m.effects.Frame(0, 0, clk.Now()); !f.Emphasis {
		t.Error("typed cell is not emphasised")
	}
	cell, _ := m.Board().Cell(0, 0)
	if cell.Letter != 'C' || cell.Tag != board.TagGray {
		t.Errorf("cell (0,0) = %+v, want C tagged gray", cell)
	}
}

func TestCycleKey_RecolorsSelectedCell(t *testing.T) {
	m, srv, _ := newTestModel(t)

	m = typeWord(m, "crane")
	m, _ = press(m, tea.KeyRight)
	m, cmd := press(m, tea.KeyTab)
	m = drive(t, m, cmd)

	cell, _ := m.Board().Cell(0, 1)
	if cell.Tag != board.TagYellow {
		t.Errorf("cell (0,1) tag = %v, want yellow", cell.Tag)
	}
	if got := srv.Calls("/possible_words"); got != 1 {
		t.Errorf("analysis calls = %d, want 1", got)
	}
	// Only crane has an R, and the yellow R rules it out
	if m.remaining != "0" {
		t.Errorf("remaining = %q, want %q", m.remaining, "0")
	}
}

func TestCycleKey_BlankCellIgnored(t *testing.T) {
	m, srv, _ := newTestModel(t)

	m, _ = press(m, tea.KeyDown)
	m, cmd := press(m, tea.KeyTab)
	if cmd != nil {
		m = drive(t, m, cmd)
	}

	cell, _ := m.Board().Cell(1, 0)
	if cell.Tag != board.TagNone {
		t.Errorf("blank cell tag = %v, want none", cell.Tag)
	}
	if got := srv.Calls("/possible_words"); got != 0 {
		t.Errorf("analysis calls = %d, want 0", got)
	}
}

func TestMouse_CellClickCycles(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = typeWord(m, "crane")

	gx, gy := m.layout.gridOrigin()
	m, cmd := click(m, gx+2*(cellWidth+cellGap)+2, gy+1)
	m = drive(t, m, cmd)

	cell, _ := m.Board().Cell(0, 2)
	if cell.Tag != board.TagYellow {
		t.Errorf("clicked cell tag = %v, want yellow", cell.Tag)
	}
	if m.selRow != 0 || m.selCol != 2 {
		t.Errorf("selection = (%d, %d), want (0, 2)", m.selRow, m.selCol)
	}
}

func TestMouse_OnScreenKeyboard(t *testing.T) {
	m, srv, _ := newTestModel(t)
	kx, ky := m.layout.keyboardOrigin()

	keyX := func(row, i int) int { return kx + keyboardIndent[row] + i*(keyWidth+keyGap) + 1 }

	// H A P P Y then enter
	for _, pos := range [][2]int{{1, 5}, {1, 0}, {0, 9}, {0, 9}, {0, 5}} {
		m, _ = click(m, keyX(pos[0], pos[1]), ky+pos[0])
	}
	word, _ := m.Board().RowWord(0)
	if word != "HAPPY" {
		t.Fatalf("RowWord(0) = %q, want HAPPY", word)
	}

	m, cmd := click(m, keyX(2, 0), ky+2)
	m = drive(t, m, cmd)
	assertCursor(t, m, 1, 0)
	if got := srv.Calls(checkPath); got != 1 {
		t.Errorf("validator calls = %d, want 1", got)
	}

	m, _ = click(m, kx+spaceKeyIndent+1, ky+3)
	if cell, _ := m.Board().Cell(1, 0); !cell.IsPlaceholder() {
		t.Errorf("space bar wrote %+v, want placeholder", cell)
	}

	m, _ = click(m, keyX(2, 8), ky+2)
	assertCursor(t, m, 1, 0)
}

func TestMouse_Disabled(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.mouse = false
	m = typeWord(m, "crane")

	gx, gy := m.layout.gridOrigin()
	m, cmd := click(m, gx+2, gy+1)
	if cmd != nil {
		t.Error("click with mouse disabled returned a command")
	}
	if cell, _ := m.Board().Cell(0, 0); cell.Tag != board.TagGray {
		t.Errorf("tag = %v, want unchanged gray", cell.Tag)
	}
}

func TestNewBoard_DropsStaleReplies(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = typeWord(m, "happy")
	m, cmd := press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyCtrlN)
	m = drive(t, m, cmd)

	assertCursor(t, m, 0, 0)
	if m.suggestion != emptyLabel || m.remaining != emptyLabel {
		t.Errorf("labels = (%q, %q), want both %q", m.suggestion, m.remaining, emptyLabel)
	}
	if m.ctrl.Pending() {
		t.Error("Pending() = true after a new board")
	}
	if empty, _ := m.Board().IsRowEmpty(0); !empty {
		t.Error("row 0 not cleared by a new board")
	}
}

func TestAuxActions(t *testing.T) {
	m, srv, _ := newTestModel(t)

	m, cmd := press(m, tea.KeyCtrlO)
	if m.busy != 1 {
		t.Errorf("busy = %d, want 1 while the call runs", m.busy)
	}
	m = drive(t, m, cmd)
	if m.suggestion != solvertest.DefaultWords[0] {
		t.Errorf("optimal suggestion = %q, want %q", m.suggestion, solvertest.DefaultWords[0])
	}
	if m.busy != 0 {
		t.Errorf("busy = %d, want 0", m.busy)
	}

	m, _ = press(m, tea.KeyCtrlX)
	if m.suggestion != emptyLabel {
		t.Errorf("suggestion after clear = %q, want %q", m.suggestion, emptyLabel)
	}

	m, cmd = press(m, tea.KeyCtrlG)
	m = drive(t, m, cmd)
	if want := solvertest.DefaultWords[len(solvertest.DefaultWords)/2]; m.suggestion != want {
		t.Errorf("random suggestion = %q, want %q", m.suggestion, want)
	}

	m, cmd = press(m, tea.KeyCtrlR)
	m = drive(t, m, cmd)
	if want := solvertest.DefaultWords[len(solvertest.DefaultWords)-1]; m.suggestion != want {
		t.Errorf("viable suggestion = %q, want %q", m.suggestion, want)
	}

	m, cmd = press(m, tea.KeyCtrlK)
	m = drive(t, m, cmd)
	if !m.hardcore || !srv.Hardcore() {
		t.Errorf("hardcore = %v (server %v), want both on", m.hardcore, srv.Hardcore())
	}
	if !strings.Contains(ansi.Strip(m.View()), "Hardcore: on") {
		t.Error("view does not show hardcore on")
	}
}

func TestAuxActions_Failure(t *testing.T) {
	m, srv, _ := newTestModel(t)
	srv.FailWith("/generate-optimal-guess", http.StatusInternalServerError)
	srv.FailWith("/toggle-hardcore-mode", http.StatusInternalServerError)

	m, cmd := press(m, tea.KeyCtrlO)
	m = drive(t, m, cmd)
	if m.suggestion != errorLabel {
		t.Errorf("suggestion = %q, want %q", m.suggestion, errorLabel)
	}

	m, cmd = press(m, tea.KeyCtrlK)
	m = drive(t, m, cmd)
	if m.hardcore {
		t.Error("hardcore flipped although the call failed")
	}
	if m.status == "" {
		t.Error("status is empty after a failed call")
	}
}

func TestBoardComplete(t *testing.T) {
	srv := solvertest.New(t)
	client := solver.NewClient(srv.URL)
	client.SetRetry(0, 0)
	m := New(client, Options{Rows: 1, Cols: 5, ShowAnalysis: true})

	m = typeWord(m, "happy")
	m, cmd := press(m, tea.KeyEnter)
	m = drive(t, m, cmd)

	if !strings.Contains(ansi.Strip(m.View()), "Board complete") {
		t.Error("view does not report a complete board")
	}

	// Entry keys are ignored once every row is committed
	m = typeWord(m, "a")
	m, _ = press(m, tea.KeyBackspace)
	assertCursor(t, m, 1, 0)

	m, _ = press(m, tea.KeyCtrlN)
	assertCursor(t, m, 0, 0)
}

func TestView(t *testing.T) {
	m, _, _ := newTestModel(t)

	view := ansi.Strip(m.View())
	for _, want := range []string{AppName, "ANALYSIS", "Suggested Guess: ---", "Possible Words Left: ---", "Hardcore: off"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlA})
	if strings.Contains(ansi.Strip(m.View()), "ANALYSIS") {
		t.Error("analysis panel still shown after toggling it off")
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 50})
	if m.Width != 120 || m.Height != 50 {
		t.Errorf("size = %dx%d, want 120x50", m.Width, m.Height)
	}

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Esc returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Esc did not quit")
	}
	if m.View() != "" {
		t.Error("View() after quit is not empty")
	}
}
