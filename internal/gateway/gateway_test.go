package gateway

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/muurk/wordlebuddy/internal/guess"
	"github.com/muurk/wordlebuddy/internal/solver"
	"github.com/muurk/wordlebuddy/internal/solver/solvertest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type stubValidator struct {
	mu    sync.Mutex
	valid bool
	err   error
	words []string
}

func (s *stubValidator) CheckWord(_ context.Context, word string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = append(s.words, word)
	return s.valid, s.err
}

type stubSolver struct {
	calls      int
	records    []guess.Record
	suggestion *solver.Suggestion
	err        error
}

func (s *stubSolver) SubmitGuesses(_ context.Context, records []guess.Record) (*solver.Suggestion, error) {
	s.calls++
	s.records = records
	return s.suggestion, s.err
}

func happySubmission() guess.Submission {
	return guess.Submission{
		Row:  0,
		Word: "happy",
		Records: []guess.Record{
			{Word: "happy", Feedback: []string{"gray", "yellow", "gray", "gray", "green"}},
		},
	}
}

func TestSubmit_Accepted(t *testing.T) {
	v := &stubValidator{valid: true}
	s := &stubSolver{suggestion: &solver.Suggestion{Word: "candy", PossibleWordsLeft: 3}}
	g := New(v, s)

	sub := happySubmission()
	out := g.Submit(context.Background(), sub)

	if !out.Accepted {
		t.Fatalf("Accepted = false, reason %v", out.Reason)
	}
	if out.SolverErr != nil {
		t.Errorf("SolverErr = %v, want nil", out.SolverErr)
	}
	if out.Suggestion == nil || out.Suggestion.Word != "candy" || out.Suggestion.PossibleWordsLeft != 3 {
		t.Errorf("Suggestion = %+v, want candy/3", out.Suggestion)
	}
	if diff := cmp.Diff(sub.Records, s.records); diff != "" {
		t.Errorf("solver records mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"happy"}, v.words); diff != "" {
		t.Errorf("validator words mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_Rejected(t *testing.T) {
	v := &stubValidator{valid: false}
	s := &stubSolver{}
	g := New(v, s)

	out := g.Submit(context.Background(), happySubmission())

	if out.Accepted {
		t.Error("Accepted = true, want false")
	}
	if !errors.Is(out.Reason, ErrRejected) {
		t.Errorf("Reason = %v, want ErrRejected", out.Reason)
	}
	if s.calls != 0 {
		t.Errorf("solver called %d times after rejection, want 0", s.calls)
	}
}

func TestSubmit_ValidatorFailureFailsClosed(t *testing.T) {
	transport := solver.NewNetworkError("dial failed", errors.New("connection refused"))
	v := &stubValidator{valid: true, err: transport}
	s := &stubSolver{}
	g := New(v, s)

	out := g.Submit(context.Background(), happySubmission())

	if out.Accepted {
		t.Error("Accepted = true on validator failure, want false")
	}
	if !errors.Is(out.Reason, transport) {
		t.Errorf("Reason = %v, want transport error", out.Reason)
	}
	if s.calls != 0 {
		t.Errorf("solver called %d times, want 0", s.calls)
	}
}

func TestSubmit_SolverFailureKeepsAcceptance(t *testing.T) {
	v := &stubValidator{valid: true}
	s := &stubSolver{err: solver.NewHTTPError(500, "boom")}
	g := New(v, s)

	out := g.Submit(context.Background(), happySubmission())

	if !out.Accepted {
		t.Error("Accepted = false, want true")
	}
	if !solver.IsHTTPError(out.SolverErr) {
		t.Errorf("SolverErr = %v, want HTTP error", out.SolverErr)
	}
	if out.Suggestion != nil {
		t.Errorf("Suggestion = %+v, want nil", out.Suggestion)
	}
}

func TestSubmit_UntaggedNotSentToSolver(t *testing.T) {
	v := &stubValidator{valid: true}
	s := &stubSolver{}
	g := New(v, s)

	sub := happySubmission()
	sub.Untagged = &guess.UntaggedCellError{Cells: []guess.Position{{Row: 0, Col: 2}}}
	out := g.Submit(context.Background(), sub)

	if !out.Accepted {
		t.Error("Accepted = false, want true")
	}
	if !errors.Is(out.SolverErr, guess.ErrUntaggedCell) {
		t.Errorf("SolverErr = %v, want ErrUntaggedCell", out.SolverErr)
	}
	if s.calls != 0 {
		t.Errorf("solver called %d times, want 0", s.calls)
	}
}

func TestSubmit_AgainstFakeSolver(t *testing.T) {
	srv := solvertest.New(t)
	client := solver.NewClient(srv.URL)
	client.SetRetry(0, 0)
	g := New(client, client)

	accepted := g.Submit(context.Background(), guess.Submission{
		Row:     0,
		Word:    "crane",
		Records: []guess.Record{{Word: "crane", Feedback: solvertest.Score("happy", "crane")}},
	})
	if !accepted.Accepted || accepted.Suggestion == nil {
		t.Fatalf("Submit(crane) = %+v, want accepted with suggestion", accepted)
	}

	rejected := g.Submit(context.Background(), guess.Submission{Row: 1, Word: "xyzzy"})
	if rejected.Accepted {
		t.Error("Submit(xyzzy) accepted, want rejected")
	}
	if got := srv.Calls("/submit_guess_data"); got != 1 {
		t.Errorf("submit calls = %d, want 1", got)
	}
}

func TestSubmit_ValidatorTimeout(t *testing.T) {
	srv := solvertest.New(t)
	release := srv.Hold("/check_word_viability")
	defer release()

	client := solver.NewClient(srv.URL)
	client.SetRetry(0, 0)
	g := New(client, client)
	g.Timeout = 50 * time.Millisecond

	out := g.Submit(context.Background(), happySubmission())

	if out.Accepted {
		t.Error("Accepted = true after validator timeout, want false")
	}
	if out.Reason == nil {
		t.Error("Reason = nil, want timeout error")
	}
}

func TestSubmit_FakeSolverHTTPFailure(t *testing.T) {
	srv := solvertest.New(t)
	srv.FailWith("/submit_guess_data", http.StatusInternalServerError)
	client := solver.NewClient(srv.URL)
	client.SetRetry(0, 0)
	g := New(client, client)

	out := g.Submit(context.Background(), happySubmission())
	if !out.Accepted || out.SolverErr == nil {
		t.Errorf("Submit() = %+v, want accepted with solver error", out)
	}
}
