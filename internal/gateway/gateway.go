// Package gateway runs the two-phase submission protocol between the board
// and the external validator and solver.
//
// Phase one asks the validator about the candidate word and fails closed: any
// error counts as an invalid word. Phase two, only for accepted words, sends
// the serialized board to the solver. Solver failures do not undo acceptance.
package gateway

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/wordlebuddy/internal/guess"
	"github.com/muurk/wordlebuddy/internal/logging"
	"github.com/muurk/wordlebuddy/internal/solver"
)

// ErrRejected is the Reason for a word the validator reported as invalid
var ErrRejected = errors.New("word rejected by validator")

// Validator decides whether a word may be played
type Validator interface {
	CheckWord(ctx context.Context, word string) (bool, error)
}

// Solver turns a committed board into the next suggestion
type Solver interface {
	SubmitGuesses(ctx context.Context, records []guess.Record) (*solver.Suggestion, error)
}

// Outcome is the result of one submission
type Outcome struct {
	Row  int
	Word string

	// Accepted reports whether the validator accepted the word
	Accepted bool

	// Reason is ErrRejected or the validator's transport error when not accepted
	Reason error

	// Suggestion is the solver's reply; nil when SolverErr is set
	Suggestion *solver.Suggestion

	// SolverErr is set when the word was accepted but no suggestion could be produced
	SolverErr error
}

// Gateway submits rows. Its zero Timeout means no per-phase deadline.
type Gateway struct {
	Validator Validator
	Solver    Solver
	Timeout   time.Duration
}

// New creates a Gateway. A *solver.Client satisfies both interfaces.
func New(v Validator, s Solver) *Gateway {
	return &Gateway{Validator: v, Solver: s}
}

// Submit runs both phases for sub. It never touches the board; the caller
// applies Accept or Reject based on the outcome.
func (g *Gateway) Submit(ctx context.Context, sub guess.Submission) Outcome {
	out := Outcome{Row: sub.Row, Word: sub.Word}

	valid, err := g.check(ctx, sub.Word)
	if err != nil {
		logging.Warn("Validator call failed, treating word as invalid",
			zap.String("word", sub.Word),
			zap.Error(err),
		)
		out.Reason = err
		logging.LogGuess(sub.Row, sub.Word, false)
		return out
	}
	if !valid {
		out.Reason = ErrRejected
		logging.LogGuess(sub.Row, sub.Word, false)
		return out
	}

	out.Accepted = true
	logging.LogGuess(sub.Row, sub.Word, true)

	if sub.Untagged != nil {
		// Feedback would carry error markers; do not let the solver guess
		logging.Error("Refusing to submit untagged feedback", zap.Error(sub.Untagged))
		out.SolverErr = sub.Untagged
		return out
	}

	suggestion, err := g.submit(ctx, sub.Records)
	if err != nil {
		logging.Warn("Solver submission failed",
			zap.Int("row", sub.Row),
			zap.Error(err),
		)
		out.SolverErr = err
		return out
	}

	out.Suggestion = suggestion
	return out
}

func (g *Gateway) check(ctx context.Context, word string) (bool, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}
	return g.Validator.CheckWord(ctx, word)
}

func (g *Gateway) submit(ctx context.Context, records []guess.Record) (*solver.Suggestion, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}
	return g.Solver.SubmitGuesses(ctx, records)
}
