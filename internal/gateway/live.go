package gateway

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/muurk/wordlebuddy/internal/guess"
	"github.com/muurk/wordlebuddy/internal/logging"
)

const (
	// DefaultAnalysisInterval is the minimum spacing of live analysis calls
	DefaultAnalysisInterval = 250 * time.Millisecond

	// DefaultAnalysisBurst is how many calls may go out back to back
	DefaultAnalysisBurst = 2
)

// Analyzer counts the candidates left for a board
type Analyzer interface {
	PossibleWords(ctx context.Context, records []guess.Record, currentRow int) (int, error)
}

// AnalysisResult is the reply to one live analysis request
type AnalysisResult struct {
	Seq       uint64
	Remaining int

	// Stale means a newer request superseded this one; Remaining is meaningless
	Stale bool

	// Err is set when the call failed; the display should keep its old value
	Err error
}

// LiveAnalyzer is the best-effort channel fed by every colour edit.
// Requests are numbered; only the newest one is worth displaying.
type LiveAnalyzer struct {
	analyzer Analyzer
	limiter  *rate.Limiter
	latest   atomic.Uint64

	mu      sync.Mutex
	pending *rate.Reservation
}

// NewLiveAnalyzer throttles calls to a at most one per interval with the given burst.
// A non-positive interval disables throttling.
func NewLiveAnalyzer(a Analyzer, interval time.Duration, burst int) *LiveAnalyzer {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &LiveAnalyzer{
		analyzer: a,
		limiter:  rate.NewLimiter(limit, burst),
	}
}

// Next reserves the sequence number for a new request
func (l *LiveAnalyzer) Next() uint64 {
	return l.latest.Add(1)
}

// IsCurrent reports whether seq is still the newest request
func (l *LiveAnalyzer) IsCurrent(seq uint64) bool {
	return seq == l.latest.Load()
}

// reserve takes a limiter slot for seq. Only one slot is held at a time:
// the previous holder has been superseded, so its tokens are handed back.
func (l *LiveAnalyzer) reserve(seq uint64) *rate.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.IsCurrent(seq) {
		return nil
	}
	if l.pending != nil {
		l.pending.Cancel()
	}
	l.pending = l.limiter.Reserve()
	return l.pending
}

// release forgets r if it is still the held slot
func (l *LiveAnalyzer) release(r *rate.Reservation, cancel bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cancel {
		r.Cancel()
	}
	if l.pending == r {
		l.pending = nil
	}
}

// Analyze waits for the rate limiter, then asks for the candidate count.
// Superseded requests are dropped without a network call and give their
// limiter slot to the newer request.
// Failures are logged and returned in the result, never as a panic or a board change.
func (l *LiveAnalyzer) Analyze(ctx context.Context, seq uint64, records []guess.Record, currentRow int) AnalysisResult {
	res := AnalysisResult{Seq: seq}

	r := l.reserve(seq)
	if r == nil {
		res.Stale = true
		return res
	}

	if delay := r.Delay(); delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			l.release(r, true)
			res.Err = ctx.Err()
			logging.LogAnalysis(seq, 0, res.Err)
			return res
		}
	}
	l.release(r, false)

	if !l.IsCurrent(seq) {
		res.Stale = true
		return res
	}

	n, err := l.analyzer.PossibleWords(ctx, records, currentRow)
	logging.LogAnalysis(seq, n, err)
	if err != nil {
		res.Err = err
		return res
	}

	res.Remaining = n
	res.Stale = !l.IsCurrent(seq)
	return res
}
