// Package effect models short visual effects on board cells as plain data.
//
// Effects never change the board. The renderer asks for a Frame at a given
// instant and layers it over the cell's real colour, so when an effect ends
// (or is superseded) the cell shows its true state again without any restore
// step.
package effect

import "time"

const (
	// PopDuration is how long a freshly typed cell stays emphasized
	PopDuration = 150 * time.Millisecond

	// PulseDuration is how long an accepted row stays emphasized
	PulseDuration = 150 * time.Millisecond

	// FlashDuration is how long a rejected row shows FlashColor
	FlashDuration = 360 * time.Millisecond

	// FlashBeat is the length of one emphasis phase of the reject flash
	FlashBeat = 120 * time.Millisecond

	// FlashColor is the background of a rejected row
	FlashColor = "#B55450"
)

// Kind identifies an effect
type Kind int

const (
	// Pop emphasizes a single cell after a letter is typed
	Pop Kind = iota
	// RowPulse emphasizes a whole row after it is accepted
	RowPulse
	// RejectFlash paints a row red and pulses it twice
	RejectFlash
)

// String returns a human-readable name
func (k Kind) String() string {
	switch k {
	case Pop:
		return "pop"
	case RowPulse:
		return "row-pulse"
	case RejectFlash:
		return "reject-flash"
	default:
		return "unknown"
	}
}

// Duration returns the fixed lifetime of an effect kind
func (k Kind) Duration() time.Duration {
	switch k {
	case Pop:
		return PopDuration
	case RowPulse:
		return PulseDuration
	case RejectFlash:
		return FlashDuration
	default:
		return 0
	}
}

// Effect is one running effect. Col is -1 for row-wide effects.
type Effect struct {
	Kind  Kind
	Row   int
	Col   int
	Start time.Time
}

// Done reports whether the effect has ended at now
func (e Effect) Done(now time.Time) bool {
	return now.Sub(e.Start) >= e.Kind.Duration()
}

func (e Effect) covers(row, col int) bool {
	if e.Row != row {
		return false
	}
	return e.Col < 0 || e.Col == col
}

// Frame is what an effect layer contributes to one cell at one instant
type Frame struct {
	// Background overrides the cell colour when non-empty
	Background string

	// Emphasis marks the cell as enlarged/highlighted
	Emphasis bool
}

// IsZero reports whether the frame changes nothing
func (f Frame) IsZero() bool {
	return f.Background == "" && !f.Emphasis
}

// Set holds the running effects. The zero value is ready to use.
// It is owned by the UI event loop and is not safe for concurrent use.
type Set struct {
	effects []Effect
}

// Pop starts a pop on a cell, replacing any effect that covers it
func (s *Set) Pop(row, col int, now time.Time) {
	s.Touch(row, col)
	s.effects = append(s.effects, Effect{Kind: Pop, Row: row, Col: col, Start: now})
}

// Pulse starts an acceptance pulse on a row, replacing effects on that row
func (s *Set) Pulse(row int, now time.Time) {
	s.TouchRow(row)
	s.effects = append(s.effects, Effect{Kind: RowPulse, Row: row, Col: -1, Start: now})
}

// Flash starts the reject flash on a row, replacing effects on that row
func (s *Set) Flash(row int, now time.Time) {
	s.TouchRow(row)
	s.effects = append(s.effects, Effect{Kind: RejectFlash, Row: row, Col: -1, Start: now})
}

// Touch cancels every effect covering (row, col), including row-wide ones.
// Any mutation of a cell calls this so no cell is left mid-effect.
func (s *Set) Touch(row, col int) {
	kept := s.effects[:0]
	for _, e := range s.effects {
		if e.covers(row, col) {
			continue
		}
		kept = append(kept, e)
	}
	s.effects = kept
}

// TouchRow cancels every effect on row
func (s *Set) TouchRow(row int) {
	kept := s.effects[:0]
	for _, e := range s.effects {
		if e.Row == row {
			continue
		}
		kept = append(kept, e)
	}
	s.effects = kept
}

// Clear cancels everything
func (s *Set) Clear() {
	s.effects = nil
}

// Frame returns the combined effect on (row, col) at now
func (s *Set) Frame(row, col int, now time.Time) Frame {
	var f Frame
	for _, e := range s.effects {
		if !e.covers(row, col) || e.Done(now) {
			continue
		}
		elapsed := now.Sub(e.Start)
		if elapsed < 0 {
			continue
		}

		switch e.Kind {
		case Pop, RowPulse:
			f.Emphasis = true
		case RejectFlash:
			f.Background = FlashColor
			// Emphasized on the first and third beat: [0,120) and [240,360)
			if beat := elapsed / FlashBeat; beat%2 == 0 {
				f.Emphasis = true
			}
		}
	}
	return f
}

// Active reports whether any effect is still running at now
func (s *Set) Active(now time.Time) bool {
	for _, e := range s.effects {
		if !e.Done(now) {
			return true
		}
	}
	return false
}

// Prune drops finished effects
func (s *Set) Prune(now time.Time) {
	kept := s.effects[:0]
	for _, e := range s.effects {
		if e.Done(now) {
			continue
		}
		kept = append(kept, e)
	}
	s.effects = kept
}

// Len returns the number of tracked effects
func (s *Set) Len() int {
	return len(s.effects)
}
