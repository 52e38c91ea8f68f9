package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// StepCallback reports progress of one step. It is safe to call from
// several goroutines.
type StepCallback func(number int, status StepStatus, message string)

// Operation performs the work of a multi-step command and returns the
// details for the success box
type Operation func(ctx context.Context, onStep StepCallback) ([]Detail, error)

// RunnerConfig holds configuration for a multi-step command
type RunnerConfig struct {
	Title           string   // e.g., "Suggestions"
	Command         string   // e.g., "wordlebuddy suggest --mode all"
	Params          []Detail // Shown in the header
	Steps           []string // Step names, in order
	Troubleshooting []string // Shown when the operation fails
	Output          io.Writer
}

// Runner orchestrates header → steps → result output for a command that
// issues several solver requests
type Runner struct {
	config   RunnerConfig
	progress *Progress
	out      io.Writer
	width    int
	mu       sync.Mutex
}

// NewRunner creates a runner
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	width := GetTerminalWidth()

	return &Runner{
		config:   config,
		progress: NewProgress(config.Steps...).SetWidth(width),
		out:      config.Output,
		width:    width,
	}
}

// SetWidth overrides the detected terminal width
func (r *Runner) SetWidth(width int) *Runner {
	r.width = width
	r.progress.SetWidth(width)
	return r
}

// Progress returns the step tracker
func (r *Runner) Progress() *Progress {
	return r.progress
}

// Run prints the header, runs op and prints the result box. Finished steps
// are printed as they complete.
func (r *Runner) Run(ctx context.Context, op Operation) error {
	start := time.Now()

	_, _ = fmt.Fprintln(r.out, NewHeader(r.config.Title, r.config.Command, r.config.Params...).SetWidth(r.width).Render())
	_, _ = fmt.Fprintln(r.out)

	details, err := op(ctx, r.onStep)
	elapsed := time.Since(start).Round(time.Millisecond)

	_, _ = fmt.Fprintln(r.out)
	if err != nil {
		result := NewFailureResult(r.config.Title+" failed", err, r.config.Troubleshooting)
		_, _ = fmt.Fprintln(r.out, result.SetWidth(r.width).Render())
		return err
	}

	details = append(details, Detail{Key: "Duration", Value: elapsed.String()})
	if r.progress.Failed() {
		_, _ = fmt.Fprintln(r.out, NewWarningResult(r.config.Title+" incomplete", details...).SetWidth(r.width).Render())
		return nil
	}
	_, _ = fmt.Fprintln(r.out, NewSuccessResult(r.config.Title+" complete", details...).SetWidth(r.width).Render())
	return nil
}

func (r *Runner) onStep(number int, status StepStatus, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress.UpdateStep(number, status, message)
	if status == StepRunning || number < 1 || number > len(r.progress.Steps) {
		return
	}
	_, _ = fmt.Fprintln(r.out, r.progress.RenderStep(r.progress.Steps[number-1]))
}
