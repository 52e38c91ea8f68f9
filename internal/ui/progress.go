package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StepStatus represents the current state of a step
type StepStatus int

const (
	StepPending  StepStatus = iota // Not yet started
	StepRunning                    // Currently executing
	StepComplete                   // Successfully completed
	StepFailed                     // Failed
	StepSkipped                    // Skipped
)

// Step is one solver request in a multi-request command
type Step struct {
	Number  int        // 1-based
	Name    string     // e.g., "Optimal guess"
	Status  StepStatus // Current status
	Message string     // Result or reason, e.g., "slate"
}

// Progress tracks a fixed list of steps and renders them with a bar
type Progress struct {
	Steps   []Step
	Percent float64 // 0.0 - 1.0
	Width   int
	bar     progress.Model
}

// NewProgress creates a progress display for the named steps
func NewProgress(names ...string) *Progress {
	steps := make([]Step, len(names))
	for i, name := range names {
		steps[i] = Step{Number: i + 1, Name: name}
	}

	p := &Progress{Steps: steps}
	p.SetWidth(GetTerminalWidth())
	return p
}

// SetWidth sets the terminal width for responsive rendering
func (p *Progress) SetWidth(width int) *Progress {
	p.Width = width
	barWidth := width - 20 // Leave room for percentage and step count
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 50 {
		barWidth = 50
	}
	p.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	return p
}

// UpdateStep updates a step's status and message. Out-of-range steps are ignored.
func (p *Progress) UpdateStep(number int, status StepStatus, message string) {
	if number < 1 || number > len(p.Steps) {
		return
	}
	p.Steps[number-1].Status = status
	p.Steps[number-1].Message = message

	finished := 0
	for _, s := range p.Steps {
		if s.Status == StepComplete || s.Status == StepFailed || s.Status == StepSkipped {
			finished++
		}
	}
	if len(p.Steps) > 0 {
		p.Percent = float64(finished) / float64(len(p.Steps))
	}
}

// Failed reports whether any step failed
func (p *Progress) Failed() bool {
	for _, s := range p.Steps {
		if s.Status == StepFailed {
			return true
		}
	}
	return false
}

// Render returns the bar followed by the step list
func (p *Progress) Render() string {
	bar := lipgloss.NewStyle().PaddingLeft(2).Render(
		fmt.Sprintf("%s  %3.0f%%", p.bar.ViewAs(p.Percent), p.Percent*100))

	lines := []string{bar, ""}
	for _, s := range p.Steps {
		lines = append(lines, p.RenderStep(s))
	}
	return strings.Join(lines, "\n")
}

// RenderStep renders a single step line
func (p *Progress) RenderStep(step Step) string {
	var marker string
	var style lipgloss.Style

	switch step.Status {
	case StepComplete:
		marker, style = StepMarkerComplete, StepCompleteStyle
	case StepRunning:
		marker, style = StepMarkerRunning, StepRunningStyle
	case StepFailed:
		marker, style = FailureMarker, ErrorTitleStyle
	case StepSkipped:
		marker, style = StepMarkerSkipped, StepPendingStyle
	default:
		marker, style = StepMarkerPending, StepPendingStyle
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  [%d/%d] ", step.Number, len(p.Steps)))
	b.WriteString(style.Render(step.Name))

	// Align markers in one column
	padding := 30 - lipgloss.Width(step.Name)
	if padding < 1 {
		padding = 1
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(style.Render(marker))

	if step.Message != "" {
		b.WriteString("  ")
		b.WriteString(StepNoteStyle.Render("(" + step.Message + ")"))
	}
	return b.String()
}

// String implements fmt.Stringer
func (p *Progress) String() string {
	return p.Render()
}
