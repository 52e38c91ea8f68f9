// Package ui renders the non-interactive output of the wordlebuddy CLI.
//
// Commands such as check, suggest and scan print a header, optionally a step
// list while several solver requests run, and a success, warning or failure
// box. Components render to strings so they can be tested and written to any
// io.Writer through a Printer.
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:   "Suggestions",
//	    Command: "wordlebuddy suggest --mode all",
//	    Steps:   []string{"Optimal guess", "Random viable guess", "Random word"},
//	})
//	err := runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) ([]ui.Detail, error) {
//	    onStep(1, ui.StepRunning, "")
//	    // ...
//	    onStep(1, ui.StepComplete, "slate")
//	    return []ui.Detail{{Key: "Optimal", Value: "slate"}}, nil
//	})
//
// Logging stays silent unless WORDLEBUDDY_LOG_LEVEL is set, so the curated
// output is not interleaved with log lines.
package ui
