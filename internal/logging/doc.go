// Package logging provides structured logging for wordlebuddy.
//
// This package wraps a global zap logger with convenience functions. Logging
// is silent by default: nothing is written unless a level is given through
// the --log-level flag or WORDLEBUDDY_LOG_LEVEL.
//
// # Output
//
// The interactive board owns the terminal, so `wordlebuddy play` sends log
// output to a file (WORDLEBUDDY_LOG_FILE, or wordlebuddy.log in the config
// directory). One-shot commands such as `check` and `suggest` log to stderr.
//
//	if err := logging.Initialize("debug", "/tmp/wordlebuddy.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Domain Helpers
//
//	logging.LogSolverRequest("POST", "/check_word_viability", 1)
//	logging.LogSolverResponse("/check_word_viability", 200, elapsed, body)
//	logging.LogGuess(0, "crane", true)
//	logging.LogAnalysis(seq, 143, nil)
//
// Response bodies are only attached at debug level and are truncated.
package logging
