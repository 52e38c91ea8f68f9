// Package config provides user configuration management for wordlebuddy.
//
// This package manages a YAML configuration file holding solver connection
// settings, board dimensions, live-analysis throttling, UI preferences and the
// solvers found by `wordlebuddy scan`. The board itself is never persisted.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/wordlebuddy/config.yaml or $HOME/.config/wordlebuddy/config.yaml
//   - macOS: $HOME/.config/wordlebuddy/config.yaml
//   - Windows: %LOCALAPPDATA%\wordlebuddy\config.yaml
//
// # Precedence
//
// Values are resolved lowest to highest:
//
//  1. Built-in defaults
//  2. config.yaml
//  3. Environment, including a .env file in the working directory
//     (WORDLEBUDDY_SOLVER_URL, WORDLEBUDDY_LOG_LEVEL, WORDLEBUDDY_LOG_FILE)
//  4. Command-line flags
//
// # Usage Example
//
//	if err := config.LoadDotEnv(); err != nil {
//	    return err
//	}
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := cfg.NewSolverClient()
//
// # File Format
//
//	version: 1
//	solver:
//	  base_url: http://127.0.0.1:8080
//	  timeout: 10s
//	  max_retries: 2
//	  retry_delay: 250ms
//	board:
//	  rows: 6
//	  cols: 5
//	analysis:
//	  min_interval: 250ms
//	  burst: 2
//	ui:
//	  show_analysis: true
//	  mouse: true
//
// # Thread Safety
//
// Load is safe for concurrent use and returns the same instance. File writes
// are serialized and atomic (write to .tmp then rename).
package config
