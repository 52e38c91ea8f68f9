package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/muurk/wordlebuddy/internal/board"
	"github.com/muurk/wordlebuddy/internal/gateway"
	"github.com/muurk/wordlebuddy/internal/solver"
)

// CurrentVersion is the only config file version this build understands
const CurrentVersion = 1

// Board dimension limits
const (
	MinRows = 1
	MaxRows = 10
	MinCols = 2
	MaxCols = 10
)

// Config represents the entire user configuration file
type Config struct {
	Version  int               `yaml:"version"`
	Solver   *SolverSettings   `yaml:"solver,omitempty"`
	Board    *BoardSettings    `yaml:"board,omitempty"`
	Analysis *AnalysisSettings `yaml:"analysis,omitempty"`
	UI       *UISettings       `yaml:"ui,omitempty"`

	// KnownSolvers records services found by `wordlebuddy scan`, keyed by instance name
	KnownSolvers map[string]*KnownSolver `yaml:"known_solvers,omitempty"`

	// envBaseURL is the value ApplyEnv put in Solver.BaseURL and fileBaseURL
	// the one it replaced; SaveTo writes the latter back unless the URL changed since.
	envBaseURL  string
	fileBaseURL string
}

// SolverSettings configures the solver client
type SolverSettings struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
	Paths      solver.Paths  `yaml:"paths,omitempty"`
}

// BoardSettings sets the grid dimensions
type BoardSettings struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// AnalysisSettings throttles the live analysis channel
type AnalysisSettings struct {
	MinInterval time.Duration `yaml:"min_interval"`
	Burst       int           `yaml:"burst"`
}

// UISettings holds interactive preferences
type UISettings struct {
	ShowAnalysis bool `yaml:"show_analysis"` // Open the analysis panel on start
	Mouse        bool `yaml:"mouse"`         // Enable mouse clicks on cells and keys
}

// KnownSolver is a solver service seen on the network
type KnownSolver struct {
	URL      string    `yaml:"url"`
	Host     string    `yaml:"host,omitempty"`
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// NewConfig creates a Config with default values
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Solver: &SolverSettings{
			BaseURL:    solver.DefaultBaseURL,
			Timeout:    solver.DefaultTimeout,
			MaxRetries: solver.DefaultMaxRetries,
			RetryDelay: solver.DefaultRetryDelay,
			Paths:      solver.DefaultPaths(),
		},
		Board: &BoardSettings{
			Rows: board.DefaultRows,
			Cols: board.DefaultCols,
		},
		Analysis: &AnalysisSettings{
			MinInterval: gateway.DefaultAnalysisInterval,
			Burst:       gateway.DefaultAnalysisBurst,
		},
		UI: &UISettings{
			ShowAnalysis: true,
			Mouse:        true,
		},
		KnownSolvers: make(map[string]*KnownSolver),
	}
}

// fillDefaults completes sections missing from a loaded file
func (c *Config) fillDefaults() {
	d := NewConfig()
	if c.Solver == nil {
		c.Solver = d.Solver
	}
	if c.Solver.BaseURL == "" {
		c.Solver.BaseURL = d.Solver.BaseURL
	}
	if c.Solver.Timeout <= 0 {
		c.Solver.Timeout = d.Solver.Timeout
	}
	if c.Solver.RetryDelay <= 0 {
		c.Solver.RetryDelay = d.Solver.RetryDelay
	}
	c.Solver.Paths = c.Solver.Paths.WithDefaults()

	if c.Board == nil {
		c.Board = d.Board
	}
	if c.Analysis == nil {
		c.Analysis = d.Analysis
	}
	if c.UI == nil {
		c.UI = d.UI
	}
	if c.KnownSolvers == nil {
		c.KnownSolvers = make(map[string]*KnownSolver)
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}
	if c.Board != nil {
		if c.Board.Rows < MinRows || c.Board.Rows > MaxRows {
			return fmt.Errorf("board.rows must be between %d and %d, got %d", MinRows, MaxRows, c.Board.Rows)
		}
		if c.Board.Cols < MinCols || c.Board.Cols > MaxCols {
			return fmt.Errorf("board.cols must be between %d and %d, got %d", MinCols, MaxCols, c.Board.Cols)
		}
	}
	if c.Solver != nil && c.Solver.MaxRetries < 0 {
		return fmt.Errorf("solver.max_retries must not be negative, got %d", c.Solver.MaxRetries)
	}
	if c.Analysis != nil && c.Analysis.Burst < 1 {
		return fmt.Errorf("analysis.burst must be at least 1, got %d", c.Analysis.Burst)
	}
	return nil
}

// NewSolverClient builds a solver client from the solver section
func (c *Config) NewSolverClient() *solver.Client {
	s := c.Solver
	if s == nil {
		s = NewConfig().Solver
	}

	client := solver.NewClient(s.BaseURL)
	client.Paths = s.Paths.WithDefaults()
	client.SetTimeout(s.Timeout)
	client.SetRetry(s.MaxRetries, s.RetryDelay)
	return client
}

// RememberSolver records a discovered solver
func (c *Config) RememberSolver(name, url, host string) {
	if c.KnownSolvers == nil {
		c.KnownSolvers = make(map[string]*KnownSolver)
	}
	c.KnownSolvers[name] = &KnownSolver{
		URL:      url,
		Host:     host,
		LastSeen: time.Now(),
	}
}

// KnownSolverNames returns the names of remembered solvers, sorted
func (c *Config) KnownSolverNames() []string {
	names := make([]string, 0, len(c.KnownSolvers))
	for name := range c.KnownSolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
