package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/muurk/wordlebuddy/internal/config"
	"github.com/muurk/wordlebuddy/internal/discovery"
	"github.com/muurk/wordlebuddy/internal/gateway"
	"github.com/muurk/wordlebuddy/internal/logging"
	"github.com/muurk/wordlebuddy/internal/solver"
	"github.com/muurk/wordlebuddy/internal/tui"
	"github.com/muurk/wordlebuddy/internal/ui"
)

// Global flags
var (
	solverFlag string
	logLevel   string
)

// Board flags (root and play)
var (
	boardRows int
	boardCols int
	noMouse   bool
)

// Command flags
var (
	suggestMode string
	scanTimeout time.Duration
	useSolver   string
	forceInit   bool
)

// cfg is loaded once by setup before any command runs
var cfg *config.Config

func init() {
	rootCmd.PersistentPreRunE = setup

	rootCmd.PersistentFlags().StringVar(&solverFlag, "solver", "", "Solver base URL or the name of a solver found by 'scan'")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")

	for _, fs := range []*cobra.Command{rootCmd, playCmd} {
		fs.Flags().IntVar(&boardRows, "rows", 0, "Number of guess rows (default from config)")
		fs.Flags().IntVar(&boardCols, "cols", 0, "Letters per guess (default from config)")
		fs.Flags().BoolVar(&noMouse, "no-mouse", false, "Disable mouse clicks on cells and keys")
	}

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(hardcoreCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads .env and the config file, then starts logging. The board owns
// the terminal, so interactive sessions log to a file.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	output := ""
	if isInteractive(cmd) && os.Getenv(logging.LogFileEnvVar) == "" {
		if output, err = config.GetLogPath(); err != nil {
			return err
		}
	}
	if err := logging.Initialize(logLevel, output); err != nil {
		return err
	}

	logging.Debug("Configuration loaded",
		zap.String("command", cmd.CommandPath()),
		zap.String("solver", cfg.Solver.BaseURL),
	)
	return nil
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == playCmd
}

// resolveSolverURL maps the --solver value to a base URL. A known solver name
// wins over a literal URL; an empty value keeps the configured one.
func resolveSolverURL(c *config.Config, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return c.Solver.BaseURL
	}
	if known, ok := c.KnownSolvers[value]; ok && known.URL != "" {
		return known.URL
	}
	if !strings.Contains(value, "://") {
		value = "http://" + value
	}
	return strings.TrimRight(value, "/")
}

func newSolverClient() *solver.Client {
	client := cfg.NewSolverClient()
	client.BaseURL = resolveSolverURL(cfg, solverFlag)
	return client
}

func solverTroubleshooting(err error) []string {
	var tips []string
	if hint := solver.TroubleshootingHint(err); hint != "" {
		tips = append(tips, hint)
	}
	return append(tips,
		"Check the solver URL with 'wordlebuddy config show'",
		"Override it with --solver or "+config.SolverURLEnvVar,
		"Run 'wordlebuddy scan' to find solvers on the local network",
	)
}

// playCmd opens the interactive board
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive board",
	Long: `Open the interactive board.

Type letters to fill the current row; every typed letter starts gray. Click a
cell (or select it with the arrow keys and press tab) to cycle its colour
gray → yellow → green. Enter submits the row once it is full; the solver
checks the word first and only valid words are committed.

Press ? for all key bindings.`,
	Example: `  # Open the board against the configured solver
  wordlebuddy

  # Use a solver found by 'wordlebuddy scan'
  wordlebuddy play --solver kitchen

  # Six-letter variant without mouse support
  wordlebuddy play --cols 6 --no-mouse`,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
		return errors.New("the board needs an interactive terminal; use 'wordlebuddy check' or 'wordlebuddy suggest' from scripts")
	}

	rows, cols := cfg.Board.Rows, cfg.Board.Cols
	if boardRows != 0 {
		rows = boardRows
	}
	if boardCols != 0 {
		cols = boardCols
	}
	if rows < config.MinRows || rows > config.MaxRows {
		return fmt.Errorf("--rows must be between %d and %d, got %d", config.MinRows, config.MaxRows, rows)
	}
	if cols < config.MinCols || cols > config.MaxCols {
		return fmt.Errorf("--cols must be between %d and %d, got %d", config.MinCols, config.MaxCols, cols)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client := newSolverClient()
	mouse := cfg.UI.Mouse && !noMouse

	logging.Info("Opening board",
		zap.String("solver", client.BaseURL),
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Bool("mouse", mouse),
	)

	model := tui.New(client, tui.Options{
		Rows:             rows,
		Cols:             cols,
		ShowAnalysis:     cfg.UI.ShowAnalysis,
		Mouse:            mouse,
		AnalysisInterval: cfg.Analysis.MinInterval,
		AnalysisBurst:    cfg.Analysis.Burst,
		SubmitTimeout:    client.CallBudget(),
		Context:          ctx,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("board error: %w", err)
	}
	return nil
}

// checkCmd asks the validator about one word
var checkCmd = &cobra.Command{
	Use:   "check <word>",
	Short: "Check whether a word is an accepted guess",
	Long: `Ask the solver's validator whether a word is an accepted guess.

This is the same check the board runs before committing a row.`,
	Example: `  wordlebuddy check crane
  wordlebuddy check crane --solver http://10.0.0.5:8080`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkWord(cmd.Context(), newSolverClient(), args[0], ui.NewPrinter(cmd.OutOrStdout()))
	},
}

func checkWord(ctx context.Context, v gateway.Validator, word string, p *ui.Printer) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" || strings.IndexFunc(word, func(r rune) bool { return r < 'a' || r > 'z' }) >= 0 {
		return fmt.Errorf("invalid word %q: only letters a-z are allowed", word)
	}

	valid, err := v.CheckWord(ctx, word)
	if err != nil {
		p.PrintError("Word check failed", err, solverTroubleshooting(err))
		return err
	}

	if !valid {
		p.PrintWarning("Not an accepted guess", ui.Detail{Key: "Word", Value: word})
		return nil
	}
	p.PrintSuccess("Accepted guess", ui.Detail{Key: "Word", Value: word})
	return nil
}

// wordSource is the subset of the solver client suggest needs
type wordSource interface {
	OptimalGuess(ctx context.Context) (string, error)
	RandomViableGuess(ctx context.Context) (string, error)
	RandomWord(ctx context.Context) (string, error)
}

type suggestion struct {
	mode  string
	label string
	fetch func(wordSource, context.Context) (string, error)
}

var suggestions = []suggestion{
	{"optimal", "Optimal guess", wordSource.OptimalGuess},
	{"viable", "Random viable guess", wordSource.RandomViableGuess},
	{"random", "Random word", wordSource.RandomWord},
}

// suggestCmd fetches a suggestion without opening the board
var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Fetch a suggested guess from the solver",
	Long: `Fetch a suggestion from the solver's current candidate list.

Modes:
  optimal  the solver's best next guess
  viable   a random word still consistent with the submitted feedback
  random   any random word
  all      all three at once`,
	Example: `  wordlebuddy suggest
  wordlebuddy suggest --mode viable
  wordlebuddy suggest --mode all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newSolverClient()
		p := ui.NewPrinter(cmd.OutOrStdout())
		if suggestMode == "all" {
			return suggestAll(cmd.Context(), client, client.BaseURL, p)
		}
		return suggestOne(cmd.Context(), client, suggestMode, p)
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestMode, "mode", "optimal", "Suggestion mode (optimal, viable, random, all)")
}

func findSuggestion(mode string) (suggestion, bool) {
	for _, s := range suggestions {
		if s.mode == mode {
			return s, true
		}
	}
	return suggestion{}, false
}

func suggestOne(ctx context.Context, src wordSource, mode string, p *ui.Printer) error {
	s, ok := findSuggestion(mode)
	if !ok {
		return fmt.Errorf("unknown mode %q (use optimal, viable, random or all)", mode)
	}

	word, err := s.fetch(src, ctx)
	if err != nil {
		p.PrintError(s.label+" failed", err, solverTroubleshooting(err))
		return err
	}

	if word == solver.NoViableOptions {
		p.PrintWarning("No viable options", ui.Detail{Key: "Mode", Value: s.mode})
		return nil
	}
	p.PrintSuccess(s.label, ui.Detail{Key: "Word", Value: word})
	return nil
}

// suggestAll fetches every mode concurrently. An unreachable solver aborts
// the rest; other failures only mark their step.
func suggestAll(ctx context.Context, src wordSource, solverURL string, p *ui.Printer) error {
	labels := make([]string, len(suggestions))
	for i, s := range suggestions {
		labels[i] = s.label
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "Suggestions",
		Command: "wordlebuddy suggest --mode all",
		Params:  []ui.Detail{{Key: "Solver", Value: solverURL}},
		Steps:   labels,
		Troubleshooting: []string{
			"Check the solver URL with 'wordlebuddy config show'",
			"Run 'wordlebuddy scan' to find solvers on the local network",
		},
		Output: p.Writer(),
	}).SetWidth(p.Width())

	return runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) ([]ui.Detail, error) {
		words := make([]string, len(suggestions))

		g, gctx := errgroup.WithContext(ctx)
		for i, s := range suggestions {
			i, s := i, s
			g.Go(func() error {
				onStep(i+1, ui.StepRunning, "")
				word, err := s.fetch(src, gctx)
				if err != nil {
					onStep(i+1, ui.StepFailed, solver.ShortMessage(err))
					if solver.IsNetworkError(err) {
						return err
					}
					return nil
				}
				words[i] = word
				onStep(i+1, ui.StepComplete, word)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var details []ui.Detail
		for i, s := range suggestions {
			if words[i] != "" {
				details = append(details, ui.Detail{Key: s.label, Value: words[i]})
			}
		}
		return details, nil
	})
}

// hardcoreCmd flips the solver's hardcore mode
var hardcoreCmd = &cobra.Command{
	Use:   "hardcore",
	Short: "Toggle the solver's hardcore mode",
	Long: `Toggle hardcore mode on the solver.

The solver does not report the resulting state; each call flips it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newSolverClient()
		return toggleHardcore(cmd.Context(), client, client.BaseURL, ui.NewPrinter(cmd.OutOrStdout()))
	},
}

func toggleHardcore(ctx context.Context, backend interface {
	ToggleHardcore(ctx context.Context) error
}, solverURL string, p *ui.Printer) error {
	if err := backend.ToggleHardcore(ctx); err != nil {
		p.PrintError("Hardcore toggle failed", err, solverTroubleshooting(err))
		return err
	}
	p.PrintSuccess("Hardcore mode toggled", ui.Detail{Key: "Solver", Value: solverURL})
	return nil
}

// scanCmd discovers solver services on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for solver services on the local network",
	Long: `Scan for solver services using mDNS/DNS-SD discovery.

Solvers advertise the ` + discovery.ServiceType + ` service type. Every solver found
is remembered in the config file so it can be selected with --solver <name>.`,
	Example: `  # Scan for 5 seconds (default)
  wordlebuddy scan

  # Longer scan and make the solver named "kitchen" the default
  wordlebuddy scan --timeout 15s --use kitchen`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", discovery.DefaultScanTimeout, "Scan timeout")
	scanCmd.Flags().StringVar(&useSolver, "use", "", "Make the named solver the default")
}

func runScan(cmd *cobra.Command, args []string) error {
	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Solver Discovery", "wordlebuddy scan",
		ui.Detail{Key: "Service", Value: discovery.ServiceType},
		ui.Detail{Key: "Timeout", Value: scanTimeout.String()},
	)

	services, err := discovery.Scan(cmd.Context(), scanTimeout)
	if err != nil {
		p.PrintError("Scan failed", err, []string{
			"Ensure multicast traffic is allowed on this network",
			"Use --solver to give the solver URL directly",
		})
		return err
	}

	if len(services) == 0 {
		p.PrintWarning("No solvers found",
			ui.Detail{Key: "Tip", Value: "Ensure the solver is running and advertising " + discovery.ServiceType},
			ui.Detail{Key: "Tip", Value: "Try increasing --timeout for slower networks"},
		)
		return nil
	}

	return rememberServices(cfg, services, useSolver, p)
}

// rememberServices records discovered solvers and saves the config
func rememberServices(c *config.Config, services []*discovery.Service, use string, p *ui.Printer) error {
	for i, svc := range services {
		p.Println(fmt.Sprintf("  %d. %s", i+1, svc))
		c.RememberSolver(svc.Instance, svc.URL(), svc.Hostname)
	}
	p.Newline()

	details := []ui.Detail{{Key: "Found", Value: fmt.Sprintf("%d", len(services))}}
	if use != "" {
		known, ok := c.KnownSolvers[use]
		if !ok {
			return fmt.Errorf("solver %q was not found (known: %s)", use, strings.Join(c.KnownSolverNames(), ", "))
		}
		c.Solver.BaseURL = known.URL
		details = append(details, ui.Detail{Key: "Default", Value: known.URL})
	}

	if err := c.Save(); err != nil {
		p.PrintError("Could not save discovered solvers", err, nil)
		return err
	}
	path, _ := config.GetConfigPath()
	details = append(details, ui.Detail{Key: "Saved to", Value: path})

	p.PrintSuccess("Solvers discovered", details...)
	return nil
}

// configCmd manages the config file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the effective configuration: the config file merged with defaults
and environment overrides.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), cfg)
	},
}

func showConfig(w io.Writer, c *config.Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		force := forceInit
		if _, err := os.Stat(path); err == nil && !force {
			force = ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Overwrite configuration",
				[]string{"An existing configuration file will be replaced with defaults", path},
				"Overwrite it?")
			if !force {
				return nil
			}
		}

		if _, err := config.CreateDefaultConfig(force); err != nil {
			return err
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Configuration written", ui.Detail{Key: "Path", Value: path})
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
