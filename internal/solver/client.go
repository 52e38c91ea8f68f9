package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/muurk/wordlebuddy/internal/guess"
	"github.com/muurk/wordlebuddy/internal/logging"
	"github.com/muurk/wordlebuddy/internal/version"
)

const (
	// DefaultBaseURL is where the reference solver backend listens
	DefaultBaseURL = "http://127.0.0.1:8080"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed requests
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 250 * time.Millisecond

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 5 * time.Second

	maxResponseBytes = 1 << 20
)

// Paths names the solver endpoints relative to BaseURL
type Paths struct {
	CheckWord     string `yaml:"check_word"`
	Submit        string `yaml:"submit"`
	PossibleWords string `yaml:"possible_words"`
	OptimalGuess  string `yaml:"optimal_guess"`
	RandomViable  string `yaml:"random_viable"`
	RandomWord    string `yaml:"random_word"`
	Hardcore      string `yaml:"hardcore"`
}

// DefaultPaths returns the endpoint layout of the reference backend
func DefaultPaths() Paths {
	return Paths{
		CheckWord:     "/check_word_viability",
		Submit:        "/submit_guess_data",
		PossibleWords: "/possible_words",
		OptimalGuess:  "/generate-optimal-guess",
		RandomViable:  "/random-viable-guess",
		RandomWord:    "/random-guess",
		Hardcore:      "/toggle-hardcore-mode",
	}
}

// WithDefaults fills empty entries from DefaultPaths
func (p Paths) WithDefaults() Paths {
	d := DefaultPaths()
	if p.CheckWord == "" {
		p.CheckWord = d.CheckWord
	}
	if p.Submit == "" {
		p.Submit = d.Submit
	}
	if p.PossibleWords == "" {
		p.PossibleWords = d.PossibleWords
	}
	if p.OptimalGuess == "" {
		p.OptimalGuess = d.OptimalGuess
	}
	if p.RandomViable == "" {
		p.RandomViable = d.RandomViable
	}
	if p.RandomWord == "" {
		p.RandomWord = d.RandomWord
	}
	if p.Hardcore == "" {
		p.Hardcore = d.Hardcore
	}
	return p
}

// Client talks HTTP+JSON to a wordle solver backend
type Client struct {
	// BaseURL is the solver root (e.g., "http://127.0.0.1:8080")
	BaseURL string

	// Paths are the endpoint paths under BaseURL
	Paths Paths

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	// UseExponentialBackoff enables exponential backoff for retries
	UseExponentialBackoff bool
}

// NewClient creates a solver client for baseURL. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL:               strings.TrimRight(baseURL, "/"),
		Paths:                 DefaultPaths(),
		HTTPClient:            &http.Client{Timeout: DefaultTimeout},
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// CallBudget is the longest a retried call can take: every attempt running
// into the HTTP timeout plus the backoff delays between them.
func (c *Client) CallBudget() time.Duration {
	budget := c.HTTPClient.Timeout
	delay := c.RetryDelay
	for attempt := 1; attempt <= c.MaxRetries; attempt++ {
		budget += c.HTTPClient.Timeout + delay
		if c.UseExponentialBackoff {
			delay *= 2
			if delay > c.MaxRetryDelay {
				delay = c.MaxRetryDelay
			}
		}
	}
	return budget
}

// CheckWord asks the validator whether word is an acceptable guess.
// A response without a boolean "valid" field is a parse error.
func (c *Client) CheckWord(ctx context.Context, word string) (bool, error) {
	var resp checkWordResponse
	req := CheckWordRequest{Word: strings.ToLower(word)}
	if err := c.post(ctx, c.Paths.CheckWord, req, &resp, true); err != nil {
		return false, err
	}
	if resp.Valid == nil {
		return false, &Error{
			Type:     ErrTypeParse,
			Message:  "response has no boolean \"valid\" field",
			Endpoint: c.Paths.CheckWord,
		}
	}
	return *resp.Valid, nil
}

// SubmitGuesses sends the committed rows and returns the solver's next suggestion
func (c *Client) SubmitGuesses(ctx context.Context, records []guess.Record) (*Suggestion, error) {
	var resp Suggestion
	if err := c.post(ctx, c.Paths.Submit, NewSubmitRequest(records), &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PossibleWords asks how many candidates remain for the given board
func (c *Client) PossibleWords(ctx context.Context, records []guess.Record, currentRow int) (int, error) {
	req := PossibleWordsRequest{
		Words:      guess.Words(records),
		Feedback:   guess.Feedback(records),
		CurrentRow: currentRow,
	}

	var resp possibleWordsResponse
	if err := c.post(ctx, c.Paths.PossibleWords, req, &resp, true); err != nil {
		return 0, err
	}
	if resp.PossibleWordsLeft == nil {
		return 0, &Error{
			Type:     ErrTypeParse,
			Message:  "response has no \"possible_words_left\" field",
			Endpoint: c.Paths.PossibleWords,
		}
	}
	return int(*resp.PossibleWordsLeft), nil
}

// OptimalGuess fetches the solver's best guess for its current candidate list
func (c *Client) OptimalGuess(ctx context.Context) (string, error) {
	return c.fetchWord(ctx, c.Paths.OptimalGuess)
}

// RandomViableGuess fetches a random word that is still consistent with the board
func (c *Client) RandomViableGuess(ctx context.Context) (string, error) {
	return c.fetchWord(ctx, c.Paths.RandomViable)
}

// RandomWord fetches an unconstrained random word
func (c *Client) RandomWord(ctx context.Context) (string, error) {
	return c.fetchWord(ctx, c.Paths.RandomWord)
}

// ToggleHardcore flips the solver's hardcore mode. The response body is ignored.
// It is never retried: a retried toggle could flip the mode twice.
func (c *Client) ToggleHardcore(ctx context.Context) error {
	return c.post(ctx, c.Paths.Hardcore, nil, nil, false)
}

func (c *Client) fetchWord(ctx context.Context, path string) (string, error) {
	var resp wordResponse
	if err := c.post(ctx, path, nil, &resp, true); err != nil {
		return "", err
	}
	if resp.Word == nil {
		return "", &Error{
			Type:     ErrTypeParse,
			Message:  "response has no \"word\" field",
			Endpoint: path,
		}
	}
	return *resp.Word, nil
}

// post performs a JSON POST with the retry policy. A nil body sends no
// payload; a nil out skips decoding.
func (c *Client) post(ctx context.Context, path string, body, out any, retry bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", path, err)
		}
	}

	maxRetries := c.MaxRetries
	if !retry {
		maxRetries = 0
	}

	var lastErr error
	currentDelay := c.RetryDelay

	// Retry loop with exponential backoff
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ClassifyNetworkError(ctx.Err(), path)
			case <-time.After(currentDelay):
			}

			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
		}

		err := c.postAttempt(ctx, path, payload, out, attempt+1)
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry non-retryable errors or abandoned calls
		if !IsRetryable(err) || ctx.Err() != nil {
			return err
		}
	}

	return lastErr
}

func (c *Client) postAttempt(ctx context.Context, path string, payload []byte, out any, attempt int) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, reqBody)
	if err != nil {
		return &Error{Type: ErrTypeUnknown, Message: "failed to create POST request", Err: err, Endpoint: path}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	logging.LogSolverRequest(http.MethodPost, path, attempt)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		e := NewNetworkError("POST request failed", err)
		e.Endpoint = path
		return e
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		e := NewNetworkError("failed to read response body", err)
		e.Endpoint = path
		return e
	}

	logging.LogSolverResponse(path, resp.StatusCode, time.Since(start), data)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := NewHTTPError(resp.StatusCode, fmt.Sprintf("%s returned status %d", path, resp.StatusCode))
		e.Endpoint = path
		return e
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		e := NewParseError(fmt.Sprintf("failed to parse %s response", path), err)
		e.Endpoint = path
		return e
	}

	return nil
}
