// Package solvertest provides an in-memory solver backend for tests.
//
// The fake serves the same HTTP+JSON contract as the real solver from a small
// word list, filters candidates with standard Wordle scoring, and lets tests
// inject failures and inspect what was sent.
package solvertest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/muurk/wordlebuddy/internal/solver"
)

// DefaultWords is a tiny five-letter word list
var DefaultWords = []string{
	"happy", "crane", "slate", "toned", "candy", "handy", "sassy", "puppy", "hippy", "apple",
}

// Server is a running fake solver
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	words      []string
	candidates []string
	hardcore   bool
	calls      map[string]int
	failures   map[string]int
	raw        map[string]string
	submits    []solver.SubmitRequest
	checked    []string
	gate       chan struct{}
	gatePath   string
	stringyLen bool
}

// New starts a fake solver serving words (DefaultWords when empty).
// The server is closed automatically when the test ends.
func New(tb interface{ Cleanup(func()) }, words ...string) *Server {
	if len(words) == 0 {
		words = DefaultWords
	}

	s := &Server{
		words:    lowerAll(words),
		calls:    make(map[string]int),
		failures: make(map[string]int),
		raw:      make(map[string]string),
	}
	s.candidates = append([]string(nil), s.words...)
	s.Server = httptest.NewServer(s.Router())
	tb.Cleanup(s.Close)
	return s
}

// Router returns the chi router implementing the solver endpoints
func (s *Server) Router() chi.Router {
	p := solver.DefaultPaths()

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.record)
	r.Use(jsonContentType)

	r.Post(p.CheckWord, s.handleCheckWord)
	r.Post(p.Submit, s.handleSubmit)
	r.Post(p.PossibleWords, s.handlePossibleWords)
	r.Post(p.OptimalGuess, s.handleOptimal)
	r.Post(p.RandomViable, s.handleRandomViable)
	r.Post(p.RandomWord, s.handleRandom)
	r.Post(p.Hardcore, s.handleHardcore)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})
	return r
}

// FailWith makes every call to path answer with status
func (s *Server) FailWith(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// RespondRaw makes path answer 200 with body verbatim
func (s *Server) RespondRaw(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[path] = body
}

// CountAsString makes possible_words_left a JSON string, like the reference backend
func (s *Server) CountAsString(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stringyLen = enabled
}

// Hold blocks requests to path until the returned release func is called
func (s *Server) Hold(path string) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gate := make(chan struct{})
	s.gate = gate
	s.gatePath = path

	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// Reset clears recorded calls and injected failures
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = make(map[string]int)
	s.failures = make(map[string]int)
	s.raw = make(map[string]string)
	s.submits = nil
	s.checked = nil
	s.candidates = append([]string(nil), s.words...)
}

// Calls returns how many requests path has received
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// Submits returns every submission body received so far
func (s *Server) Submits() []solver.SubmitRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]solver.SubmitRequest(nil), s.submits...)
}

// Checked returns every word sent to the validator
func (s *Server) Checked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.checked...)
}

// Hardcore reports the current hardcore flag
func (s *Server) Hardcore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hardcore
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.URL.Path]++
		status := s.failures[r.URL.Path]
		raw, hasRaw := s.raw[r.URL.Path]
		var gate chan struct{}
		if s.gate != nil && s.gatePath == r.URL.Path {
			gate = s.gate
		}
		s.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}

		if status != 0 {
			http.Error(w, `{"error":"injected"}`, status)
			return
		}
		if hasRaw {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(raw))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCheckWord(w http.ResponseWriter, r *http.Request) {
	var req solver.CheckWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	word := strings.ToLower(req.Word)
	s.mu.Lock()
	s.checked = append(s.checked, word)
	valid := contains(s.words, word)
	s.mu.Unlock()

	writeJSON(w, map[string]bool{"valid": valid})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req solver.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidates, err := s.filter(req.Words, req.Feedback)
	if err != "" {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.submits = append(s.submits, req)
	s.candidates = candidates

	writeJSON(w, map[string]any{
		"word":                first(candidates),
		"possible_words_left": s.count(len(candidates)),
	})
}

func (s *Server) handlePossibleWords(w http.ResponseWriter, r *http.Request) {
	var req solver.PossibleWordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	if len(req.Words) != len(req.Feedback) {
		writeError(w, http.StatusBadRequest, "words and feedback are not aligned")
		return
	}

	// Only fully lettered, fully tagged rows up to the current row count
	var words []string
	var feedback [][]string
	for i := range req.Words {
		if i > req.CurrentRow || strings.Contains(req.Words[i], " ") || contains(req.Feedback[i], "error") {
			continue
		}
		words = append(words, req.Words[i])
		feedback = append(feedback, req.Feedback[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidates, err := s.filter(words, feedback)
	if err != "" {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, map[string]any{"possible_words_left": s.count(len(candidates))})
}

func (s *Server) handleOptimal(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]string{"word": first(s.candidates)})
}

func (s *Server) handleRandomViable(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	word := solver.NoViableOptions
	if n := len(s.candidates); n > 0 {
		word = s.candidates[n-1]
	}
	writeJSON(w, map[string]string{"word": word})
}

func (s *Server) handleRandom(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]string{"word": s.words[len(s.words)/2]})
}

func (s *Server) handleHardcore(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.hardcore = !s.hardcore
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// filter applies every non-blank row to the full word list.
// Must be called with s.mu held.
func (s *Server) filter(words []string, feedback [][]string) ([]string, string) {
	if len(words) != len(feedback) {
		return nil, "words and feedback are not aligned"
	}

	candidates := append([]string(nil), s.words...)
	for i, word := range words {
		if strings.TrimSpace(word) == "" {
			continue
		}
		if len(feedback[i]) != len(word) {
			return nil, "feedback length does not match word"
		}
		for _, fb := range feedback[i] {
			if fb != "gray" && fb != "yellow" && fb != "green" {
				return nil, "unknown feedback " + fb
			}
		}

		kept := candidates[:0]
		for _, c := range candidates {
			if equal(Score(c, word), feedback[i]) {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}
	return candidates, ""
}

func (s *Server) count(n int) any {
	if s.stringyLen {
		return strconv.Itoa(n)
	}
	return n
}

// Score returns the gray/yellow/green feedback for guess against answer,
// using two-pass Wordle scoring so repeated letters are handled correctly.
func Score(answer, guess string) []string {
	a := []rune(answer)
	g := []rune(guess)
	res := make([]string, len(g))
	remaining := make(map[rune]int)

	for i := range g {
		if i < len(a) && g[i] == a[i] {
			res[i] = "green"
		} else if i < len(a) {
			remaining[a[i]]++
		}
	}

	for i := range g {
		if res[i] == "green" {
			continue
		}
		if remaining[g[i]] > 0 {
			res[i] = "yellow"
			remaining[g[i]]--
		} else {
			res[i] = "gray"
		}
	}
	return res
}

func writeJSON(w http.ResponseWriter, v any) {
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func first(words []string) string {
	if len(words) == 0 {
		return solver.NoViableOptions
	}
	return words[0]
}

func contains(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
