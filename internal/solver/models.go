package solver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/muurk/wordlebuddy/internal/guess"
)

// NoViableOptions is the word the reference solver returns when its candidate
// list is exhausted
const NoViableOptions = "No Viable Options"

// CheckWordRequest is the body of the word validator call
type CheckWordRequest struct {
	Word string `json:"word"`
}

type checkWordResponse struct {
	Valid *bool `json:"valid"`
}

// SubmitRequest carries the committed board to the solver
type SubmitRequest struct {
	Words    []string   `json:"words"`
	Feedback [][]string `json:"feedback"`
}

// NewSubmitRequest splits records into the aligned wire arrays
func NewSubmitRequest(records []guess.Record) SubmitRequest {
	return SubmitRequest{
		Words:    guess.Words(records),
		Feedback: guess.Feedback(records),
	}
}

// PossibleWordsRequest is the live analysis body
type PossibleWordsRequest struct {
	Words      []string   `json:"words"`
	Feedback   [][]string `json:"feedback"`
	CurrentRow int        `json:"currentRow"`
}

// Suggestion is the solver's answer to a submission
type Suggestion struct {
	Word              string `json:"word"`
	PossibleWordsLeft Count  `json:"possible_words_left"`
}

type possibleWordsResponse struct {
	PossibleWordsLeft *Count `json:"possible_words_left"`
}

type wordResponse struct {
	Word *string `json:"word"`
}

// Count is a candidate count that decodes from either a JSON number or a
// numeric string
type Count int

// UnmarshalJSON implements json.Unmarshaler
func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("possible_words_left %q is not a number: %w", s, err)
		}
		*c = Count(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("possible_words_left is not a number: %w", err)
	}
	*c = Count(n)
	return nil
}
