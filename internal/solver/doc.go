// Package solver provides an HTTP client for a wordle solver backend.
//
// The solver is an external service that owns the word list. This package
// only speaks its HTTP+JSON contract; every call is a POST:
//
//	Path                     Request                           Response
//	-----------------------  --------------------------------  ---------------------------------
//	/check_word_viability    {"word"}                          {"valid": bool}
//	/submit_guess_data       {"words", "feedback"}             {"word", "possible_words_left"}
//	/possible_words          {"words", "feedback", "currentRow"} {"possible_words_left"}
//	/generate-optimal-guess  (none)                            {"word"}
//	/random-viable-guess     (none)                            {"word"}
//	/random-guess            (none)                            {"word"}
//	/toggle-hardcore-mode    (none)                            (ignored)
//
// Paths can be overridden through Client.Paths. possible_words_left is
// accepted both as a JSON number and as a numeric string.
//
// # Usage
//
//	client := solver.NewClient("http://127.0.0.1:8080")
//	valid, err := client.CheckWord(ctx, "crane")
//	if err != nil {
//	    fmt.Println(solver.ShortMessage(err))
//	}
//
// # Retry Logic
//
// Retryable failures (timeouts, refused connections, 5xx) are retried with
// exponential backoff up to MaxRetries. The hardcore toggle is never retried.
// Every call honours its context; canceling it stops the retry loop.
//
// # Error Handling
//
// All failures are *Error values carrying an ErrorType:
//
//	if solver.IsNetworkError(err) {
//	    fmt.Println(solver.TroubleshootingHint(err))
//	}
package solver
