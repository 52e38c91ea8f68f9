package solver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of a failed solver call
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeHTTP indicates a non-2xx status code
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed or incomplete response body
	ErrTypeParse
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the solver URL
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeCanceled indicates the caller gave up (context canceled)
	ErrTypeCanceled
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// NetworkErrorSubtype provides more specific network error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeCanceled:
		return "Canceled"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is returned by every Client call that fails
type Error struct {
	Type           ErrorType           // Category of error
	Message        string              // Human-readable error message
	StatusCode     int                 // HTTP status code (if applicable)
	Err            error               // Underlying error (if any)
	NetworkSubtype NetworkErrorSubtype // More specific network error type
	Endpoint       string              // Path that was called
	Retryable      bool                // Whether the call may be retried
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a more specific error type
func ClassifyNetworkError(err error, endpoint string) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return &Error{
			Type:      ErrTypeCanceled,
			Message:   "Request canceled",
			Err:       err,
			Endpoint:  endpoint,
			Retryable: false,
		}
	}

	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Type:           ErrTypeTimeout,
			Message:        "Request timed out",
			Err:            err,
			NetworkSubtype: NetworkErrorTimeout,
			Endpoint:       endpoint,
			Retryable:      true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{
			Type:           ErrTypeDNS,
			Message:        fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:            err,
			NetworkSubtype: NetworkErrorDNS,
			Endpoint:       endpoint,
			Retryable:      false,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &Error{
				Type:           ErrTypeConnectionRefused,
				Message:        "Solver refused connection",
				Err:            err,
				NetworkSubtype: NetworkErrorConnectionRefused,
				Endpoint:       endpoint,
				Retryable:      true,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
			return &Error{
				Type:           ErrTypeNetwork,
				Message:        "Host unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorHostUnreachable,
				Endpoint:       endpoint,
				Retryable:      true,
			}
		}
		if errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &Error{
				Type:           ErrTypeNetwork,
				Message:        "Network unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorNetworkUnreachable,
				Endpoint:       endpoint,
				Retryable:      true,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// Classify the wrapped transport error
		return ClassifyNetworkError(urlErr.Err, endpoint)
	}

	return &Error{
		Type:           ErrTypeNetwork,
		Message:        "Network error occurred",
		Err:            err,
		NetworkSubtype: NetworkErrorGeneral,
		Endpoint:       endpoint,
		Retryable:      true,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *Error {
	classified := ClassifyNetworkError(err, "")
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &Error{
		Type:      ErrTypeNetwork,
		Message:   message,
		Err:       err,
		Retryable: true,
	}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, message string) *Error {
	return &Error{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= http.StatusInternalServerError,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *Error {
	return &Error{
		Type:      ErrTypeParse,
		Message:   message,
		Err:       err,
		Retryable: false,
	}
}

func asError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS)
func IsNetworkError(err error) bool {
	if e, ok := asError(err); ok {
		return e.Type == ErrTypeNetwork ||
			e.Type == ErrTypeTimeout ||
			e.Type == ErrTypeConnectionRefused ||
			e.Type == ErrTypeDNS
	}
	return false
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	if e, ok := asError(err); ok {
		return e.Type == ErrTypeHTTP
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	if e, ok := asError(err); ok {
		return e.Type == ErrTypeParse
	}
	return false
}

// IsCanceled checks if the call was abandoned by its caller
func IsCanceled(err error) bool {
	if e, ok := asError(err); ok {
		return e.Type == ErrTypeCanceled
	}
	return errors.Is(err, context.Canceled)
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	if e, ok := asError(err); ok {
		return e.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}

// TroubleshootingHint returns user-friendly troubleshooting advice for an error
func TroubleshootingHint(err error) string {
	e, ok := asError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch e.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The solver did not respond in time.",
			"Troubleshooting:",
			"  • Check that the solver service is running",
			"  • Try increasing solver.timeout in the config file",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The solver refused the connection.",
			"Troubleshooting:",
			"  • Start the solver backend",
			"  • Check the solver URL (--solver or WORDLEBUDDY_SOLVER_URL)",
			"  • Run 'wordlebuddy scan' to look for solvers on the network",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the solver hostname.",
			"Troubleshooting:",
			"  • Use an IP address instead of a hostname",
			"  • Check your network DNS settings",
		}, "\n")

	case ErrTypeNetwork:
		switch e.NetworkSubtype {
		case NetworkErrorHostUnreachable, NetworkErrorNetworkUnreachable:
			return strings.Join([]string{
				"The solver host is not reachable.",
				"Troubleshooting:",
				"  • Verify the solver address",
				"  • Check that you're on the same network as the solver",
			}, "\n")
		default:
			return "Network communication with the solver failed. Check your connection."
		}

	case ErrTypeHTTP:
		if e.StatusCode == http.StatusNotFound {
			return fmt.Sprintf("The solver does not serve %s. Check solver.paths in the config file.", e.Endpoint)
		}
		if e.StatusCode >= 500 {
			return fmt.Sprintf("The solver failed internally (HTTP %d). Check its logs.", e.StatusCode)
		}
		return fmt.Sprintf("The solver rejected the request (HTTP %d).", e.StatusCode)

	case ErrTypeParse:
		return "The solver's response could not be understood. Is the URL pointing at a wordle solver?"

	case ErrTypeCanceled:
		return "The request was canceled."

	default:
		return "An error occurred. Please check the error message for details."
	}
}

// ShortMessage returns a concise message suitable for a status line
func ShortMessage(err error) string {
	e, ok := asError(err)
	if !ok {
		return err.Error()
	}

	switch e.Type {
	case ErrTypeTimeout:
		return "Solver not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Solver refused connection - is it running?"
	case ErrTypeDNS:
		return "Cannot resolve solver hostname"
	case ErrTypeNetwork:
		switch e.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			return "Solver unreachable - check network connection"
		case NetworkErrorNetworkUnreachable:
			return "Network unreachable"
		default:
			return "Network error - check connection"
		}
	case ErrTypeHTTP:
		return fmt.Sprintf("Solver error (HTTP %d)", e.StatusCode)
	case ErrTypeParse:
		return "Failed to parse solver response"
	case ErrTypeCanceled:
		return "Canceled"
	default:
		return e.Message
	}
}
