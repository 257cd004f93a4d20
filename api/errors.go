package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidAPIKey is returned before any network call when the API key is malformed.
var ErrInvalidAPIKey = errors.New("invalid api key")

// Error is an API-level failure: a non-2xx status, a response with
// success=false, or a body that could not be decoded.
type Error struct {
	StatusCode int
	Code       int
	Info       string
	Body       []byte
	Context    RequestContext
	Err        error
}

// Error implements error.
func (e *Error) Error() string {
	msg := e.Info
	if msg == "" {
		msg = "request failed"
	}
	if e.Code != 0 {
		msg = fmt.Sprintf("%s (error code %d)", msg, e.Code)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return fmt.Sprintf("multisafepay api error (%d): %s", e.StatusCode, msg)
}

// Unwrap returns the decode error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Details renders the failure together with the request that caused it.
func (e *Error) Details() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	sb.WriteString("\n")
	if e.Context.Method != "" {
		fmt.Fprintf(&sb, "request: %s %s\n", e.Context.Method, e.Context.URL)
	}
	if len(e.Context.Headers) > 0 {
		keys := make([]string, 0, len(e.Context.Headers))
		for k := range e.Context.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("request headers:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %s\n", k, strings.Join(e.Context.Headers[k], ", "))
		}
	}
	if e.Context.RequestBody != "" {
		fmt.Fprintf(&sb, "request body:\n%s\n", e.Context.RequestBody)
	}
	if len(e.Context.RequestParams) > 0 {
		fmt.Fprintf(&sb, "request params: %s\n", e.Context.RequestParams.Encode())
	}
	fmt.Fprintf(&sb, "response body:\n%s\n", string(e.Body))
	return sb.String()
}

// StrictModeError lists the reasons a payload was rejected in strict mode.
type StrictModeError struct {
	Violations []string
}

// Error joins the violations.
func (e *StrictModeError) Error() string {
	return "strict mode: " + strings.Join(e.Violations, "; ")
}

// IsInvalidAPIKey reports whether err is ErrInvalidAPIKey.
func IsInvalidAPIKey(err error) bool { return errors.Is(err, ErrInvalidAPIKey) }

// IsAPIError reports whether err wraps an *Error.
func IsAPIError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

// IsStrictMode reports whether err wraps a *StrictModeError.
func IsStrictMode(err error) bool {
	var strictErr *StrictModeError
	return errors.As(err, &strictErr)
}
