package request

import (
	"errors"
	"fmt"
)

// NetworkError is returned when the HTTP call itself failed: connection
// refused, DNS lookup, TLS handshake, timeout.
type NetworkError struct {
	// Code is the native error number when one is known, otherwise 0
	Code    int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("amoCRM network error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("amoCRM network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// FormatError is returned when the IF-MODIFIED-SINCE value cannot be parsed.
// The request is not sent.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid modified-since value %q: %v", e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// APIError is an error reported by the amoCRM server (HTTP status >= 300)
type APIError struct {
	// Code is the server error_code, 0 when none was supplied
	Code       int
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("amoCRM API error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("amoCRM API error: %s", e.Message)
}

// IsNetworkError checks if err is or wraps a *NetworkError
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsFormatError checks if err is or wraps a *FormatError
func IsFormatError(err error) bool {
	var fmtErr *FormatError
	return errors.As(err, &fmtErr)
}

// APIErrorCode returns the server error code carried by err and whether err was an *APIError
func APIErrorCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	return 0, false
}
