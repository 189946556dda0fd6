package request

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Response is the content of the "response" envelope of a successful call.
// Its shape depends on the resource and is not interpreted here. A payload
// that is not an object is kept under the ValueKey entry.
type Response map[string]any

// ValueKey holds a non-object success payload such as "ok" or [1,2]
const ValueKey = "value"

// envelope is the wrapper used by amoCRM for both results and errors
type envelope struct {
	Response json.RawMessage `json:"response"`
}

// errorPayload is the error shape of the current scheme
type errorPayload struct {
	Error     any `json:"error"`
	ErrorCode any `json:"error_code"`
}

// ParseResponse interprets a raw response body.
//
// It returns (nil, nil) when the body carries no "response" key, including
// empty or unparseable bodies, and when the payload is false, 0, "0" or "".
// A status of 300 or above yields an *APIError;
// under AuthLegacy the whole error payload becomes the message since those
// methods do not fill error and error_code consistently.
func ParseResponse(body []byte, status int, scheme AuthScheme) (Response, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, nil
	}

	raw := bytes.TrimSpace(env.Response)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if status/100 >= 3 {
		return nil, newAPIError(raw, status, scheme)
	}

	// the server encodes an empty result as []
	if bytes.Equal(raw, []byte("[]")) {
		return Response{}, nil
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil
	}

	switch v := payload.(type) {
	case map[string]any:
		return Response(v), nil
	case bool:
		if !v {
			return nil, nil
		}
	case string:
		if v == "" || v == "0" {
			return nil, nil
		}
	case float64:
		if v == 0 {
			return nil, nil
		}
	}

	return Response{ValueKey: payload}, nil
}

func newAPIError(raw json.RawMessage, status int, scheme AuthScheme) *APIError {
	if scheme == AuthLegacy {
		return &APIError{Message: compactPayload(raw), StatusCode: status}
	}

	var payload errorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &APIError{Message: compactPayload(raw), StatusCode: status}
	}

	apiErr := &APIError{
		Message:    cast.ToString(payload.Error),
		StatusCode: status,
	}
	if code, err := parseErrorCode(payload.ErrorCode); err == nil && code > 0 {
		apiErr.Code = code
	}

	return apiErr
}

func compactPayload(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// parseErrorCode reads error_code as a decimal number; string codes may be
// zero padded ("0101").
func parseErrorCode(v any) (int, error) {
	if s, ok := v.(string); ok {
		return strconv.Atoi(strings.TrimSpace(s))
	}
	return cast.ToIntE(v)
}
