package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"syscall"

	"github.com/rs/zerolog"
)

const redactedKey = "********"

// Request sends calls to the amoCRM API on behalf of one resource model.
//
// A Request owns its ParamsBag and must not be shared between goroutines.
type Request struct {
	params       *ParamsBag
	scheme       AuthScheme
	base         string
	httpClient   *http.Client
	retainParams bool
	logger       zerolog.Logger
}

// New creates a Request around params
func New(params *ParamsBag, logger zerolog.Logger, opts ...Option) *Request {
	if params == nil {
		params = NewParamsBag()
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Request{
		params:       params,
		scheme:       o.scheme,
		base:         o.baseURL,
		httpClient:   o.buildHTTPClient(),
		retainParams: o.retainParams,
		logger:       logger,
	}
}

// Params returns the bag used to build calls
func (r *Request) Params() *ParamsBag {
	return r.params
}

// Scheme returns the authentication scheme of the request
func (r *Request) Scheme() AuthScheme {
	return r.scheme
}

// GetRequest adds params to the GET arguments and performs the call
func (r *Request) GetRequest(ctx context.Context, path string, params map[string]string, modified string) (Response, error) {
	if len(params) > 0 {
		r.params.AddGetMap(params)
	}
	return r.Do(ctx, path, modified)
}

// PostRequest adds params to the POST body and performs the call
func (r *Request) PostRequest(ctx context.Context, path string, params map[string]any) (Response, error) {
	if len(params) > 0 {
		r.params.AddPostMap(params)
	}
	return r.Do(ctx, path, "")
}

type requestBody struct {
	Request map[string]any `json:"request"`
}

// Do performs a call to path with the arguments currently held in the bag.
// The call is a POST when body fields are present and a GET otherwise.
//
// A nil Response with a nil error means the server sent no data.
func (r *Request) Do(ctx context.Context, path, modified string) (Response, error) {
	headers, err := PrepareHeaders(modified)
	if err != nil {
		return nil, err
	}

	endpoint := r.PrepareEndpoint(path)

	method := http.MethodGet
	var body io.Reader
	var fields []byte
	if r.params.HasPost() {
		fields, err = json.Marshal(requestBody{Request: r.params.Post()})
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		method = http.MethodPost
		body = bytes.NewReader(fields)
	}

	if !r.retainParams {
		defer r.params.ResetRequest()
	}

	headerLines := make([]string, 0, len(headers))
	for _, h := range headers {
		headerLines = append(headerLines, h.String())
	}

	event := r.logger.Debug().
		Str("method", method).
		Str("endpoint", r.buildEndpoint(path, redactedKey)).
		Stringer("scheme", r.scheme).
		Strs("headers", headerLines)
	if fields != nil {
		event = event.RawJSON("fields", fields)
	}
	event.Msg("Making amoCRM API request")

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, newNetworkError(err)
	}
	for _, h := range headers {
		req.Header.Set(h.Name, h.Value)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	r.logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Msg("Received amoCRM API response")

	return ParseResponse(data, resp.StatusCode, r.scheme)
}

func newNetworkError(err error) *NetworkError {
	netErr := &NetworkError{Message: err.Error(), Err: err}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		netErr.Code = int(errno)
	}

	return netErr
}
