package amocrm

import (
	"context"
	"fmt"

	"github.com/s0up4200/amocrm/request"
)

// Model is a handle on one amoCRM resource (leads, contacts, ...).
// A Model is meant for one logical operation at a time and is not safe
// for concurrent use; create one per goroutine.
type Model struct {
	res resource
	req *request.Request
}

// Name returns the registry name of the model
func (m *Model) Name() string {
	return m.res.name
}

// String implements fmt.Stringer
func (m *Model) String() string {
	return m.res.name
}

// Scheme returns the authentication scheme used by the model
func (m *Model) Scheme() request.AuthScheme {
	return m.res.scheme
}

// Request exposes the underlying request for calls to arbitrary paths
func (m *Model) Request() *request.Request {
	return m.req
}

// List fetches records of the resource. modified may be empty; otherwise it
// is sent as IF-MODIFIED-SINCE. A nil Response means the server sent no data.
func (m *Model) List(ctx context.Context, params map[string]string, modified string) (request.Response, error) {
	if m.res.listPath == "" {
		return nil, fmt.Errorf("%w: %s has no list endpoint", ErrUnsupportedOperation, m.res.name)
	}
	return m.req.GetRequest(ctx, m.res.listPath, params, modified)
}

// Set creates or updates records of the resource
func (m *Model) Set(ctx context.Context, params map[string]any) (request.Response, error) {
	if m.res.setPath == "" {
		return nil, fmt.Errorf("%w: %s has no set endpoint", ErrUnsupportedOperation, m.res.name)
	}
	return m.req.PostRequest(ctx, m.res.setPath, params)
}
