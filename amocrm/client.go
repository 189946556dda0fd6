package amocrm

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/amocrm/request"
)

// Client holds the session credentials and hands out resource models
type Client struct {
	params *request.ParamsBag
	logger zerolog.Logger
	opts   []request.Option
}

// NewClient creates a new amoCRM client. opts are applied to the request
// of every model created by the client.
func NewClient(domain, login, apiKey string, logger zerolog.Logger, opts ...request.Option) (*Client, error) {
	if domain == "" {
		return nil, fmt.Errorf("%w: amoCRM domain is required", ErrInvalidConfig)
	}
	if login == "" {
		return nil, fmt.Errorf("%w: amoCRM login is required", ErrInvalidConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: amoCRM API key is required", ErrInvalidConfig)
	}

	params := request.NewParamsBag().
		SetAuth(request.AuthDomain, domain).
		SetAuth(request.AuthLogin, login).
		SetAuth(request.AuthAPIKey, apiKey)

	return &Client{
		params: params,
		logger: logger,
		opts:   opts,
	}, nil
}

// Model returns a new handle for the named resource. Each handle works on
// its own copy of the session parameters.
func (c *Client) Model(name string) (*Model, error) {
	res, ok := lookup(name)
	if !ok {
		return nil, &UnknownModelError{Name: name}
	}

	opts := append(append([]request.Option{}, c.opts...), request.WithAuthScheme(res.scheme))
	logger := c.logger.With().Str("model", res.name).Logger()

	return &Model{
		res: res,
		req: request.New(c.params.Clone(), logger, opts...),
	}, nil
}

// MustModel is like Model but panics on unknown names
func (c *Client) MustModel(name string) *Model {
	m, err := c.Model(name)
	if err != nil {
		panic(err)
	}
	return m
}

// Models returns the names accepted by Model
func (c *Client) Models() []string {
	return ModelNames()
}

// Domain returns the account subdomain of the session
func (c *Client) Domain() string {
	return c.params.Auth(request.AuthDomain)
}

// NewRequest returns a request with a fresh copy of the session parameters
// for paths not covered by a model. It uses the scheme set through the
// client options, AuthCurrent by default.
func (c *Client) NewRequest() *request.Request {
	return request.New(c.params.Clone(), c.logger, c.opts...)
}
