package request

import (
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultTimeout is applied to the HTTP client built by New
const DefaultTimeout = 30 * time.Second

// Option configures a Request.
type Option func(*requestOptions)

// requestOptions holds configuration options for the Request.
type requestOptions struct {
	scheme       AuthScheme
	baseURL      string
	timeout      time.Duration
	verifyCert   bool
	httpClient   *http.Client
	retainParams bool
}

func defaultOptions() requestOptions {
	return requestOptions{
		scheme:  AuthCurrent,
		timeout: DefaultTimeout,
	}
}

// WithAuthScheme selects how credentials are put on the query string.
func WithAuthScheme(scheme AuthScheme) Option {
	return func(o *requestOptions) {
		o.scheme = scheme
	}
}

// WithBaseURL replaces https://{domain}.amocrm.ru as the endpoint prefix.
func WithBaseURL(baseURL string) Option {
	return func(o *requestOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *requestOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithTLSVerification turns certificate and hostname verification back on.
// Verification is off by default because older amoCRM installations
// served self-signed certificates.
func WithTLSVerification() Option {
	return func(o *requestOptions) {
		o.verifyCert = true
	}
}

// WithHTTPClient uses a caller supplied http.Client. Timeout and TLS
// options are ignored when it is set.
func WithHTTPClient(client *http.Client) Option {
	return func(o *requestOptions) {
		o.httpClient = client
	}
}

// WithParamRetention keeps GET and POST arguments after a call instead of
// clearing them, so they are sent again with the next call.
func WithParamRetention() Option {
	return func(o *requestOptions) {
		o.retainParams = true
	}
}

func (o requestOptions) buildHTTPClient() *http.Client {
	if o.httpClient != nil {
		return o.httpClient
	}

	return &http.Client{
		Timeout: o.timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: !o.verifyCert, //nolint:gosec // legacy self-signed deployments
			},
		},
	}
}
