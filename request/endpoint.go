package request

import (
	"fmt"
	"net/url"
	"strings"
)

// AuthScheme selects the query parameters that carry the credentials
type AuthScheme int

const (
	// AuthCurrent sends USER_LOGIN and USER_HASH
	AuthCurrent AuthScheme = iota
	// AuthLegacy sends login and api_key, used by the older API methods
	AuthLegacy
)

// String returns the string representation of an AuthScheme
func (s AuthScheme) String() string {
	switch s {
	case AuthLegacy:
		return "legacy"
	default:
		return "current"
	}
}

// ParseAuthScheme converts "current" or "legacy" into an AuthScheme
func ParseAuthScheme(s string) (AuthScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "current", "v2":
		return AuthCurrent, nil
	case "legacy", "v1":
		return AuthLegacy, nil
	default:
		return AuthCurrent, fmt.Errorf("unknown auth scheme: %s", s)
	}
}

// queryKeys returns the login and key parameter names for the scheme
func (s AuthScheme) queryKeys() (string, string) {
	if s == AuthLegacy {
		return "login", "api_key"
	}
	return "USER_LOGIN", "USER_HASH"
}

// PrepareEndpoint builds the full URL for path from the current GET
// arguments and the credentials. Credentials are merged last and win over
// GET arguments with the same name.
func (r *Request) PrepareEndpoint(path string) string {
	return r.buildEndpoint(path, r.params.Auth(AuthAPIKey))
}

func (r *Request) buildEndpoint(path, apiKey string) string {
	query := r.params.get.clone()
	loginKey, hashKey := r.scheme.queryKeys()
	query.set(loginKey, r.params.Auth(AuthLogin))
	query.set(hashKey, apiKey)

	return fmt.Sprintf("%s%s?%s", r.baseURL(), path, encodeQuery(&query))
}

func (r *Request) baseURL() string {
	if r.base != "" {
		return strings.TrimRight(r.base, "/")
	}
	return fmt.Sprintf("https://%s.amocrm.ru", r.params.Auth(AuthDomain))
}

// encodeQuery is url.Values.Encode without the key sorting
func encodeQuery(m *orderedMap[string]) string {
	var b strings.Builder
	m.each(func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	})
	return b.String()
}
