package request

import (
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParams() *ParamsBag {
	return NewParamsBag().
		SetAuth(AuthDomain, "example").
		SetAuth(AuthLogin, "login@domain").
		SetAuth(AuthAPIKey, "hash")
}

func TestPrepareEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		scheme   AuthScheme
		expected string
	}{
		{
			name:     "current scheme",
			scheme:   AuthCurrent,
			expected: "https://example.amocrm.ru/foo/?USER_LOGIN=login%40domain&USER_HASH=hash",
		},
		{
			name:     "legacy scheme",
			scheme:   AuthLegacy,
			expected: "https://example.amocrm.ru/foo/?login=login%40domain&api_key=hash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(newTestParams(), zerolog.Nop(), WithAuthScheme(tt.scheme))
			assert.Equal(t, tt.expected, r.PrepareEndpoint("/foo/"))
		})
	}
}

func TestPrepareEndpoint_SchemesNeverMix(t *testing.T) {
	current := New(newTestParams(), zerolog.Nop())
	u, err := url.Parse(current.PrepareEndpoint("/x"))
	require.NoError(t, err)
	q := u.Query()
	assert.True(t, q.Has("USER_LOGIN"))
	assert.True(t, q.Has("USER_HASH"))
	assert.False(t, q.Has("login"))
	assert.False(t, q.Has("api_key"))

	legacy := New(newTestParams(), zerolog.Nop(), WithAuthScheme(AuthLegacy))
	u, err = url.Parse(legacy.PrepareEndpoint("/x"))
	require.NoError(t, err)
	q = u.Query()
	assert.True(t, q.Has("login"))
	assert.True(t, q.Has("api_key"))
	assert.False(t, q.Has("USER_LOGIN"))
	assert.False(t, q.Has("USER_HASH"))
}

func TestPrepareEndpoint_GetParams(t *testing.T) {
	params := newTestParams().
		AddGet("query", "John Smith").
		AddGet("USER_HASH", "spoofed")

	r := New(params, zerolog.Nop())
	endpoint := r.PrepareEndpoint("/private/api/v2/json/contacts/list")

	assert.Equal(t,
		"https://example.amocrm.ru/private/api/v2/json/contacts/list?query=John+Smith&USER_HASH=hash&USER_LOGIN=login%40domain",
		endpoint)
}

func TestPrepareEndpoint_GetParamsLegacy(t *testing.T) {
	params := newTestParams().
		AddGet("query", "John Smith").
		AddGet("api_key", "spoofed")

	r := New(params, zerolog.Nop(), WithAuthScheme(AuthLegacy))
	endpoint := r.PrepareEndpoint("/api/calls/add/")

	assert.Equal(t,
		"https://example.amocrm.ru/api/calls/add/?query=John+Smith&api_key=hash&login=login%40domain",
		endpoint)
}

func TestPrepareEndpoint_Idempotent(t *testing.T) {
	r := New(newTestParams().AddGet("a", "1").AddGet("b", "2"), zerolog.Nop())
	assert.Equal(t, r.PrepareEndpoint("/foo"), r.PrepareEndpoint("/foo"))
}

func TestPrepareEndpoint_BaseURL(t *testing.T) {
	r := New(newTestParams(), zerolog.Nop(), WithBaseURL("http://127.0.0.1:8080/"))
	assert.Equal(t, "http://127.0.0.1:8080/foo?USER_LOGIN=login%40domain&USER_HASH=hash", r.PrepareEndpoint("/foo"))
}

func TestParseAuthScheme(t *testing.T) {
	tests := []struct {
		in      string
		want    AuthScheme
		wantErr bool
	}{
		{"", AuthCurrent, false},
		{"current", AuthCurrent, false},
		{"Legacy", AuthLegacy, false},
		{"v1", AuthLegacy, false},
		{"oauth", AuthCurrent, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAuthScheme(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthScheme_String(t *testing.T) {
	assert.Equal(t, "current", AuthCurrent.String())
	assert.Equal(t, "legacy", AuthLegacy.String())
}
