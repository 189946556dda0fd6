package request

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Request, *httptest.Server) {
	t.Helper()

	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL)}, opts...)
	return New(newTestParams(), zerolog.Nop(), opts...), server
}

func TestRequest_GetRequest(t *testing.T) {
	r, _ := newTestRequest(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/private/api/v2/json/leads/list", req.URL.Path)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.Equal(t, "Mon, 02 Jan 2017 12:30:00 +0000", req.Header.Get("If-Modified-Since"))

		q := req.URL.Query()
		assert.Equal(t, "login@domain", q.Get("USER_LOGIN"))
		assert.Equal(t, "hash", q.Get("USER_HASH"))
		assert.Equal(t, "10", q.Get("limit_rows"))

		_, _ = io.WriteString(w, `{"response":{"leads":[{"id":1}]}}`)
	})

	resp, err := r.GetRequest(context.Background(), "/private/api/v2/json/leads/list",
		map[string]string{"limit_rows": "10"}, "2017-01-02 12:30:00")
	require.NoError(t, err)
	require.Contains(t, resp, "leads")
	assert.Len(t, resp["leads"], 1)
}

func TestRequest_PostRequest(t *testing.T) {
	r, _ := newTestRequest(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Empty(t, req.Header.Get("If-Modified-Since"))

		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		require.Contains(t, body, "request")
		assert.Equal(t, "bar", body["request"]["foo"])

		_, _ = io.WriteString(w, `{"response":{"leads":{"add":[{"id":42}]}}}`)
	})

	resp, err := r.PostRequest(context.Background(), "/private/api/v2/json/leads/set", map[string]any{"foo": "bar"})
	require.NoError(t, err)
	assert.Contains(t, resp, "leads")
}

func TestRequest_ClearsParamsAfterCall(t *testing.T) {
	var queries []string
	r, _ := newTestRequest(t, func(w http.ResponseWriter, req *http.Request) {
		queries = append(queries, req.URL.Query().Get("foo"))
		_, _ = io.WriteString(w, `{"response":{}}`)
	})

	_, err := r.GetRequest(context.Background(), "/x", map[string]string{"foo": "bar"}, "")
	require.NoError(t, err)
	assert.Empty(t, r.Params().Get())

	_, err = r.GetRequest(context.Background(), "/x", nil, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"bar", ""}, queries)
	assert.Equal(t, "hash", r.Params().Auth(AuthAPIKey))
}

func TestRequest_ParamRetention(t *testing.T) {
	var methods []string
	r, _ := newTestRequest(t, func(w http.ResponseWriter, req *http.Request) {
		methods = append(methods, req.Method)
		_, _ = io.WriteString(w, `{"response":{}}`)
	}, WithParamRetention())

	_, err := r.PostRequest(context.Background(), "/x", map[string]any{"foo": "bar"})
	require.NoError(t, err)

	_, err = r.GetRequest(context.Background(), "/x", nil, "")
	require.NoError(t, err)

	assert.Equal(t, []string{http.MethodPost, http.MethodPost}, methods)
	assert.True(t, r.Params().HasPost())
}

func TestRequest_FormatErrorSendsNothing(t *testing.T) {
	var hits atomic.Int32
	r, _ := newTestRequest(t, func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
	})

	_, err := r.GetRequest(context.Background(), "/x", map[string]string{"foo": "bar"}, "foobar")
	require.Error(t, err)
	assert.True(t, IsFormatError(err))
	assert.Equal(t, int32(0), hits.Load())
	assert.Equal(t, "bar", r.Params().Get()["foo"])
}

func TestRequest_APIError(t *testing.T) {
	r, _ := newTestRequest(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"response":{"error":"Неверный логин или пароль","error_code":"110"}}`)
	})

	_, err := r.GetRequest(context.Background(), "/private/api/auth.php", nil, "")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 110, apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestRequest_LegacyAPIError(t *testing.T) {
	r, _ := newTestRequest(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "hash", req.URL.Query().Get("api_key"))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"response":{"foo":"bar"}}`)
	}, WithAuthScheme(AuthLegacy))

	_, err := r.GetRequest(context.Background(), "/api/unsorted/list/", nil, "")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Code)
	assert.Equal(t, `{"foo":"bar"}`, apiErr.Message)
}

func TestRequest_NoData(t *testing.T) {
	r, _ := newTestRequest(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	resp, err := r.GetRequest(context.Background(), "/x", nil, "now")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestRequest_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	r := New(newTestParams(), zerolog.Nop(), WithBaseURL(url))
	_, err := r.GetRequest(context.Background(), "/x", nil, "")
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.NotEmpty(t, netErr.Message)
	assert.True(t, IsNetworkError(err))
}

func TestRequest_TLSVerification(t *testing.T) {
	r, _ := newTestRequest(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = io.WriteString(w, `{"response":{}}`)
	}, WithTLSVerification())

	_, err := r.GetRequest(context.Background(), "/x", nil, "")
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestRequest_ContextCanceled(t *testing.T) {
	r, _ := newTestRequest(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = io.WriteString(w, `{"response":{}}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.GetRequest(ctx, "/x", nil, "")
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, IsNetworkError(err))
}
