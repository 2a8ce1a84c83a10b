package polaris

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockHTTPClientFailure struct {
	err error
}

func (m *mockHTTPClientFailure) Do(req *http.Request) (*http.Response, error) {
	return &http.Response{}, m.err
}

func newTestTransport(ts *httptest.Server) *jsonHTTPClientTransport {
	tokens := newTokenSource(http.DefaultClient, ts.URL+"/token", "id", "secret")
	return &jsonHTTPClientTransport{
		client:  http.DefaultClient,
		apiBase: ts.URL + "/v1",
		tokens:  tokens,
	}
}

func serveToken(mux *http.ServeMux) {
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"access_token":"test-token","expires_in":3600}`)
	})
}

func TestBuildURL(t *testing.T) {
	transport := &jsonHTTPClientTransport{apiBase: "https://api.imply.io/v1"}

	u, err := transport.buildURL(&restRequest{method: "GET", path: "/tables"})
	assert.Nil(t, err)
	assert.Equal(t, "https://api.imply.io/v1/tables", u)

	u, err = transport.buildURL(&restRequest{
		method: "GET",
		path:   "/tables/%s",
		args:   []string{"id with/slash"},
	})
	assert.Nil(t, err)
	assert.Equal(t, "https://api.imply.io/v1/tables/id%20with%2Fslash", u)

	u, err = transport.buildURL(&restRequest{
		method: "GET",
		path:   "/tables",
		params: url.Values{"detail": {"summary"}},
	})
	assert.Nil(t, err)
	assert.Equal(t, "https://api.imply.io/v1/tables?detail=summary", u)

	_, err = transport.buildURL(&restRequest{method: "GET", path: "/tables/%s"})
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "expects 1 arguments"))
}

func TestTransportAttachesHeaders(t *testing.T) {
	mux := http.NewServeMux()
	serveToken(mux)
	mux.HandleFunc("/v1/tables", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "yes", r.Header.Get("X-Custom"))
		assert.Equal(t, "call", r.Header.Get("X-Per-Call"))
		fmt.Fprintln(w, `{}`)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	transport := newTestTransport(ts)
	transport.header = map[string]string{"X-Custom": "yes"}
	resp, err := transport.execute(&restRequest{
		method: http.MethodGet,
		path:   "/tables",
		header: map[string]string{"X-Per-Call": "call"},
	})
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.statusCode)
}

func TestTransportErrorEnvelope(t *testing.T) {
	status := http.StatusBadRequest
	body := `{"code":400,"message":"Unable to process JSON"}`
	mux := http.NewServeMux()
	serveToken(mux)
	mux.HandleFunc("/v1/tables", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprintln(w, body)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()
	transport := newTestTransport(ts)

	_, err := transport.execute(&restRequest{method: http.MethodGet, path: "/tables"})
	apiErr := &APIError{}
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Unable to process JSON", apiErr.Message)

	// nested error envelope
	status = http.StatusConflict
	body = `{"error":{"code":"AlreadyExists","message":"A table with name [x] already exists"}}`
	_, err = transport.execute(&restRequest{method: http.MethodGet, path: "/tables"})
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "A table with name [x] already exists", apiErr.Message)

	// 404 without a payload message
	status = http.StatusNotFound
	body = `{}`
	_, err = transport.execute(&restRequest{method: http.MethodGet, path: "/tables"})
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Not found", apiErr.Message)
	assert.True(t, IsNotFound(err))
}

func TestTransportRetriesOnceOn401(t *testing.T) {
	apiCalls := 0
	mux := http.NewServeMux()
	serveToken(mux)
	mux.HandleFunc("/v1/tables", func(w http.ResponseWriter, r *http.Request) {
		apiCalls++
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprintln(w, `{"message":"token expired"}`)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()
	transport := newTestTransport(ts)

	// a persistent 401 surfaces after exactly one retry
	_, err := transport.execute(&restRequest{method: http.MethodGet, path: "/tables"})
	assert.NotNil(t, err)
	assert.Equal(t, 2, apiCalls)
	apiErr := &APIError{}
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestTransportHTTPClientFailure(t *testing.T) {
	tokens := newTokenSource(http.DefaultClient, "http://unused", "id", "secret")
	tokens.current = &accessToken{raw: "tok"}
	transport := &jsonHTTPClientTransport{
		client:  &mockHTTPClientFailure{err: errors.New("http client error")},
		apiBase: "http://unused/v1",
		tokens:  tokens,
	}
	_, err := transport.execute(&restRequest{method: http.MethodGet, path: "/tables"})
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "http client error"))
}

func TestTransportPostBody(t *testing.T) {
	mux := http.NewServeMux()
	serveToken(mux)
	mux.HandleFunc("/v1/tables", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, `{"name":"logs"}`, string(body))
		fmt.Fprintln(w, `{}`)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()
	transport := newTestTransport(ts)

	_, err := transport.execute(&restRequest{
		method: http.MethodPost,
		path:   "/tables",
		body:   []byte(`{"name":"logs"}`),
	})
	assert.Nil(t, err)
}
