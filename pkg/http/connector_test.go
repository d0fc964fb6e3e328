package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestConnector(t *testing.T, url string, opts ...HttpOpts) *Connector {
	t.Helper()
	return NewConnector(&ConnectorConfig{BaseURL: url, Logger: zaptest.NewLogger(t)}, opts...)
}

func TestDoRequest_DecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["say"]})
	}))
	defer srv.Close()

	c := newTestConnector(t, srv.URL, WithRequestLogging())

	var out map[string]string
	err := c.DoRequest(context.Background(), http.MethodPost, "/echo", map[string]string{"say": "hi"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hi", out["echo"])
}

func TestDoRequest_NonSuccessIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"busy"}`))
	}))
	defer srv.Close()

	err := newTestConnector(t, srv.URL).DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Equal(t, `{"error":"busy"}`, httpErr.Message)
	assert.True(t, httpErr.Temporary())
}

func TestDoRawRequest_ReturnsBodyForAnyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`nope`))
	}))
	defer srv.Close()

	resp, err := newTestConnector(t, srv.URL).DoRawRequest(context.Background(), http.MethodGet, "/", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "nope", string(resp.Body))
}

func TestDoRawRequest_AuthAndOverrideURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/other", r.URL.Path)
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestConnector(t, "http://unused.invalid", WithAuthToken("secret"))
	resp, err := c.DoRawRequest(context.Background(), http.MethodGet, "/ignored", nil,
		WithURL(srv.URL+"/other"), WithHeader("X-Test", "yes"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestDoRawRequest_TimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestConnector(t, srv.URL, WithRequestTimeout(20*time.Millisecond))
	_, err := c.DoRawRequest(context.Background(), http.MethodGet, "/", nil)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&NetworkError{Err: errors.New("refused")}))
	assert.True(t, IsRetryable(fmt.Errorf("embed: %w", &HTTPError{StatusCode: http.StatusTooManyRequests})))
	assert.True(t, IsRetryable(&HTTPError{StatusCode: http.StatusBadGateway}))
	assert.False(t, IsRetryable(&HTTPError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsRetryable(errors.New("decode response")))
}

func TestDefaultHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	c := newTestConnector(t, srv.URL, WithAuthToken(""), WithUserAgent("resume-assistant"))
	_, err := c.DoRawRequest(context.Background(), http.MethodGet, "/", nil)
	require.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
	assert.Equal(t, "resume-assistant", got.Get("User-Agent"))

	c = newTestConnector(t, srv.URL, WithAuthToken("secret"))
	_, err = c.DoRawRequest(context.Background(), http.MethodGet, "/", nil, WithHeader("Authorization", "Bearer other"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer other", got.Get("Authorization"))
}
