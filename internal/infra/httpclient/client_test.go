package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_SendsParamsAndHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/stats", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(Options{Name: "test", BaseURL: srv.URL + "/"})
	h := http.Header{}
	h.Set("Authorization", "Bearer abc")

	body, err := c.Get(context.Background(), "/v1/stats", url.Values{"format": {"json"}}, h)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, srv.URL, c.BaseURL())
}

func TestGet_StatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("forbidden"))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL})
	_, err := c.Get(context.Background(), "/x", nil, nil)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, "http error (403): forbidden", se.Error())
}

func TestGet_LimitsResponseSize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 100)))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, MaxResponseSize: 10})
	body, err := c.Get(context.Background(), "/", nil, nil)
	require.NoError(t, err)
	assert.Len(t, body, 10)
}

func TestGet_BreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, RateLimit: 1000, Burst: 10})
	for i := 0; i < 3; i++ {
		_, err := c.Get(context.Background(), "/", nil, nil)
		require.Error(t, err)
	}

	_, err := c.Get(context.Background(), "/", nil, nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGet_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(Options{BaseURL: "http://127.0.0.1:1"})
	_, err := c.Get(ctx, "/", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://api.example.com/games?key=secret&steamid=1")
	require.NoError(t, err)
	got := RedactURL(u)
	assert.NotContains(t, got, "secret")
	assert.Contains(t, got, "steamid=1")

	plain, _ := url.Parse("https://api.example.com/x?a=b")
	assert.Equal(t, "https://api.example.com/x?a=b", RedactURL(plain))
	assert.Equal(t, "", RedactURL(nil))
}
