package wakatime

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"activity-charts/internal/activity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsPayload = `{"data":{"range":"last_7_days","languages":[
	{"name":"Go","total_seconds":36000.75,"percent":50.1,"text":"10 hrs"},
	{"name":"Python","total_seconds":28800,"percent":40,"text":"8 hrs"},
	{"name":"","total_seconds":120,"percent":0.1},
	{"name":"JSON","total_seconds":1200,"percent":1.6,"text":"20 mins"}
]}}`

func TestFetch_RecentRangeAndAuth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/current/stats/last_7_days", r.URL.Path)
		assert.Equal(t, "Bearer waka_123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(statsPayload))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "waka_123", BaseURL: srv.URL})
	got, err := c.Fetch(context.Background(), activity.Recent)
	require.NoError(t, err)
	assert.Equal(t, []activity.Record{
		{Label: "Go", Seconds: 36000},
		{Label: "Python", Seconds: 28800},
		{Label: "JSON", Seconds: 1200},
	}, got)
}

func TestFetch_LifetimeUsesAllTime(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/current/stats/all_time", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"languages":[]}}`))
	}))
	defer srv.Close()

	got, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL}).Fetch(context.Background(), activity.Lifetime)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetch_CustomRecentRange(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/current/stats/last_30_days", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"languages":[{"name":"Rust","total_seconds":7200}]}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, RecentRange: "last_30_days"})
	got, err := c.Fetch(context.Background(), activity.Recent)
	require.NoError(t, err)
	assert.Equal(t, []activity.Record{{Label: "Rust", Seconds: 7200}}, got)
}

func TestFetch_MalformedPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL}).Fetch(context.Background(), activity.Recent)
	var fe *activity.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "wakatime", fe.Source)
	assert.Contains(t, err.Error(), "failed to unmarshal stats response")
}
