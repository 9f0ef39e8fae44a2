package wakatime

// WakaTime API adapter.
// Reads per-language coding time for the last 7 days (Recent) or all time
// (Lifetime) from /users/current/stats/{range}.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"activity-charts/internal/activity"
	"activity-charts/internal/infra/httpclient"
	"activity-charts/internal/infra/log"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL - WakaTime API v1 root
	DefaultBaseURL = "https://wakatime.com/api/v1"

	RangeLast7Days = "last_7_days"
	RangeAllTime   = "all_time"
)

// Config - WakaTime credentials and transport settings
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// RecentRange overrides the window used for activity.Recent.
	RecentRange string
}

// Client implements activity.Source for WakaTime.
type Client struct {
	apiKey      string
	recentRange string
	http        *httpclient.Client
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	recentRange := cfg.RecentRange
	if recentRange == "" {
		recentRange = RangeLast7Days
	}
	return &Client{
		apiKey:      cfg.APIKey,
		recentRange: recentRange,
		http: httpclient.New(httpclient.Options{
			Name:    "WakaTimeAPI",
			BaseURL: baseURL,
			Timeout: cfg.Timeout,
		}),
	}
}

func (c *Client) Name() string { return "wakatime" }

// Language - one entry of data.languages
type Language struct {
	Name         string  `json:"name"`
	TotalSeconds float64 `json:"total_seconds"`
	Percent      float64 `json:"percent"`
	Text         string  `json:"text"`
}

// StatsResponse - /users/current/stats/{range}
type StatsResponse struct {
	Data struct {
		Range     string     `json:"range"`
		Languages []Language `json:"languages"`
	} `json:"data"`
}

func (c *Client) rangeFor(mode activity.Mode) string {
	if mode == activity.Lifetime {
		return RangeAllTime
	}
	return c.recentRange
}

// Fetch returns per-language coding time for mode.
func (c *Client) Fetch(ctx context.Context, mode activity.Mode) ([]activity.Record, error) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.apiKey)

	endpoint := "/users/current/stats/" + c.rangeFor(mode)
	body, err := c.http.Get(ctx, endpoint, nil, headers)
	if err != nil {
		return nil, &activity.FetchError{Source: c.Name(), Mode: mode, Err: err}
	}
	log.LogJSON(body, "WakaTime stats response")

	var resp StatsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &activity.FetchError{
			Source: c.Name(),
			Mode:   mode,
			Err:    fmt.Errorf("failed to unmarshal stats response: %w", err),
		}
	}

	records := make([]activity.Record, 0, len(resp.Data.Languages))
	for _, lang := range resp.Data.Languages {
		if lang.Name == "" || lang.TotalSeconds < 0 {
			log.LogDebug("Skipping language entry", zap.String("name", lang.Name), zap.Float64("total_seconds", lang.TotalSeconds))
			continue
		}
		records = append(records, activity.Record{Label: lang.Name, Seconds: int64(lang.TotalSeconds)})
	}

	log.LogInfo("WakaTime languages fetched",
		zap.String("range", c.rangeFor(mode)),
		zap.Int("languages", len(records)))
	return records, nil
}
