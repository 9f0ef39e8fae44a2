package steam

// Steam Web API adapter.
// Reads recently played games (two-week window) or owned games (lifetime)
// and maps them to activity records. Playtime arrives in minutes.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"activity-charts/internal/activity"
	"activity-charts/internal/infra/httpclient"
	"activity-charts/internal/infra/log"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL - Steam Web API root
	DefaultBaseURL = "https://api.steampowered.com"

	recentGamesEndpoint = "/IPlayerService/GetRecentlyPlayedGames/v0001/"
	ownedGamesEndpoint  = "/IPlayerService/GetOwnedGames/v0001/"

	unknownGameName = "Unknown Game"
)

// Config - Steam credentials and transport settings
type Config struct {
	APIKey  string
	SteamID string
	BaseURL string
	Timeout time.Duration
}

// Client implements activity.Source for Steam.
type Client struct {
	apiKey  string
	steamID string
	http    *httpclient.Client
}

// NewClient creates a Steam source. Credentials are validated by the caller.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		steamID: cfg.SteamID,
		http: httpclient.New(httpclient.Options{
			Name:    "SteamAPI",
			BaseURL: baseURL,
			Timeout: cfg.Timeout,
		}),
	}
}

func (c *Client) Name() string { return "steam" }

// Game - one entry of response.games
type Game struct {
	AppID           int64  `json:"appid"`
	Name            string `json:"name"`
	Playtime2Weeks  int64  `json:"playtime_2weeks"`
	PlaytimeForever int64  `json:"playtime_forever"`
}

// GamesResponse - shared envelope of GetRecentlyPlayedGames and GetOwnedGames
type GamesResponse struct {
	Response struct {
		TotalCount int    `json:"total_count"`
		GameCount  int    `json:"game_count"`
		Games      []Game `json:"games"`
	} `json:"response"`
}

// Fetch returns games with non-zero playtime for mode, in seconds.
func (c *Client) Fetch(ctx context.Context, mode activity.Mode) ([]activity.Record, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamid", c.steamID)
	params.Set("format", "json")

	endpoint := recentGamesEndpoint
	if mode == activity.Lifetime {
		endpoint = ownedGamesEndpoint
		params.Set("include_appinfo", "true")
		params.Set("include_played_free_games", "true")
	}

	body, err := c.http.Get(ctx, endpoint, params, nil)
	if err != nil {
		return nil, &activity.FetchError{Source: c.Name(), Mode: mode, Err: err}
	}
	log.LogJSON(body, "Steam games response")

	var resp GamesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &activity.FetchError{
			Source: c.Name(),
			Mode:   mode,
			Err:    fmt.Errorf("failed to unmarshal games response: %w", err),
		}
	}

	records := toRecords(resp.Response.Games, mode)
	log.LogInfo("Steam games fetched",
		zap.String("mode", mode.String()),
		zap.Int("games", len(resp.Response.Games)),
		zap.Int("played", len(records)))
	return records, nil
}

func toRecords(games []Game, mode activity.Mode) []activity.Record {
	records := make([]activity.Record, 0, len(games))
	for _, g := range games {
		minutes := g.Playtime2Weeks
		if mode == activity.Lifetime {
			minutes = g.PlaytimeForever
		}
		if minutes <= 0 {
			continue
		}
		name := g.Name
		if name == "" {
			name = unknownGameName
		}
		records = append(records, activity.Record{Label: name, Seconds: minutes * 60})
	}
	return records
}
