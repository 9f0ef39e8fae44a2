//go:build integration

package tests

import (
	"context"
	"os"
	"testing"
	"time"

	"activity-charts/internal/activity"
	"activity-charts/internal/clients_api/steam"
)

func steamClient(t *testing.T) *steam.Client {
	apiKey, steamID := os.Getenv("STEAM_API_KEY"), os.Getenv("STEAM_ID")
	if apiKey == "" || steamID == "" {
		t.Skip("STEAM_API_KEY and STEAM_ID are required")
	}
	return steam.NewClient(steam.Config{APIKey: apiKey, SteamID: steamID, Timeout: 30 * time.Second})
}

func TestIntegration_Steam_Lifetime(t *testing.T) {
	client := steamClient(t)

	records, err := client.Fetch(context.Background(), activity.Lifetime)
	if err != nil {
		t.Fatalf("Fetch lifetime failed: %v", err)
	}
	for _, r := range records {
		if r.Label == "" {
			t.Fatalf("expected a label, got empty record %+v", r)
		}
		if r.Seconds <= 0 {
			t.Fatalf("expected positive playtime for %s, got %d", r.Label, r.Seconds)
		}
	}
	t.Logf("Owned games with playtime: %d", len(records))
}

func TestIntegration_Steam_Recent(t *testing.T) {
	client := steamClient(t)

	records, err := client.Fetch(context.Background(), activity.Recent)
	if err != nil {
		t.Fatalf("Fetch recent failed: %v", err)
	}
	top := activity.Select(records, activity.DefaultMinSeconds, activity.DefaultMaxRecords)
	for _, r := range top {
		t.Logf("%s: %s", r.Label, activity.FormatDuration(r.Seconds))
	}
}
