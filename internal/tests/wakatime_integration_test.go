//go:build integration

package tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"activity-charts/internal/activity"
	"activity-charts/internal/clients_api/wakatime"
	"activity-charts/internal/features/charts"
	"activity-charts/internal/features/pipeline"
)

func TestIntegration_WakaTime_Pipeline(t *testing.T) {
	apiKey := os.Getenv("WAKATIME_API_KEY")
	if apiKey == "" {
		t.Skip("WAKATIME_API_KEY is required")
	}

	client := wakatime.NewClient(wakatime.Config{APIKey: apiKey, Timeout: 30 * time.Second})
	dir := t.TempDir()
	cfg := pipeline.RenderConfig{
		MinSeconds:    activity.DefaultMinSeconds,
		MaxRecords:    activity.DefaultMaxRecords,
		Title:         "Weekly Coding Activity",
		FallbackTitle: "All-Time Coding Activity",
	}

	res, err := pipeline.New(client, charts.NewRenderer(charts.DefaultOptions()), cfg,
		pipeline.Outputs(dir, "wakatime_stats", charts.Light, charts.Dark, true)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Skipped {
		t.Skip("account has no coding activity")
	}
	if len(res.Files) != 4 {
		t.Fatalf("expected 4 files, got %v", res.Files)
	}
	for _, f := range res.Files {
		info, err := os.Stat(f)
		if err != nil || info.Size() == 0 {
			t.Fatalf("expected non-empty %s: %v", filepath.Base(f), err)
		}
	}
}
