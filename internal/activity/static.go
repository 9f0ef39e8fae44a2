package activity

import "context"

// StaticSource serves fixed records without touching the network.
// It backs --test mode and the pipeline tests.
type StaticSource struct {
	SourceName string
	Recent     []Record
	Lifetime   []Record
}

func (s *StaticSource) Name() string { return s.SourceName }

// Fetch returns a copy of the fixture for mode.
func (s *StaticSource) Fetch(ctx context.Context, mode Mode) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Source: s.SourceName, Mode: mode, Err: err}
	}
	var src []Record
	if mode == Lifetime {
		src = s.Lifetime
	} else {
		src = s.Recent
	}
	out := make([]Record, len(src))
	copy(out, src)
	return out, nil
}

// SteamFixture is the gaming data used in test mode. Durations are seconds.
func SteamFixture() *StaticSource {
	return &StaticSource{
		SourceName: "steam",
		Recent: []Record{
			{Label: "Baldur's Gate 3", Seconds: 28800},
			{Label: "Cyberpunk 2077", Seconds: 21600},
			{Label: "Elden Ring", Seconds: 14400},
		},
		Lifetime: []Record{
			{Label: "The Witcher 3: Wild Hunt", Seconds: 3600000},
			{Label: "Counter-Strike: Global Offensive", Seconds: 2160000},
			{Label: "Dota 2", Seconds: 1800000},
			{Label: "Cyberpunk 2077", Seconds: 720000},
			{Label: "Baldur's Gate 3", Seconds: 540000},
		},
	}
}

// WakaTimeFixture is the coding data used in test mode.
func WakaTimeFixture() *StaticSource {
	return &StaticSource{
		SourceName: "wakatime",
		Recent: []Record{
			{Label: "Go", Seconds: 36000},
			{Label: "Python", Seconds: 28800},
			{Label: "TypeScript", Seconds: 14400},
			{Label: "Markdown", Seconds: 7200},
			{Label: "YAML", Seconds: 5400},
			{Label: "CSS", Seconds: 3600},
		},
		Lifetime: []Record{
			{Label: "Go", Seconds: 1800000},
			{Label: "Python", Seconds: 1440000},
			{Label: "TypeScript", Seconds: 720000},
			{Label: "Shell", Seconds: 180000},
			{Label: "Markdown", Seconds: 90000},
		},
	}
}
