package activity

// Package activity holds the data model shared by every stats source:
// records, fetch modes, selection and duration formatting.

import (
	"context"
	"fmt"
)

// Record is one labelled duration returned by a stats source.
// Seconds is always normalized to seconds regardless of the API unit.
type Record struct {
	Label   string
	Seconds int64
}

// Hours returns the record duration in fractional hours.
func (r Record) Hours() float64 {
	return float64(r.Seconds) / 3600
}

// Mode selects the time window a source reports.
type Mode int

const (
	// Recent - trailing window (two weeks for Steam, last 7 days for WakaTime)
	Recent Mode = iota
	// Lifetime - all-time totals
	Lifetime
)

func (m Mode) String() string {
	switch m {
	case Recent:
		return "recent"
	case Lifetime:
		return "lifetime"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Source fetches activity records from an external statistics API.
type Source interface {
	Name() string
	Fetch(ctx context.Context, mode Mode) ([]Record, error)
}
