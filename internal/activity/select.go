package activity

import (
	"cmp"
	"slices"
)

const (
	// DefaultMinSeconds - records at or below 30 minutes are dropped
	DefaultMinSeconds int64 = 1800
	// DefaultMaxRecords - bars per chart
	DefaultMaxRecords = 5
)

// Select keeps records strictly above minSeconds, orders them by duration
// descending (ties keep their input order) and returns at most maxRecords.
// The input slice is never modified.
func Select(records []Record, minSeconds int64, maxRecords int) []Record {
	if maxRecords <= 0 {
		return []Record{}
	}

	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Seconds > minSeconds {
			kept = append(kept, r)
		}
	}

	slices.SortStableFunc(kept, func(a, b Record) int {
		return cmp.Compare(b.Seconds, a.Seconds)
	})

	if len(kept) > maxRecords {
		kept = kept[:maxRecords]
	}
	return kept
}
