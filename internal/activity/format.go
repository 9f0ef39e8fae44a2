package activity

import "fmt"

// FormatDuration renders seconds as a chart label.
//
//	>= 100 hours  -> "123 hrs"
//	>= 10 hours   -> "42.3 hrs"
//	below 10 hrs  -> "2 hrs 15 mins", "1 hr", "45 mins"
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalHours := float64(seconds) / 3600

	switch {
	case totalHours >= 1000:
		return fmt.Sprintf("%.0f hrs", totalHours)
	case totalHours >= 100:
		return fmt.Sprintf("%.0f hrs", totalHours)
	case totalHours >= 10:
		return fmt.Sprintf("%.1f hrs", totalHours)
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	hourText := "hrs"
	if hours == 1 {
		hourText = "hr"
	}

	switch {
	case hours == 0:
		return fmt.Sprintf("%d mins", minutes)
	case minutes == 0:
		return fmt.Sprintf("%d %s", hours, hourText)
	default:
		return fmt.Sprintf("%d %s %d mins", hours, hourText, minutes)
	}
}
