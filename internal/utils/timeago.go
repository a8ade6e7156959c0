package utils

import (
	"fmt"
	"time"
)

// TimeAgo renders a coarse relative timestamp for history listings.
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	hours := int(diff.Hours())
	days := hours / 24

	switch {
	case diff < time.Hour:
		return "just a moment ago"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return "recently"
	}
}
