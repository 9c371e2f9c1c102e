// Package uiutil provides small formatting helpers for UI rendering.
package uiutil

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// FriendlyDateTimeLayout is the human-readable timestamp format used across pages.
const FriendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"

// FormatFriendlyDateTime formats a time in the local zone for display.
// Zero times render as a dash.
func FormatFriendlyDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(FriendlyDateTimeLayout)
}

// FriendlyRelativeTime renders a coarse "how long ago" string.
func FriendlyRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "yesterday"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return FormatFriendlyDateTime(t)
	}
}

// TruncateWithEllipsis shortens a string to max runes, appending an ellipsis
// when it had to cut.
func TruncateWithEllipsis(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
