package uiutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatFriendlyDateTime_ZeroRendersDash(t *testing.T) {
	assert.Equal(t, "-", FormatFriendlyDateTime(time.Time{}))
}

func TestFriendlyRelativeTime(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, "-"},
		{"seconds ago", now.Add(-20 * time.Second), "just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-10 * time.Minute), "10 minutes ago"},
		{"one hour", now.Add(-65 * time.Minute), "1 hour ago"},
		{"hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"yesterday", now.Add(-30 * time.Hour), "yesterday"},
		{"days", now.Add(-3 * 24 * time.Hour), "3 days ago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FriendlyRelativeTime(tc.t))
		})
	}
}

func TestFriendlyRelativeTime_OldDatesUseAbsoluteFormat(t *testing.T) {
	old := time.Date(2026, 1, 15, 14, 30, 0, 0, time.Local)
	assert.Equal(t, FormatFriendlyDateTime(old), FriendlyRelativeTime(old))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", TruncateWithEllipsis("short", 10))
	assert.Equal(t, "hell…", TruncateWithEllipsis("hello world", 5))
	assert.Equal(t, "…", TruncateWithEllipsis("hello", 1))
	assert.Equal(t, "unbounded", TruncateWithEllipsis("unbounded", 0))
	assert.Equal(t, "café", TruncateWithEllipsis("café", 4))
}
