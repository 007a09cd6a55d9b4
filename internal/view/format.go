package view

import (
	"fmt"
	"strings"
	"time"
)

// FormatReadingTime derives the "<n> min read" label from the content
// itself: word count at 200 words per minute, rounded up. Must stay in
// numeric agreement with the stored reading-time estimate.
func FormatReadingTime(content string) string {
	words := strings.Fields(strings.TrimSpace(content))
	minutes := (len(words) + 199) / 200
	if len(words) == 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d min read", minutes)
}

// FormatDate renders a timestamp the way post bylines expect it, e.g.
// "January 15, 2024". Nil publish dates render empty.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("January 2, 2006")
}

// FormatDateISO renders the date part only, for datetime attributes.
func FormatDateISO(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
