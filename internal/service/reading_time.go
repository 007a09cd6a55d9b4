package service

import "strings"

const wordsPerMinute = 200

// EstimateReadingTime returns the estimated reading time in whole minutes:
// word count divided by 200 words per minute, rounded up.
func EstimateReadingTime(content string) int {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return 0
	}

	words := len(strings.Fields(trimmed))
	minutes := words / wordsPerMinute
	if words%wordsPerMinute != 0 {
		minutes++
	}
	return minutes
}
