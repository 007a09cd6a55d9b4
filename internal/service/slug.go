package service

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL key from a title or name: lowercase, runs of
// non-alphanumeric characters collapse to a single hyphen, leading and
// trailing hyphens trimmed.
func Slugify(text string) string {
	lowered := strings.ToLower(text)
	hyphenated := slugPattern.ReplaceAllString(lowered, "-")
	return strings.Trim(hyphenated, "-")
}

// slugToken returns the short random suffix used to resolve slug collisions.
func slugToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
}
