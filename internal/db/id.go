package db

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a compact 10-character row identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
