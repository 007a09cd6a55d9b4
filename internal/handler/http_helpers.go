package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError writes the standardized failure envelope. All endpoints use
// the same shape; the legacy bare {"error": ...} variant is gone.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondStorageError logs the underlying failure server-side and returns a
// generic message that deliberately omits internals.
func respondStorageError(c *gin.Context, err error, message string) {
	log.Error().Err(err).Str("path", c.FullPath()).Msg("storage operation failed")
	respondError(c, http.StatusInternalServerError, message)
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}
