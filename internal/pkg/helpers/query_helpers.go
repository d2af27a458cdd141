package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// MaxListLimit caps the ?limit query parameter
const MaxListLimit = 100

// ParseLimit extracts an optional positive ?limit. Missing or invalid values mean no limit (0);
// values above MaxListLimit are clamped.
func ParseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return 0
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// ParseOptionalInt64 reads an optional integer query parameter
func ParseOptionalInt64(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &value, true
}
