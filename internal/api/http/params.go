package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// ListParams reads skip/limit pagination query parameters, falling back to
// the defaults on missing or malformed values. There is deliberately no upper
// bound on limit.
func ListParams(c *gin.Context) (skip, limit int) {
	skip = intQuery(c, "skip", defaultSkip)
	limit = intQuery(c, "limit", defaultLimit)
	if skip < 0 {
		skip = defaultSkip
	}
	if limit < 0 {
		limit = defaultLimit
	}
	return skip, limit
}

// IDParam parses the :id path parameter.
func IDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
