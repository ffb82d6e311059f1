package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// parsePagination clamps limit/offset query params to sane bounds.
func parsePagination(c *gin.Context) (limit, offset int) {
	limit = defaultPageLimit
	if parsed, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil && parsed > 0 {
		limit = parsed
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if parsed, err := strconv.Atoi(strings.TrimSpace(c.Query("offset"))); err == nil && parsed >= 0 {
		offset = parsed
	}
	return limit, offset
}
