package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/middleware"
	"github.com/BruksfildServices01/bot-scheduler/internal/timezone"
)

func tenantFrom(c *gin.Context) uint {
	return c.GetUint(middleware.ContextTenantID)
}

func uintParam(c *gin.Context, name, code string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, httperr.Validation(code)
	}
	return uint(v), nil
}

// optionalUintQuery returns nil when the query key is absent.
func optionalUintQuery(c *gin.Context, name, code string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, httperr.Validation(code)
	}
	u := uint(v)
	return &u, nil
}

// calendarDate parses YYYY-MM-DD. The day is later placed in the bot's
// timezone, so the location here does not matter.
func calendarDate(raw, missingCode, invalidCode string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, httperr.Validation(missingCode)
	}
	d, err := timezone.ParseDate(raw, time.UTC)
	if err != nil {
		return time.Time{}, httperr.Validation(invalidCode)
	}
	return d, nil
}

// instant parses an ISO 8601 timestamp with offset.
func instant(raw, code string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, httperr.Validation(code)
	}
	return t, nil
}

// optionalBound accepts either an instant or a bare date (UTC midnight).
func optionalBound(raw, code string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	d, err := timezone.ParseDate(raw, time.UTC)
	if err != nil {
		return nil, httperr.Validation(code)
	}
	return &d, nil
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return page, limit
}
