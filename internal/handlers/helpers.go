package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/timezone"
)

// --------------------------------------------------
// Request helpers
// --------------------------------------------------

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.Respond(c, httperr.ErrBusiness("invalid_id"))
		return 0, false
	}
	return uint(id), true
}

// --------------------------------------------------
// Dates
// --------------------------------------------------

// parseDates reads each value as a calendar date in tz, preserving nils.
func parseDates(tz string, values ...*string) ([]*time.Time, error) {
	out := make([]*time.Time, len(values))
	for i, v := range values {
		d, err := timezone.ParseDate(v, tz)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		out[i] = d
	}
	return out, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
