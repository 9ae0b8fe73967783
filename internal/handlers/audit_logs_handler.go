package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staffing-scheduler/internal/audit"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/staffing-scheduler/internal/middleware"
	"github.com/BruksfildServices01/staffing-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
	tz   string
}

func NewAuditLogsHandler(logs *audit.Logger, tz string) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, tz: tz}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultLimit)))

	// --------------------------------------------------
	// Optional date range
	// --------------------------------------------------

	var err error
	if q.From, err = h.date(c, "from"); err != nil {
		httperr.Respond(c, err)
		return
	}
	if q.To, err = h.date(c, "to"); err != nil {
		httperr.Respond(c, err)
		return
	}

	page, err := h.logs.List(c.Request.Context(), middleware.IdentityFrom(c), q)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, page)
}

func (h *AuditLogsHandler) date(c *gin.Context, key string) (*time.Time, error) {
	v := c.Query(key)
	d, err := timezone.ParseDate(&v, h.tz)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	return d, nil
}
