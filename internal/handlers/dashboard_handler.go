package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/staffing-scheduler/internal/middleware"
	"github.com/BruksfildServices01/staffing-scheduler/internal/usecase/dashboard"
)

type DashboardHandler struct {
	dashboard *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: svc}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	out, err := h.dashboard.Summary(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}
