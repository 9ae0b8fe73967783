package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/project"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/staffing-scheduler/internal/middleware"
	"github.com/BruksfildServices01/staffing-scheduler/internal/usecase/project"
)

type ProjectHandler struct {
	projects *project.Service
	tz       string
}

func NewProjectHandler(svc *project.Service, tz string) *ProjectHandler {
	return &ProjectHandler{projects: svc, tz: tz}
}

type ProjectRequest struct {
	ProjectName *string `json:"project_name"`
	BookingID   *uint   `json:"booking_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status"`
	ManagerID   *uint   `json:"manager_id"`
}

func (h *ProjectHandler) List(c *gin.Context) {
	out, err := h.projects.List(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req ProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	dates, err := parseDates(h.tz, req.StartDate, req.EndDate)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p, err := h.projects.Create(c.Request.Context(), middleware.IdentityFrom(c), project.CreateInput{
		Name:      deref(req.ProjectName),
		BookingID: deref(req.BookingID),
		StartDate: dates[0],
		EndDate:   dates[1],
		Notes:     deref(req.Notes),
		Status:    deref(req.Status),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, p)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	dates, err := parseDates(h.tz, req.StartDate, req.EndDate)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p, err := h.projects.Update(c.Request.Context(), middleware.IdentityFrom(c), projectID, domain.Patch{
		Name:      req.ProjectName,
		StartDate: dates[0],
		EndDate:   dates[1],
		Notes:     req.Notes,
		Status:    req.Status,
		ManagerID: req.ManagerID,
		BookingID: req.BookingID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}

	removed, err := h.projects.Delete(c.Request.Context(), middleware.IdentityFrom(c), projectID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":         "project_deleted",
		"id":          projectID,
		"assignments": removed,
	})
}
