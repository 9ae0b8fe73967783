package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/assignment"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/staffing-scheduler/internal/middleware"
	"github.com/BruksfildServices01/staffing-scheduler/internal/usecase/assignment"
)

// ======================================================
// HANDLER
// ======================================================

type AssignmentHandler struct {
	assignments *assignment.Service
	tz          string
}

func NewAssignmentHandler(svc *assignment.Service, tz string) *AssignmentHandler {
	return &AssignmentHandler{assignments: svc, tz: tz}
}

// ======================================================
// REQUESTS
// ======================================================

type AssignmentRequest struct {
	ProjectID  *uint   `json:"project_id"`
	EmployeeID *uint   `json:"employee_id"`
	RoleDesc   *string `json:"role_desc"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	Status     *string `json:"status"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

// ======================================================
// READS
// ======================================================

func (h *AssignmentHandler) List(c *gin.Context) {
	out, err := h.assignments.List(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AssignmentHandler) ListDetailed(c *gin.Context) {
	out, err := h.assignments.ListDetailed(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AssignmentHandler) EmployeeTasks(c *gin.Context) {
	out, err := h.assignments.EmployeeTasks(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

// ======================================================
// WRITES
// ======================================================

func (h *AssignmentHandler) Create(c *gin.Context) {
	var req AssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	dates, err := parseDates(h.tz, req.StartDate, req.EndDate)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	a, err := h.assignments.Create(c.Request.Context(), middleware.IdentityFrom(c), assignment.CreateInput{
		ProjectID:  deref(req.ProjectID),
		EmployeeID: deref(req.EmployeeID),
		RoleDesc:   deref(req.RoleDesc),
		StartDate:  dates[0],
		EndDate:    dates[1],
		Status:     deref(req.Status),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, a)
}

func (h *AssignmentHandler) UpdateStatus(c *gin.Context) {
	assignmentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.assignments.UpdateStatus(c.Request.Context(), middleware.IdentityFrom(c), assignmentID, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, a)
}

func (h *AssignmentHandler) Update(c *gin.Context) {
	assignmentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	dates, err := parseDates(h.tz, req.StartDate, req.EndDate)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	a, err := h.assignments.Update(c.Request.Context(), middleware.IdentityFrom(c), assignmentID, domain.Patch{
		ProjectID:  req.ProjectID,
		EmployeeID: req.EmployeeID,
		RoleDesc:   req.RoleDesc,
		StartDate:  dates[0],
		EndDate:    dates[1],
		Status:     req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, a)
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	assignmentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.assignments.Delete(c.Request.Context(), middleware.IdentityFrom(c), assignmentID); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, "assignment_deleted")
}
