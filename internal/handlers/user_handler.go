package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/staffing-scheduler/internal/middleware"
	"github.com/BruksfildServices01/staffing-scheduler/internal/usecase/user"
)

type UserHandler struct {
	users *user.Service
}

func NewUserHandler(svc *user.Service) *UserHandler {
	return &UserHandler{users: svc}
}

type UserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Phone    *string `json:"phone"`
	Skills   *string `json:"skills"`
}

func (h *UserHandler) List(c *gin.Context) {
	out, err := h.users.List(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *UserHandler) Employees(c *gin.Context) {
	out, err := h.users.ListEmployees(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Create(c.Request.Context(), middleware.IdentityFrom(c), user.CreateInput{
		Name:     deref(req.Name),
		Email:    deref(req.Email),
		Password: deref(req.Password),
		Role:     deref(req.Role),
		Phone:    deref(req.Phone),
		Skills:   deref(req.Skills),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Update(c.Request.Context(), middleware.IdentityFrom(c), userID, domain.Patch{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Phone:    req.Phone,
		Skills:   req.Skills,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), middleware.IdentityFrom(c), userID); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, "user_deleted")
}
