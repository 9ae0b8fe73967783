package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/staffing-scheduler/internal/middleware"
	"github.com/BruksfildServices01/staffing-scheduler/internal/usecase/user"
)

type MeHandler struct {
	users *user.Service
}

func NewMeHandler(users *user.Service) *MeHandler {
	return &MeHandler{users: users}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	u, err := h.users.Me(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *MeHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.users.ChangePassword(
		c.Request.Context(),
		middleware.IdentityFrom(c),
		req.CurrentPassword,
		req.NewPassword,
	); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, "password_changed")
}
