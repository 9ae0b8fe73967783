package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staffing-scheduler/internal/config"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/staffing-scheduler/internal/middleware"
	"github.com/BruksfildServices01/staffing-scheduler/internal/usecase/auth"
	"github.com/BruksfildServices01/staffing-scheduler/internal/usecase/user"
	"github.com/BruksfildServices01/staffing-scheduler/internal/validators"
)

type AuthHandler struct {
	auth   *auth.Service
	config *config.Config
}

func NewAuthHandler(svc *auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{auth: svc, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Skills   string `json:"skills"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if h.config.VerifyEmailDomain && email != "" && !validators.IsEmailDomainValid(email) {
		httperr.Respond(c, httperr.ErrBusiness("invalid_email_domain"))
		return
	}

	u, err := h.auth.Register(c.Request.Context(), user.CreateInput{
		Name:     req.Name,
		Email:    email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
		Skills:   req.Skills,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":  "registered",
		"user": u,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookie,
		res.Token,
		int(res.Session.ExpiresAt.Sub(res.Session.CreatedAt).Seconds()),
		"/",
		"",
		h.config.CookieSecure,
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"user":       res.User,
		"token":      res.Token,
		"expires_at": res.Session.ExpiresAt,
	})
}

// Logout succeeds whether or not the request carried a live session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.TokenFrom(c)); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.config.CookieSecure, true)
	httpresp.Message(c, "logged_out")
}
