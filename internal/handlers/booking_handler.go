package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/staffing-scheduler/internal/middleware"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
	"github.com/BruksfildServices01/staffing-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	bookings *booking.Service
	tz       string
}

func NewBookingHandler(svc *booking.Service, tz string) *BookingHandler {
	return &BookingHandler{bookings: svc, tz: tz}
}

// ======================================================
// REQUESTS
// ======================================================

// BookingRequest serves create and update. ClientID is read on the admin
// routes only.
type BookingRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Location       *string  `json:"location"`
	RequiredSkills *string  `json:"required_skills"`
	StartDate      *string  `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	Budget         *float64 `json:"budget"`
	Status         *string  `json:"status"`
	ClientID       *uint    `json:"client_id"`
}

func (h *BookingHandler) createInput(req BookingRequest) (booking.CreateInput, error) {
	dates, err := parseDates(h.tz, req.StartDate, req.EndDate)
	if err != nil {
		return booking.CreateInput{}, err
	}
	return booking.CreateInput{
		Title:          deref(req.Title),
		Description:    deref(req.Description),
		Location:       deref(req.Location),
		RequiredSkills: deref(req.RequiredSkills),
		StartDate:      dates[0],
		EndDate:        dates[1],
		Budget:         req.Budget,
		Status:         deref(req.Status),
	}, nil
}

func (h *BookingHandler) patch(req BookingRequest) (domain.Patch, error) {
	dates, err := parseDates(h.tz, req.StartDate, req.EndDate)
	if err != nil {
		return domain.Patch{}, err
	}
	return domain.Patch{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		RequiredSkills: req.RequiredSkills,
		StartDate:      dates[0],
		EndDate:        dates[1],
		Budget:         req.Budget,
		Status:         req.Status,
		ClientID:       req.ClientID,
	}, nil
}

func filterFromQuery(c *gin.Context) domain.Filter {
	switch {
	case c.Query("unassigned") == "1" || c.Query("unassigned") == "true":
		return domain.Unassigned()
	case c.Query("status") != "":
		return domain.ByStatus(c.Query("status"))
	}
	return domain.All()
}

// ======================================================
// CLIENT + STAFF
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	out, err := h.bookings.List(c.Request.Context(), middleware.IdentityFrom(c), filterFromQuery(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *BookingHandler) Mine(c *gin.Context) {
	out, err := h.bookings.ListMine(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := h.createInput(req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	b, err := h.bookings.Create(c.Request.Context(), middleware.IdentityFrom(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, b)
}

func (h *BookingHandler) Update(c *gin.Context) {
	h.update(c, h.bookings.Update)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	h.delete(c, h.bookings.Delete)
}

// ======================================================
// ADMIN
// ======================================================

func (h *BookingHandler) AdminList(c *gin.Context) {
	out, err := h.bookings.AdminList(c.Request.Context(), middleware.IdentityFrom(c), filterFromQuery(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *BookingHandler) AdminCreate(c *gin.Context) {
	var req BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := h.createInput(req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	b, err := h.bookings.AdminCreate(c.Request.Context(), middleware.IdentityFrom(c), booking.AdminCreateInput{
		CreateInput: in,
		ClientID:    deref(req.ClientID),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, b)
}

func (h *BookingHandler) AdminUpdate(c *gin.Context) {
	h.update(c, h.bookings.AdminUpdate)
}

func (h *BookingHandler) AdminDelete(c *gin.Context) {
	h.delete(c, h.bookings.AdminDelete)
}

// --------------------------------------------------
// Shared
// --------------------------------------------------

type updateFunc func(ctx context.Context, id *access.Identity, bookingID uint, p domain.Patch) (*models.Booking, error)

type deleteFunc func(ctx context.Context, id *access.Identity, bookingID uint) (domain.Cascade, error)

func (h *BookingHandler) update(c *gin.Context, fn updateFunc) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.patch(req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	b, err := fn(c.Request.Context(), middleware.IdentityFrom(c), bookingID, p)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BookingHandler) delete(c *gin.Context, fn deleteFunc) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	removed, err := fn(c.Request.Context(), middleware.IdentityFrom(c), bookingID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":     "booking_deleted",
		"id":      bookingID,
		"removed": removed,
	})
}
