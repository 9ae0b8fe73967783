package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// FilterKind selects one of the supported listings.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterByClient
	FilterByStatus
	FilterUnassigned
)

type Filter struct {
	Kind     FilterKind
	ClientID uint
	Status   string
}

func All() Filter                   { return Filter{Kind: FilterAll} }
func ByClient(id uint) Filter       { return Filter{Kind: FilterByClient, ClientID: id} }
func ByStatus(status string) Filter { return Filter{Kind: FilterByStatus, Status: status} }
func Unassigned() Filter            { return Filter{Kind: FilterUnassigned} }

// Patch lists the only fields an update may touch. ClientID is honoured for
// admins only.
type Patch struct {
	Title          *string
	Description    *string
	Location       *string
	RequiredSkills *string
	StartDate      *time.Time
	EndDate        *time.Time
	Budget         *float64
	Status         *string
	ClientID       *uint
}

// Columns maps the set fields onto their column names.
func (p Patch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Location != nil {
		cols["location"] = *p.Location
	}
	if p.RequiredSkills != nil {
		cols["required_skills"] = *p.RequiredSkills
	}
	if p.StartDate != nil {
		cols["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		cols["end_date"] = *p.EndDate
	}
	if p.Budget != nil {
		cols["budget"] = *p.Budget
	}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	if p.ClientID != nil {
		cols["client_id"] = *p.ClientID
	}
	return cols
}

// Cascade reports what a booking delete removed.
type Cascade struct {
	Projects    int64 `json:"projects"`
	Assignments int64 `json:"assignments"`
}

type Repository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)

	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, f Filter) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, id uint, cols map[string]any) (*models.Booking, error)

	// DeleteBookingCascade removes the booking, its projects and their
	// assignments in one transaction.
	DeleteBookingCascade(ctx context.Context, id uint) (Cascade, error)
}
