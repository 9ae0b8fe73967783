package project

import (
	"context"
	"time"

	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

const (
	StatusPlanned   = "planned"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// DefaultStatus applies to every project created without an explicit status.
const DefaultStatus = StatusPlanned

type Patch struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	Notes     *string
	Status    *string
	ManagerID *uint
	BookingID *uint
}

func (p Patch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["project_name"] = *p.Name
	}
	if p.StartDate != nil {
		cols["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		cols["end_date"] = *p.EndDate
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	if p.ManagerID != nil {
		cols["manager_id"] = *p.ManagerID
	}
	if p.BookingID != nil {
		cols["booking_id"] = *p.BookingID
	}
	return cols
}

type Repository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)

	// CreateProject inserts p unless its booking is missing or already has a
	// project; both checks and the insert share one transaction.
	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id uint) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListProjectsForEmployee(ctx context.Context, employeeID uint) ([]models.Project, error)
	UpdateProject(ctx context.Context, id uint, cols map[string]any) (*models.Project, error)

	// DeleteProjectCascade removes the project and its assignments in one
	// transaction and returns how many assignments went with it.
	DeleteProjectCascade(ctx context.Context, id uint) (int64, error)
}
