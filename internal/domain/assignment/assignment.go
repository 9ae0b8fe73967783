package assignment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/staffing-scheduler/internal/dto"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

type Status string

const (
	StatusAssigned  Status = "assigned"
	StatusWorking   Status = "working"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

func InitialStatus() Status {
	return StatusAssigned
}

// ParseStatus admits only the four known values. Any of them may follow any
// other; no transition order is enforced.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusAssigned, StatusWorking, StatusCompleted, StatusRejected:
		return st, nil
	}
	return "", httperr.ErrInvalidStatus()
}

// DefaultRoleDesc is what the notice shows when no role was given.
const DefaultRoleDesc = "Not Specified"

type Patch struct {
	ProjectID  *uint
	EmployeeID *uint
	RoleDesc   *string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     *string
}

func (p Patch) Columns() map[string]any {
	cols := map[string]any{}
	if p.ProjectID != nil {
		cols["project_id"] = *p.ProjectID
	}
	if p.EmployeeID != nil {
		cols["employee_id"] = *p.EmployeeID
	}
	if p.RoleDesc != nil {
		cols["role_desc"] = *p.RoleDesc
	}
	if p.StartDate != nil {
		cols["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		cols["end_date"] = *p.EndDate
	}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	return cols
}

type Repository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetProject(ctx context.Context, id uint) (*models.Project, error)

	CreateAssignment(ctx context.Context, a *models.Assignment) error
	GetAssignment(ctx context.Context, id uint) (*models.Assignment, error)
	GetAssignmentForEmployee(ctx context.Context, id, employeeID uint) (*models.Assignment, error)
	ListAssignments(ctx context.Context) ([]models.Assignment, error)
	ListAssignmentsForEmployee(ctx context.Context, employeeID uint) ([]models.Assignment, error)
	ListAssignmentDetails(ctx context.Context) ([]dto.AssignmentDetailDTO, error)
	ListEmployeeTasks(ctx context.Context, employeeID uint) ([]dto.EmployeeTaskDTO, error)
	UpdateAssignment(ctx context.Context, id uint, cols map[string]any) (*models.Assignment, error)
	DeleteAssignment(ctx context.Context, id uint) error
}
