package assignment

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/staffing-scheduler/internal/audit"
	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/assignment"
	"github.com/BruksfildServices01/staffing-scheduler/internal/dto"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
	"github.com/BruksfildServices01/staffing-scheduler/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	ProjectID  uint
	EmployeeID uint
	RoleDesc   string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     string
}

// ======================================================
// SERVICE
// ======================================================

type Service struct {
	repo     domain.Repository
	audit    audit.Recorder
	notifier notify.Notifier
}

func NewService(
	repo domain.Repository,
	audit audit.Recorder,
	notifier notify.Notifier,
) *Service {
	return &Service{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

// Create assigns an employee to a project and, once the row is stored, queues
// a notice to the employee.
func (s *Service) Create(
	ctx context.Context,
	id *access.Identity,
	in CreateInput,
) (*models.Assignment, error) {

	if err := access.Authorize(id, access.OpAssignmentCreate); err != nil {
		return nil, err
	}
	if in.ProjectID == 0 || in.EmployeeID == 0 {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	status := domain.InitialStatus()
	if strings.TrimSpace(in.Status) != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	project, err := s.project(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	employee, err := s.employee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	a := &models.Assignment{
		ProjectID:  project.ID,
		EmployeeID: employee.ID,
		AssignedBy: id.UserID,
		RoleDesc:   in.RoleDesc,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Status:     string(status),
	}

	if err := s.repo.CreateAssignment(ctx, a); err != nil {
		return nil, httperr.Store("create assignment", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "assignment_created", "assignment", a.ID,
		map[string]any{"project_id": a.ProjectID, "employee_id": a.EmployeeID}))

	roleDesc := a.RoleDesc
	if strings.TrimSpace(roleDesc) == "" {
		roleDesc = domain.DefaultRoleDesc
	}
	s.notifier.Dispatch(notify.AssignmentNotice{
		Address:      employee.Email,
		ProjectName:  project.Name,
		EmployeeName: employee.Name,
		RoleDesc:     roleDesc,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
	})

	return a, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

// List returns an employee's own assignments, or every assignment for staff.
func (s *Service) List(
	ctx context.Context,
	id *access.Identity,
) ([]models.Assignment, error) {

	if err := access.Authorize(id, access.OpAssignmentList); err != nil {
		return nil, err
	}

	var (
		out []models.Assignment
		err error
	)
	if id.Role == access.RoleEmployee {
		out, err = s.repo.ListAssignmentsForEmployee(ctx, id.UserID)
	} else {
		out, err = s.repo.ListAssignments(ctx)
	}
	if err != nil {
		return nil, httperr.Store("list assignments", err)
	}
	return out, nil
}

func (s *Service) ListDetailed(
	ctx context.Context,
	id *access.Identity,
) ([]dto.AssignmentDetailDTO, error) {

	if err := access.Authorize(id, access.OpAssignmentListDetailed); err != nil {
		return nil, err
	}
	out, err := s.repo.ListAssignmentDetails(ctx)
	if err != nil {
		return nil, httperr.Store("list assignment details", err)
	}
	return out, nil
}

func (s *Service) EmployeeTasks(
	ctx context.Context,
	id *access.Identity,
) ([]dto.EmployeeTaskDTO, error) {

	if err := access.Authorize(id, access.OpEmployeeTasks); err != nil {
		return nil, err
	}
	out, err := s.repo.ListEmployeeTasks(ctx, id.UserID)
	if err != nil {
		return nil, httperr.Store("list employee tasks", err)
	}
	return out, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

// UpdateStatus lets an employee move one of their own assignments to any
// known status. Ownership is checked before the value.
func (s *Service) UpdateStatus(
	ctx context.Context,
	id *access.Identity,
	assignmentID uint,
	status string,
) (*models.Assignment, error) {

	if err := access.Authorize(id, access.OpAssignmentStatus); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetAssignmentForEmployee(ctx, assignmentID, id.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFoundOrDenied("assignment_not_found")
		}
		return nil, httperr.Store("get assignment", err)
	}

	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.UpdateAssignment(ctx, assignmentID, map[string]any{"status": string(st)})
	if err != nil {
		return nil, httperr.Store("update assignment status", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "assignment_status_changed", "assignment", a.ID,
		map[string]any{"status": a.Status}))
	return a, nil
}

func (s *Service) Update(
	ctx context.Context,
	id *access.Identity,
	assignmentID uint,
	p domain.Patch,
) (*models.Assignment, error) {

	if err := access.Authorize(id, access.OpAssignmentUpdate); err != nil {
		return nil, err
	}

	if p.Status != nil {
		st, err := domain.ParseStatus(*p.Status)
		if err != nil {
			return nil, err
		}
		normalized := string(st)
		p.Status = &normalized
	}

	cols := p.Columns()
	if len(cols) == 0 {
		return nil, httperr.ErrBusiness("no_fields_to_update")
	}

	if _, err := s.repo.GetAssignment(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("assignment_not_found")
		}
		return nil, httperr.Store("get assignment", err)
	}

	if p.ProjectID != nil {
		if _, err := s.project(ctx, *p.ProjectID); err != nil {
			return nil, err
		}
	}
	if p.EmployeeID != nil {
		if _, err := s.employee(ctx, *p.EmployeeID); err != nil {
			return nil, err
		}
	}

	a, err := s.repo.UpdateAssignment(ctx, assignmentID, cols)
	if err != nil {
		return nil, httperr.Store("update assignment", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "assignment_updated", "assignment", a.ID, cols))
	return a, nil
}

func (s *Service) Delete(
	ctx context.Context,
	id *access.Identity,
	assignmentID uint,
) error {

	if err := access.Authorize(id, access.OpAssignmentDelete); err != nil {
		return err
	}

	err := s.repo.DeleteAssignment(ctx, assignmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound("assignment_not_found")
	}
	if err != nil {
		return httperr.Store("delete assignment", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "assignment_deleted", "assignment", assignmentID, nil))
	return nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (s *Service) project(ctx context.Context, projectID uint) (*models.Project, error) {
	p, err := s.repo.GetProject(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound("project_not_found")
	}
	if err != nil {
		return nil, httperr.Store("get project", err)
	}
	return p, nil
}

// employee resolves a user that can be assigned work.
func (s *Service) employee(ctx context.Context, userID uint) (*models.User, error) {
	u, err := s.repo.GetUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound("employee_not_found")
	}
	if err != nil {
		return nil, httperr.Store("get employee", err)
	}
	if u.Role != string(access.RoleEmployee) {
		return nil, httperr.ErrNotFound("employee_not_found")
	}
	return u, nil
}
