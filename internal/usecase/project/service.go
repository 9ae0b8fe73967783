package project

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/staffing-scheduler/internal/audit"
	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/project"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

type CreateInput struct {
	Name      string
	BookingID uint
	StartDate *time.Time
	EndDate   *time.Time
	Notes     string
	Status    string
}

type Service struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewService(repo domain.Repository, audit audit.Recorder) *Service {
	return &Service{repo: repo, audit: audit}
}

func validStatus(s string) bool {
	switch s {
	case domain.StatusPlanned, domain.StatusActive, domain.StatusCompleted:
		return true
	}
	return false
}

// Create opens the project for a booking. The caller becomes its manager.
func (s *Service) Create(
	ctx context.Context,
	id *access.Identity,
	in CreateInput,
) (*models.Project, error) {

	if err := access.Authorize(id, access.OpProjectCreate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" || in.BookingID == 0 {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = domain.DefaultStatus
	}
	if !validStatus(status) {
		return nil, httperr.ErrBusiness("invalid_project_status")
	}

	p := &models.Project{
		BookingID: in.BookingID,
		ManagerID: id.UserID,
		Name:      in.Name,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Notes:     in.Notes,
		Status:    status,
	}

	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, httperr.Store("create project", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "project_created", "project", p.ID,
		map[string]any{"booking_id": p.BookingID}))
	return p, nil
}

// List returns every project to staff and only the projects an employee is
// assigned to.
func (s *Service) List(
	ctx context.Context,
	id *access.Identity,
) ([]models.Project, error) {

	if err := access.Authorize(id, access.OpProjectList); err != nil {
		return nil, err
	}

	var (
		out []models.Project
		err error
	)
	if id.Role == access.RoleEmployee {
		out, err = s.repo.ListProjectsForEmployee(ctx, id.UserID)
	} else {
		out, err = s.repo.ListProjects(ctx)
	}
	if err != nil {
		return nil, httperr.Store("list projects", err)
	}
	return out, nil
}

func (s *Service) Update(
	ctx context.Context,
	id *access.Identity,
	projectID uint,
	p domain.Patch,
) (*models.Project, error) {

	if err := access.Authorize(id, access.OpProjectUpdate); err != nil {
		return nil, err
	}

	cols := p.Columns()
	if len(cols) == 0 {
		return nil, httperr.ErrBusiness("no_fields_to_update")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}
	if p.Status != nil && !validStatus(*p.Status) {
		return nil, httperr.ErrBusiness("invalid_project_status")
	}

	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("project_not_found")
		}
		return nil, httperr.Store("get project", err)
	}

	if p.ManagerID != nil {
		if err := s.assertManager(ctx, *p.ManagerID); err != nil {
			return nil, err
		}
	}

	out, err := s.repo.UpdateProject(ctx, projectID, cols)
	if err != nil {
		return nil, httperr.Store("update project", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "project_updated", "project", projectID, cols))
	return out, nil
}

// Delete removes the project and its assignments and reports how many
// assignments were removed.
func (s *Service) Delete(
	ctx context.Context,
	id *access.Identity,
	projectID uint,
) (int64, error) {

	if err := access.Authorize(id, access.OpProjectDelete); err != nil {
		return 0, err
	}

	removed, err := s.repo.DeleteProjectCascade(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, httperr.ErrNotFound("project_not_found")
	}
	if err != nil {
		return 0, httperr.Store("delete project", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "project_deleted", "project", projectID,
		map[string]any{"assignments": removed}))
	return removed, nil
}

func (s *Service) assertManager(ctx context.Context, userID uint) error {
	u, err := s.repo.GetUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("invalid_manager")
	}
	if err != nil {
		return httperr.Store("get manager", err)
	}
	if role := access.Role(u.Role); !role.IsStaff() {
		return httperr.ErrBusiness("invalid_manager")
	}
	return nil
}
