package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/assignment"
	"github.com/BruksfildServices01/staffing-scheduler/internal/dto"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

type AssignmentGormRepository struct {
	base
}

func NewAssignmentGormRepository(db *gorm.DB) *AssignmentGormRepository {
	return &AssignmentGormRepository{base{db: db}}
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

// lockProject share-locks the project row so a concurrent project cascade
// cannot remove it before tx commits.
func lockProject(tx *gorm.DB, projectID uint) error {
	var p models.Project
	err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
		Select("id").
		First(&p, projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound("project_not_found")
	}
	return err
}

func (r *AssignmentGormRepository) CreateAssignment(
	ctx context.Context,
	a *models.Assignment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProject(tx, a.ProjectID); err != nil {
			return err
		}
		return tx.Create(a).Error
	})
}

func (r *AssignmentGormRepository) UpdateAssignment(
	ctx context.Context,
	id uint,
	cols map[string]any,
) (*models.Assignment, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if projectID, ok := cols["project_id"].(uint); ok {
			if err := lockProject(tx, projectID); err != nil {
				return err
			}
		}
		return tx.Model(&models.Assignment{}).
			Where("id = ?", id).
			Updates(cols).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetAssignment(ctx, id)
}

func (r *AssignmentGormRepository) DeleteAssignment(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, &models.Assignment{}, id)
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AssignmentGormRepository) GetAssignment(
	ctx context.Context,
	id uint,
) (*models.Assignment, error) {

	var a models.Assignment
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentGormRepository) GetAssignmentForEmployee(
	ctx context.Context,
	id uint,
	employeeID uint,
) (*models.Assignment, error) {

	var a models.Assignment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND employee_id = ?", id, employeeID).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentGormRepository) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	var out []models.Assignment
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *AssignmentGormRepository) ListAssignmentsForEmployee(
	ctx context.Context,
	employeeID uint,
) ([]models.Assignment, error) {

	var out []models.Assignment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *AssignmentGormRepository) ListAssignmentDetails(
	ctx context.Context,
) ([]dto.AssignmentDetailDTO, error) {

	var out []dto.AssignmentDetailDTO

	err := r.db.WithContext(ctx).
		Table("assignments AS a").
		Select(`
			a.id,
			a.project_id,
			a.employee_id,
			a.assigned_by,
			a.role_desc,
			a.start_date,
			a.end_date,
			a.status,
			a.created_at,
			u.name AS employee_name,
			p.project_name,
			b.title AS booking_title,
			b.location AS booking_location
		`).
		Joins("LEFT JOIN users u ON u.id = a.employee_id").
		Joins("LEFT JOIN projects p ON p.id = a.project_id").
		Joins("LEFT JOIN bookings b ON b.id = p.booking_id").
		Order("a.created_at DESC, a.id DESC").
		Scan(&out).Error

	return out, err
}

func (r *AssignmentGormRepository) ListEmployeeTasks(
	ctx context.Context,
	employeeID uint,
) ([]dto.EmployeeTaskDTO, error) {

	var out []dto.EmployeeTaskDTO

	err := r.db.WithContext(ctx).
		Table("assignments AS a").
		Select(`
			a.id,
			a.project_id,
			a.role_desc,
			a.start_date,
			a.end_date,
			a.status,
			a.created_at,
			p.project_name,
			b.title AS booking_title,
			b.location AS booking_location,
			b.start_date AS booking_start,
			b.end_date AS booking_end
		`).
		Joins("JOIN projects p ON p.id = a.project_id").
		Joins("JOIN bookings b ON b.id = p.booking_id").
		Where("a.employee_id = ?", employeeID).
		Order("a.start_date ASC, a.id ASC").
		Scan(&out).Error

	return out, err
}

var _ domain.Repository = (*AssignmentGormRepository)(nil)
