package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/project"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

type ProjectGormRepository struct {
	base
}

func NewProjectGormRepository(db *gorm.DB) *ProjectGormRepository {
	return &ProjectGormRepository{base{db: db}}
}

// assertBookingFree fails unless bookingID exists and no project other than
// exceptID references it. The booking row stays share-locked until tx ends,
// so a concurrent booking cascade waits for it.
func assertBookingFree(tx *gorm.DB, bookingID, exceptID uint) error {
	var b models.Booking
	err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
		Select("id").
		First(&b, bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound("booking_not_found")
	}
	if err != nil {
		return err
	}

	var count int64
	if err := tx.Model(&models.Project{}).
		Where("booking_id = ? AND id <> ?", bookingID, exceptID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrBusiness("booking_already_has_project")
	}
	return nil
}

func translateProjectErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness("booking_already_has_project")
	}
	return err
}

func (r *ProjectGormRepository) CreateProject(
	ctx context.Context,
	p *models.Project,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertBookingFree(tx, p.BookingID, 0); err != nil {
			return err
		}
		return translateProjectErr(tx.Create(p).Error)
	})
}

func (r *ProjectGormRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ProjectGormRepository) ListProjectsForEmployee(
	ctx context.Context,
	employeeID uint,
) ([]models.Project, error) {

	assigned := r.db.
		Model(&models.Assignment{}).
		Select("project_id").
		Where("employee_id = ?", employeeID)

	var out []models.Project
	err := r.db.WithContext(ctx).
		Where("id IN (?)", assigned).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ProjectGormRepository) UpdateProject(
	ctx context.Context,
	id uint,
	cols map[string]any,
) (*models.Project, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if bookingID, ok := cols["booking_id"].(uint); ok {
			if err := assertBookingFree(tx, bookingID, id); err != nil {
				return err
			}
		}
		return translateProjectErr(
			tx.Model(&models.Project{}).Where("id = ?", id).Updates(cols).Error,
		)
	})
	if err != nil {
		return nil, err
	}
	return r.GetProject(ctx, id)
}

func (r *ProjectGormRepository) DeleteProjectCascade(
	ctx context.Context,
	id uint,
) (int64, error) {

	var removed int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&p, id).Error; err != nil {
			return err
		}

		res := tx.Where("project_id = ?", id).Delete(&models.Assignment{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		return tx.Delete(&models.Project{}, id).Error
	})

	return removed, err
}

var _ domain.Repository = (*ProjectGormRepository)(nil)
