package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

type BookingGormRepository struct {
	base
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{base{db: db}}
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.Filter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).Model(&models.Booking{})

	switch f.Kind {
	case domain.FilterByClient:
		q = q.Where("bookings.client_id = ?", f.ClientID)
	case domain.FilterByStatus:
		q = q.Where("bookings.status = ?", f.Status)
	case domain.FilterUnassigned:
		// absence of a matching project, not a flag
		q = q.
			Joins("LEFT JOIN projects ON projects.booking_id = bookings.id").
			Where("projects.id IS NULL")
	}

	var out []models.Booking
	err := q.
		Order("bookings.created_at DESC, bookings.id DESC").
		Find(&out).Error
	return out, err
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	id uint,
	cols map[string]any,
) (*models.Booking, error) {

	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(cols).Error; err != nil {
		return nil, err
	}
	return r.GetBooking(ctx, id)
}

func (r *BookingGormRepository) DeleteBookingCascade(
	ctx context.Context,
	id uint,
) (domain.Cascade, error) {

	var out domain.Cascade

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&b, id).Error; err != nil {
			return err
		}

		var projectIDs []uint
		if err := tx.Model(&models.Project{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("booking_id = ?", id).
			Pluck("id", &projectIDs).Error; err != nil {
			return err
		}

		if len(projectIDs) > 0 {
			res := tx.Where("project_id IN ?", projectIDs).Delete(&models.Assignment{})
			if res.Error != nil {
				return res.Error
			}
			out.Assignments = res.RowsAffected

			res = tx.Where("booking_id = ?", id).Delete(&models.Project{})
			if res.Error != nil {
				return res.Error
			}
			out.Projects = res.RowsAffected
		}

		return tx.Delete(&models.Booking{}, id).Error
	})

	return out, err
}

var _ domain.Repository = (*BookingGormRepository)(nil)
