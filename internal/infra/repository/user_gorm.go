package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

type UserGormRepository struct {
	base
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{base{db: db}}
}

func (r *UserGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness("email_exists")
	}
	return err
}

func (r *UserGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) EmailTaken(
	ctx context.Context,
	email string,
	exceptID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserGormRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&users).Error
	return users, err
}

func (r *UserGormRepository) ListUsersByRole(
	ctx context.Context,
	role string,
) ([]models.User, error) {

	var users []models.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

// assertOwnsNoBookings fails while any booking still names userID as its
// client.
func assertOwnsNoBookings(tx *gorm.DB, userID uint) error {
	var count int64
	if err := tx.Model(&models.Booking{}).
		Where("client_id = ?", userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrBusiness("client_has_bookings")
	}
	return nil
}

func (r *UserGormRepository) UpdateUser(
	ctx context.Context,
	id uint,
	cols map[string]any,
) (*models.User, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if role, ok := cols["role"].(string); ok && role != string(access.RoleClient) {
			if err := assertOwnsNoBookings(tx, id); err != nil {
				return err
			}
		}
		return tx.Model(&models.User{}).
			Where("id = ?", id).
			Updates(cols).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, httperr.ErrBusiness("email_exists")
	}
	if err != nil {
		return nil, err
	}
	return r.GetUser(ctx, id)
}

func (r *UserGormRepository) DeleteUser(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertOwnsNoBookings(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

var _ domain.Repository = (*UserGormRepository)(nil)
