package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

// base carries the lookups every aggregate needs.
type base struct {
	db *gorm.DB
}

func (r base) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r base) GetProject(
	ctx context.Context,
	id uint,
) (*models.Project, error) {

	var p models.Project
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// deleteByID removes one row and reports gorm.ErrRecordNotFound when
// nothing matched.
func (r base) deleteByID(ctx context.Context, model any, id uint) error {
	res := r.db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
