package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/staffing-scheduler/internal/dto"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

type countQuery struct {
	model  any
	column string
	value  string
	dst    *int64
}

func (r *DashboardGormRepository) Counts(ctx context.Context) (*dto.DashboardDTO, error) {
	var out dto.DashboardDTO

	queries := []countQuery{
		{&models.User{}, "", "", &out.Users},
		{&models.User{}, "role", "employee", &out.Employees},
		{&models.User{}, "role", "manager", &out.Managers},
		{&models.User{}, "role", "client", &out.Clients},

		{&models.Booking{}, "", "", &out.Bookings},
		{&models.Booking{}, "status", "pending", &out.BookingsPending},
		{&models.Booking{}, "status", "approved", &out.BookingsApproved},

		{&models.Project{}, "", "", &out.Projects},
		{&models.Project{}, "status", "active", &out.ProjectsActive},
		{&models.Project{}, "status", "completed", &out.ProjectsCompleted},

		{&models.Assignment{}, "", "", &out.Assignments},
		{&models.Assignment{}, "status", "working", &out.AssignmentsWorking},
		{&models.Assignment{}, "status", "completed", &out.AssignmentsCompleted},
	}

	for _, q := range queries {
		tx := r.db.WithContext(ctx).Model(q.model)
		if q.column != "" {
			tx = tx.Where(q.column+" = ?", q.value)
		}
		if err := tx.Count(q.dst).Error; err != nil {
			return nil, err
		}
	}

	return &out, nil
}
