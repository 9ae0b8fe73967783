package user

import (
	"context"

	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

// MinPasswordLength applies to registration, admin-created users and
// password changes.
const MinPasswordLength = 6

// Patch is the admin-editable subset of a user. Password is plain text and
// gets hashed before it reaches the store.
type Patch struct {
	Name     *string
	Email    *string
	Role     *string
	Phone    *string
	Skills   *string
	Password *string
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil &&
		p.Phone == nil && p.Skills == nil && p.Password == nil
}

type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]models.User, error)
	UpdateUser(ctx context.Context, id uint, cols map[string]any) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}
