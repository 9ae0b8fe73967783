package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/staffing-scheduler/internal/audit"
	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
	"github.com/BruksfildServices01/staffing-scheduler/internal/validators"
)

type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
	Skills   string
}

type Service struct {
	repo  domain.Repository
	audit audit.Recorder
	cost  int
}

func NewService(repo domain.Repository, audit audit.Recorder) *Service {
	return &Service{repo: repo, audit: audit, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *Service) WithHashCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) hash(password string) (string, error) {
	if len(password) < domain.MinPasswordLength {
		return "", httperr.ErrBusiness("password_too_short")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ======================================================
// ACCOUNT CREATION
// ======================================================

// CreateAccount stores a new user after validating and normalizing the
// input. It performs no authorization and is shared by self-registration and
// the admin endpoint.
func (s *Service) CreateAccount(ctx context.Context, in CreateInput) (*models.User, error) {
	email := validators.NormalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" || email == "" || in.Password == "" || strings.TrimSpace(in.Role) == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	role, ok := access.ParseRole(in.Role)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_role")
	}

	hashed, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, httperr.Store("check email", err)
	}
	if taken {
		return nil, httperr.ErrBusiness("email_exists")
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hashed,
		Role:         string(role),
		Phone:        in.Phone,
		Skills:       in.Skills,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, httperr.Store("create user", err)
	}
	return u, nil
}

// ======================================================
// ADMIN
// ======================================================

func (s *Service) List(ctx context.Context, id *access.Identity) ([]models.User, error) {
	if err := access.Authorize(id, access.OpUserList); err != nil {
		return nil, err
	}
	out, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, httperr.Store("list users", err)
	}
	return out, nil
}

// ListEmployees returns the users that can be assigned, ordered by name.
func (s *Service) ListEmployees(ctx context.Context, id *access.Identity) ([]models.User, error) {
	if err := access.Authorize(id, access.OpEmployeeList); err != nil {
		return nil, err
	}
	out, err := s.repo.ListUsersByRole(ctx, string(access.RoleEmployee))
	if err != nil {
		return nil, httperr.Store("list employees", err)
	}
	return out, nil
}

func (s *Service) Create(
	ctx context.Context,
	id *access.Identity,
	in CreateInput,
) (*models.User, error) {

	if err := access.Authorize(id, access.OpUserCreate); err != nil {
		return nil, err
	}

	u, err := s.CreateAccount(ctx, in)
	if err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "user_created", "user", u.ID,
		map[string]any{"role": u.Role}))
	return u, nil
}

func (s *Service) Update(
	ctx context.Context,
	id *access.Identity,
	userID uint,
	p domain.Patch,
) (*models.User, error) {

	if err := access.Authorize(id, access.OpUserUpdate); err != nil {
		return nil, err
	}
	if p.Empty() {
		return nil, httperr.ErrBusiness("no_fields_to_update")
	}

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("user_not_found")
		}
		return nil, httperr.Store("get user", err)
	}

	cols := map[string]any{}
	changed := []string{}

	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, httperr.ErrBusiness("missing_fields")
		}
		cols["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		email := validators.NormalizeEmail(*p.Email)
		if email == "" {
			return nil, httperr.ErrBusiness("missing_fields")
		}
		taken, err := s.repo.EmailTaken(ctx, email, userID)
		if err != nil {
			return nil, httperr.Store("check email", err)
		}
		if taken {
			return nil, httperr.ErrBusiness("email_exists")
		}
		cols["email"] = email
	}
	if p.Role != nil {
		role, ok := access.ParseRole(*p.Role)
		if !ok {
			return nil, httperr.ErrBusiness("invalid_role")
		}
		cols["role"] = string(role)
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.Skills != nil {
		cols["skills"] = *p.Skills
	}
	for col := range cols {
		changed = append(changed, col)
	}
	if p.Password != nil {
		hashed, err := s.hash(*p.Password)
		if err != nil {
			return nil, err
		}
		cols["password_hash"] = hashed
		changed = append(changed, "password")
	}

	u, err := s.repo.UpdateUser(ctx, userID, cols)
	if err != nil {
		return nil, httperr.Store("update user", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "user_updated", "user", userID,
		map[string]any{"fields": changed}))
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id *access.Identity, userID uint) error {
	if err := access.Authorize(id, access.OpUserDelete); err != nil {
		return err
	}

	err := s.repo.DeleteUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound("user_not_found")
	}
	if err != nil {
		return httperr.Store("delete user", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "user_deleted", "user", userID, nil))
	return nil
}

// ======================================================
// SELF SERVICE
// ======================================================

// Me returns the caller's own record.
func (s *Service) Me(ctx context.Context, id *access.Identity) (*models.User, error) {
	if err := access.Authorize(id, access.OpMeView); err != nil {
		return nil, err
	}
	u, err := s.repo.GetUser(ctx, id.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	if err != nil {
		return nil, httperr.Store("get user", err)
	}
	return u, nil
}

// ChangePassword is the only change a user may make to their own record.
func (s *Service) ChangePassword(
	ctx context.Context,
	id *access.Identity,
	current string,
	next string,
) error {

	if err := access.Authorize(id, access.OpMeChangePasswd); err != nil {
		return err
	}
	if current == "" || next == "" {
		return httperr.ErrBusiness("missing_fields")
	}

	u, err := s.Me(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return httperr.ErrBusiness("wrong_password")
	}

	hashed, err := s.hash(next)
	if err != nil {
		return err
	}
	if _, err := s.repo.UpdateUser(ctx, u.ID, map[string]any{"password_hash": hashed}); err != nil {
		return httperr.Store("update password", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "password_changed", "user", u.ID, nil))
	return nil
}
