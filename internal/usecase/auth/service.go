package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/staffing-scheduler/internal/audit"
	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
	"github.com/BruksfildServices01/staffing-scheduler/internal/session"
	"github.com/BruksfildServices01/staffing-scheduler/internal/usecase/user"
	"github.com/BruksfildServices01/staffing-scheduler/internal/validators"
)

// selfRegistrable lists the roles a visitor may pick for themselves.
var selfRegistrable = map[access.Role]bool{
	access.RoleClient:   true,
	access.RoleEmployee: true,
	access.RoleManager:  true,
}

type LoginResult struct {
	User    *models.User
	Token   string
	Session *session.Session
}

type Service struct {
	users    *user.Service
	repo     domain.Repository
	sessions *session.Manager
	audit    audit.Recorder
}

func NewService(
	users *user.Service,
	repo domain.Repository,
	sessions *session.Manager,
	audit audit.Recorder,
) *Service {
	return &Service{
		users:    users,
		repo:     repo,
		sessions: sessions,
		audit:    audit,
	}
}

// Register creates an account for an anonymous visitor. Admin accounts can
// only be made by another admin.
func (s *Service) Register(ctx context.Context, in user.CreateInput) (*models.User, error) {
	if role, ok := access.ParseRole(in.Role); ok && !selfRegistrable[role] {
		return nil, httperr.ErrBusiness("invalid_role")
	}

	u, err := s.users.CreateAccount(ctx, in)
	if err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.NewEvent(u.ID, "user_registered", "user", u.ID,
		map[string]any{"role": u.Role}))
	return u, nil
}

// Login opens a session. Unknown email and wrong password fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = validators.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	u, err := s.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrInvalidCredentials()
	}
	if err != nil {
		return nil, httperr.Store("find user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, httperr.ErrInvalidCredentials()
	}

	token, sess, err := s.sessions.Open(ctx, u.ID, access.Role(u.Role))
	if err != nil {
		return nil, httperr.Store("open session", err)
	}

	s.audit.Dispatch(audit.NewEvent(u.ID, "login", "user", u.ID, nil))
	return &LoginResult{User: u, Token: token, Session: sess}, nil
}

// Logout always succeeds unless the session store itself fails.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Close(ctx, token); err != nil {
		return httperr.Store("close session", err)
	}
	return nil
}

// Resolve maps a token to an identity. Any invalid, expired or revoked token
// yields a nil identity and no error.
func (s *Service) Resolve(ctx context.Context, token string) (*access.Identity, error) {
	if token == "" {
		return nil, nil
	}
	id, err := s.sessions.Resolve(ctx, token)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, session.ErrInvalidToken) {
		return nil, nil
	}
	return nil, httperr.Store("resolve session", err)
}
