package dashboard

import (
	"context"

	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/staffing-scheduler/internal/dto"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
)

type Repository interface {
	Counts(ctx context.Context) (*dto.DashboardDTO, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Summary(ctx context.Context, id *access.Identity) (*dto.DashboardDTO, error) {
	if err := access.Authorize(id, access.OpDashboardView); err != nil {
		return nil, err
	}
	out, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, httperr.Store("dashboard counts", err)
	}
	return out, nil
}
