package backoffice

import (
	"context"
	"errors"
	"strings"

	"workshop/internal/ports"
)

func (s *Service) CreateBusiness(ctx context.Context, name string) (ports.Business, error) {
	if ctx == nil {
		return ports.Business{}, errors.New("context is required")
	}
	if s.tenants == nil {
		return ports.Business{}, errors.New("tenant repository is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ports.Business{}, errors.New("business name is required")
	}
	return s.tenants.CreateBusiness(ctx, name, s.now())
}

func (s *Service) GetBusiness(ctx context.Context, businessID uint64) (ports.Business, error) {
	if err := s.checkTenantCall(ctx, businessID); err != nil {
		return ports.Business{}, err
	}
	return s.tenants.GetBusiness(ctx, businessID)
}

func (s *Service) ListBusinessIDs(ctx context.Context) ([]uint64, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	return s.tenants.ListBusinessIDs(ctx)
}
