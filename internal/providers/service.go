package providers

import (
	"context"

	"github.com/mariable/mariable-backend/internal/common/utils"
	"github.com/mariable/mariable-backend/internal/matching"
)

type Service interface {
	Create(ctx context.Context, req *CreateRequest) (*Profile, error)
	GetByID(ctx context.Context, id int64) (*Profile, error)
	ListByServiceType(ctx context.Context, serviceType string, limit, offset int) ([]*Profile, error)
	Update(ctx context.Context, id int64, req *UpdateRequest) (*Profile, error)
}

type service struct {
	repo  Repository
	cache *ProfileCache
}

// NewService wires the repository with an optional profile cache; pass a
// nil cache to run cache-less.
func NewService(repo Repository, cache *ProfileCache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) Create(ctx context.Context, req *CreateRequest) (*Profile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	// Store the canonical form so matching retrieval finds the profile.
	req.ServiceType = matching.NormalizeServiceType(req.ServiceType)

	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Profile, error) {
	if profile, ok := s.cache.Get(ctx, id); ok {
		return profile, nil
	}

	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, profile)
	return profile, nil
}

func (s *service) ListByServiceType(ctx context.Context, serviceType string, limit, offset int) ([]*Profile, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.ListByServiceType(ctx, matching.NormalizeServiceType(serviceType), limit, offset)
}

func (s *service) Update(ctx context.Context, id int64, req *UpdateRequest) (*Profile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if req.ServiceType != nil {
		normalized := matching.NormalizeServiceType(*req.ServiceType)
		req.ServiceType = &normalized
	}

	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, id)
	return s.repo.GetByID(ctx, id)
}
