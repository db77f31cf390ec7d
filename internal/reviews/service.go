package reviews

import (
	"context"

	"github.com/mariable/mariable-backend/internal/common/utils"
)

type Service interface {
	Create(ctx context.Context, coupleID int64, req *CreateRequest) (*Review, error)
	ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]*Review, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, coupleID int64, req *CreateRequest) (*Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	review := &Review{
		ProviderID: req.ProviderID,
		CoupleID:   coupleID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	id, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]*Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByProvider(ctx, providerID, limit, offset)
}
