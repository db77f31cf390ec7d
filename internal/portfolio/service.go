package portfolio

import (
	"context"

	"github.com/mariable/mariable-backend/internal/common/utils"
)

type Service interface {
	Create(ctx context.Context, providerID int64, req *CreateRequest) (*Item, error)
	ListByProvider(ctx context.Context, providerID int64) ([]*Item, error)
	Delete(ctx context.Context, id, providerID int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, providerID int64, req *CreateRequest) (*Item, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	item := &Item{
		ProviderID:  providerID,
		Title:       req.Title,
		Description: req.Description,
		MediaURL:    req.MediaURL,
		MediaType:   req.MediaType,
	}

	id, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByProvider(ctx context.Context, providerID int64) ([]*Item, error) {
	return s.repo.ListByProvider(ctx, providerID)
}

func (s *service) Delete(ctx context.Context, id, providerID int64) error {
	return s.repo.Delete(ctx, id, providerID)
}
