package couples

import (
	"context"

	"github.com/mariable/mariable-backend/internal/common/utils"
)

type Service interface {
	Create(ctx context.Context, req *CreateRequest) (*Profile, error)
	GetByID(ctx context.Context, id int64) (*Profile, error)
	Update(ctx context.Context, id int64, req *UpdateRequest) (*Profile, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req *CreateRequest) (*Profile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	profile := &Profile{
		PartnerOne:  req.PartnerOne,
		PartnerTwo:  req.PartnerTwo,
		Email:       req.Email,
		WeddingDate: req.WeddingDate,
		Location:    req.Location,
		GuestCount:  req.GuestCount,
		BudgetTotal: req.BudgetTotal,
		Cultures:    req.Cultures,
		Languages:   req.Languages,
	}

	id, err := s.repo.Create(ctx, profile)
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, req *UpdateRequest) (*Profile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}
