package invitations

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mariable/mariable-backend/internal/common/utils"
)

type Service interface {
	Invite(ctx context.Context, coupleID int64, req *CreateRequest) (*Invitation, error)
	Accept(ctx context.Context, token string) (*Invitation, error)
	ListByCouple(ctx context.Context, coupleID int64) ([]*Invitation, error)
}

type service struct {
	repo    Repository
	email   EmailProvider
	baseURL string
	expiry  time.Duration
}

func NewService(repo Repository, email EmailProvider, baseURL string, expiry time.Duration) Service {
	return &service{
		repo:    repo,
		email:   email,
		baseURL: baseURL,
		expiry:  expiry,
	}
}

// Invite stores the invitation then sends the email. A send failure is
// logged but does not roll the invitation back; the couple can resend.
func (s *service) Invite(ctx context.Context, coupleID int64, req *CreateRequest) (*Invitation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	invitation := &Invitation{
		CoupleID:    coupleID,
		Email:       req.Email,
		ServiceType: req.ServiceType,
		Token:       uuid.NewString(),
		Status:      StatusPending,
		ExpiresAt:   time.Now().UTC().Add(s.expiry),
	}

	id, err := s.repo.Create(ctx, invitation)
	if err != nil {
		return nil, err
	}
	invitation.ID = id

	inviteURL := fmt.Sprintf("%s/invitations/%s", s.baseURL, invitation.Token)
	if err := s.email.SendInvitation(ctx, req.Email, inviteURL, req.Message); err != nil {
		log.Printf("invitations: email to %s failed: %v", req.Email, err)
	}

	return invitation, nil
}

func (s *service) Accept(ctx context.Context, token string) (*Invitation, error) {
	invitation, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if time.Now().UTC().After(invitation.ExpiresAt) {
		return nil, ErrExpired
	}
	if invitation.Status != StatusPending {
		return nil, ErrNotFound
	}

	if err := s.repo.MarkAccepted(ctx, invitation.ID); err != nil {
		return nil, err
	}

	return s.repo.GetByToken(ctx, token)
}

func (s *service) ListByCouple(ctx context.Context, coupleID int64) ([]*Invitation, error) {
	return s.repo.ListByCouple(ctx, coupleID)
}
