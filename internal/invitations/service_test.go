package invitations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	byToken map[string]*Invitation
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byToken: map[string]*Invitation{}, nextID: 1}
}

func (f *fakeRepository) Create(ctx context.Context, invitation *Invitation) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *invitation
	stored.ID = id
	f.byToken[invitation.Token] = &stored
	return id, nil
}

func (f *fakeRepository) GetByToken(ctx context.Context, token string) (*Invitation, error) {
	if inv, ok := f.byToken[token]; ok {
		copied := *inv
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (f *fakeRepository) ListByCouple(ctx context.Context, coupleID int64) ([]*Invitation, error) {
	var out []*Invitation
	for _, inv := range f.byToken {
		if inv.CoupleID == coupleID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeRepository) MarkAccepted(ctx context.Context, id int64) error {
	for _, inv := range f.byToken {
		if inv.ID == id && inv.Status == StatusPending {
			inv.Status = StatusAccepted
			now := time.Now().UTC()
			inv.AcceptedAt = &now
			return nil
		}
	}
	return ErrNotFound
}

type recordingEmailProvider struct {
	sentTo  []string
	sendErr error
}

func (p *recordingEmailProvider) SendInvitation(ctx context.Context, to, inviteURL string, message *string) error {
	if p.sendErr != nil {
		return p.sendErr
	}
	p.sentTo = append(p.sentTo, to)
	return nil
}

func TestInviteCreatesTokenAndSendsEmail(t *testing.T) {
	repo := newFakeRepository()
	email := &recordingEmailProvider{}
	svc := NewService(repo, email, "https://app.example.com", 7*24*time.Hour)

	invitation, err := svc.Invite(context.Background(), 42, &CreateRequest{Email: "photo@example.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, invitation.Token)
	assert.Equal(t, StatusPending, invitation.Status)
	assert.True(t, invitation.ExpiresAt.After(time.Now().UTC().Add(6*24*time.Hour)))
	assert.Equal(t, []string{"photo@example.com"}, email.sentTo)
}

func TestInviteSurvivesEmailFailure(t *testing.T) {
	repo := newFakeRepository()
	email := &recordingEmailProvider{sendErr: errors.New("smtp down")}
	svc := NewService(repo, email, "https://app.example.com", time.Hour)

	invitation, err := svc.Invite(context.Background(), 42, &CreateRequest{Email: "photo@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, invitation.Token)
}

func TestInviteRejectsInvalidEmail(t *testing.T) {
	svc := NewService(newFakeRepository(), &recordingEmailProvider{}, "https://app.example.com", time.Hour)

	_, err := svc.Invite(context.Background(), 42, &CreateRequest{Email: "not-an-email"})
	assert.Error(t, err)
}

func TestAcceptFlow(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &recordingEmailProvider{}, "https://app.example.com", time.Hour)

	invitation, err := svc.Invite(context.Background(), 42, &CreateRequest{Email: "photo@example.com"})
	require.NoError(t, err)

	accepted, err := svc.Accept(context.Background(), invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, accepted.Status)
	assert.NotNil(t, accepted.AcceptedAt)

	// Second accept fails: tokens are single use.
	_, err = svc.Accept(context.Background(), invitation.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAcceptExpired(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &recordingEmailProvider{}, "https://app.example.com", -time.Hour)

	invitation, err := svc.Invite(context.Background(), 42, &CreateRequest{Email: "photo@example.com"})
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), invitation.Token)
	assert.ErrorIs(t, err, ErrExpired)
}
