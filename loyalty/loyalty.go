package loyalty

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Entry is one append-only movement in an account's point ledger.
// Delta is positive for earns and negative for redemptions.
type Entry struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrInvalidPoints       = errors.New("points must be positive")
	ErrInsufficientBalance = errors.New("insufficient point balance")
)

// Repo abstracts ledger storage. Balance is the sum of all deltas for
// an owner.
type Repo interface {
	Append(ctx context.Context, e *Entry) error
	ListForOwner(ctx context.Context, ownerID string, limit int) ([]*Entry, error)
	Balance(ctx context.Context, ownerID string) (int, error)
}

// Service is the loyalty collaborator: a point ledger with a
// no-negative-balance rule on redemption.
type Service struct {
	repo    Repo
	nowTime func() time.Time
}

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(repo Repo, options ...ServiceOption) *Service {
	s := &Service{
		repo:    repo,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Balance returns the owner's current point total.
func (s *Service) Balance(ctx context.Context, ownerID string) (int, error) {
	return s.repo.Balance(ctx, ownerID)
}

// History returns the owner's most recent ledger entries.
func (s *Service) History(ctx context.Context, ownerID string, limit int) ([]*Entry, error) {
	return s.repo.ListForOwner(ctx, ownerID, limit)
}

// Earn appends a positive movement.
func (s *Service) Earn(ctx context.Context, ownerID string, points int, reason string) (*Entry, error) {
	if points <= 0 {
		return nil, ErrInvalidPoints
	}
	return s.append(ctx, ownerID, points, reason)
}

// Redeem appends a negative movement after checking the balance would
// not go negative.
func (s *Service) Redeem(ctx context.Context, ownerID string, points int, reason string) (*Entry, error) {
	if points <= 0 {
		return nil, ErrInvalidPoints
	}
	balance, err := s.repo.Balance(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if balance < points {
		return nil, ErrInsufficientBalance
	}
	return s.append(ctx, ownerID, -points, reason)
}

func (s *Service) append(ctx context.Context, ownerID string, delta int, reason string) (*Entry, error) {
	e := &Entry{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Delta:     delta,
		Reason:    reason,
		CreatedAt: s.nowTime(),
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
