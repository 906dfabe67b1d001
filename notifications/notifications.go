package notifications

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Notification is a message addressed to one account, optionally
// scoped to a tenant.
type Notification struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	TenantID  *string   `json:"tenant_id,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("notification not found")

// Repo abstracts notification storage.
type Repo interface {
	Create(ctx context.Context, n *Notification) error
	ListForOwner(ctx context.Context, ownerID string, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, id, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
}

// Publisher pushes a freshly created notification to any connected
// clients. Delivery is best-effort.
type Publisher interface {
	Publish(ownerID string, n *Notification)
}

// Service is the notification collaborator: plain data access plus a
// best-effort push on create.
type Service struct {
	repo      Repo
	publisher Publisher
	nowTime   func() time.Time
}

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService creates a notification service. publisher may be nil.
func NewService(repo Repo, publisher Publisher, options ...ServiceOption) *Service {
	s := &Service{
		repo:      repo,
		publisher: publisher,
		nowTime:   time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Create stores the notification and pushes it to connected clients.
func (s *Service) Create(ctx context.Context, ownerID string, tenantID *string, title, body string) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		TenantID:  tenantID,
		Title:     title,
		Body:      body,
		CreatedAt: s.nowTime(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	if s.publisher != nil {
		s.publisher.Publish(ownerID, n)
	}
	return n, nil
}

// ListForOwner returns the owner's most recent notifications.
func (s *Service) ListForOwner(ctx context.Context, ownerID string, limit int) ([]*Notification, error) {
	return s.repo.ListForOwner(ctx, ownerID, limit)
}

// MarkRead flags a notification as read. The ownership check lives in
// the repository predicate.
func (s *Service) MarkRead(ctx context.Context, id, ownerID string) error {
	return s.repo.MarkRead(ctx, id, ownerID)
}

// Delete removes a notification owned by ownerID.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	return s.repo.Delete(ctx, id, ownerID)
}
