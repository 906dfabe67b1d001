package promotions

import (
	"context"
	"errors"
	"time"
)

// Coupon is a discount promotion, optionally tenant-scoped.
type Coupon struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Description     string    `json:"description,omitempty"`
	DiscountPercent int       `json:"discount_percent"`
	TenantID        *string   `json:"tenant_id,omitempty"`
	Active          bool      `json:"active"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidUntil      time.Time `json:"valid_until"`
}

var (
	ErrNotFound = errors.New("coupon not found")

	// ErrCouponInvalid covers inactive, out-of-window and
	// wrong-tenant coupons alike; callers only learn the code
	// cannot be applied.
	ErrCouponInvalid = errors.New("coupon cannot be applied")
)

// Redeemable reports whether the coupon applies at the given time for
// the given tenant. A tenant-scoped coupon only applies to its tenant;
// an unscoped coupon applies anywhere.
func (c *Coupon) Redeemable(now time.Time, tenantID *string) bool {
	if !c.Active {
		return false
	}
	if now.Before(c.ValidFrom) || !now.Before(c.ValidUntil) {
		return false
	}
	if c.TenantID != nil {
		return tenantID != nil && *tenantID == *c.TenantID
	}
	return true
}

// Repo abstracts coupon storage.
type Repo interface {
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	Upsert(ctx context.Context, c *Coupon) error
}

// Service is the promotion collaborator: coupon lookup only.
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

// Lookup resolves a code to its coupon when currently redeemable for
// the caller's tenant.
func (s *Service) Lookup(ctx context.Context, code string, tenantID *string) (*Coupon, error) {
	c, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !c.Redeemable(s.nowTime(), tenantID) {
		return nil, ErrCouponInvalid
	}
	return c, nil
}
