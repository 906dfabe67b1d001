package promotionrepofake

import (
	"context"
	"strings"
	"sync"

	"github.com/stayware/go-property-server/promotions"
)

var _ promotions.Repo = (*FakeCouponRepo)(nil)

type FakeCouponRepo struct {
	coupons map[string]*promotions.Coupon // keyed by lowercased code
	lock    sync.RWMutex
}

func NewFakeCouponRepo() *FakeCouponRepo {
	return &FakeCouponRepo{coupons: make(map[string]*promotions.Coupon)}
}

func (cr *FakeCouponRepo) GetByCode(_ context.Context, code string) (*promotions.Coupon, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	c, ok := cr.coupons[strings.ToLower(code)]
	if !ok {
		return nil, promotions.ErrNotFound
	}
	return c, nil
}

func (cr *FakeCouponRepo) Upsert(_ context.Context, c *promotions.Coupon) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	cr.coupons[strings.ToLower(c.Code)] = c
	return nil
}
