package server

import (
	"errors"
	"net/http"

	"github.com/stayware/go-property-server/promotions"
)

// lookupPromotionHandler resolves a coupon code for the caller's
// tenant. Invalid and unknown codes are indistinguishable to the
// caller.
func (s *Server) lookupPromotionHandler(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	code := r.PathValue("code")
	coupon, err := s.promotions.Lookup(r.Context(), code, principal.TenantID)
	if err != nil {
		if errors.Is(err, promotions.ErrNotFound) || errors.Is(err, promotions.ErrCouponInvalid) {
			writeError(w, http.StatusNotFound, "coupon_not_found", "coupon not found or not redeemable")
			return
		}
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coupon)
}
