package server

const (
	RouteAuthRegister   = "/auth/register"
	RouteAuthAdminLogin = "/auth/admin/login"
	RouteAuthLogin      = "/auth/login"
	RouteAuthRefresh    = "/auth/refresh"
	RouteAuthLogout     = "/auth/logout"

	RouteNotifications    = "/notifications"
	RouteNotificationRead = "/notifications/{id}/read"
	RouteNotificationByID = "/notifications/{id}"
	RouteLoyaltyBalance   = "/loyalty/balance"
	RouteLoyaltyHistory   = "/loyalty/history"
	RouteLoyaltyEarn      = "/loyalty/earn"
	RouteLoyaltyRedeem    = "/loyalty/redeem"
	RoutePromotionByCode  = "/promotions/{code}"
	RouteWSNotifications  = "/ws/notifications"
	RouteMetrics          = "/metrics"
	RouteHealth           = "/healthz"
)
