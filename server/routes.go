package server

import "net/http"

func (s *Server) initRoutes() {
	// Auth routes. The credential-bearing endpoints carry per-IP rate
	// limits on top of the base API chain.
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.registerHandler, s.APIMiddleware(s.RateLimitMiddleware(s.limiters.register))...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.loginHandler, s.APIMiddleware(s.RateLimitMiddleware(s.limiters.login))...))
	s.RegisterRouteHandler("POST "+RouteAuthAdminLogin, ChainMiddleware(s.adminLoginHandler, s.APIMiddleware(s.RateLimitMiddleware(s.limiters.login))...))
	s.RegisterRouteHandler("POST "+RouteAuthRefresh, ChainMiddleware(s.refreshHandler, s.APIMiddleware(s.RateLimitMiddleware(s.limiters.refresh))...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.logoutHandler, s.APIMiddleware(s.AuthMiddleware)...))

	// Notification routes (require a valid access token; creation is
	// platform-admin only and fans out to connected websocket clients)
	s.RegisterRouteHandler("POST "+RouteNotifications, ChainMiddleware(s.createNotificationHandler, s.APIMiddleware(s.AuthMiddleware, s.AdminMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteNotifications, ChainMiddleware(s.listNotificationsHandler, s.APIMiddleware(s.AuthMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteNotificationRead, ChainMiddleware(s.markNotificationReadHandler, s.APIMiddleware(s.AuthMiddleware)...))
	s.RegisterRouteHandler("DELETE "+RouteNotificationByID, ChainMiddleware(s.deleteNotificationHandler, s.APIMiddleware(s.AuthMiddleware)...))

	// Loyalty ledger routes
	s.RegisterRouteHandler("GET "+RouteLoyaltyBalance, ChainMiddleware(s.loyaltyBalanceHandler, s.APIMiddleware(s.AuthMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteLoyaltyHistory, ChainMiddleware(s.loyaltyHistoryHandler, s.APIMiddleware(s.AuthMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteLoyaltyEarn, ChainMiddleware(s.loyaltyEarnHandler, s.APIMiddleware(s.AuthMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteLoyaltyRedeem, ChainMiddleware(s.loyaltyRedeemHandler, s.APIMiddleware(s.AuthMiddleware)...))

	// Promotions
	s.RegisterRouteHandler("GET "+RoutePromotionByCode, ChainMiddleware(s.lookupPromotionHandler, s.APIMiddleware(s.AuthMiddleware)...))

	// Realtime notification stream. The websocket upgrade carries its
	// own auth and origin checks, so it skips the API chain.
	s.RegisterRouteFunc("GET "+RouteWSNotifications, s.wsNotificationsHandler)

	// Operational endpoints
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.handler())
	s.RegisterRouteFunc("GET "+RouteHealth, s.healthHandler)
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
