package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stayware/go-property-server/accounts"
	"github.com/stayware/go-property-server/auth"
	"github.com/stayware/go-property-server/internal/config"
	"github.com/stayware/go-property-server/loyalty"
	"github.com/stayware/go-property-server/notifications"
	"github.com/stayware/go-property-server/promotions"
	"github.com/stayware/go-property-server/realtime"
	"github.com/stayware/go-property-server/tenants"
	"github.com/stayware/go-property-server/token"
)

// Repos holds every repository the server wires into its services.
type Repos struct {
	Users         accounts.UserRepo
	Admins        accounts.AdminRepo
	Tokens        token.Repo
	Tenants       tenants.Repo
	Notifications notifications.Repo
	Loyalty       loyalty.Repo
	Coupons       promotions.Repo
}

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	log    zerolog.Logger
	repos  Repos

	codec         *token.Codec
	sessions      *auth.SessionService
	hub           *realtime.Hub
	notifications *notifications.Service
	loyalty       *loyalty.Service
	promotions    *promotions.Service

	limiters *limiterSet
	metrics  *httpMetrics
}

func New(cfg config.Config, log zerolog.Logger, repos Repos) (*Server, error) {
	codec := token.NewCodec(cfg.GetJWTSecret(), cfg.GetTokenIssuer())

	sessions, err := auth.NewSessionService(
		auth.Repos{Users: repos.Users, Admins: repos.Admins, Tokens: repos.Tokens},
		codec,
		auth.WithAccessTokenTTL(cfg.GetAccessTokenTTL()),
		auth.WithRefreshTokenTTL(cfg.GetRefreshTokenTTL()),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to create session service")
	}

	hub := realtime.NewHub(log)

	s := &Server{
		env:           cfg.GetEnv(),
		mux:           http.NewServeMux(),
		config:        cfg,
		log:           log,
		repos:         repos,
		codec:         codec,
		sessions:      sessions,
		hub:           hub,
		notifications: notifications.NewService(repos.Notifications, hub),
		loyalty:       loyalty.NewService(repos.Loyalty),
		promotions:    promotions.NewService(repos.Coupons),
		limiters:      newLimiterSet(),
		metrics:       newHTTPMetrics(),
	}

	// Bootstrap: ensure the system tenant and platform admin exist.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.InitialiseSystem(ctx); err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to initialise the system")
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			s.log.Info().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			s.log.Info().Str("path", parts[0]).Msg("route registered")
		}
	}
}
