package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stayware/go-property-server/accounts"
	accountrepofake "github.com/stayware/go-property-server/accounts/repofake"
	"github.com/stayware/go-property-server/internal/config"
	"github.com/stayware/go-property-server/loyalty"
	loyaltyrepofake "github.com/stayware/go-property-server/loyalty/repofake"
	"github.com/stayware/go-property-server/notifications"
	notificationrepofake "github.com/stayware/go-property-server/notifications/repofake"
	"github.com/stayware/go-property-server/promotions"
	promotionrepofake "github.com/stayware/go-property-server/promotions/repofake"
	"github.com/stayware/go-property-server/server"
	"github.com/stayware/go-property-server/tenants"
	tenantrepofake "github.com/stayware/go-property-server/tenants/repofake"
	"github.com/stayware/go-property-server/token"
	tokenrepofake "github.com/stayware/go-property-server/token/repofake"
)

func main() {
	log := newLogger()
	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server stopped")
}

func run(log zerolog.Logger) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	repos, cleanup, err := buildRepos(c, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(c, log, repos)
	if err != nil {
		return errors.Wrap(err, "server.New")
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(log, httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

// buildRepos wires Postgres-backed repositories when DATABASE_URL is
// set, and the in-memory fakes otherwise.
func buildRepos(c config.Config, log zerolog.Logger) (server.Repos, func(), error) {
	databaseURL := c.GetDatabaseURL()
	if databaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set, using in-memory repositories")
		return server.Repos{
			Users:         accountrepofake.NewFakeUserRepo(),
			Admins:        accountrepofake.NewFakeAdminRepo(),
			Tokens:        tokenrepofake.NewFakeTokenRepo(),
			Tenants:       tenantrepofake.NewFakeTenantRepo(),
			Notifications: notificationrepofake.NewFakeNotificationRepo(),
			Loyalty:       loyaltyrepofake.NewFakeLedgerRepo(),
			Coupons:       promotionrepofake.NewFakeCouponRepo(),
		}, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return server.Repos{}, nil, errors.Wrap(err, "pgxpool.New")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return server.Repos{}, nil, errors.Wrap(err, "database ping")
	}

	return server.Repos{
		Users:         accounts.NewPostgresUserStore(pool),
		Admins:        accounts.NewPostgresAdminStore(pool),
		Tokens:        token.NewPostgresStore(pool),
		Tenants:       tenants.NewPostgresStore(pool),
		Notifications: notifications.NewPostgresStore(pool),
		Loyalty:       loyalty.NewPostgresStore(pool),
		Coupons:       promotions.NewPostgresStore(pool),
	}, pool.Close, nil
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

func listenAndServe(log zerolog.Logger, httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server.Shutdown")
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
