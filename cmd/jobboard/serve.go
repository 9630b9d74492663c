package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobportal/jobboard/internal/api"
	"github.com/jobportal/jobboard/internal/api/handler"
	"github.com/jobportal/jobboard/internal/api/view"
	"github.com/jobportal/jobboard/internal/core/domain"
	"github.com/jobportal/jobboard/internal/core/service"
	"github.com/jobportal/jobboard/internal/infrastructure/db/mongo"
	"github.com/jobportal/jobboard/internal/infrastructure/db/redis"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Starts the job board HTTP server. Indexes are created on startup if absent.

	jobboard serve
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	mongoClient, db, err := openMongo(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	roles, err := cfg.RegistrationRoles()
	if err != nil {
		return err
	}

	users := mongo.NewUserRepository(db)
	authSvc := service.NewAuthService(users, service.NewBcryptHasher(cfg.Auth.BcryptCost), domain.NewRegistrationPolicy(roles...), log)
	sessionSvc := service.NewSessionService(redis.NewSessionStore(rdb), cfg.Session.Secret, cfg.Session.TTL, log)
	boardSvc := service.NewBoardService(users, mongo.NewJobRepository(db), mongo.NewApplicationRepository(db), log)

	e := api.NewRouter(api.Dependencies{
		Auth:     authSvc,
		Sessions: sessionSvc,
		Board:    boardSvc,
		HealthChecks: map[string]handler.PingFunc{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Renderer:     view.MustNew(),
		Logger:       log,
		CookieSecure: cfg.Session.CookieSecure,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
