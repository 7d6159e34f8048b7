package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petcheck/internal/adapters/auth/authapi"
	"petcheck/internal/adapters/auth/jwtauth"
	"petcheck/internal/adapters/notify/reminderapi"
	sessmem "petcheck/internal/adapters/sessionstore/memory"
	sessredis "petcheck/internal/adapters/sessionstore/redis"
	pg "petcheck/internal/adapters/storage/postgres"
	"petcheck/internal/config"
	"petcheck/internal/platform/logger"
	"petcheck/internal/ports/auth"
	"petcheck/internal/ports/notify"
	"petcheck/internal/router"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "petcheck",
		Short: "API de saúde de pets",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de la base",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, db *sql.DB) error {
				return pg.Migrate(ctx, db)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Muestra el estado de las migraciones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, db *sql.DB) error {
				return pg.MigrationStatus(ctx, db)
			})
		},
	})

	return cmd
}

func withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("DB_DSN is required")
	}
	db, err := pg.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(ctx, db)
}

func runServer(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	opts := router.Options{
		Logger:       log,
		CookieSecure: cfg.SessionCookieSecure,
	}

	// Storage
	if cfg.DatabaseDSN != "" {
		db, err := pg.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := pg.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		opts.DB = db
		log.Info("using postgres storage", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	// Sesiones
	var store auth.SessionStore = sessmem.New()
	if cfg.RedisURL != "" {
		rdb, err := sessredis.Open(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("open redis: %w", err)
		}
		defer rdb.Close()
		store = sessredis.New(rdb)
	}
	opts.SessionStore = store

	if cfg.AuthJWTSecret != "" {
		opts.Verifier = jwtauth.NewVerifier(cfg.AuthJWTSecret)
	} else {
		log.Warn("AUTH_JWT_SECRET not set, accepting X-Debug-User-ID", map[string]any{"env": cfg.Env})
	}

	if cfg.AuthBaseURL != "" {
		c, err := authapi.NewClient(authapi.Config{BaseURL: cfg.AuthBaseURL, Timeout: cfg.HTTPTimeout})
		if err != nil {
			return fmt.Errorf("auth client: %w", err)
		}
		opts.Authenticator = c
	}

	var notifier notify.Notifier
	if cfg.NotifyBaseURL != "" {
		c, err := reminderapi.NewClient(reminderapi.Config{
			BaseURL: cfg.NotifyBaseURL,
			APIKey:  cfg.NotifyAPIKey,
			Timeout: cfg.HTTPTimeout,
		})
		if err != nil {
			return fmt.Errorf("notify client: %w", err)
		}
		notifier = c
	} else {
		log.Warn("NOTIFY_BASE_URL not set, reminders will not be pushed", nil)
	}
	opts.Notifier = notifier

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped", nil)
	return nil
}
