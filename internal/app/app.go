// Package app wires the store, relay, pipeline and transport together
// and owns the process lifecycle.
package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mstepanov/contact-backend/internal/config"
	"github.com/mstepanov/contact-backend/internal/contact"
	"github.com/mstepanov/contact-backend/internal/mail/smtp"
	mongostore "github.com/mstepanov/contact-backend/internal/store/mongo"
	transporthttp "github.com/mstepanov/contact-backend/internal/transport/http"
)

// App holds the process-scoped singletons: one store client, one relay,
// one optional Redis client, one HTTP server.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	store           *mongostore.Store
	redis           *redis.Client
	log             *zerolog.Logger
}

// New constructs the application. Store connectivity is established here
// and a failure is returned to the caller, which treats it as fatal; the
// mail relay is only probed, and a probe failure is logged without
// blocking startup.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	logger.Info().Str("database", cfg.MongoDatabase).Str("collection", cfg.MongoCollection).Msg("store connected")

	relay := smtp.NewRelay(smtp.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Secure:   cfg.SMTPSecure,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		To:       cfg.NotifyTo(),
	})
	verifyRelay(ctx, relay, cfg, logger)

	var rdb *redis.Client
	if cfg.RateLimitEnabled {
		if cfg.RedisAddr == "" {
			logger.Warn().Msg("rate limiting enabled but no redis address configured, limiter disabled")
		} else {
			rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		}
	}

	svc := contact.NewService(st, relay, logger)
	server := transporthttp.NewServer(svc, cfg, rdb, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		store:           st,
		redis:           rdb,
		log:             logger,
	}, nil
}

func verifyRelay(ctx context.Context, relay *smtp.Relay, cfg *config.Config, logger *zerolog.Logger) {
	if cfg.SMTPHost == "" {
		logger.Warn().Msg("smtp host not configured, notifications will fail at send time")
		return
	}
	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := relay.Verify(verifyCtx); err != nil {
		logger.Warn().Err(err).Str("host", cfg.SMTPHost).Msg("mail relay verification failed, continuing")
		return
	}
	logger.Info().Str("host", cfg.SMTPHost).Msg("mail relay verified")
}

// Run starts the HTTP server and blocks until context cancellation or
// fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the store and other long-lived clients.
func (a *App) cleanup() {
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.store != nil {
		if err := a.store.Close(closeCtx); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
}
