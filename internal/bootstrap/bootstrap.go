package bootstrap

import (
	"context"
	"fmt"

	"github.com/hr-records-api/internal/ai"
	"github.com/hr-records-api/internal/auth"
	"github.com/hr-records-api/internal/cache"
	"github.com/hr-records-api/internal/config"
	"github.com/hr-records-api/internal/mail"
	"github.com/hr-records-api/internal/service"
	"github.com/rs/zerolog"
)

// Options selects the optional collaborators to build
type Options struct {
	// WithGenerator connects the Vertex AI client used by the dashboard query
	WithGenerator bool
}

// Dependencies builds the collaborators shared by the server and the CLI.
// The returned cleanup releases every connection that was opened.
func Dependencies(ctx context.Context, cfg *config.Config, opts Options, log zerolog.Logger) (service.Dependencies, func(), error) {
	deps := service.Dependencies{
		Tokens: auth.NewTokenManager(cfg.Auth),
		Hasher: auth.BcryptHasher{},
	}

	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn().Err(err).Msg("Failed to close dependency")
			}
		}
	}

	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return deps, cleanup, err
		}
		deps.Cache = redisCache
		closers = append(closers, redisCache.Close)
		log.Info().Str("addr", cfg.Redis.Addr()).Msg("Catalog cache enabled")
	} else {
		deps.Cache = cache.Nop{}
		log.Info().Msg("REDIS_HOST not set, catalog cache disabled")
	}

	if cfg.SMTP.Enabled() {
		deps.Mailer = mail.NewSMTPSender(cfg.SMTP)
		log.Info().Str("host", cfg.SMTP.Host).Int("workers", cfg.SMTP.Workers).Msg("SMTP delivery enabled")
	} else {
		deps.Mailer = mail.NewLogSender(log)
		log.Info().Msg("SMTP_HOST not set, welcome emails will only be logged")
	}

	if opts.WithGenerator {
		generator, err := ai.NewVertexGenerator(ctx, cfg.AI)
		if err != nil {
			cleanup()
			return deps, func() {}, fmt.Errorf("failed to initialize text generator: %w", err)
		}
		deps.Generator = generator
		closers = append(closers, generator.Close)
		log.Info().Str("model", cfg.AI.Model).Str("location", cfg.AI.Location).Msg("Text generator ready")
	}

	return deps, cleanup, nil
}
