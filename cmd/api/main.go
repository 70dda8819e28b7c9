package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"elix-server/internal/adapter/repo"
	"elix-server/internal/http/handlers"
	httpapi "elix-server/internal/http/httpapi"
	"elix-server/internal/infra"
	"elix-server/internal/infra/geoip"
	"elix-server/internal/infra/google"
	"elix-server/internal/middleware"
	"elix-server/internal/providers/rewrite"
	"elix-server/internal/quota"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)
	profiles := repo.NewProfileRepository(runner)
	limits := repo.NewLimitsRepository(runner)
	usage := repo.NewUsageEventRepository(runner)

	rewriter := buildRewriter(cfg, logger)

	var country middleware.CountryLookup
	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if geo != nil {
		country = geo.CountryCode
	}

	app := &handlers.App{
		Logger:         logger,
		JWTSecret:      cfg.JWTSecret,
		GoogleVerifier: google.NewVerifier(cfg.GoogleIssuer, cfg.GoogleClientID),
		Profiles:       profiles,
		Quota:          quota.NewService(limits, cfg.FreeDailyLimit),
		Rewriter:       rewriter,
		Usage:          usage,
		Billing: handlers.BillingConfig{
			PublishableKey: cfg.StripePublishableKey,
			PriceID:        cfg.StripePriceID,
		},
		WordLimit:    cfg.WordLimit,
		MaxTextChars: cfg.MaxTextChars,
	}

	router := httpapi.NewRouter(app, cfg, country)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func buildRewriter(cfg *infra.Config, logger infra.Logger) rewrite.Rewriter {
	onFallback := func(reason string, err error) {
		logger.Warn().Err(err).Str("reason", reason).Msg("rewrite provider fallback")
	}
	switch cfg.RewriteProvider {
	case "gemini":
		if cfg.GeminiAPIKey != "" {
			rw, err := rewrite.NewGeminiRewriter(rewrite.GeminiOptions{
				APIKey:     cfg.GeminiAPIKey,
				Model:      cfg.GeminiModel,
				BaseURL:    cfg.GeminiBaseURL,
				Fallback:   rewrite.NewStaticRewriter(),
				OnFallback: onFallback,
			})
			if err == nil {
				return rw
			}
			logger.Warn().Err(err).Msg("gemini rewriter unavailable")
		}
	case "openai":
		if cfg.OpenAIAPIKey != "" {
			rw, err := rewrite.NewOpenAIRewriter(rewrite.OpenAIOptions{
				APIKey:       cfg.OpenAIAPIKey,
				Model:        cfg.OpenAIModel,
				BaseURL:      cfg.OpenAIBaseURL,
				Organization: cfg.OpenAIOrg,
				Fallback:     rewrite.NewStaticRewriter(),
				OnFallback:   onFallback,
			})
			if err == nil {
				return rw
			}
			logger.Warn().Err(err).Msg("openai rewriter unavailable")
		}
	}
	logger.Info().Str("provider", "static").Msg("using static rewriter")
	return rewrite.NewStaticRewriter()
}
