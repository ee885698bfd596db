package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusconnect/portal/internal/api"
	"github.com/campusconnect/portal/internal/core/ports"
	"github.com/campusconnect/portal/internal/core/service"
	"github.com/campusconnect/portal/internal/infrastructure/config"
	redisdb "github.com/campusconnect/portal/internal/infrastructure/db/redis"
	"github.com/campusconnect/portal/internal/infrastructure/memory"
	"github.com/campusconnect/portal/internal/infrastructure/upstream"
	"github.com/campusconnect/portal/pkg/logger"
)

const (
	rateLimit  = 10
	rateWindow = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Dev()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis when configured, in-memory otherwise.
	var (
		sessions ports.SessionStore
		prefs    ports.PreferenceStore
		limiter  ports.RateLimiter
	)
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer client.Close()
		store := redisdb.NewSessionStore(client)
		sessions, prefs = store, store
		limiter = redisdb.NewRateLimiter(client, rateLimit, rateWindow)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis session store")
	} else {
		store := memory.NewSessionStore()
		sessions, prefs = store, store
		limiter = memory.NewRateLimiter(rateLimit, rateWindow)
		log.Info().Msg("no redis configured, using in-memory session store")
	}

	up := upstream.NewClient(cfg.Upstream.BaseURL, log)

	authService := service.NewAuthService(up, sessions, prefs, false, log)
	assistant := service.NewAssistantService(up, sessions, limiter, log)
	prober := service.NewProber(up, log)

	go prober.Run(ctx)
	go assistant.Rotate(ctx)

	e := api.NewRouter(api.Deps{
		Auth:         authService,
		Student:      service.NewStudentService(up, sessions, log),
		Teacher:      service.NewTeacherService(up, sessions, log),
		Admin:        service.NewAdminService(up, sessions, log),
		Organization: service.NewOrganizationService(up, sessions, log),
		Assistant:    assistant,
		Prober:       prober,
		SessionStore: sessions,
		JWTSecret:    cfg.JWTSecret,
		Log:          log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("upstream", cfg.Upstream.BaseURL).Msg("portal gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
