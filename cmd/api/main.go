package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/devfolio/portfolio-web/config"
	"github.com/devfolio/portfolio-web/internal/api/http/middleware"
	"github.com/devfolio/portfolio-web/internal/auth"
	"github.com/devfolio/portfolio-web/internal/bootstrap"
	"github.com/devfolio/portfolio-web/internal/projects"
	"github.com/devfolio/portfolio-web/internal/session"
)

const serviceName = "portfolio-web"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	rdb := bootstrap.OpenRedis(ctx, &cfg.Redis)
	defer rdb.Close()

	sessions := session.New(rdb, cfg.Session.TTL)
	provider := auth.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.CallbackURL())

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		DB:             pool,
		Redis:          rdb,
		Projects:       projects.NewRepo(pool),
		Sessions:       sessions,
		Provider:       provider,
		SessionSecret:  cfg.Session.Secret,
		TemplatesGlob:  "web/templates/*.html",
		AllowedOrigins: cfg.App.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: middleware.MethodOverride(router),
	}

	go func() {
		log.Printf("[info] operation=startup message=listening port=%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[info] operation=shutdown message=signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[warn] operation=shutdown error=%v", err)
	}
}
