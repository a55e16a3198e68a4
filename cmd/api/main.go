package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"gb-more-from-widget/block"
	"gb-more-from-widget/cmd/api/router"
	"gb-more-from-widget/cmd/api/services"
	"gb-more-from-widget/cmd/internal/app"
	"gb-more-from-widget/config"
	"gb-more-from-widget/db"
	"gb-more-from-widget/logger"
	"gb-more-from-widget/metrics"
)

// @title           More From Widget API
// @version         1.0
// @description     Server-side rendering, assets and editor ajax for the "More From" related-posts block
// @BasePath        /
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(context.Background(), cfg.Mongo); err != nil {
		logger.ErrorWithFields("failed to initialize MongoDB", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}

	m := metrics.New()
	a, err := app.New(cfg, db.Database(), block.WithObserver(m))
	if err != nil {
		logger.ErrorWithFields("failed to register blocks", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}

	r := router.New(router.Deps{
		Blocks:        services.NewBlockService(a.Host),
		Assets:        services.NewAssetService(a.Controller),
		Ajax:          services.NewAjaxService(a.Host, a.Categories),
		Metrics:       m,
		Ping:          db.Ping,
		AdminAjaxPath: cfg.Site.AdminAjaxPath,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Span-Id"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoWithFields("api server listening", logger.Fields{"addr": cfg.Server.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithFields("api server stopped", logger.Fields{"error": err.Error()})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorWithFields("graceful shutdown failed", logger.Fields{"error": err.Error()})
	}
	if err := db.Close(ctx); err != nil {
		logger.ErrorWithFields("failed to close MongoDB client", logger.Fields{"error": err.Error()})
	}
}
