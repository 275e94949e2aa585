package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_pos/api"
	"api_pos/internal/catalog"
	"api_pos/internal/config"
	"api_pos/internal/sales"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("error loading configuration: %v", err))
	}

	logger, err := config.NewLogger(cfg.Server, cfg.Logger)
	if err != nil {
		panic(fmt.Errorf("error building logger: %v", err))
	}
	defer logger.Sync()

	store := sales.NewLocalStore()
	salesService := sales.NewService(store, logger, sales.WithLowStockThreshold(cfg.Store.LowStockThreshold))
	catalogService := catalog.NewService(store.Products(), store.Customers(), store.Promotions(), store.WriteLock(), logger, cfg.Store.DefaultMaxDebt)

	if cfg.Store.SeedDemoData {
		if err := catalogService.Seed(); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	api.InitRoutes(r, api.Services{Sales: salesService, Catalog: catalogService}, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Server.AppEnv))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("error trying to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
		return
	}
	logger.Info("HTTP server stopped")
}
