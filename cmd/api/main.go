package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sportify-api/internal/client"
	"sportify-api/internal/config"
	"sportify-api/internal/logger"
	"sportify-api/internal/repository"
	"sportify-api/internal/server"
	"sportify-api/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	// prices and totals go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	db, err := client.InitDBClient(&cfg.Database)
	if err != nil {
		log.Error("failed to init database", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	if cfg.Database.Seed {
		products, err := repository.SeedProducts()
		if err == nil {
			err = productRepo.Seed(context.Background(), products)
		}
		if err != nil {
			log.Error("failed to seed catalog", "error", err)
			os.Exit(1)
		}
		log.Info("catalog seeded", "products", len(products))
	}

	mailClient := client.NewMailClient(&cfg.SMTP, log)
	notifications := service.NewNotificationService(mailClient, cfg.BaseURL, cfg.JWT.VerificationTTL, log)
	tokens := service.NewTokenService(&cfg.JWT, time.Now)

	authService, err := service.NewAuthService(userRepo, tokens, notifications, cfg.Auth.BcryptCost, log)
	if err != nil {
		log.Error("failed to init auth service", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(server.Services{
		Auth:     authService,
		Tokens:   tokens,
		Users:    service.NewUserService(userRepo),
		Catalog:  service.NewCatalogService(productRepo),
		Cart:     service.NewCartService(db, cartRepo, productRepo),
		Checkout: service.NewCheckoutService(db, userRepo, cartRepo, productRepo, orderRepo, notifications, log),
		Orders:   service.NewOrderService(db, orderRepo),
	}, cfg.HTTP.AuthRateLimit, log)

	serverAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)

	log.Info("starting HTTP server", "addr", serverAddr, "env", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	if err := notifications.Wait(shutdownCtx); err != nil {
		log.Warn("pending emails dropped", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
