package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"sportify-api/internal/client"
	"sportify-api/internal/config"
	"sportify-api/internal/logger"
	"sportify-api/internal/repository"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// seed migrates the schema and loads the bundled catalog, then exits.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Database{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "DATABASE_"}); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}
	logCfg := config.Log{}
	if err := env.Parse(&logCfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logCfg)

	if err := run(cfg, log); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Database, log *slog.Logger) error {
	db, err := client.InitDBClient(cfg)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	products, err := repository.SeedProducts()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if err := repository.NewProductRepository(db).Seed(context.Background(), products); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	log.Info("catalog seeded", "products", len(products), "driver", cfg.Driver)
	return nil
}
