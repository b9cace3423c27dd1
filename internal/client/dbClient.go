package client

import (
	"fmt"
	"strings"
	"time"

	"sportify-api/internal/config"
	"sportify-api/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePragmas = "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

func InitDBClient(cfg *config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite", "":
		dialector = sqlite.Open(sqliteDSN(cfg.URL))
	case "mysql":
		dialector = mysql.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "mysql" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.Tables()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") || strings.Contains(path, ":memory:") {
		return path
	}
	return path + "?" + sqlitePragmas
}
