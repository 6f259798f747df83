package db

import (
	"log/slog"
	"time"

	"bankledger/internal/domain/account"
	"bankledger/internal/domain/siteconfig"
	"bankledger/internal/domain/transaction"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(mysql.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	slog.Info("gorm: connected")
	return db, nil
}

// Migrate provisions the ledger schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&account.Account{},
		&transaction.Transaction{},
		&siteconfig.SiteConfig{},
	)
}
