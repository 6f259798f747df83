package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	httpadp "bankledger/internal/adapter/http"
	appmw "bankledger/internal/adapter/middleware"
	"bankledger/internal/adapter/repository/mysql"
	"bankledger/internal/config"
	"bankledger/internal/domain/siteconfig"
	"bankledger/internal/infrastructure/cache"
	"bankledger/internal/infrastructure/db"
	"bankledger/internal/notification"
	"bankledger/internal/usecase/ledger"
	"bankledger/internal/usecase/report"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	accountRepo := mysql.NewAccountRepository(gdb)
	txRepo := mysql.NewTransactionRepository(gdb)
	siteRepo := mysql.NewSiteConfigRepository(gdb)
	unit := mysql.NewGormUoW(gdb)

	seedSiteConfig(siteRepo)

	gate := siteconfig.NewCachedReader(siteRepo, time.Duration(cfg.SiteCacheTTLSecs)*time.Second)

	var notifier notification.Notifier = notification.NewLogNotifier(logger)
	if cfg.SendGridAPIKey != "" {
		notifier = notification.NewMailer(cfg.SendGridAPIKey, cfg.NotifyFromEmail, cfg.NotifyFromName)
	}

	ledgerUC := ledger.NewUsecase(unit, accountRepo, gate, notifier, logger, cfg.LedgerMaxRetries)
	reportUC := report.NewUsecase(accountRepo, txRepo)

	h := httpadp.NewHandler()
	lh := httpadp.NewLedgerHandler(ledgerUC)
	rh := httpadp.NewReportHandler(reportUC)
	ah := httpadp.NewAdminHandler(siteRepo, gate)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idem := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/accounts", lh.OpenAccount)
	e.GET("/accounts/:account_id", lh.GetAccount)
	e.POST("/accounts/:account_id/deposit", lh.Deposit, idem)
	e.POST("/accounts/:account_id/withdraw", lh.Withdraw, idem)
	e.POST("/accounts/:account_id/transfer", lh.Transfer, idem)
	e.POST("/accounts/:account_id/loans", lh.RequestLoan, idem)
	e.POST("/loans/:tx_id/repay", lh.RepayLoan, idem)

	e.GET("/accounts/:account_id/report", rh.Report)
	e.GET("/accounts/:account_id/loans", rh.LoanList)

	e.GET("/admin/site-config", ah.GetSiteConfig)
	e.PUT("/admin/site-config", ah.SetSiteConfig)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seedSiteConfig makes sure the singleton gate row exists so the engine
// never has to special-case a missing config.
func seedSiteConfig(repo *mysql.SiteConfigRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := repo.Get(ctx); errors.Is(err, gorm.ErrRecordNotFound) {
		if err := repo.SetBankrupt(ctx, false, "bank is operational"); err != nil {
			log.Fatal(err)
		}
	}
}
