package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.AppPort != "8080" {
		t.Errorf("AppPort = %q", cfg.AppPort)
	}
	if cfg.MySQLDB != "bankledger" || cfg.MySQLUser != "bankledger" {
		t.Errorf("mysql defaults: %+v", cfg)
	}
	if cfg.IdempTTLSecs != 300 || cfg.SiteCacheTTLSecs != 2 || cfg.LedgerMaxRetries != 3 {
		t.Errorf("tuning defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("LEDGER_MAX_RETRIES", "7")
	t.Setenv("SITE_CACHE_TTL_SECONDS", "0")

	cfg := Load()
	if cfg.AppPort != "9000" || cfg.MySQLHost != "db.internal" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.LedgerMaxRetries != 7 || cfg.SiteCacheTTLSecs != 0 {
		t.Errorf("int overrides not applied: %+v", cfg)
	}
	// garbage int falls back to the default
	t.Setenv("LEDGER_MAX_RETRIES", "seven")
	if Load().LedgerMaxRetries != 3 {
		t.Error("non-numeric override did not fall back")
	}
}

func TestValidateFailures(t *testing.T) {
	base := func() *Config { return Load() }

	cfg := base()
	cfg.MySQLHost = ""
	if err := cfg.Validate(); err == nil {
		t.Error("missing MySQL host passed validation")
	}

	cfg = base()
	cfg.MySQLPort = "notaport"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "MYSQL_PORT") {
		t.Errorf("bad port err = %v", err)
	}

	cfg = base()
	cfg.LedgerMaxRetries = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero retries passed validation")
	}

	cfg = base()
	cfg.SiteCacheTTLSecs = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative cache TTL passed validation")
	}
}

func TestMySQLDSN(t *testing.T) {
	t.Setenv("MYSQL_HOST", "db")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("MYSQL_USER", "svc")
	t.Setenv("MYSQL_PASS", "secret")
	t.Setenv("MYSQL_DB", "ledger")

	dsn := Load().MySQLDSN()
	if !strings.HasPrefix(dsn, "svc:secret@tcp(db:3307)/ledger?") {
		t.Fatalf("dsn = %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn missing parseTime: %q", dsn)
	}
}
