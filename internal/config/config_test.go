package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FV_PASSPHRASE", "correct horse battery staple")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.DBPath != "vault.db" {
		t.Errorf("DBPath = %q, want vault.db", cfg.DBPath)
	}
	if cfg.BenchmarkTicker != "SPY" {
		t.Errorf("BenchmarkTicker = %q, want SPY", cfg.BenchmarkTicker)
	}
	if cfg.BillHorizonDays != 30 {
		t.Errorf("BillHorizonDays = %d, want 30", cfg.BillHorizonDays)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FV_PASSPHRASE", "s3cret")
	t.Setenv("FV_HTTP_PORT", "9090")
	t.Setenv("FV_DB_PATH", "/tmp/test.db")
	t.Setenv("FV_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != 9090 {
		t.Errorf("HTTPPort = %d, want 9090", cfg.HTTPPort)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want /tmp/test.db", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadRequiresPassphrase(t *testing.T) {
	t.Setenv("FV_PASSPHRASE", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without a passphrase")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("FV_PASSPHRASE", "s3cret")
	t.Setenv("FV_HTTP_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}
