package config

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	// t.Setenv records the old value for restore; Unsetenv afterwards makes
	// LookupEnv miss so the fallback path is exercised.
	for _, key := range []string{"PORT", "DATABASE_PATH", "JWT_SECRET", "CORS_ALLOW_ORIGINS", "SEED_DEMO_DATA"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %s, want 5000", cfg.Port)
	}
	if cfg.DBPath != "inventory.db" {
		t.Errorf("DBPath = %s, want inventory.db", cfg.DBPath)
	}
	if cfg.CorsAllowOrigins != "*" {
		t.Errorf("CorsAllowOrigins = %s, want *", cfg.CorsAllowOrigins)
	}
	if cfg.SeedDemoData {
		t.Error("SeedDemoData should default to false")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %s, want /tmp/test.db", cfg.DBPath)
	}
	if !cfg.SeedDemoData {
		t.Error("SeedDemoData should be true")
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG", "not-a-bool")
	if getEnvBool("FLAG", true) != true {
		t.Error("malformed value should fall back")
	}
	t.Setenv("FLAG", "1")
	if getEnvBool("FLAG", false) != true {
		t.Error("1 should parse true")
	}
}
