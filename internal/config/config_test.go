package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "DATABASE_URL", "JWT_SECRET", "ADMIN_TOKEN", "CORS_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "AUTO_MIGRATE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.CORSOrigins != "*" || cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if !cfg.AutoMigrate {
		t.Fatalf("expected migrations enabled by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ADDR", ":9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/shop")
	t.Setenv("ADMIN_TOKEN", "secret-admin")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg := Load()
	if cfg.Addr != ":9000" || cfg.DatabaseURL != "postgres://localhost/shop" || cfg.AdminToken != "secret-admin" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.AutoMigrate {
		t.Fatalf("expected AUTO_MIGRATE=false to disable migrations")
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if err := Load().Validate(); err == nil {
		t.Fatalf("expected an error for an empty JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	if err := Load().Validate(); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
}
