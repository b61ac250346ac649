package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JOBPORTAL_PRIMARY.ENV", "test")
	t.Setenv("JOBPORTAL_DATABASE.HOST", "localhost")
	t.Setenv("JOBPORTAL_DATABASE.USER", "portal")
	t.Setenv("JOBPORTAL_DATABASE.PASSWORD", "p@ss:word")
	t.Setenv("JOBPORTAL_DATABASE.NAME", "job_portal")
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Primary.Env != "test" {
		t.Fatalf("expected env test, got %q", cfg.Primary.Env)
	}
	if cfg.Database.Port != 5432 {
		t.Fatalf("expected default port 5432, got %d", cfg.Database.Port)
	}
	if cfg.Database.QueryTimeout != 5*time.Second {
		t.Fatalf("expected default query timeout, got %s", cfg.Database.QueryTimeout)
	}
	if cfg.Observability.ServiceName != ServiceName {
		t.Fatalf("expected service name %q, got %q", ServiceName, cfg.Observability.ServiceName)
	}
	if cfg.Observability.Environment != "test" {
		t.Fatalf("expected observability env to follow primary env, got %q", cfg.Observability.Environment)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("expected redis to be disabled without an address")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JOBPORTAL_DATABASE.QUERY_TIMEOUT", "750ms")
	t.Setenv("JOBPORTAL_SERVER.CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("JOBPORTAL_OBSERVABILITY.LOGGING.LEVEL", "debug")
	t.Setenv("JOBPORTAL_REDIS.ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Database.QueryTimeout != 750*time.Millisecond {
		t.Fatalf("expected 750ms, got %s", cfg.Database.QueryTimeout)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.Server.CORSAllowedOrigins)
	}
	if cfg.Observability.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Observability.Logging.Level)
	}
	if cfg.Observability.Logging.Format != "json" {
		t.Fatalf("expected the default format to survive a partial override, got %q", cfg.Observability.Logging.Format)
	}
	if !cfg.Redis.Enabled() {
		t.Fatalf("expected redis to be enabled")
	}
}

func TestLoadConfigRejectsMissingDatabase(t *testing.T) {
	t.Setenv("JOBPORTAL_PRIMARY.ENV", "test")
	t.Setenv("JOBPORTAL_DATABASE.HOST", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected validation error without database settings")
	}
}

func TestLoadConfigAcceptsURL(t *testing.T) {
	t.Setenv("JOBPORTAL_PRIMARY.ENV", "test")
	t.Setenv("JOBPORTAL_DATABASE.URL", "postgres://u:p@db:5432/portal?sslmode=disable")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Database.DSN() != "postgres://u:p@db:5432/portal?sslmode=disable" {
		t.Fatalf("unexpected dsn %q", cfg.Database.DSN())
	}
}

func TestDSNEscapesPassword(t *testing.T) {
	d := DatabaseConfig{
		Host:     "::1",
		Port:     5432,
		User:     "portal",
		Password: "p@ss:word",
		Name:     "job_portal",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	if !strings.Contains(dsn, "p%40ss%3Aword") {
		t.Fatalf("password not escaped: %s", dsn)
	}
	if !strings.Contains(dsn, "[::1]:5432") {
		t.Fatalf("ipv6 host not bracketed: %s", dsn)
	}
}

func TestObservabilityValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *ObservabilityConfig) {}},
		{name: "bad level", mutate: func(c *ObservabilityConfig) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "bad format", mutate: func(c *ObservabilityConfig) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "negative threshold", mutate: func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, wantErr: true},
		{name: "missing service", mutate: func(c *ObservabilityConfig) { c.ServiceName = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
