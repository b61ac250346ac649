package logger

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/config"
)

func TestGetPgxTraceLogLevel(t *testing.T) {
	tests := []struct {
		in   zerolog.Level
		want tracelog.LogLevel
	}{
		{zerolog.DebugLevel, tracelog.LogLevelDebug},
		{zerolog.InfoLevel, tracelog.LogLevelInfo},
		{zerolog.WarnLevel, tracelog.LogLevelWarn},
		{zerolog.ErrorLevel, tracelog.LogLevelError},
		{zerolog.Disabled, tracelog.LogLevelNone},
	}

	for _, tt := range tests {
		if got := tracelog.LogLevel(GetPgxTraceLogLevel(tt.in)); got != tt.want {
			t.Fatalf("GetPgxTraceLogLevel(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerServiceWithoutLicenseIsNoop(t *testing.T) {
	svc := NewLoggerService(config.DefaultObservabilityConfig())
	if svc.GetApplication() != nil {
		t.Fatalf("expected no New Relic application without a license key")
	}

	ctx, txn := svc.StartBackground(context.Background(), "console/login")
	if txn != nil {
		t.Fatalf("expected nil transaction")
	}
	if ctx == nil {
		t.Fatalf("expected the original context back")
	}

	svc.RecordEvent("Ignored", nil)
	svc.Shutdown()

	var nilService *LoggerService
	if nilService.GetApplication() != nil {
		t.Fatalf("nil service must report no application")
	}
}

func TestNewLoggerUsesConfiguredLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	log := NewLogger(cfg)
	if log.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %s", log.GetLevel())
	}

	same := WithTraceContext(log, nil)
	if same.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("WithTraceContext(nil) changed the logger")
	}
}
