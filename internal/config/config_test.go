package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Fatalf("unexpected PollInterval: %v", cfg.PollInterval)
	}
	if !cfg.ESPNEnabled {
		t.Fatalf("expected ESPN enabled by default")
	}
	if cfg.FootballDataEnabled || cfg.BBCEnabled {
		t.Fatalf("expected secondary sources disabled by default")
	}
	if len(cfg.Participants) != 0 {
		t.Fatalf("expected no participants override by default, got %v", cfg.Participants)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DB_URL default, got %q", cfg.DBURL)
	}
}

func TestLoad_FootballDataRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_ENABLED", "true")
	t.Setenv("FOOTBALL_DATA_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when FOOTBALL_DATA_ENABLED=true without FOOTBALL_DATA_TOKEN")
	}
}

func TestLoad_TelegramRequiresChatIDWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("TELEGRAM_ENABLED", "true")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when TELEGRAM_ENABLED=true without TELEGRAM_CHAT_ID")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_ParticipantsCSV(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PARTICIPANTS", " Kenz , Tartz ,,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.Participants) != 2 || cfg.Participants[1] != "Tartz" {
		t.Fatalf("unexpected participants: %v", cfg.Participants)
	}
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	got := parseUptraceDSNFromOTLPHeaders(`uptrace-dsn="https://token@api.uptrace.dev/123"`)
	if got != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected dsn: %q", got)
	}
	if parseUptraceDSNFromOTLPHeaders("foo=bar") != "" {
		t.Fatalf("expected empty dsn for unrelated headers")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "debug", want: "debug"},
		{in: "WARN", want: "warn"},
		{in: "warning", want: "warn"},
		{in: "error", want: "error"},
		{in: "", want: "info"},
		{in: "garbage", want: "info"},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in).String(); got != tt.want {
			t.Fatalf("parseLogLevel(%q)=%q want=%q", tt.in, got, tt.want)
		}
	}
}
