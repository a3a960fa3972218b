package config_test

import (
	"strings"
	"testing"

	"github.com/offstage/linecoach/internal/config"
)

func TestLoadFromReader_FullConfig(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  listen_addr: ":9090"
  log_level: debug
  reload_interval_seconds: 30
matching:
  strict: true
  name_threshold: 0.85
  strategy: subsequence
practice:
  known_names:
    - Persephone
    - Montgomery Eldrinax
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("listen_addr = %q, want %q", cfg.Server.ListenAddr, ":9090")
	}
	if cfg.Server.LogLevel != config.LogDebug {
		t.Errorf("log_level = %q, want debug", cfg.Server.LogLevel)
	}
	if cfg.Server.ReloadIntervalSeconds != 30 {
		t.Errorf("reload_interval_seconds = %d, want 30", cfg.Server.ReloadIntervalSeconds)
	}
	if !cfg.Matching.Strict {
		t.Error("matching.strict should be true")
	}
	if cfg.Matching.Strategy != config.StrategySubsequence {
		t.Errorf("strategy = %q, want subsequence", cfg.Matching.Strategy)
	}
	if len(cfg.Practice.KnownNames) != 2 {
		t.Errorf("known_names = %v, want 2 entries", cfg.Practice.KnownNames)
	}
}

func TestLoadFromReader_UnknownFieldRejected(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  listen_adress: ":8080"
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for misspelled field, got nil")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: loud
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for invalid log level, got nil")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
}

func TestValidate_NameThresholdOutOfRange(t *testing.T) {
	t.Parallel()
	yaml := `
matching:
  name_threshold: 1.5
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for out-of-range threshold, got nil")
	}
	if !strings.Contains(err.Error(), "name_threshold") {
		t.Errorf("error should mention name_threshold, got: %v", err)
	}
}

func TestValidate_InvalidStrategy(t *testing.T) {
	t.Parallel()
	yaml := `
matching:
  strategy: backwards
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown strategy, got nil")
	}
	if !strings.Contains(err.Error(), "strategy") {
		t.Errorf("error should mention strategy, got: %v", err)
	}
}

func TestValidate_TLSRequiresBothFiles(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  tls:
    cert_file: /etc/linecoach/tls.crt
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for TLS without key file, got nil")
	}
	if !strings.Contains(err.Error(), "key_file") {
		t.Errorf("error should mention key_file, got: %v", err)
	}
}

func TestValidate_DuplicateKnownNames(t *testing.T) {
	t.Parallel()
	yaml := `
practice:
  known_names:
    - Persephone
    - Persephone
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for duplicate known names, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplicate, got: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: loud
matching:
  strategy: backwards
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected errors, got nil")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "log_level") || !strings.Contains(errStr, "strategy") {
		t.Errorf("error should list both failures, got: %v", err)
	}
}
