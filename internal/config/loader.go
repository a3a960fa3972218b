package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Server
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.TLS != nil {
		if cfg.Server.TLS.CertFile == "" {
			errs = append(errs, errors.New("server.tls.cert_file is required when server.tls is set"))
		}
		if cfg.Server.TLS.KeyFile == "" {
			errs = append(errs, errors.New("server.tls.key_file is required when server.tls is set"))
		}
	}

	// Matching
	if t := cfg.Matching.NameThreshold; t != 0 && (t <= 0 || t > 1) {
		errs = append(errs, fmt.Errorf("matching.name_threshold %.2f is out of range (0, 1]", t))
	}
	if cfg.Matching.Strategy != "" && !cfg.Matching.Strategy.IsValid() {
		errs = append(errs, fmt.Errorf("matching.strategy %q is invalid; valid values: locked, subsequence", cfg.Matching.Strategy))
	}
	if cfg.Matching.Strict && cfg.Matching.ErrorRecovery {
		slog.Warn("matching.error_recovery has no effect on the final strict verdict; only realtime progress recovers")
	}

	// Practice
	namesSeen := make(map[string]int, len(cfg.Practice.KnownNames))
	for i, name := range cfg.Practice.KnownNames {
		if name == "" {
			errs = append(errs, fmt.Errorf("practice.known_names[%d] is empty", i))
			continue
		}
		if prev, ok := namesSeen[name]; ok {
			errs = append(errs, fmt.Errorf("practice.known_names[%d] %q is a duplicate of practice.known_names[%d]", i, name, prev))
		}
		namesSeen[name] = i
	}

	return errors.Join(errs...)
}
