// Package config provides the configuration schema and loader for the
// linecoach rehearsal server.
package config

// LogLevel controls log verbosity for the linecoach server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Strategy selects how growing transcripts are matched against the active line.
type Strategy string

const (
	// StrategyLocked walks the line left to right and never un-matches a word.
	StrategyLocked Strategy = "locked"

	// StrategySubsequence finds the line's words anywhere in the transcript,
	// in order but with gaps.
	StrategySubsequence Strategy = "subsequence"
)

// IsValid reports whether s is a recognised matching strategy.
func (s Strategy) IsValid() bool {
	return s == StrategyLocked || s == StrategySubsequence
}

// Config is the root configuration structure for linecoach.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Matching MatchingConfig `yaml:"matching"`
	Practice PracticeConfig `yaml:"practice"`
}

// ServerConfig holds network and logging settings for the linecoach server.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// ReloadIntervalSeconds is how often the config file is polled for
	// changes. Zero means the default (5); negative disables hot reload.
	ReloadIntervalSeconds int `yaml:"reload_interval_seconds"`

	// TLS configures TLS for the server. When nil, the server runs plain HTTP.
	TLS *TLSConfig `yaml:"tls"`
}

// TLSConfig holds TLS certificate paths for enabling HTTPS.
type TLSConfig struct {
	// CertFile is the path to the PEM-encoded TLS certificate.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM-encoded TLS private key.
	KeyFile string `yaml:"key_file"`
}

// MatchingConfig tunes the accuracy engine shared by every practice session.
type MatchingConfig struct {
	// Strict requires a word-perfect delivery: no missing words, no extra
	// words, 100% accuracy.
	Strict bool `yaml:"strict"`

	// ErrorRecovery lets the realtime matcher recover when the recognizer
	// revises an earlier mis-transcription. Off by default: once a wrong
	// word is heard the progress count freezes.
	ErrorRecovery bool `yaml:"error_recovery"`

	// NameThreshold is the Jaro-Winkler similarity required for a fuzzy
	// proper-noun match, in (0, 1]. 0 means the built-in default (0.80).
	NameThreshold float64 `yaml:"name_threshold"`

	// Strategy selects the realtime matcher: "locked" or "subsequence".
	// Empty means locked.
	Strategy Strategy `yaml:"strategy"`
}

// PracticeConfig holds script-level settings shared by every session.
type PracticeConfig struct {
	// KnownNames lists character and place names from the script. Words in
	// these names are matched phonetically even when the recognizer mangles
	// them.
	KnownNames []string `yaml:"known_names"`
}
