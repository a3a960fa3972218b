package config

import "slices"

// ConfigDiff describes what changed between two configs. Log level and known
// names can be applied without a restart; server and matching changes cannot,
// because live sessions share one engine.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	// KnownNamesChanged means the phonetic name list changed. Applies to
	// sessions opened after the reload.
	KnownNamesChanged bool
	NewKnownNames     []string

	// MatchingChanged means strict mode, error recovery, the name
	// threshold, or the strategy changed. Requires a restart.
	MatchingChanged bool

	// ServerChanged means the listen address or TLS settings changed.
	// Requires a restart.
	ServerChanged bool
}

// Empty reports whether nothing changed.
func (d ConfigDiff) Empty() bool {
	return !d.LogLevelChanged && !d.KnownNamesChanged && !d.MatchingChanged && !d.ServerChanged
}

// Diff compares old and new configs and returns what changed.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}

	if !slices.Equal(old.Practice.KnownNames, new.Practice.KnownNames) {
		d.KnownNamesChanged = true
		d.NewKnownNames = new.Practice.KnownNames
	}

	if old.Matching != new.Matching {
		d.MatchingChanged = true
	}

	if old.Server.ListenAddr != new.Server.ListenAddr || !tlsEqual(old.Server.TLS, new.Server.TLS) {
		d.ServerChanged = true
	}

	return d
}

// tlsEqual compares two optional TLS blocks.
func tlsEqual(a, b *TLSConfig) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
