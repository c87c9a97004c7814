package config

import "github.com/spf13/viper"

// Version is set at build time via -ldflags "-X .../internal/config.Version=...".
var Version = "dev"

// Config holds all runtime configuration for riftwatch.
type Config struct {
	// CredentialTTL is how long a discovered credential is trusted before
	// Credential Discovery rescans, in seconds.
	CredentialTTL int
	// ProbeTimeout bounds a single connection probe, in seconds.
	ProbeTimeout int
	// MatchHistoryCount is the default sample size for a match-history run
	// when the caller does not specify one.
	MatchHistoryCount int
	// ChampSelectThrottleMS is the minimum interval between consecutive
	// champ-select-session-changed events, in milliseconds.
	ChampSelectThrottleMS int
	// MaxConcurrentFetches bounds the Session Model Builder's per-player
	// match-history fan-out.
	MaxConcurrentFetches int
	// Verbose enables source-file/line annotated logging for the engine.
	Verbose bool
	// ProbeOnly runs Credential Discovery plus one probe and exits,
	// without starting the WebSocket session or blocking.
	ProbeOnly bool
}

// Load reads configuration from viper, which merges flag values, env vars,
// and defaults (set up by the cobra command in cmd/riftwatch).
func Load() Config {
	return Config{
		CredentialTTL:         viper.GetInt("credential_ttl"),
		ProbeTimeout:          viper.GetInt("probe_timeout"),
		MatchHistoryCount:     viper.GetInt("match_history_count"),
		ChampSelectThrottleMS: viper.GetInt("champ_select_throttle_ms"),
		MaxConcurrentFetches:  viper.GetInt("max_concurrent_fetches"),
		Verbose:               viper.GetBool("verbose"),
		ProbeOnly:             viper.GetBool("probe_only"),
	}
}
