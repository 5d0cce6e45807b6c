// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

// Default pool membership and season. Both can be replaced wholesale through
// the config file; they are ordinary config values, not code-level constants.
var (
	defaultRoster = []string{
		"Hiatt", "Caden", "Bennett", "Ryan", "William",
		"Ian", "Mason", "Tim", "Drew", "Ben",
	}

	defaultSeason = []string{
		"Genesis", "Genesis", "Cognizant", "API", "Players", "Valspar",
		"Houston", "Valero", "Masters", "Heritage", "Cadillac", "Truist",
		"PGA", "Byron Nelson", "Schwab", "Memorial", "Canadian", "US Open",
		"Travelers", "John Deere", "Scottish", "The Open", "3M", "Rocket",
		"Wyndham",
	}
)

// Store backend identifiers.
const (
	StoreMemory = "memory"
	StoreNATS   = "nats"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// AdminKey is the shared secret expected in the X-Admin-Key header.
	AdminKey string `koanf:"admin_key"`

	// Timezone is the IANA zone name reveal times are interpreted in.
	Timezone string `koanf:"timezone"`

	// RevealDow is the reveal weekday, 0=Sunday .. 6=Saturday.
	RevealDow int `koanf:"reveal_dow"`

	// RevealHour and RevealMinute give the reveal wall-clock time.
	RevealHour   int `koanf:"reveal_hour"`
	RevealMinute int `koanf:"reveal_minute"`

	// AutoReveal enables the scheduled reveal check.
	AutoReveal bool `koanf:"auto_reveal"`

	// Roster is the closed set of valid participant names.
	Roster []string `koanf:"roster"`

	// Season is the ordered tournament list, one entry per week.
	Season []string `koanf:"season"`

	// StoreBackend selects the key-value store: memory or nats.
	StoreBackend string `koanf:"store_backend"`

	// NATSURL and NATSBucket configure the JetStream key-value backend.
	NATSURL    string `koanf:"nats_url"`
	NATSBucket string `koanf:"nats_bucket"`
}

// New creates a Config with defaults. Wednesday 21:00 in US Eastern is the
// historical reveal slot for this pool.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":8080",
		Timezone:     "America/New_York",
		RevealDow:    3,
		RevealHour:   21,
		RevealMinute: 0,
		AutoReveal:   true,
		Roster:       defaultRoster,
		Season:       defaultSeason,
		StoreBackend: StoreMemory,
		NATSURL:      "nats://127.0.0.1:4222",
		NATSBucket:   "pickem",
	}
}
