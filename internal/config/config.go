// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file/env.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PostgresDSN selects the Postgres rollup store when set; the service
	// falls back to the in-memory store otherwise (dev mode).
	PostgresDSN string `koanf:"postgres_dsn"`

	// DefaultLimit is the leaderboard size when a request omits one.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps the requestable leaderboard size.
	MaxLimit int `koanf:"max_limit"`

	// RequestTimeoutMS bounds one whole ranking orchestration.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// Lookback windows for the relative periods, in days. Weekly and
	// monthly default wider than their labels; see the window package.
	WeeklyLookbackDays  int `koanf:"weekly_lookback_days"`
	MonthlyLookbackDays int `koanf:"monthly_lookback_days"`
	YearlyLookbackDays  int `koanf:"yearly_lookback_days"`

	// Composite score weights per metric dimension.
	CommitWeight  int64 `koanf:"commit_weight"`
	PRWeight      int64 `koanf:"pr_weight"`
	ReviewWeight  int64 `koanf:"review_weight"`
	CommentWeight int64 `koanf:"comment_weight"`
	IssueWeight   int64 `koanf:"issue_weight"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		DefaultLimit:        10,
		MaxLimit:            100,
		RequestTimeoutMS:    15_000,
		WeeklyLookbackDays:  90,
		MonthlyLookbackDays: 120,
		YearlyLookbackDays:  365,
		CommitWeight:        3,
		PRWeight:            5,
		ReviewWeight:        4,
		CommentWeight:       2,
		IssueWeight:         3,
	}
}
