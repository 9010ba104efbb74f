package constants

import "time"

const (
	HeroCacheTTL    = 1 * time.Hour
	TeamRefreshTTL  = 5 * time.Minute
	MatchRefreshTTL = 10 * time.Minute
)

const (
	// FetchAttemptTimeout bounds a single provider request; an expired
	// attempt is aborted and counted against the retry budget.
	FetchAttemptTimeout = 30 * time.Second

	// FetchMaxAttempts is the total attempt count per match ID, first
	// attempt included.
	FetchMaxAttempts = 4

	RetryBaseDelay = 250 * time.Millisecond
	RetryMaxDelay  = 5 * time.Second

	FetchConcurrency = 8
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	OverviewTimeout    = 90 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// Trend compares the most recent TrendWindow matches against the next
	// TrendWindow; fewer than 2*TrendWindow matches reads as stable.
	TrendWindow    = 5
	TrendThreshold = 0.05
)

const (
	TierSCutoff = 70.0
	TierACutoff = 60.0
	TierBCutoff = 50.0
	TierCCutoff = 40.0
)

const (
	// Both must hold for a hero to count as high performing.
	HighPerformMinGames = 5
	HighPerformWinRate  = 60.0 // percent

	DraftMinGames            = 3
	DraftMinWinRate          = 50.0 // percent
	DraftRecommendationLimit = 5
)
