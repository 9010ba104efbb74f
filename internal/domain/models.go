package domain

import (
	"time"
)

type Side string

const (
	SideRadiant Side = "radiant"
	SideDire    Side = "dire"
)

type Result string

const (
	ResultWon  Result = "won"
	ResultLost Result = "lost"
)

type PickOrder string

const (
	PickOrderFirst  PickOrder = "first"
	PickOrderSecond PickOrder = "second"
)

type DraftPhase string

const (
	DraftPick DraftPhase = "pick"
	DraftBan  DraftPhase = "ban"
)

// Match is the unified shape of one game, immutable once normalized.
// Identified by the provider-assigned numeric ID, unique within a roster's
// match set.
type Match struct {
	ID         int64
	StartTime  time.Time
	Duration   int // seconds
	RadiantWin bool
	Radiant    []PlayerMatchData
	Dire       []PlayerMatchData
	Draft      []DraftEvent
	Advantage  *AdvantageSeries
	Events     []GameEvent
}

// PlayerMatchData is one player's line in one match, owned by exactly one
// match side.
type PlayerMatchData struct {
	HeroID   int
	Kills    int
	Deaths   int
	Assists  int
	GPM      int
	XPM      int
	NetWorth int
	LastHits int
	Denies   int
	Items    []int
}

// DraftEvent is one pick or ban in draft order.
type DraftEvent struct {
	Phase  DraftPhase
	Side   Side
	HeroID int
	Order  int
}

// AdvantageSeries holds per-minute gold/experience advantage samples from
// the radiant point of view.
type AdvantageSeries struct {
	Gold []int
	XP   []int
}

// GameEvent is a processed objective event (tower, roshan, ...).
type GameEvent struct {
	Type string
	Time int // seconds into the match
	Side Side
}

// TeamMatchParticipation binds a tracked team to one side of one match.
// Exactly one participation exists per (team, match) pair; Side decides
// which half of the match roster belongs to the tracked team, and every
// downstream computation relies on that.
type TeamMatchParticipation struct {
	MatchID      int64
	TeamID       int64
	Side         Side
	Result       Result
	OpponentName string
	PickOrder    PickOrder
}

// RosterFor returns the tracked team's half of the match roster according
// to its participation side. All side-sensitive computations go through
// here instead of indexing the match directly.
func RosterFor(m *Match, p TeamMatchParticipation) []PlayerMatchData {
	if p.Side == SideDire {
		return m.Dire
	}
	return m.Radiant
}

// Hero is the static hero sheet.
type Hero struct {
	ID          int
	Name        string
	PrimaryAttr string
	AttackType  string
	Roles       []string
	Complexity  int
	Image       string
}

type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// Matchup is a head-to-head record against one opposing hero.
type Matchup struct {
	HeroID int
	Games  int
	Wins   int
}

// ProcessedHero is a hero plus statistics derived from one aggregation run.
// It is rebuilt from scratch on every run, never mutated in place.
type ProcessedHero struct {
	Hero
	Picks    int
	Bans     int
	Wins     int
	WinRate  float64 // percent
	Tier     Tier
	Trend    TrendDirection
	Matchups []Matchup
}

// HeroStat is the per-hero accumulator used during aggregation.
// WinRate is a percentage (0-100).
type HeroStat struct {
	HeroID  int
	Role    string
	Games   int
	Wins    int
	WinRate float64
}

// ProcessedTeam is a tracked team with its derived record. The statistics
// fields are populated by the aggregator, not the normalizer.
type ProcessedTeam struct {
	ID      int64
	Name    string
	Tag     string
	Logo    string
	Rating  float64
	Wins    int
	Losses  int
	WinRate float64
	Trend   TrendDirection
}
