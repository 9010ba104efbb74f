// Package filter is the pure, multi-pass visibility engine: criteria
// predicates composed conjunctively, plus the user-curated hidden-match
// exclusion. No I/O, no mutation of inputs.
package filter

import (
	"time"

	"dota-tracker/internal/domain"
)

// Outcome carries the two named match subsets downstream consumers rely
// on. Visible feeds lists, Recomputable feeds statistic recomputation.
// They are computed by the same predicate today but kept distinct so the
// two consumers never get conflated if the criteria ever diverge.
type Outcome struct {
	Visible      []*domain.Match
	Recomputable []*domain.Match
}

// Apply filters matches against the criteria and the hidden set, using the
// wall clock to resolve relative date ranges.
func Apply(matches []*domain.Match, parts map[int64]domain.TeamMatchParticipation, c domain.MatchFilterCriteria, hidden domain.HiddenMatchSet) Outcome {
	return ApplyAt(time.Now(), matches, parts, c, hidden)
}

// ApplyAt is Apply with an explicit now.
func ApplyAt(now time.Time, matches []*domain.Match, parts map[int64]domain.TeamMatchParticipation, c domain.MatchFilterCriteria, hidden domain.HiddenMatchSet) Outcome {
	var out Outcome
	for _, m := range matches {
		p, ok := parts[m.ID]
		if !ok {
			// Not a tracked-team match; nothing to evaluate side or
			// result against.
			continue
		}
		if !passes(now, m, p, c) {
			continue
		}
		if hidden.IsHidden(m.ID) {
			continue
		}
		out.Visible = append(out.Visible, m)
		out.Recomputable = append(out.Recomputable, m)
	}
	return out
}

// passes requires every active criterion to hold. Opponents, HeroesPlayed
// and PerformanceTags match any of their listed values; everything else is
// a single-value check.
func passes(now time.Time, m *domain.Match, p domain.TeamMatchParticipation, c domain.MatchFilterCriteria) bool {
	if !matchesDate(now, m, c) {
		return false
	}
	if c.Result != "" && p.Result != c.Result {
		return false
	}
	// Side and pick order are the tracked team's participation values,
	// never the raw match layout.
	if c.TeamSide != "" && p.Side != c.TeamSide {
		return false
	}
	if c.PickOrder != "" && p.PickOrder != c.PickOrder {
		return false
	}
	if len(c.Opponents) > 0 && !containsString(c.Opponents, p.OpponentName) {
		return false
	}
	if len(c.HeroesPlayed) > 0 && !rosterPlayedAny(m, p, c.HeroesPlayed) {
		return false
	}
	if !matchesDuration(m, c.Duration) {
		return false
	}
	if len(c.PerformanceTags) > 0 && !containsString(c.PerformanceTags, PerformanceTag(m, p)) {
		return false
	}
	return true
}

func matchesDate(now time.Time, m *domain.Match, c domain.MatchFilterCriteria) bool {
	from, to, hasFrom, hasTo := c.DateBounds(now)
	if !hasFrom && !hasTo {
		return true
	}
	if m.StartTime.IsZero() {
		// Unknown start time cannot satisfy an active date bound.
		return false
	}
	if hasFrom && m.StartTime.Before(from) {
		return false
	}
	if hasTo && m.StartTime.After(to) {
		return false
	}
	return true
}

func matchesDuration(m *domain.Match, bucket domain.DurationBucket) bool {
	switch bucket {
	case domain.DurationShort:
		return m.Duration < 25*60
	case domain.DurationMedium:
		return m.Duration >= 25*60 && m.Duration <= 40*60
	case domain.DurationLong:
		return m.Duration > 40*60
	}
	return true
}

func rosterPlayedAny(m *domain.Match, p domain.TeamMatchParticipation, heroes []int) bool {
	for _, pd := range domain.RosterFor(m, p) {
		for _, id := range heroes {
			if pd.HeroID == id {
				return true
			}
		}
	}
	return false
}

// Performance tags derived from the tracked roster's aggregate KDA.
const (
	TagDominant  = "dominant"
	TagEven      = "even"
	TagStruggled = "struggled"
)

// PerformanceTag classifies how one-sided the match was for the tracked
// team: dominant at aggregate KDA >= 4, struggled under 1.5, even between.
func PerformanceTag(m *domain.Match, p domain.TeamMatchParticipation) string {
	var kills, deaths, assists int
	for _, pd := range domain.RosterFor(m, p) {
		kills += pd.Kills
		deaths += pd.Deaths
		assists += pd.Assists
	}
	kda := float64(kills + assists)
	if deaths > 0 {
		kda = float64(kills+assists) / float64(deaths)
	}
	switch {
	case kda >= 4.0:
		return TagDominant
	case kda < 1.5:
		return TagStruggled
	default:
		return TagEven
	}
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
