// Package draft ranks heroes for pick recommendations from aggregated
// team hero statistics.
package draft

import (
	"sort"

	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"
)

type Phase string

const (
	PhaseFirstPick  Phase = "first_pick"
	PhaseSecondPick Phase = "second_pick"
	PhaseThirdPick  Phase = "third_pick"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is one suggested pick with its supporting record.
type Recommendation struct {
	HeroID   int
	Role     string
	Games    int
	WinRate  float64 // percent
	Priority Priority
}

// Phase-specific win-rate cutoffs for priority. Early picks carry more
// strategic risk, so the first pick demands a more proven record.
var phaseCutoffs = map[Phase]struct{ high, medium float64 }{
	PhaseFirstPick:  {high: 60.0, medium: 55.0},
	PhaseSecondPick: {high: 57.5, medium: 52.5},
	PhaseThirdPick:  {high: 55.0, medium: 50.0},
}

// Recommend keeps heroes with at least 3 games and a 50 percent win rate,
// orders them by win rate descending (games, then hero ID break ties), and
// returns the top 5 with a phase-dependent pick priority.
func Recommend(heroStats []domain.HeroStat, phase Phase) []Recommendation {
	cutoffs, ok := phaseCutoffs[phase]
	if !ok {
		cutoffs = phaseCutoffs[PhaseThirdPick]
	}

	eligible := make([]domain.HeroStat, 0, len(heroStats))
	for _, s := range heroStats {
		if s.Games >= constants.DraftMinGames && s.WinRate >= constants.DraftMinWinRate {
			eligible = append(eligible, s)
		}
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].WinRate != eligible[j].WinRate {
			return eligible[i].WinRate > eligible[j].WinRate
		}
		if eligible[i].Games != eligible[j].Games {
			return eligible[i].Games > eligible[j].Games
		}
		return eligible[i].HeroID < eligible[j].HeroID
	})

	if len(eligible) > constants.DraftRecommendationLimit {
		eligible = eligible[:constants.DraftRecommendationLimit]
	}

	out := make([]Recommendation, 0, len(eligible))
	for _, s := range eligible {
		out = append(out, Recommendation{
			HeroID:   s.HeroID,
			Role:     s.Role,
			Games:    s.Games,
			WinRate:  s.WinRate,
			Priority: priorityFor(s.WinRate, cutoffs.high, cutoffs.medium),
		})
	}
	return out
}

func priorityFor(winRate, high, medium float64) Priority {
	switch {
	case winRate >= high:
		return PriorityHigh
	case winRate >= medium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
