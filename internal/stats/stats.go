// Package stats holds the pure reducers over a filtered match set. Nothing
// in here keeps state between calls; re-running any function with the same
// inputs yields identical output.
package stats

import (
	"sort"

	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"
)

// WinRate returns wins/games as a fraction, and 0 when games is zero.
// Never NaN, never Inf.
func WinRate(wins, games int) float64 {
	if games <= 0 {
		return 0
	}
	return float64(wins) / float64(games)
}

// KDA returns (kills+assists)/deaths, or kills+assists for a deathless
// line.
func KDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return float64(kills + assists)
	}
	return float64(kills+assists) / float64(deaths)
}

// StreakSummary reports streaks over a result sequence. Current is signed:
// positive for an active win run, negative for an active loss run.
type StreakSummary struct {
	LongestWin  int
	LongestLoss int
	Current     int
}

// Streaks walks results ordered most-recent-first, accumulating runs of
// equal results. The first run is the current streak.
func Streaks(results []domain.Result) StreakSummary {
	var s StreakSummary
	if len(results) == 0 {
		return s
	}

	run := 1
	runResult := results[0]
	for i := 1; i <= len(results); i++ {
		if i < len(results) && results[i] == runResult {
			run++
			continue
		}
		if runResult == domain.ResultWon {
			if run > s.LongestWin {
				s.LongestWin = run
			}
		} else if run > s.LongestLoss {
			s.LongestLoss = run
		}
		if s.Current == 0 {
			if runResult == domain.ResultWon {
				s.Current = run
			} else {
				s.Current = -run
			}
		}
		if i < len(results) {
			runResult = results[i]
			run = 1
		}
	}
	return s
}

// Trend compares the mean of the most recent window values against the
// mean of the next window. Values are ordered most-recent-first. Fewer
// than 2*window values is not enough signal and reads as stable.
func Trend(values []float64, window int, threshold float64) domain.TrendDirection {
	if window <= 0 || len(values) < 2*window {
		return domain.TrendStable
	}
	recent := mean(values[:window])
	older := mean(values[window : 2*window])
	diff := recent - older
	switch {
	case diff > threshold:
		return domain.TrendImproving
	case diff < -threshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// ResultValues maps a result sequence to 1/0 samples for windowed
// comparisons.
func ResultValues(results []domain.Result) []float64 {
	values := make([]float64, len(results))
	for i, r := range results {
		if r == domain.ResultWon {
			values[i] = 1
		}
	}
	return values
}

// TierFor buckets a 0-100 score. Cutoffs are fixed and evaluated top-down.
func TierFor(score float64) domain.Tier {
	switch {
	case score > constants.TierSCutoff:
		return domain.TierS
	case score > constants.TierACutoff:
		return domain.TierA
	case score > constants.TierBCutoff:
		return domain.TierB
	case score > constants.TierCCutoff:
		return domain.TierC
	default:
		return domain.TierD
	}
}

// SortMostRecent returns a copy of matches ordered newest first. Ties on
// start time fall back to the higher match ID.
func SortMostRecent(matches []*domain.Match) []*domain.Match {
	out := make([]*domain.Match, len(matches))
	copy(out, matches)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.After(out[j].StartTime)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Results maps matches (in the given order) to the tracked team's results.
// Matches without a participation are skipped.
func Results(matches []*domain.Match, parts map[int64]domain.TeamMatchParticipation) []domain.Result {
	results := make([]domain.Result, 0, len(matches))
	for _, m := range matches {
		p, ok := parts[m.ID]
		if !ok {
			continue
		}
		results = append(results, p.Result)
	}
	return results
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
