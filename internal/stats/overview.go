package stats

import (
	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"
)

// Overview is the tracked team's aggregate record over a filtered match
// set: the numbers behind the dashboard's summary panel.
type Overview struct {
	Games        int
	Wins         int
	Losses       int
	WinRate      float64 // fraction
	AvgDuration  int     // seconds
	RadiantGames int
	RadiantWins  int
	DireGames    int
	DireWins     int
	Streaks      StreakSummary
	Trend        domain.TrendDirection
}

// TeamOverview reduces the match set to a single Overview. Streaks and
// trend read the matches newest first.
func TeamOverview(matches []*domain.Match, parts map[int64]domain.TeamMatchParticipation) Overview {
	var o Overview
	var totalDuration int

	ordered := SortMostRecent(matches)
	for _, m := range ordered {
		p, ok := parts[m.ID]
		if !ok {
			continue
		}
		o.Games++
		totalDuration += m.Duration
		won := p.Result == domain.ResultWon
		if won {
			o.Wins++
		} else {
			o.Losses++
		}
		if p.Side == domain.SideRadiant {
			o.RadiantGames++
			if won {
				o.RadiantWins++
			}
		} else {
			o.DireGames++
			if won {
				o.DireWins++
			}
		}
	}

	o.WinRate = WinRate(o.Wins, o.Games)
	if o.Games > 0 {
		o.AvgDuration = totalDuration / o.Games
	}

	results := Results(ordered, parts)
	o.Streaks = Streaks(results)
	o.Trend = Trend(ResultValues(results), constants.TrendWindow, constants.TrendThreshold)
	return o
}
