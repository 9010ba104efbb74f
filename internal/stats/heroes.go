package stats

import (
	"sort"

	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"
)

// HeroStats accumulates per-hero records for the tracked team over the
// given match set. A hero counts one game per match it appears on the
// tracked roster; the win is the team's result. The heroes map supplies
// role labels and may be nil. Output order is games descending, hero ID
// ascending, so repeated runs over the same input are byte-identical.
func HeroStats(matches []*domain.Match, parts map[int64]domain.TeamMatchParticipation, heroes map[int]*domain.Hero) []domain.HeroStat {
	acc := make(map[int]*domain.HeroStat)

	for _, m := range matches {
		p, ok := parts[m.ID]
		if !ok {
			continue
		}
		for _, pd := range domain.RosterFor(m, p) {
			st, ok := acc[pd.HeroID]
			if !ok {
				st = &domain.HeroStat{HeroID: pd.HeroID}
				if h, ok := heroes[pd.HeroID]; ok && len(h.Roles) > 0 {
					st.Role = h.Roles[0]
				}
				acc[pd.HeroID] = st
			}
			st.Games++
			if p.Result == domain.ResultWon {
				st.Wins++
			}
		}
	}

	out := make([]domain.HeroStat, 0, len(acc))
	for _, st := range acc {
		st.WinRate = WinRate(st.Wins, st.Games) * 100
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		return out[i].HeroID < out[j].HeroID
	})
	return out
}

// IsHighPerforming reports whether a hero clears both bars for the tracked
// team: at least 5 games and a 60 percent win rate. The thresholds are
// independent; a perfect record over 4 games does not qualify.
func IsHighPerforming(s domain.HeroStat) bool {
	return s.Games >= constants.HighPerformMinGames && s.WinRate >= constants.HighPerformWinRate
}

// HighPerformingHeroes filters stats down to the heroes that qualify.
func HighPerformingHeroes(stats []domain.HeroStat) []domain.HeroStat {
	var out []domain.HeroStat
	for _, s := range stats {
		if IsHighPerforming(s) {
			out = append(out, s)
		}
	}
	return out
}

// ProcessHeroes derives a fresh ProcessedHero per hero from the match set.
// Existing values are never mutated; every run rebuilds from scratch.
// Picks come from the tracked roster, bans from the tracked side's draft
// events, tier from the win-rate score, trend from the hero's most recent
// pick results, matchups from the opposing roster of each picked game.
func ProcessHeroes(heroes []*domain.Hero, matches []*domain.Match, parts map[int64]domain.TeamMatchParticipation) []domain.ProcessedHero {
	type heroAcc struct {
		picks    int
		bans     int
		wins     int
		results  []domain.Result // most-recent-first
		matchups map[int]*domain.Matchup
	}
	acc := make(map[int]*heroAcc, len(heroes))
	for _, h := range heroes {
		acc[h.ID] = &heroAcc{matchups: make(map[int]*domain.Matchup)}
	}

	for _, m := range SortMostRecent(matches) {
		p, ok := parts[m.ID]
		if !ok {
			continue
		}
		won := p.Result == domain.ResultWon

		opposing := m.Dire
		if p.Side == domain.SideDire {
			opposing = m.Radiant
		}

		for _, pd := range domain.RosterFor(m, p) {
			a, ok := acc[pd.HeroID]
			if !ok {
				continue
			}
			a.picks++
			if won {
				a.wins++
				a.results = append(a.results, domain.ResultWon)
			} else {
				a.results = append(a.results, domain.ResultLost)
			}
			for _, enemy := range opposing {
				mu, ok := a.matchups[enemy.HeroID]
				if !ok {
					mu = &domain.Matchup{HeroID: enemy.HeroID}
					a.matchups[enemy.HeroID] = mu
				}
				mu.Games++
				if won {
					mu.Wins++
				}
			}
		}

		for _, ev := range m.Draft {
			if ev.Phase != domain.DraftBan || ev.Side != p.Side {
				continue
			}
			if a, ok := acc[ev.HeroID]; ok {
				a.bans++
			}
		}
	}

	out := make([]domain.ProcessedHero, 0, len(heroes))
	for _, h := range heroes {
		a := acc[h.ID]
		score := WinRate(a.wins, a.picks) * 100

		matchups := make([]domain.Matchup, 0, len(a.matchups))
		for _, mu := range a.matchups {
			matchups = append(matchups, *mu)
		}
		sort.Slice(matchups, func(i, j int) bool { return matchups[i].HeroID < matchups[j].HeroID })

		out = append(out, domain.ProcessedHero{
			Hero:     *h,
			Picks:    a.picks,
			Bans:     a.bans,
			Wins:     a.wins,
			WinRate:  score,
			Tier:     TierFor(score),
			Trend:    Trend(ResultValues(a.results), constants.TrendWindow, constants.TrendThreshold),
			Matchups: matchups,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
