package server

import (
	"time"

	"dota-tracker/internal/domain"
	"dota-tracker/internal/service"
	"dota-tracker/internal/stats"
)

type heroResponse struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	PrimaryAttr string   `json:"primary_attr"`
	AttackType  string   `json:"attack_type"`
	Roles       []string `json:"roles"`
	Complexity  int      `json:"complexity"`
	Image       string   `json:"image"`
}

func toHeroResponse(h *domain.Hero) heroResponse {
	return heroResponse{
		ID:          h.ID,
		Name:        h.Name,
		PrimaryAttr: h.PrimaryAttr,
		AttackType:  h.AttackType,
		Roles:       h.Roles,
		Complexity:  h.Complexity,
		Image:       h.Image,
	}
}

type matchResponse struct {
	ID        int64  `json:"id"`
	StartedAt string `json:"started_at,omitempty"`
	Duration  int    `json:"duration"`
	Side      string `json:"side"`
	Result    string `json:"result"`
	Opponent  string `json:"opponent"`
	PickOrder string `json:"pick_order"`
}

type heroStatResponse struct {
	HeroID  int     `json:"hero_id"`
	Role    string  `json:"role,omitempty"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

type overviewResponse struct {
	Team           teamResponse       `json:"team"`
	Record         recordResponse     `json:"record"`
	Matches        []matchResponse    `json:"matches"`
	HeroStats      []heroStatResponse `json:"hero_stats"`
	HighPerforming []heroStatResponse `json:"high_performing"`
	FailedMatchIDs []int64            `json:"failed_match_ids,omitempty"`
}

type teamResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Tag     string  `json:"tag,omitempty"`
	Logo    string  `json:"logo,omitempty"`
	Rating  float64 `json:"rating"`
	WinRate float64 `json:"win_rate"`
	Trend   string  `json:"trend"`
}

type recordResponse struct {
	Games        int     `json:"games"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"win_rate"`
	AvgDuration  int     `json:"avg_duration"`
	RadiantGames int     `json:"radiant_games"`
	RadiantWins  int     `json:"radiant_wins"`
	DireGames    int     `json:"dire_games"`
	DireWins     int     `json:"dire_wins"`
	LongestWin   int     `json:"longest_win_streak"`
	LongestLoss  int     `json:"longest_loss_streak"`
	Current      int     `json:"current_streak"`
	Trend        string  `json:"trend"`
}

func toOverviewResponse(r *service.TeamOverviewResult) overviewResponse {
	matches := make([]matchResponse, 0, len(r.VisibleMatches))
	for _, m := range r.VisibleMatches {
		mr := matchResponse{ID: m.ID, Duration: m.Duration}
		if !m.StartTime.IsZero() {
			mr.StartedAt = m.StartTime.Format(time.RFC3339)
		}
		if p, ok := r.Participations[m.ID]; ok {
			mr.Side = string(p.Side)
			mr.Result = string(p.Result)
			mr.Opponent = p.OpponentName
			mr.PickOrder = string(p.PickOrder)
		}
		matches = append(matches, mr)
	}

	return overviewResponse{
		Team: teamResponse{
			ID:      r.Team.ID,
			Name:    r.Team.Name,
			Tag:     r.Team.Tag,
			Logo:    r.Team.Logo,
			Rating:  r.Team.Rating,
			WinRate: r.Team.WinRate,
			Trend:   string(r.Team.Trend),
		},
		Record:         toRecordResponse(r.Overview),
		Matches:        matches,
		HeroStats:      toHeroStatResponses(r.HeroStats),
		HighPerforming: toHeroStatResponses(r.HighPerforming),
		FailedMatchIDs: r.FailedMatchIDs,
	}
}

func toRecordResponse(o stats.Overview) recordResponse {
	return recordResponse{
		Games:        o.Games,
		Wins:         o.Wins,
		Losses:       o.Losses,
		WinRate:      o.WinRate,
		AvgDuration:  o.AvgDuration,
		RadiantGames: o.RadiantGames,
		RadiantWins:  o.RadiantWins,
		DireGames:    o.DireGames,
		DireWins:     o.DireWins,
		LongestWin:   o.Streaks.LongestWin,
		LongestLoss:  o.Streaks.LongestLoss,
		Current:      o.Streaks.Current,
		Trend:        string(o.Trend),
	}
}

func toHeroStatResponses(in []domain.HeroStat) []heroStatResponse {
	out := make([]heroStatResponse, 0, len(in))
	for _, s := range in {
		out = append(out, heroStatResponse{
			HeroID:  s.HeroID,
			Role:    s.Role,
			Games:   s.Games,
			Wins:    s.Wins,
			WinRate: s.WinRate,
		})
	}
	return out
}
