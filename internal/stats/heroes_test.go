package stats

import (
	"reflect"
	"testing"
	"time"

	"dota-tracker/internal/domain"
)

// fixtureMatch builds a match where the tracked team plays radiant with
// the given heroes.
func fixtureMatch(id int64, heroes ...int) *domain.Match {
	m := &domain.Match{
		ID:        id,
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour),
		Duration:  2100,
	}
	for _, h := range heroes {
		m.Radiant = append(m.Radiant, domain.PlayerMatchData{HeroID: h})
	}
	m.Dire = append(m.Dire, domain.PlayerMatchData{HeroID: 999})
	return m
}

func radiantPart(id int64, result domain.Result) domain.TeamMatchParticipation {
	return domain.TeamMatchParticipation{
		MatchID: id,
		TeamID:  1,
		Side:    domain.SideRadiant,
		Result:  result,
	}
}

func TestHeroStats_Accumulation(t *testing.T) {
	matches := []*domain.Match{
		fixtureMatch(1, 10), fixtureMatch(2, 10), fixtureMatch(3, 10),
		fixtureMatch(4, 10), fixtureMatch(5, 10),
	}
	parts := map[int64]domain.TeamMatchParticipation{
		1: radiantPart(1, domain.ResultWon),
		2: radiantPart(2, domain.ResultWon),
		3: radiantPart(3, domain.ResultWon),
		4: radiantPart(4, domain.ResultLost),
		5: radiantPart(5, domain.ResultLost),
	}

	out := HeroStats(matches, parts, nil)
	if len(out) != 1 {
		t.Fatalf("expected 1 hero stat, got %d", len(out))
	}
	s := out[0]
	if s.HeroID != 10 || s.Games != 5 || s.Wins != 3 {
		t.Errorf("stat = %+v, want hero 10 with 5 games / 3 wins", s)
	}
	if s.WinRate != 60 {
		t.Errorf("WinRate = %v, want 60", s.WinRate)
	}
}

func TestHeroStats_Idempotent(t *testing.T) {
	matches := []*domain.Match{fixtureMatch(1, 10, 20), fixtureMatch(2, 10)}
	parts := map[int64]domain.TeamMatchParticipation{
		1: radiantPart(1, domain.ResultWon),
		2: radiantPart(2, domain.ResultLost),
	}

	first := HeroStats(matches, parts, nil)
	second := HeroStats(matches, parts, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("HeroStats not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

// 5 games at 60 percent qualifies; a perfect record over 4 games does not.
// The two thresholds are independent necessary conditions.
func TestIsHighPerforming_Thresholds(t *testing.T) {
	qualifying := domain.HeroStat{HeroID: 10, Games: 5, Wins: 3, WinRate: 60}
	if !IsHighPerforming(qualifying) {
		t.Errorf("5 games at 60%% should qualify")
	}

	undersampled := domain.HeroStat{HeroID: 11, Games: 4, Wins: 4, WinRate: 100}
	if IsHighPerforming(undersampled) {
		t.Errorf("4 games should not qualify regardless of win rate")
	}

	lowRate := domain.HeroStat{HeroID: 12, Games: 10, Wins: 5, WinRate: 50}
	if IsHighPerforming(lowRate) {
		t.Errorf("50%% win rate should not qualify regardless of games")
	}
}

func TestHighPerformingHeroes_Filters(t *testing.T) {
	stats := []domain.HeroStat{
		{HeroID: 1, Games: 6, Wins: 4, WinRate: 66.7},
		{HeroID: 2, Games: 3, Wins: 3, WinRate: 100},
		{HeroID: 3, Games: 8, Wins: 3, WinRate: 37.5},
	}
	out := HighPerformingHeroes(stats)
	if len(out) != 1 || out[0].HeroID != 1 {
		t.Errorf("HighPerformingHeroes = %+v, want only hero 1", out)
	}
}

func TestProcessHeroes_RebuildsFreshValues(t *testing.T) {
	heroes := []*domain.Hero{{ID: 10, Name: "Anti-Mage"}, {ID: 20, Name: "Axe"}}
	matches := []*domain.Match{fixtureMatch(1, 10), fixtureMatch(2, 10)}
	parts := map[int64]domain.TeamMatchParticipation{
		1: radiantPart(1, domain.ResultWon),
		2: radiantPart(2, domain.ResultWon),
	}

	out := ProcessHeroes(heroes, matches, parts)
	if len(out) != 2 {
		t.Fatalf("expected 2 processed heroes, got %d", len(out))
	}

	am := out[0]
	if am.ID != 10 {
		t.Fatalf("expected hero 10 first, got %d", am.ID)
	}
	if am.Picks != 2 || am.Wins != 2 {
		t.Errorf("hero 10 = %d picks / %d wins, want 2/2", am.Picks, am.Wins)
	}
	if am.WinRate != 100 || am.Tier != domain.TierS {
		t.Errorf("hero 10 win rate %v tier %v, want 100 / S", am.WinRate, am.Tier)
	}
	if len(am.Matchups) != 1 || am.Matchups[0].HeroID != 999 || am.Matchups[0].Games != 2 {
		t.Errorf("hero 10 matchups = %+v, want hero 999 with 2 games", am.Matchups)
	}

	axe := out[1]
	if axe.Picks != 0 || axe.Tier != domain.TierD {
		t.Errorf("unpicked hero = %d picks tier %v, want 0 picks tier D", axe.Picks, axe.Tier)
	}

	second := ProcessHeroes(heroes, matches, parts)
	if !reflect.DeepEqual(out, second) {
		t.Errorf("ProcessHeroes not idempotent")
	}
}

func TestProcessHeroes_CountsBans(t *testing.T) {
	heroes := []*domain.Hero{{ID: 30, Name: "Pudge"}}
	m := fixtureMatch(1, 10)
	m.Draft = []domain.DraftEvent{
		{Phase: domain.DraftBan, Side: domain.SideRadiant, HeroID: 30, Order: 0},
		{Phase: domain.DraftBan, Side: domain.SideDire, HeroID: 30, Order: 1},
	}
	parts := map[int64]domain.TeamMatchParticipation{1: radiantPart(1, domain.ResultWon)}

	out := ProcessHeroes(heroes, []*domain.Match{m}, parts)
	// Only the tracked side's bans count.
	if out[0].Bans != 1 {
		t.Errorf("Bans = %d, want 1", out[0].Bans)
	}
}

func TestTeamOverview_Basics(t *testing.T) {
	matches := []*domain.Match{fixtureMatch(1, 10), fixtureMatch(2, 10), fixtureMatch(3, 10)}
	parts := map[int64]domain.TeamMatchParticipation{
		1: radiantPart(1, domain.ResultWon),
		2: radiantPart(2, domain.ResultLost),
		3: {MatchID: 3, TeamID: 1, Side: domain.SideDire, Result: domain.ResultWon},
	}

	o := TeamOverview(matches, parts)
	if o.Games != 3 || o.Wins != 2 || o.Losses != 1 {
		t.Errorf("record = %d/%d/%d, want 3/2/1", o.Games, o.Wins, o.Losses)
	}
	if o.RadiantGames != 2 || o.RadiantWins != 1 || o.DireGames != 1 || o.DireWins != 1 {
		t.Errorf("per-side = %+v", o)
	}
	if o.AvgDuration != 2100 {
		t.Errorf("AvgDuration = %d, want 2100", o.AvgDuration)
	}
}

func TestTeamOverview_EmptySet(t *testing.T) {
	o := TeamOverview(nil, nil)
	if o.WinRate != 0 || o.Games != 0 || o.AvgDuration != 0 {
		t.Errorf("empty overview = %+v, want zeros", o)
	}
}
