package normalize

import (
	"errors"
	"testing"
	"time"

	"dota-tracker/internal/domain"
	"dota-tracker/internal/provider"
)

func i64ptr(v int64) *int64    { return &v }
func intptr(v int) *int        { return &v }
func boolptr(v bool) *bool     { return &v }
func strptr(v string) *string  { return &v }
func f64ptr(v float64) *float64 { return &v }

func validMatch() *provider.MatchResponse {
	return &provider.MatchResponse{
		MatchID:    i64ptr(7000000001),
		Duration:   intptr(2400),
		StartTime:  i64ptr(1750000000),
		RadiantWin: boolptr(true),
		Players: []provider.MatchPlayer{
			{PlayerSlot: intptr(0), HeroID: intptr(14), Kills: intptr(8), Deaths: intptr(2), Assists: intptr(10)},
			{PlayerSlot: intptr(130), HeroID: intptr(26), Kills: intptr(3), Deaths: intptr(9), Assists: intptr(4)},
		},
	}
}

func TestMatch_Valid(t *testing.T) {
	m, err := Match(validMatch())
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if m.ID != 7000000001 || m.Duration != 2400 || !m.RadiantWin {
		t.Errorf("match = %+v", m)
	}
	if len(m.Radiant) != 1 || len(m.Dire) != 1 {
		t.Fatalf("rosters = %d/%d, want 1/1", len(m.Radiant), len(m.Dire))
	}
	if m.Radiant[0].HeroID != 14 || m.Dire[0].HeroID != 26 {
		t.Errorf("roster heroes = %d/%d", m.Radiant[0].HeroID, m.Dire[0].HeroID)
	}
	want := time.Unix(1750000000, 0).UTC()
	if !m.StartTime.Equal(want) {
		t.Errorf("StartTime = %v, want %v", m.StartTime, want)
	}
}

func TestMatch_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*provider.MatchResponse)
		field  string
	}{
		{"match_id", func(r *provider.MatchResponse) { r.MatchID = nil }, "match_id"},
		{"duration", func(r *provider.MatchResponse) { r.Duration = nil }, "duration"},
		{"duration_zero", func(r *provider.MatchResponse) { r.Duration = intptr(0) }, "duration"},
		{"radiant_win", func(r *provider.MatchResponse) { r.RadiantWin = nil }, "radiant_win"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			raw := validMatch()
			c.mutate(raw)
			_, err := Match(raw)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if verr.Field != c.field {
				t.Errorf("Field = %q, want %q", verr.Field, c.field)
			}
		})
	}
}

// Absent stat fields default to zero; an absent start time stays the zero
// time rather than inventing one.
func TestMatch_OptionalDefaults(t *testing.T) {
	raw := validMatch()
	raw.StartTime = nil
	raw.Players = []provider.MatchPlayer{{PlayerSlot: intptr(0), HeroID: intptr(14)}}

	m, err := Match(raw)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if !m.StartTime.IsZero() {
		t.Errorf("absent start_time produced %v, want zero time", m.StartTime)
	}
	p := m.Radiant[0]
	if p.Kills != 0 || p.Deaths != 0 || p.GPM != 0 {
		t.Errorf("absent stats defaulted to %+v, want zeros", p)
	}
	if len(p.Items) != 6 {
		t.Errorf("items = %v, want 6 slots", p.Items)
	}
}

// A present-but-zero value must survive as zero, identical to absent for
// counters but asserted explicitly so a truthiness check can't sneak in.
func TestMatch_PresentZeroKept(t *testing.T) {
	raw := validMatch()
	raw.Players[0].Kills = intptr(0)

	m, err := Match(raw)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if m.Radiant[0].Kills != 0 {
		t.Errorf("Kills = %d, want 0", m.Radiant[0].Kills)
	}
}

func TestMatch_SideFromIsRadiantBeforeSlot(t *testing.T) {
	raw := validMatch()
	// Contradictory slot; isRadiant wins.
	raw.Players = []provider.MatchPlayer{
		{IsRadiant: boolptr(false), PlayerSlot: intptr(0), HeroID: intptr(14)},
	}

	m, err := Match(raw)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if len(m.Dire) != 1 || len(m.Radiant) != 0 {
		t.Errorf("player placed on radiant, want dire via isRadiant")
	}
}

func TestMatch_PlayerWithoutSideFails(t *testing.T) {
	raw := validMatch()
	raw.Players = []provider.MatchPlayer{{HeroID: intptr(14)}}

	_, err := Match(raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.Field != "players[0].player_slot" {
		t.Errorf("Field = %q, want players[0].player_slot", verr.Field)
	}
}

func TestMatch_DraftSortedByOrder(t *testing.T) {
	raw := validMatch()
	raw.PicksBans = []provider.PickBan{
		{IsPick: true, HeroID: 2, Team: 1, Order: 3},
		{IsPick: false, HeroID: 1, Team: 0, Order: 0},
		{IsPick: true, HeroID: 3, Team: 0, Order: 1},
	}

	m, err := Match(raw)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if len(m.Draft) != 3 {
		t.Fatalf("draft has %d events, want 3", len(m.Draft))
	}
	if m.Draft[0].Order != 0 || m.Draft[0].Phase != domain.DraftBan || m.Draft[0].Side != domain.SideRadiant {
		t.Errorf("first event = %+v, want radiant ban at order 0", m.Draft[0])
	}
	if m.Draft[2].Side != domain.SideDire || m.Draft[2].Phase != domain.DraftPick {
		t.Errorf("last event = %+v, want dire pick", m.Draft[2])
	}
}

// The batch keeps the first occurrence of a duplicated ID and isolates
// per-record failures from the rest of the batch.
func TestMatchBatch_DedupeAndIsolation(t *testing.T) {
	first := validMatch()
	first.Duration = intptr(1800)
	dup := validMatch()
	dup.Duration = intptr(3600)
	broken := validMatch()
	broken.MatchID = nil
	other := validMatch()
	other.MatchID = i64ptr(7000000002)

	out, errs := MatchBatch([]*provider.MatchResponse{first, dup, broken, other})
	if len(out) != 2 {
		t.Fatalf("batch produced %d matches, want 2", len(out))
	}
	if out[0].Duration != 1800 {
		t.Errorf("dedupe kept duration %d, want first-seen 1800", out[0].Duration)
	}
	if out[1].ID != 7000000002 {
		t.Errorf("second match = %d, want 7000000002", out[1].ID)
	}
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly 1", errs)
	}
	var verr *ValidationError
	if !errors.As(errs[0], &verr) {
		t.Errorf("batch error = %v, want *ValidationError", errs[0])
	}
}

func TestHero_RequiredAndDefaults(t *testing.T) {
	h, err := Hero(provider.HeroResponse{
		ID:            intptr(14),
		LocalizedName: strptr("Pudge"),
		PrimaryAttr:   "str",
	})
	if err != nil {
		t.Fatalf("Hero returned error: %v", err)
	}
	if h.ID != 14 || h.Name != "Pudge" {
		t.Errorf("hero = %+v", h)
	}
	if h.Complexity != 1 {
		t.Errorf("Complexity = %d, want default 1", h.Complexity)
	}

	if _, err := Hero(provider.HeroResponse{LocalizedName: strptr("Pudge")}); err == nil {
		t.Errorf("hero without id should fail")
	}
	if _, err := Hero(provider.HeroResponse{ID: intptr(14), LocalizedName: strptr("")}); err == nil {
		t.Errorf("hero with empty name should fail")
	}
}

func TestHeroBatch_SkipsBadRecords(t *testing.T) {
	out, errs := HeroBatch([]provider.HeroResponse{
		{ID: intptr(1), LocalizedName: strptr("Anti-Mage")},
		{ID: intptr(2)},
		{ID: intptr(3), LocalizedName: strptr("Bane")},
	})
	if len(out) != 2 || len(errs) != 1 {
		t.Errorf("batch = %d heroes / %d errs, want 2/1", len(out), len(errs))
	}
}

func TestTeam_NamePlaceholderOnlyWhenAbsent(t *testing.T) {
	named, err := Team(&provider.TeamResponse{TeamID: i64ptr(36), Name: strptr("Team Liquid"), Rating: f64ptr(1450)})
	if err != nil {
		t.Fatalf("Team returned error: %v", err)
	}
	if named.Name != "Team Liquid" || named.Rating != 1450 {
		t.Errorf("team = %+v", named)
	}

	unnamed, err := Team(&provider.TeamResponse{TeamID: i64ptr(36)})
	if err != nil {
		t.Fatalf("Team returned error: %v", err)
	}
	if unnamed.Name != UnknownOpponent {
		t.Errorf("Name = %q, want placeholder %q", unnamed.Name, UnknownOpponent)
	}
}

func TestParticipation_SideAndResult(t *testing.T) {
	cases := []struct {
		radiant    bool
		radiantWin bool
		side       domain.Side
		result     domain.Result
	}{
		{true, true, domain.SideRadiant, domain.ResultWon},
		{true, false, domain.SideRadiant, domain.ResultLost},
		{false, true, domain.SideDire, domain.ResultLost},
		{false, false, domain.SideDire, domain.ResultWon},
	}
	for _, c := range cases {
		raw := provider.TeamMatchResponse{
			MatchID:    i64ptr(1),
			Radiant:    boolptr(c.radiant),
			RadiantWin: boolptr(c.radiantWin),
		}
		p, err := Participation(raw, 36)
		if err != nil {
			t.Fatalf("Participation returned error: %v", err)
		}
		if p.Side != c.side || p.Result != c.result {
			t.Errorf("radiant=%v radiantWin=%v => %s/%s, want %s/%s",
				c.radiant, c.radiantWin, p.Side, p.Result, c.side, c.result)
		}
	}
}

func TestParticipation_OpponentPlaceholder(t *testing.T) {
	raw := provider.TeamMatchResponse{
		MatchID:    i64ptr(1),
		Radiant:    boolptr(true),
		RadiantWin: boolptr(true),
	}
	p, err := Participation(raw, 36)
	if err != nil {
		t.Fatalf("Participation returned error: %v", err)
	}
	if p.OpponentName != UnknownOpponent {
		t.Errorf("OpponentName = %q, want %q", p.OpponentName, UnknownOpponent)
	}
}

func TestPickOrderFor_EarliestPickWins(t *testing.T) {
	m := &domain.Match{
		Draft: []domain.DraftEvent{
			{Phase: domain.DraftBan, Side: domain.SideRadiant, Order: 0},
			{Phase: domain.DraftPick, Side: domain.SideDire, Order: 1},
			{Phase: domain.DraftPick, Side: domain.SideRadiant, Order: 2},
		},
	}
	if got := PickOrderFor(m, domain.SideDire); got != domain.PickOrderFirst {
		t.Errorf("dire = %s, want first", got)
	}
	if got := PickOrderFor(m, domain.SideRadiant); got != domain.PickOrderSecond {
		t.Errorf("radiant = %s, want second", got)
	}
	// No draft recorded: default first.
	if got := PickOrderFor(&domain.Match{}, domain.SideRadiant); got != domain.PickOrderFirst {
		t.Errorf("empty draft = %s, want first", got)
	}
}
