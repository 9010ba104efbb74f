// Package normalize converts raw provider payloads into domain values.
// Pure functions, no I/O. Required fields fail with a ValidationError
// naming the field; optional fields get explicit defaults, applied only
// when the source field is absent, never when it is present-but-zero.
package normalize

import (
	"fmt"
	"sort"
	"time"

	"dota-tracker/internal/domain"
	"dota-tracker/internal/provider"
)

// UnknownOpponent is the placeholder for an absent opponent name.
const UnknownOpponent = "Unknown Team"

// ValidationError reports a missing or malformed required field in a raw
// provider record. It is fatal to that single record only; batch callers
// catch it per record and keep going.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// Match converts one raw match payload into a domain Match.
func Match(raw *provider.MatchResponse) (*domain.Match, error) {
	if raw == nil {
		return nil, &ValidationError{Field: "match", Reason: "nil payload"}
	}
	if raw.MatchID == nil {
		return nil, &ValidationError{Field: "match_id", Reason: "missing"}
	}
	if raw.Duration == nil {
		return nil, &ValidationError{Field: "duration", Reason: "missing"}
	}
	if *raw.Duration <= 0 {
		return nil, &ValidationError{Field: "duration", Reason: "not positive"}
	}
	if raw.RadiantWin == nil {
		return nil, &ValidationError{Field: "radiant_win", Reason: "missing"}
	}

	m := &domain.Match{
		ID:         *raw.MatchID,
		Duration:   *raw.Duration,
		RadiantWin: *raw.RadiantWin,
	}
	// Absent start_time stays the zero time; consumers treat it as unknown.
	if raw.StartTime != nil {
		m.StartTime = time.Unix(*raw.StartTime, 0).UTC()
	}

	for i, p := range raw.Players {
		side, err := playerSide(p, i)
		if err != nil {
			return nil, err
		}
		data := playerData(p)
		if side == domain.SideRadiant {
			m.Radiant = append(m.Radiant, data)
		} else {
			m.Dire = append(m.Dire, data)
		}
	}

	m.Draft = draftEvents(raw.PicksBans)
	m.Advantage = advantageSeries(raw)
	m.Events = gameEvents(raw.Objectives)

	return m, nil
}

// MatchBatch normalizes a batch of raw matches, deduplicating by match ID
// and keeping the first occurrence. Fan-in from multiple players can yield
// the same match twice with player-specific payload differences; the
// first-seen version wins. Per-record failures are collected and never
// abort the rest of the batch.
func MatchBatch(raws []*provider.MatchResponse) ([]*domain.Match, []error) {
	var out []*domain.Match
	var errs []error
	seen := make(map[int64]struct{}, len(raws))

	for _, raw := range raws {
		m, err := Match(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out, errs
}

// Hero converts one raw hero entry into a domain Hero.
func Hero(raw provider.HeroResponse) (*domain.Hero, error) {
	if raw.ID == nil {
		return nil, &ValidationError{Field: "id", Reason: "missing"}
	}
	if raw.LocalizedName == nil {
		return nil, &ValidationError{Field: "localized_name", Reason: "missing"}
	}
	if *raw.LocalizedName == "" {
		return nil, &ValidationError{Field: "localized_name", Reason: "empty"}
	}

	roles := make([]string, len(raw.Roles))
	copy(roles, raw.Roles)

	return &domain.Hero{
		ID:          *raw.ID,
		Name:        *raw.LocalizedName,
		PrimaryAttr: raw.PrimaryAttr,
		AttackType:  raw.AttackType,
		Roles:       roles,
		// OpenDota does not expose a complexity rating; every hero
		// defaults to 1.
		Complexity: 1,
		Image:      raw.Img,
	}, nil
}

// HeroBatch normalizes the full hero list, collecting per-record failures.
func HeroBatch(raws []provider.HeroResponse) ([]*domain.Hero, []error) {
	var out []*domain.Hero
	var errs []error
	for _, raw := range raws {
		h, err := Hero(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, h)
	}
	return out, errs
}

// Team converts a raw team payload. Statistics fields (wins, losses, win
// rate, trend) stay zero here; the aggregator populates them from the
// recomputable match set, not from provider lifetime totals.
func Team(raw *provider.TeamResponse) (*domain.ProcessedTeam, error) {
	if raw == nil {
		return nil, &ValidationError{Field: "team", Reason: "nil payload"}
	}
	if raw.TeamID == nil {
		return nil, &ValidationError{Field: "team_id", Reason: "missing"}
	}

	t := &domain.ProcessedTeam{
		ID:   *raw.TeamID,
		Name: UnknownOpponent,
		Tag:  raw.Tag,
		Logo: raw.LogoURL,
	}
	if raw.Name != nil {
		t.Name = *raw.Name
	}
	if raw.Rating != nil {
		t.Rating = *raw.Rating
	}
	return t, nil
}

// Participation converts one raw team-match entry into the join record
// binding the tracked team to one side of the match. PickOrder is not part
// of this payload; the caller derives it from the full match draft with
// PickOrderFor.
func Participation(raw provider.TeamMatchResponse, teamID int64) (*domain.TeamMatchParticipation, error) {
	if raw.MatchID == nil {
		return nil, &ValidationError{Field: "match_id", Reason: "missing"}
	}
	if raw.Radiant == nil {
		return nil, &ValidationError{Field: "radiant", Reason: "missing"}
	}
	if raw.RadiantWin == nil {
		return nil, &ValidationError{Field: "radiant_win", Reason: "missing"}
	}

	side := domain.SideDire
	if *raw.Radiant {
		side = domain.SideRadiant
	}
	result := domain.ResultLost
	if *raw.Radiant == *raw.RadiantWin {
		result = domain.ResultWon
	}

	opponent := UnknownOpponent
	if raw.OpposingTeamName != nil {
		opponent = *raw.OpposingTeamName
	}

	return &domain.TeamMatchParticipation{
		MatchID:      *raw.MatchID,
		TeamID:       teamID,
		Side:         side,
		Result:       result,
		OpponentName: opponent,
		PickOrder:    domain.PickOrderFirst,
	}, nil
}

// PickOrderFor derives the tracked side's pick order from the match draft:
// whichever side owns the earliest pick event picked first. A match with no
// recorded draft defaults to first.
func PickOrderFor(m *domain.Match, side domain.Side) domain.PickOrder {
	first := domain.Side("")
	order := -1
	for _, ev := range m.Draft {
		if ev.Phase != domain.DraftPick {
			continue
		}
		if order == -1 || ev.Order < order {
			order = ev.Order
			first = ev.Side
		}
	}
	if first == "" || first == side {
		return domain.PickOrderFirst
	}
	return domain.PickOrderSecond
}

func playerSide(p provider.MatchPlayer, index int) (domain.Side, error) {
	switch {
	case p.IsRadiant != nil:
		if *p.IsRadiant {
			return domain.SideRadiant, nil
		}
		return domain.SideDire, nil
	case p.PlayerSlot != nil:
		// Slots 0-127 are radiant, 128-255 dire.
		if *p.PlayerSlot < 128 {
			return domain.SideRadiant, nil
		}
		return domain.SideDire, nil
	}
	// Side decides roster ownership; guessing would corrupt every
	// downstream side-sensitive computation.
	field := fmt.Sprintf("players[%d].player_slot", index)
	return "", &ValidationError{Field: field, Reason: "missing"}
}

func playerData(p provider.MatchPlayer) domain.PlayerMatchData {
	return domain.PlayerMatchData{
		HeroID:   intOrZero(p.HeroID),
		Kills:    intOrZero(p.Kills),
		Deaths:   intOrZero(p.Deaths),
		Assists:  intOrZero(p.Assists),
		GPM:      intOrZero(p.GoldPerMin),
		XPM:      intOrZero(p.XPPerMin),
		NetWorth: intOrZero(p.NetWorth),
		LastHits: intOrZero(p.LastHits),
		Denies:   intOrZero(p.Denies),
		Items:    items(p),
	}
}

// items keeps all six slots; zero means an empty slot. Absent slot fields
// default to 0 as well.
func items(p provider.MatchPlayer) []int {
	return []int{
		intOrZero(p.Item0),
		intOrZero(p.Item1),
		intOrZero(p.Item2),
		intOrZero(p.Item3),
		intOrZero(p.Item4),
		intOrZero(p.Item5),
	}
}

func draftEvents(picksBans []provider.PickBan) []domain.DraftEvent {
	if len(picksBans) == 0 {
		return nil
	}
	events := make([]domain.DraftEvent, 0, len(picksBans))
	for _, pb := range picksBans {
		phase := domain.DraftBan
		if pb.IsPick {
			phase = domain.DraftPick
		}
		side := domain.SideRadiant
		if pb.Team == 1 {
			side = domain.SideDire
		}
		events = append(events, domain.DraftEvent{
			Phase:  phase,
			Side:   side,
			HeroID: pb.HeroID,
			Order:  pb.Order,
		})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Order < events[j].Order })
	return events
}

func advantageSeries(raw *provider.MatchResponse) *domain.AdvantageSeries {
	if len(raw.RadiantGoldAdv) == 0 && len(raw.RadiantXPAdv) == 0 {
		return nil
	}
	adv := &domain.AdvantageSeries{
		Gold: make([]int, len(raw.RadiantGoldAdv)),
		XP:   make([]int, len(raw.RadiantXPAdv)),
	}
	copy(adv.Gold, raw.RadiantGoldAdv)
	copy(adv.XP, raw.RadiantXPAdv)
	return adv
}

func gameEvents(objectives []provider.MatchObjective) []domain.GameEvent {
	if len(objectives) == 0 {
		return nil
	}
	events := make([]domain.GameEvent, 0, len(objectives))
	for _, o := range objectives {
		ev := domain.GameEvent{Type: o.Type, Time: o.Time}
		switch {
		case o.Team != nil && *o.Team == 2:
			ev.Side = domain.SideRadiant
		case o.Team != nil && *o.Team == 3:
			ev.Side = domain.SideDire
		case o.PlayerSlot != nil && *o.PlayerSlot < 128:
			ev.Side = domain.SideRadiant
		case o.PlayerSlot != nil:
			ev.Side = domain.SideDire
		}
		events = append(events, ev)
	}
	return events
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
