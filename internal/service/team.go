package service

import (
	"context"
	"fmt"

	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"
	"dota-tracker/internal/draft"
	"dota-tracker/internal/fetch"
	"dota-tracker/internal/filter"
	"dota-tracker/internal/normalize"
	"dota-tracker/internal/provider"
	"dota-tracker/internal/repository"
	"dota-tracker/internal/stats"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// TeamService runs the full pipeline for one tracked team: provider load,
// concurrent match fetch, normalization, persistence, filtering and
// aggregation. Criteria and hidden sets are caller-owned values passed in
// on every call; the service holds no per-session state.
type TeamService struct {
	opendota  *provider.Client
	orch      *fetch.Orchestrator
	matchRepo *repository.MatchRepository
	partRepo  *repository.ParticipationRepository
	heroSvc   *HeroService
	logger    zerolog.Logger
}

func NewTeamService(
	opendota *provider.Client,
	orch *fetch.Orchestrator,
	matchRepo *repository.MatchRepository,
	partRepo *repository.ParticipationRepository,
	heroSvc *HeroService,
	logger zerolog.Logger,
) *TeamService {
	return &TeamService{
		opendota:  opendota,
		orch:      orch,
		matchRepo: matchRepo,
		partRepo:  partRepo,
		heroSvc:   heroSvc,
		logger:    logger,
	}
}

// TeamOverviewResult is everything the dashboard needs for one team under
// the given criteria and hidden set.
type TeamOverviewResult struct {
	Team            *domain.ProcessedTeam
	Overview        stats.Overview
	VisibleMatches  []*domain.Match
	Participations  map[int64]domain.TeamMatchParticipation
	HeroStats       []domain.HeroStat
	HighPerforming  []domain.HeroStat
	ProcessedHeroes []domain.ProcessedHero
	FailedMatchIDs  []int64
}

func (s *TeamService) Overview(ctx context.Context, teamID int64, criteria domain.MatchFilterCriteria, hidden domain.HiddenMatchSet) (*TeamOverviewResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.OverviewTimeout)
	defer cancel()

	s.logger.Info().Int64("team_id", teamID).Int("hidden", len(hidden)).Msg("building team overview")

	team, parts, failedIDs, matches, err := s.loadTeamData(ctx, teamID)
	if err != nil {
		return nil, err
	}

	heroes, err := s.heroSvc.HeroesByID(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("hero sheet unavailable, continuing without roles")
		heroes = map[int]*domain.Hero{}
	}

	outcome := filter.Apply(matches, parts, criteria, hidden)
	s.logger.Debug().
		Int("fetched", len(matches)).
		Int("visible", len(outcome.Visible)).
		Int("recomputable", len(outcome.Recomputable)).
		Msg("filters applied")

	// Derived statistics come strictly from the recomputable set, so a
	// hidden match disappears from every number on the next call.
	overview := stats.TeamOverview(outcome.Recomputable, parts)
	heroStats := stats.HeroStats(outcome.Recomputable, parts, heroes)

	heroList := make([]*domain.Hero, 0, len(heroes))
	for _, h := range heroes {
		heroList = append(heroList, h)
	}

	team.Wins = overview.Wins
	team.Losses = overview.Losses
	team.WinRate = overview.WinRate * 100
	team.Trend = overview.Trend

	result := &TeamOverviewResult{
		Team:            team,
		Overview:        overview,
		VisibleMatches:  outcome.Visible,
		Participations:  parts,
		HeroStats:       heroStats,
		HighPerforming:  stats.HighPerformingHeroes(heroStats),
		ProcessedHeroes: stats.ProcessHeroes(heroList, outcome.Recomputable, parts),
		FailedMatchIDs:  failedIDs,
	}

	s.logger.Info().
		Int64("team_id", teamID).
		Int("games", overview.Games).
		Int("failed_fetches", len(failedIDs)).
		Msg("team overview built")
	return result, nil
}

// DraftSuggestions ranks picks for a draft phase from the team's hero
// record under the same criteria/hidden semantics as the overview.
func (s *TeamService) DraftSuggestions(ctx context.Context, teamID int64, phase draft.Phase, criteria domain.MatchFilterCriteria, hidden domain.HiddenMatchSet) ([]draft.Recommendation, error) {
	result, err := s.Overview(ctx, teamID, criteria, hidden)
	if err != nil {
		return nil, err
	}
	return draft.Recommend(result.HeroStats, phase), nil
}

// loadTeamData pulls team info and the participation list concurrently,
// then fans out the match fetches.
func (s *TeamService) loadTeamData(ctx context.Context, teamID int64) (*domain.ProcessedTeam, map[int64]domain.TeamMatchParticipation, []int64, []*domain.Match, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(apiCtx)
	var rawTeam *provider.TeamResponse
	var rawMatches []provider.TeamMatchResponse

	g.Go(func() error {
		var err error
		rawTeam, err = s.opendota.GetTeam(gCtx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		rawMatches, err = s.opendota.GetTeamMatches(gCtx, teamID)
		return err
	})
	if err := g.Wait(); err != nil {
		// Stored data beats a hard failure when the provider is down.
		s.logger.Warn().Err(err).Int64("team_id", teamID).Msg("provider unavailable, trying stored team data")
		team, parts, matches, storedErr := s.loadStored(ctx, teamID)
		if storedErr == nil && len(matches) > 0 {
			return team, parts, nil, matches, nil
		}
		return nil, nil, nil, nil, fmt.Errorf("failed to load team data: %w", err)
	}

	team, err := normalize.Team(rawTeam)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("malformed team payload: %w", err)
	}

	parts := make(map[int64]domain.TeamMatchParticipation, len(rawMatches))
	ids := make([]int64, 0, len(rawMatches))
	for _, raw := range rawMatches {
		p, err := normalize.Participation(raw, teamID)
		if err != nil {
			// One bad record never fails the roster load.
			s.logger.Warn().Err(err).Int64("team_id", teamID).Msg("skipping malformed team match record")
			continue
		}
		parts[p.MatchID] = *p
		ids = append(ids, p.MatchID)
	}

	fetched := s.orch.FetchMatches(ctx, ids)

	failedIDs := make([]int64, 0, len(fetched.Failed))
	for _, f := range fetched.Failed {
		failedIDs = append(failedIDs, f.ID)
	}

	// Pick order only becomes known once the full draft is in hand.
	for _, m := range fetched.Succeeded {
		p, ok := parts[m.ID]
		if !ok {
			continue
		}
		p.PickOrder = normalize.PickOrderFor(m, p.Side)
		parts[m.ID] = p
	}

	s.persist(ctx, teamID, fetched.Succeeded, parts)

	return team, parts, failedIDs, fetched.Succeeded, nil
}

// loadStored serves a previous session's persisted matches and
// participations. The provider-only team sheet (tag, logo, rating) is not
// stored, so the team comes back with placeholders.
func (s *TeamService) loadStored(ctx context.Context, teamID int64) (*domain.ProcessedTeam, map[int64]domain.TeamMatchParticipation, []*domain.Match, error) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	parts, err := s.partRepo.GetByTeam(dbCtx, teamID)
	if err != nil {
		return nil, nil, nil, err
	}
	matches, err := s.matchRepo.GetByTeam(dbCtx, teamID)
	if err != nil {
		return nil, nil, nil, err
	}

	s.logger.Info().Int64("team_id", teamID).Int("matches", len(matches)).Msg("serving stored team data")
	team := &domain.ProcessedTeam{ID: teamID, Name: normalize.UnknownOpponent}
	return team, parts, matches, nil
}

func (s *TeamService) persist(ctx context.Context, teamID int64, matches []*domain.Match, parts map[int64]domain.TeamMatchParticipation) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.matchRepo.UpsertBatch(dbCtx, matches); err != nil {
		s.logger.Warn().Err(err).Int64("team_id", teamID).Msg("failed to store matches")
		return
	}

	stored := make([]*domain.TeamMatchParticipation, 0, len(parts))
	for _, m := range matches {
		if p, ok := parts[m.ID]; ok {
			stored = append(stored, &p)
		}
	}
	if err := s.partRepo.UpsertBatch(dbCtx, stored); err != nil {
		s.logger.Warn().Err(err).Int64("team_id", teamID).Msg("failed to store participations")
	}
}
