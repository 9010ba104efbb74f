package service

import (
	"context"
	"fmt"
	"time"

	"dota-tracker/internal/config"
	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"
	"dota-tracker/internal/normalize"
	"dota-tracker/internal/provider"
	"dota-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// HeroService keeps the static hero sheet fresh: the stored copy serves
// until the TTL lapses, then the provider list is refetched and upserted.
type HeroService struct {
	opendota *provider.Client
	repo     *repository.HeroRepository
	ttl      time.Duration
	logger   zerolog.Logger
}

func NewHeroService(opendota *provider.Client, repo *repository.HeroRepository, cfg *config.Config, logger zerolog.Logger) *HeroService {
	return &HeroService{opendota: opendota, repo: repo, ttl: cfg.HeroCacheTTL, logger: logger}
}

func (s *HeroService) Heroes(ctx context.Context) ([]*domain.Hero, error) {
	last, err := s.repo.LastUpdated(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to check hero freshness")
	}
	if err == nil && time.Since(last) < s.ttl {
		s.logger.Debug().Time("last_updated", last).Msg("returning stored heroes")
		return s.repo.GetAll(ctx)
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	raws, err := s.opendota.GetHeroes(apiCtx)
	if err != nil {
		// Stale heroes beat no heroes.
		s.logger.Warn().Err(err).Msg("hero refresh failed, falling back to stored heroes")
		stored, storedErr := s.repo.GetAll(ctx)
		if storedErr == nil && len(stored) > 0 {
			return stored, nil
		}
		return nil, fmt.Errorf("failed to fetch heroes: %w", err)
	}

	heroes, errs := normalize.HeroBatch(raws)
	for _, e := range errs {
		s.logger.Warn().Err(e).Msg("skipping malformed hero record")
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer dbCancel()
	if err := s.repo.UpsertBatch(dbCtx, heroes); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store heroes")
	}

	s.logger.Info().Int("count", len(heroes)).Msg("heroes refreshed")
	return heroes, nil
}

// HeroesByID returns the hero sheet keyed by hero ID.
func (s *HeroService) HeroesByID(ctx context.Context) (map[int]*domain.Hero, error) {
	heroes, err := s.Heroes(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int]*domain.Hero, len(heroes))
	for _, h := range heroes {
		out[h.ID] = h
	}
	return out, nil
}
