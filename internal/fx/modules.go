package fx

import (
	"dota-tracker/internal/config"
	"dota-tracker/internal/database"
	"dota-tracker/internal/fetch"
	"dota-tracker/internal/logger"
	"dota-tracker/internal/provider"
	"dota-tracker/internal/repository"
	"dota-tracker/internal/server"
	"dota-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideOrchestrator(client *provider.Client, cache *fetch.Cache, log zerolog.Logger) *fetch.Orchestrator {
	return fetch.New(client, cache, log)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewParticipationRepository),
	fx.Provide(repository.NewHeroRepository),
	// provider + fetch pipeline
	fx.Provide(provider.NewClient),
	fx.Provide(fetch.NewCache),
	fx.Provide(ProvideOrchestrator),
	// svc
	fx.Provide(service.NewHeroService),
	fx.Provide(service.NewTeamService),
	// server
	fx.Provide(server.New),
)
