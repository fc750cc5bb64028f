package fx

import (
	"rift-league/internal/config"
	"rift-league/internal/database"
	"rift-league/internal/engine"
	"rift-league/internal/logger"
	"rift-league/internal/repository"
	"rift-league/internal/scheduler"
	"rift-league/internal/server"
	"rift-league/internal/service"

	"go.uber.org/fx"
)

func ProvideRNG() engine.RNG {
	return engine.NewLockedRand()
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideRNG),
	// repos
	fx.Provide(repository.NewRosterRepository),
	fx.Provide(repository.NewTeamRatingRepository),
	fx.Provide(repository.NewPlayerRatingRepository),
	fx.Provide(repository.NewQueueRepository),
	fx.Provide(repository.NewOutcomeRepository),
	// svc
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewQueueService),
	fx.Provide(service.NewBatchService),
	// scheduler
	fx.Provide(scheduler.New),
	// server
	fx.Provide(server.NewLeagueServer),
)
