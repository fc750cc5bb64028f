package scheduler

import (
	"context"
	"time"

	"rift-league/internal/config"
	"rift-league/internal/service"

	"github.com/rs/zerolog"
)

// Scheduler triggers the matchmaking batch on a fixed interval. The batch
// itself stays a pure callable on BatchService; this component only owns the
// clock.
type Scheduler struct {
	batchSvc *service.BatchService
	cfg      *config.Config
	logger   zerolog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func New(batchSvc *service.BatchService, cfg *config.Config, logger zerolog.Logger) *Scheduler {
	return &Scheduler{batchSvc: batchSvc, cfg: cfg, logger: logger}
}

// Start launches the ticker loop. One run executes immediately on start so a
// restart never strands waiting players for a full interval.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		s.runOnce(ctx)

		ticker := time.NewTicker(s.cfg.MatchmakingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	s.logger.Info().Dur("interval", s.cfg.MatchmakingInterval).Msg("matchmaking scheduler started")
}

// Stop halts the ticker and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Info().Msg("matchmaking scheduler stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	result, err := s.batchSvc.RunMatchmakingBatch(ctx, s.cfg.CurrentSeasonID)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error().Err(err).Msg("scheduled matchmaking run failed")
		}
		return
	}
	s.logger.Debug().
		Int("matches_resolved", result.MatchesResolved).
		Int("skipped", result.Skipped).
		Msg("scheduled matchmaking run completed")
}
