package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"rift-league/internal/config"
	"rift-league/internal/constants"
	fxmodules "rift-league/internal/fx"
	"rift-league/internal/middleware"
	"rift-league/internal/scheduler"
	"rift-league/internal/server"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	leagueServer *server.LeagueServer,
	sched *scheduler.Scheduler,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	mux := http.NewServeMux()
	leagueServer.Register(mux)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := middleware.RequestID(logger)(middleware.Recover(logger)(c.Handler(mux)))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: handler,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sched.Start()
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			sched.Stop()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
