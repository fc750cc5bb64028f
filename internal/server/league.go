package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"rift-league/internal/domain"
	"rift-league/internal/service"

	"github.com/rs/zerolog"
)

// LeagueServer is the JSON-over-HTTP adapter around the engine's in-process
// contracts. It owns no business logic.
type LeagueServer struct {
	matchSvc *service.MatchService
	queueSvc *service.QueueService
	batchSvc *service.BatchService
	logger   zerolog.Logger
}

func NewLeagueServer(matchSvc *service.MatchService, queueSvc *service.QueueService, batchSvc *service.BatchService, logger zerolog.Logger) *LeagueServer {
	return &LeagueServer{matchSvc: matchSvc, queueSvc: queueSvc, batchSvc: batchSvc, logger: logger}
}

// Register mounts every route on the mux.
func (s *LeagueServer) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/matches/simulate", s.handleSimulateMatch)
	mux.HandleFunc("POST /v1/queue/join", s.handleJoinQueue)
	mux.HandleFunc("POST /v1/queue/cancel", s.handleCancelQueue)
	mux.HandleFunc("POST /v1/matchmaking/run", s.handleRunBatch)
	mux.HandleFunc("GET /v1/teams/{id}/rating", s.handleTeamRating)
	mux.HandleFunc("GET /v1/players/{id}/rating", s.handlePlayerRating)
}

type simulateMatchRequest struct {
	TeamA string `json:"team_a"`
	TeamB string `json:"team_b"`
}

func (s *LeagueServer) handleSimulateMatch(w http.ResponseWriter, r *http.Request) {
	var req simulateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TeamA == "" || req.TeamB == "" {
		writeError(w, http.StatusBadRequest, "team_a and team_b are required")
		return
	}

	outcome, err := s.matchSvc.SimulateTeamMatch(r.Context(), req.TeamA, req.TeamB)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

type joinQueueRequest struct {
	PlayerID string `json:"player_id"`
	SeasonID string `json:"season_id"`
}

func (s *LeagueServer) handleJoinQueue(w http.ResponseWriter, r *http.Request) {
	var req joinQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" || req.SeasonID == "" {
		writeError(w, http.StatusBadRequest, "player_id and season_id are required")
		return
	}

	result, err := s.queueSvc.JoinMatchQueue(r.Context(), req.PlayerID, req.SeasonID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type cancelQueueRequest struct {
	PlayerID string `json:"player_id"`
}

func (s *LeagueServer) handleCancelQueue(w http.ResponseWriter, r *http.Request) {
	var req cancelQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}

	if err := s.queueSvc.CancelQueue(r.Context(), req.PlayerID); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type runBatchRequest struct {
	SeasonID string `json:"season_id"`
}

func (s *LeagueServer) handleRunBatch(w http.ResponseWriter, r *http.Request) {
	var req runBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SeasonID == "" {
		writeError(w, http.StatusBadRequest, "season_id is required")
		return
	}

	result, err := s.batchSvc.RunMatchmakingBatch(r.Context(), req.SeasonID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *LeagueServer) handleTeamRating(w http.ResponseWriter, r *http.Request) {
	rating, err := s.matchSvc.TeamRating(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

func (s *LeagueServer) handlePlayerRating(w http.ResponseWriter, r *http.Request) {
	season := r.URL.Query().Get("season")
	if season == "" {
		writeError(w, http.StatusBadRequest, "season query parameter is required")
		return
	}

	rating, err := s.queueSvc.PlayerRating(r.Context(), r.PathValue("id"), season)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

func (s *LeagueServer) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrIncompleteRoster),
		errors.Is(err, domain.ErrAlreadyQueued),
		errors.Is(err, domain.ErrNotQueued):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
