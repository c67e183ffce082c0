package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inova-palpites/internal/service"
)

func (s *Server) handleAddGame(w http.ResponseWriter, r *http.Request) {
	var input service.GameInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	game, err := s.tournaments.AddGame(
		r.Context(),
		chi.URLParam(r, "tournamentID"),
		chi.URLParam(r, "roundID"),
		input,
	)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"game": game})
}

func (s *Server) handleSubmitBets(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Bets        []service.BetInput `json:"bets"`
		TopScorerID string             `json:"topScorerId"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	awarded, err := s.bets.Submit(
		r.Context(),
		chi.URLParam(r, "tournamentID"),
		chi.URLParam(r, "roundID"),
		userID(r),
		input.Bets,
		input.TopScorerID,
	)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"firstBetAchievement": awarded})
}

func (s *Server) handleMyRoundBets(w http.ResponseWriter, r *http.Request) {
	view, err := s.leaderboard.BetsForRound(
		r.Context(),
		chi.URLParam(r, "tournamentID"),
		chi.URLParam(r, "roundID"),
		userID(r),
	)
	if err != nil {
		serverErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateResults(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Games   []service.GameResultInput `json:"games"`
		Scorers map[string]int            `json:"scorers"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	err := s.results.UpdateRoundResults(
		r.Context(),
		chi.URLParam(r, "tournamentID"),
		chi.URLParam(r, "roundID"),
		input.Games,
		input.Scorers,
	)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	scores, err := s.leaderboard.Leaderboard(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		serverErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": scores})
}
