package server

import (
	"net/http"

	"inova-palpites/internal/model"
)

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.roster.ListPlayers(r.Context())
	if err != nil {
		serverErrorResponse(w, err)
		return
	}
	if players == nil {
		players = []*model.Player{}
	}
	writeJSON(w, http.StatusOK, jsonResponse{"players": players})
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
		Team string `json:"team"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	player, err := s.roster.AddPlayer(r.Context(), input.Name, input.Team)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"player": player})
}
