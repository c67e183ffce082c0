package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := s.tournaments.ListTournaments(r.Context())
	if err != nil {
		serverErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments})
}

func (s *Server) handleGetTournament(w http.ResponseWriter, r *http.Request) {
	tournament, err := s.tournaments.GetTournament(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament})
}

func (s *Server) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string  `json:"name"`
		ImageURL *string `json:"imageUrl"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	tournament, err := s.tournaments.CreateTournament(r.Context(), input.Name, input.ImageURL)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament})
}

func (s *Server) handleUpdateTournament(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string  `json:"name"`
		ImageURL *string `json:"imageUrl"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := s.tournaments.UpdateTournament(r.Context(), chi.URLParam(r, "tournamentID"), input.Name, input.ImageURL); err != nil {
		mapServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTournament(w http.ResponseWriter, r *http.Request) {
	if err := s.tournaments.DeleteTournament(r.Context(), chi.URLParam(r, "tournamentID")); err != nil {
		mapServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUploadCover(w http.ResponseWriter, r *http.Request) {
	url, err := s.tournaments.UploadCover(
		r.Context(),
		chi.URLParam(r, "tournamentID"),
		r.Header.Get("Content-Type"),
		http.MaxBytesReader(w, r.Body, 5<<20),
	)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"imageUrl": url})
}

func (s *Server) handleAddRound(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string    `json:"name"`
		Deadline time.Time `json:"deadline"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	round, err := s.tournaments.AddRound(r.Context(), chi.URLParam(r, "tournamentID"), input.Name, input.Deadline)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"round": round})
}
