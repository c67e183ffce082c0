package server

import (
	"net/http"

	"inova-palpites/internal/service"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	user, err := s.accounts.Register(r.Context(), input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	token, err := s.mintToken(user.ID, user.IsAdmin)
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"user": user, "token": token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	user, err := s.accounts.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	token, err := s.mintToken(user.ID, user.IsAdmin)
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"user": user, "token": token})
}
