package server

import (
	"net/http"

	"inova-palpites/internal/model"
	"inova-palpites/internal/service"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.accounts.GetUser(r.Context(), userID(r))
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"user": user})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input service.ProfileInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	user, err := s.accounts.UpdateProfile(r.Context(), userID(r), input)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"user": user})
}

func (s *Server) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	url, err := s.accounts.UploadAvatar(
		r.Context(),
		userID(r),
		r.Header.Get("Content-Type"),
		http.MaxBytesReader(w, r.Body, 5<<20),
	)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"avatarUrl": url})
}

func (s *Server) handleMyAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := s.accounts.Achievements(r.Context(), userID(r))
	if err != nil {
		serverErrorResponse(w, err)
		return
	}
	if achievements == nil {
		achievements = []model.UserAchievement{}
	}
	writeJSON(w, http.StatusOK, jsonResponse{"achievements": achievements})
}
