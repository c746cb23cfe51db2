package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kudetabet/portal/profile"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found", "NOT_FOUND")
			return
		}
		writeError(w, http.StatusInternalServerError, "profile lookup failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var u profile.Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	p, err := s.profiles.Update(r.Context(), userID(r), u)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found", "NOT_FOUND")
			return
		}
		writeError(w, http.StatusInternalServerError, "profile update failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "balance lookup failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"balance": p.Balance})
}
