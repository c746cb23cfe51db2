package server

import (
	"errors"
	"net/http"

	"github.com/kudetabet/portal/doubleexp"
)

func (s *Server) handleDoubleExpStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.doubleExp.Status(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "double exp status failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDoubleExpClaim(w http.ResponseWriter, r *http.Request) {
	c, err := s.doubleExp.Claim(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, doubleexp.ErrCooldown) {
			writeError(w, http.StatusConflict, err.Error(), "CLAIM_COOLDOWN")
			return
		}
		writeError(w, http.StatusInternalServerError, "double exp claim failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
