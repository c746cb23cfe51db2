package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/kudetabet/portal/history"
)

// handleHistoryAdd records a play session for a game, accumulating onto the
// existing entry when the user has played it before.
func (s *Server) handleHistoryAdd(w http.ResponseWriter, r *http.Request) {
	var in struct {
		history.Entry
		Bet float64 `json:"bet"`
		Win float64 `json:"win"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	if in.GameName == "" || in.GameCode == "" {
		writeError(w, http.StatusBadRequest, "game_name and game_code are required", "BAD_REQUEST")
		return
	}
	e, err := s.games.RecordPlay(r.Context(), userID(r), in.Entry, in.Bet, in.Win)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history record failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := history.ListOptions{
		Category:   q.Get("category"),
		Provider:   q.Get("provider"),
		Favourites: q.Get("favourites") == "true",
		SortBy:     q.Get("sort_by"),
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		opts.Offset = v
	}
	list, err := s.games.List(r.Context(), userID(r), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history list failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": list,
		"total":   len(list),
	})
}

func (s *Server) handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.games.UserStats(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history stats failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleHistoryFavourites(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	list, err := s.games.Favourites(r.Context(), userID(r), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "favourites failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"favourites": list})
}

func (s *Server) handleHistorySearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeError(w, http.StatusBadRequest, "q is required", "BAD_REQUEST")
		return
	}
	list, err := s.games.Search(r.Context(), userID(r), term)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history search failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": list, "total": len(list)})
}

func (s *Server) handleHistoryToggleFavourite(w http.ResponseWriter, r *http.Request) {
	e, err := s.games.ToggleFavourite(r.Context(), r.PathValue("id"), userID(r))
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "history entry not found", "NOT_FOUND")
			return
		}
		writeError(w, http.StatusInternalServerError, "favourite toggle failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.games.Delete(r.Context(), r.PathValue("id"), userID(r)); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "history entry not found", "NOT_FOUND")
			return
		}
		writeError(w, http.StatusInternalServerError, "history delete failed", "INTERNAL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
