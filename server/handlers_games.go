package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/kudetabet/portal/catalog"
	"github.com/kudetabet/portal/history"
)

// variantService picks the lobby catalog for the request: "slots", "arcade"
// or the default catch-all.
func (s *Server) variantService(r *http.Request) *catalog.Service {
	switch r.URL.Query().Get("variant") {
	case "slots":
		return s.slots
	case "arcade":
		return s.arcade
	default:
		return s.all
	}
}

type gamesResponse struct {
	Games []catalog.Game `json:"games"`
	Total int            `json:"total"`
}

// handleGamesList returns the lobby view: the homepage teaser when nothing is
// selected, otherwise the sticky-filtered list.
func (s *Server) handleGamesList(w http.ResponseWriter, r *http.Request) {
	svc := s.variantService(r)
	games := svc.Filter(nil)
	writeJSON(w, http.StatusOK, gamesResponse{Games: games, Total: len(games)})
}

func (s *Server) handleGamesSearch(w http.ResponseWriter, r *http.Request) {
	svc := s.variantService(r)
	q := r.URL.Query().Get("q")
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	games := svc.Search(q, limit)
	writeJSON(w, http.StatusOK, gamesResponse{Games: games, Total: len(games)})
}

// handleGamesQuery is the query-parameter form of the structured filter.
// The categorySlug pass runs whenever the parameter is present, even empty.
func (s *Server) handleGamesQuery(w http.ResponseWriter, r *http.Request) {
	svc := s.variantService(r)
	q := r.URL.Query()
	c := &catalog.Criteria{
		SearchTerm:     q.Get("search"),
		Category:       q.Get("category"),
		Filter:         q.Get("filter"),
		FavouritesOnly: q.Get("favourites") == "true",
		SortBy:         catalog.SortKey(q.Get("sortBy")),
		SortOrder:      catalog.SortOrder(q.Get("sortOrder")),
	}
	if types := q.Get("types"); types != "" {
		c.GameTypes = strings.Split(types, ",")
	}
	if q.Has("categorySlug") {
		slug := q.Get("categorySlug")
		c.CategorySlug = &slug
	}
	if slug := q.Get("provider"); slug != "" {
		if c.Provider = catalog.PartnerBySlug(slug); c.Provider == nil {
			c.Provider = &catalog.Partner{Slug: slug}
		}
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		c.Limit = v
	}
	games := svc.Filter(c)
	writeJSON(w, http.StatusOK, gamesResponse{Games: games, Total: len(games)})
}

// filterRequest is the structured query body. CategorySlug stays a pointer:
// providing it at all, even empty, runs the slug pass.
type filterRequest struct {
	SearchTerm     string   `json:"search_term"`
	GameTypes      []string `json:"game_types"`
	Category       string   `json:"category"`
	CategorySlug   *string  `json:"category_slug"`
	ProviderSlug   string   `json:"provider_slug"`
	Filter         string   `json:"filter"`
	FavouritesOnly bool     `json:"favourites_only"`
	SortBy         string   `json:"sort_by"`
	SortOrder      string   `json:"sort_order"`
	Limit          int      `json:"limit"`
	Sticky         bool     `json:"sticky"` // retain the selection for later calls
}

func (s *Server) handleGamesFilter(w http.ResponseWriter, r *http.Request) {
	svc := s.variantService(r)
	var in filterRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	var provider *catalog.Partner
	if in.ProviderSlug != "" {
		if provider = catalog.PartnerBySlug(in.ProviderSlug); provider == nil {
			provider = &catalog.Partner{Slug: in.ProviderSlug}
		}
	}
	if in.Sticky {
		if in.SearchTerm != "" {
			svc.SetSearchTerm(in.SearchTerm)
		}
		if len(in.GameTypes) > 0 {
			svc.SetGameTypes(in.GameTypes)
		}
		if in.Category != "" {
			svc.SetCategory(in.Category)
		}
		if provider != nil {
			svc.SetProvider(provider)
		}
		if in.Filter != "" {
			svc.SetFilter(in.Filter)
		}
		if in.FavouritesOnly {
			svc.SetFavouritesOnly(true)
		}
		if in.SortBy != "" {
			svc.SetSort(catalog.SortKey(in.SortBy), catalog.SortOrder(in.SortOrder))
		}
	}
	c := &catalog.Criteria{
		SearchTerm:     in.SearchTerm,
		GameTypes:      in.GameTypes,
		Category:       in.Category,
		CategorySlug:   in.CategorySlug,
		Provider:       provider,
		Filter:         in.Filter,
		FavouritesOnly: in.FavouritesOnly,
		SortBy:         catalog.SortKey(in.SortBy),
		SortOrder:      catalog.SortOrder(in.SortOrder),
		Limit:          in.Limit,
	}
	games := svc.Filter(c)
	writeJSON(w, http.StatusOK, gamesResponse{Games: games, Total: len(games)})
}

func (s *Server) handleFilterReset(w http.ResponseWriter, r *http.Request) {
	s.variantService(r).Reset()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	svc := s.variantService(r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": svc.UniqueCategories(),
		"providers":  svc.UniqueProviders(),
	})
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"partners": catalog.Partners})
}

func (s *Server) handleGamesByCategory(w http.ResponseWriter, r *http.Request) {
	svc := s.variantService(r)
	slug := r.PathValue("slug")
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	games := svc.GamesByCategorySlug(slug, limit)
	writeJSON(w, http.StatusOK, gamesResponse{Games: games, Total: len(games)})
}

// launchResponse tells the front end where to open the game and records the
// play on the user's history.
type launchResponse struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	NewTab    bool   `json:"new_tab"`
	Provider  string `json:"provider"`
	ImageBase string `json:"image_base"`
}

func (s *Server) handleGameLaunch(w http.ResponseWriter, r *http.Request) {
	svc := s.variantService(r)
	var in struct {
		GameCode string `json:"game_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	game := findGame(svc.Games(), in.GameCode)
	if game == nil {
		writeError(w, http.StatusNotFound, "game not found", "GAME_NOT_FOUND")
		return
	}
	resp := launchResponse{
		Title:     game.Name,
		Provider:  svc.ProviderDisplayName(game.Link),
		ImageBase: svc.BaseImageURL(game.Link),
	}
	if launch, ok := catalog.ParseLauncher(game.Link); ok {
		resp.URL = strings.TrimRight(s.cfg.GameOriginURL, "/") + launch.Path
		resp.Title = launch.Title
		resp.NewTab = true
	} else {
		resp.URL = game.Link
	}

	// History is best effort; the launch itself must not fail on it.
	if _, err := s.games.RecordPlay(r.Context(), userID(r), history.Entry{
		GameName:  game.Name,
		GameCode:  game.GameCode,
		Category:  game.Category,
		Provider:  resp.Provider,
		GameImage: game.GameImage,
		GameLink:  game.Link,
	}, 0, 0); err != nil {
		log.Printf("history: record play %s: %v", game.GameCode, err)
	}
	writeJSON(w, http.StatusOK, resp)
}

func findGame(games []catalog.Game, code string) *catalog.Game {
	for i := range games {
		if games[i].GameCode == code {
			return &games[i]
		}
	}
	return nil
}
