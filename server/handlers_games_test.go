package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kudetabet/portal/catalog"
	"github.com/kudetabet/portal/config"
)

func testServer() *Server {
	return &Server{
		cfg:    &config.Config{GameOriginURL: "https://games.test"},
		slots:  catalog.NewSlots(""),
		arcade: catalog.NewArcade(""),
		all:    catalog.NewAll(""),
	}
}

func decodeGames(t *testing.T, rec *httptest.ResponseRecorder) gamesResponse {
	t.Helper()
	var resp gamesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestHandleGamesListTeaser(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/games?variant=slots", nil)
	rec := httptest.NewRecorder()
	s.handleGamesList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeGames(t, rec)
	if resp.Total != 12 {
		t.Errorf("slots teaser = %d games, want 12", resp.Total)
	}
}

func TestHandleGamesListDefaultVariant(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
	rec := httptest.NewRecorder()
	s.handleGamesList(rec, req)

	if resp := decodeGames(t, rec); resp.Total != 20 {
		t.Errorf("catch-all teaser = %d games, want 20", resp.Total)
	}
}

func TestHandleGamesSearch(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/games/search?q=mahjong", nil)
	rec := httptest.NewRecorder()
	s.handleGamesSearch(rec, req)

	resp := decodeGames(t, rec)
	if resp.Total == 0 {
		t.Fatal("expected search hits for mahjong")
	}
	for _, g := range resp.Games {
		if !strings.Contains(strings.ToLower(g.Name), "mahjong") {
			t.Errorf("unexpected hit %q", g.Name)
		}
	}
}

func TestHandleGamesFilterProviderAlias(t *testing.T) {
	s := testServer()
	body := strings.NewReader(`{"provider_slug": "pragmatic"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/games/filter", body)
	rec := httptest.NewRecorder()
	s.handleGamesFilter(rec, req)

	resp := decodeGames(t, rec)
	if resp.Total == 0 {
		t.Fatal("expected pragmatic games")
	}
	for _, g := range resp.Games {
		if !strings.Contains(g.Link, "/PP/") {
			t.Errorf("non-pragmatic game in result: %s", g.Link)
		}
	}
}

func TestHandleFilterStickyThenReset(t *testing.T) {
	s := testServer()

	body := strings.NewReader(`{"category": "Crash", "sticky": true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/games/filter", body)
	s.handleGamesFilter(httptest.NewRecorder(), req)

	// The sticky category now shapes the plain list call.
	rec := httptest.NewRecorder()
	s.handleGamesList(rec, httptest.NewRequest(http.MethodGet, "/api/games", nil))
	stuck := decodeGames(t, rec)
	for _, g := range stuck.Games {
		if g.Category != "Crash" {
			t.Errorf("sticky category leak: %q in %q", g.Name, g.Category)
		}
	}

	s.handleFilterReset(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodPost, "/api/games/filter/reset", nil))

	rec = httptest.NewRecorder()
	s.handleGamesList(rec, httptest.NewRequest(http.MethodGet, "/api/games", nil))
	if resp := decodeGames(t, rec); resp.Total != 20 {
		t.Errorf("after reset teaser = %d games, want 20", resp.Total)
	}
}

func TestHandleGamesByCategory(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/games/category/pg-soft?limit=3", nil)
	req.SetPathValue("slug", "pg-soft")
	rec := httptest.NewRecorder()
	s.handleGamesByCategory(rec, req)

	resp := decodeGames(t, rec)
	if resp.Total > 3 {
		t.Errorf("limit ignored: got %d games", resp.Total)
	}
}

func TestHandleCategoriesAndProviders(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleCategories(rec, httptest.NewRequest(http.MethodGet, "/api/games/categories?variant=slots", nil))

	var cats struct {
		Categories []string `json:"categories"`
		Providers  []int    `json:"providers"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&cats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cats.Categories) == 0 || len(cats.Providers) == 0 {
		t.Errorf("empty categories/providers: %+v", cats)
	}

	rec = httptest.NewRecorder()
	s.handleProviders(rec, httptest.NewRequest(http.MethodGet, "/api/games/providers", nil))
	var partners struct {
		Partners []catalog.Partner `json:"partners"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&partners); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(partners.Partners) == 0 {
		t.Error("no partner tiles")
	}
}
