package catalog

import (
	"fmt"
	"testing"
)

func testGames() []Game {
	return []Game{
		{Name: "Gatot Kaca", GameCode: "PP01", Category: "Slot", Link: "https://games.example/PP/PP01"},
		{Name: "Mahjong Ways", GameCode: "PG02", Category: "Slot", Link: "https://games.example/PGSOFT/PG02"},
		{Name: "Aviator", GameCode: "SP03", Category: "Crash", Link: "https://games.example/SPRIBE/SP03"},
	}
}

func names(games []Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Name
	}
	return out
}

func TestSearch_EmptyTermReturnsCatalog(t *testing.T) {
	s := New(testGames(), Options{})

	got := s.Search("", 0)
	if len(got) != 3 {
		t.Fatalf("empty term: got %d games, want 3", len(got))
	}
	got = s.Search("   ", 0)
	if len(got) != 3 {
		t.Fatalf("whitespace term: got %d games, want 3", len(got))
	}
	got = s.Search("", 2)
	if len(got) != 2 || got[0].Name != "Gatot Kaca" {
		t.Fatalf("empty term with limit: got %v", names(got))
	}
	if s.cache.len() != 0 {
		t.Fatalf("empty term must not populate the cache, got %d entries", s.cache.len())
	}
}

func TestSearch_CategoryScenario(t *testing.T) {
	s := New(testGames(), Options{})

	got := s.Search("slot", 0)
	if len(got) != 2 {
		t.Fatalf("search slot: got %d games, want 2", len(got))
	}
	if got[0].Name != "Gatot Kaca" || got[1].Name != "Mahjong Ways" {
		t.Errorf("search slot: wrong order %v", names(got))
	}
}

func TestSearch_LimitShortCircuits(t *testing.T) {
	s := New(testGames(), Options{})

	got := s.Search("slot", 1)
	if len(got) != 1 || got[0].Name != "Gatot Kaca" {
		t.Fatalf("limited search: got %v", names(got))
	}
}

func TestSearch_CacheHitReturnsSameSlice(t *testing.T) {
	s := New(testGames(), Options{})

	first := s.Search("mahjong", 0)
	second := s.Search("mahjong", 0)
	if len(first) == 0 {
		t.Fatal("expected results for mahjong")
	}
	if &first[0] != &second[0] {
		t.Error("second search should return the cached slice, not a recomputation")
	}

	s.Reset()
	third := s.Search("mahjong", 0)
	if len(third) != 1 {
		t.Fatalf("post-reset search: got %d games, want 1", len(third))
	}
	if &first[0] == &third[0] {
		t.Error("Reset should clear the cache")
	}
}

func TestSearch_DistinctLimitsAreDistinctEntries(t *testing.T) {
	s := New(testGames(), Options{})

	s.Search("slot", 0)
	s.Search("slot", 1)
	if s.cache.len() != 2 {
		t.Fatalf("expected 2 cache entries (all + limit 1), got %d", s.cache.len())
	}
}

func TestSearch_CacheEvictsOldestInserted(t *testing.T) {
	games := make([]Game, 60)
	for i := range games {
		games[i] = Game{
			Name:     fmt.Sprintf("Game %02d", i),
			GameCode: fmt.Sprintf("G%02d", i),
			Category: "Slot",
		}
	}
	s := New(games, Options{})

	s.Search("game 00", 0)
	for i := 1; i <= maxCacheEntries; i++ {
		// Re-hit the first key before each insert: FIFO eviction must ignore
		// access order.
		s.Search("game 00", 0)
		s.Search(fmt.Sprintf("game %02d", i%60), 0)
	}
	if s.cache.len() != maxCacheEntries {
		t.Fatalf("cache holds %d entries, want %d", s.cache.len(), maxCacheEntries)
	}
	if _, ok := s.cache.get("game 00-all"); ok {
		t.Error("first-inserted key should have been evicted despite recent hits")
	}
}

func TestSearch_MultiWordMatchesAcrossFields(t *testing.T) {
	games := []Game{
		{Name: "Super Ace", GameCode: "JILI01", Category: "Bonus Slot"},
		{Name: "Bonanza", GameCode: "PP77", Category: "Slot"},
	}
	s := New(games, Options{})

	// Neither token alone matches name, code or category of the first game in
	// full, but both appear somewhere in its combined text.
	got := s.Search("jili bonus", 0)
	if len(got) != 1 || got[0].Name != "Super Ace" {
		t.Fatalf("multi-word search: got %v", names(got))
	}

	// One token missing: no match.
	if got := s.Search("joker bonus", 0); len(got) != 0 {
		t.Fatalf("expected no match, got %v", names(got))
	}
}

func TestSearch_KeyIncludesRawCaseFoldedText(t *testing.T) {
	s := New(testGames(), Options{})

	first := s.Search("MAHJONG", 0)
	second := s.Search("mahjong", 0)
	if len(first) != 1 || len(second) != 1 {
		t.Fatal("expected one result each")
	}
	if &first[0] != &second[0] {
		t.Error("case-insensitive queries should share a cache entry")
	}
}
