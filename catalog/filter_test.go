package catalog

import "testing"

func TestFilter_SearchTermDelegatesToSearch(t *testing.T) {
	s := New(testGames(), Options{})

	got := s.Filter(&Criteria{SearchTerm: "slot"})
	if len(got) != 2 {
		t.Fatalf("got %d games, want 2", len(got))
	}
	if s.cache.len() != 1 {
		t.Error("delegated search should populate the cache")
	}
}

func TestFilter_SearchLimitOverride(t *testing.T) {
	s := New(testGames(), Options{SearchLimit: 1})

	got := s.Filter(&Criteria{SearchTerm: "slot", Limit: 5})
	if len(got) != 1 {
		t.Fatalf("variant search cap: got %d games, want 1", len(got))
	}
}

func TestFilter_Category(t *testing.T) {
	s := New(testGames(), Options{})

	got := s.Filter(&Criteria{Category: "Crash"})
	if len(got) != 1 || got[0].Name != "Aviator" {
		t.Fatalf("category Crash: got %v", names(got))
	}
}

func TestFilter_CategoryMatchesSecondaryNames(t *testing.T) {
	games := []Game{
		{Name: "A", Category: "Slot", Categories: []Category{{Name: "Megaways", SeqNo: 1}}},
		{Name: "B", Category: "Slot"},
	}
	s := New(games, Options{})

	got := s.Filter(&Criteria{Category: "Megaways"})
	if len(got) != 1 || got[0].Name != "A" {
		t.Fatalf("secondary category: got %v", names(got))
	}
}

func TestFilter_GameTypes(t *testing.T) {
	s := New(testGames(), Options{})

	got := s.Filter(&Criteria{GameTypes: []string{"CrashGames"}})
	if len(got) != 1 || got[0].Name != "Aviator" {
		t.Fatalf("type filter: got %v", names(got))
	}
}

func TestFilter_ProviderAlias(t *testing.T) {
	s := New(testGames(), Options{})

	got := s.Filter(&Criteria{Provider: &Partner{Name: "Pragmatic Play", Slug: "pragmatic"}})
	if len(got) != 1 || got[0].Name != "Gatot Kaca" {
		t.Fatalf("pragmatic alias should match only the PP link, got %v", names(got))
	}

	got = s.Filter(&Criteria{Provider: &Partner{Slug: "pgsoft"}})
	if len(got) != 1 || got[0].Name != "Mahjong Ways" {
		t.Fatalf("identity slug: got %v", names(got))
	}
}

func TestFilter_ProviderTruncatesBeforeLaterPasses(t *testing.T) {
	games := []Game{
		{Name: "A", Category: "Slot", Link: "https://games.example/PP/a", IsFavourite: false},
		{Name: "B", Category: "Slot", Link: "https://games.example/PP/b", IsFavourite: true},
		{Name: "C", Category: "Slot", Link: "https://games.example/PP/c", IsFavourite: true},
	}
	s := New(games, Options{})

	// The provider pass cuts to 2 before favourites runs, so only B survives
	// even though C also matches both filters.
	got := s.Filter(&Criteria{
		Provider:       &Partner{Slug: "pp"},
		FavouritesOnly: true,
		Limit:          2,
	})
	if len(got) != 1 || got[0].Name != "B" {
		t.Fatalf("mid-pipeline truncation: got %v", names(got))
	}
}

func TestFilter_CategorySlug(t *testing.T) {
	s := New(testGames(), Options{})

	slug := "ion-slot"
	got := s.Filter(&Criteria{CategorySlug: &slug})
	if len(got) != 0 {
		t.Fatalf("ion-slot aliases to pgs, no PGS links here: got %v", names(got))
	}

	slug = "pgsoft"
	got = s.Filter(&Criteria{CategorySlug: &slug})
	if len(got) != 1 || got[0].Name != "Mahjong Ways" {
		t.Fatalf("categorySlug pgsoft: got %v", names(got))
	}
}

func TestFilter_SecondaryTag(t *testing.T) {
	games := []Game{
		{Name: "A", Category: "Slot", Categories: []Category{{Name: "Bonus Buy", SeqNo: 1}}},
		{Name: "B", Category: "Slot", Categories: []Category{{Name: "Top 20", SeqNo: 1}}},
		{Name: "C", Category: "Slot"},
	}
	s := New(games, Options{})

	got := s.Filter(&Criteria{Filter: "bonus buy"})
	if len(got) != 1 || got[0].Name != "A" {
		t.Fatalf("tag filter: got %v", names(got))
	}
}

func TestFilter_FavouritesSubset(t *testing.T) {
	games := testGames()
	games[1].IsFavourite = true
	s := New(games, Options{})

	all := s.Filter(&Criteria{})
	favs := s.Filter(&Criteria{FavouritesOnly: true})
	if len(favs) != 1 || favs[0].Name != "Mahjong Ways" {
		t.Fatalf("favourites: got %v", names(favs))
	}
	if len(favs) > len(all) {
		t.Error("favourites must be a subset of the unfiltered result")
	}
	for _, g := range favs {
		if !g.IsFavourite {
			t.Errorf("non-favourite %q in favourites result", g.Name)
		}
	}
}

func TestFilter_HomepageTeaser(t *testing.T) {
	games := make([]Game, 15)
	for i := range games {
		games[i] = Game{Name: string(rune('O' - i)), Category: "Slot"}
	}
	s := New(games, Options{PageSize: 12})

	got := s.Filter(nil)
	if len(got) != 12 {
		t.Fatalf("teaser: got %d games, want 12", len(got))
	}
	// Original catalog order, not name order.
	for i := range got {
		if got[i].Name != games[i].Name {
			t.Fatalf("teaser must keep catalog order, index %d is %q", i, got[i].Name)
		}
	}
}

func TestFilter_TeaserSkippedWithStickySelection(t *testing.T) {
	games := make([]Game, 15)
	for i := range games {
		games[i] = Game{Name: "G", Category: "Slot"}
	}
	s := New(games, Options{PageSize: 12})
	s.SetCategory("Slot")

	if got := s.Filter(nil); len(got) != 15 {
		t.Fatalf("sticky selection present, teaser must not apply: got %d", len(got))
	}
}

func TestFilter_StickySelectionsMerge(t *testing.T) {
	s := New(testGames(), Options{})
	s.SetCategory("Slot")

	got := s.Filter(nil)
	if len(got) != 2 {
		t.Fatalf("sticky category: got %v", names(got))
	}

	// Explicit criteria override sticky.
	got = s.Filter(&Criteria{Category: "Crash"})
	if len(got) != 1 || got[0].Name != "Aviator" {
		t.Fatalf("explicit over sticky: got %v", names(got))
	}

	s.Reset()
	if got := s.Filter(&Criteria{}); len(got) != 3 {
		t.Fatalf("after reset: got %d games, want 3", len(got))
	}
}

func TestFilter_NeverMutatesCatalog(t *testing.T) {
	games := testGames()
	s := New(games, Options{})

	s.Filter(&Criteria{SortBy: SortName, SortOrder: OrderDesc})
	if s.games[0].Name != "Gatot Kaca" {
		t.Error("filtering must not reorder the catalog store")
	}
}
