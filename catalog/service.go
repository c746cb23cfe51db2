package catalog

import (
	"sort"
	"strings"
)

// Options configures a catalog service variant.
type Options struct {
	// PageSize is the homepage teaser size returned when no criteria and no
	// sticky selection of any kind are present.
	PageSize int
	// SearchLimit, when non-zero, overrides the caller's limit whenever a
	// structured filter call delegates to text search.
	SearchLimit int
	// ImageBaseURL fronts provider artwork; defaults to the portal CDN.
	ImageBaseURL string
}

// Service answers catalog queries over one immutable game list. It carries the
// sticky filter/sort selections and the text-search cache for one lobby; two
// services never share state.
type Service struct {
	games       []Game
	cache       *searchCache
	pageSize    int
	searchLimit int
	imageBase   string

	// sticky selections, retained across calls until Reset
	searchTerm     string
	gameTypes      []string
	category       string
	provider       *Partner
	filter         string
	favouritesOnly bool
	sortBy         SortKey
	sortOrder      SortOrder
}

// New builds a service over the given source list. The list is not copied;
// callers hand over ownership.
func New(games []Game, opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = 12
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = imageHost
	}
	return &Service{
		games:       games,
		cache:       newSearchCache(),
		pageSize:    opts.PageSize,
		searchLimit: opts.SearchLimit,
		imageBase:   strings.TrimRight(opts.ImageBaseURL, "/"),
		sortBy:      SortName,
		sortOrder:   OrderAsc,
	}
}

// NewSlots is the slot-lobby variant (12-record homepage teaser). An empty
// imageBaseURL falls back to the default CDN.
func NewSlots(imageBaseURL string) *Service {
	return New(SlotGames(), Options{PageSize: 12, ImageBaseURL: imageBaseURL})
}

// NewArcade is the arcade-lobby variant.
func NewArcade(imageBaseURL string) *Service {
	return New(ArcadeGames(), Options{PageSize: 12, ImageBaseURL: imageBaseURL})
}

// NewAll is the catch-all portal catalog: 20-record teaser, and text searches
// reached through Filter are capped at 100 results.
func NewAll(imageBaseURL string) *Service {
	return New(AllGames(), Options{PageSize: 20, SearchLimit: 100, ImageBaseURL: imageBaseURL})
}

// Games returns the full catalog in source order. Callers must not mutate it.
func (s *Service) Games() []Game { return s.games }

// UniqueCategories returns every distinct primary and secondary category name,
// case-sensitive, lexicographically sorted.
func (s *Service) UniqueCategories() []string {
	set := make(map[string]struct{})
	for i := range s.games {
		g := &s.games[i]
		set[g.Category] = struct{}{}
		for _, c := range g.Categories {
			set[c.Name] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// UniqueProviders returns the distinct numeric provider ids, ascending.
func (s *Service) UniqueProviders() []int {
	set := make(map[int]struct{})
	for i := range s.games {
		set[s.games[i].Provider] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// BaseImageURL returns the provider artwork directory for a game link.
func (s *Service) BaseImageURL(link string) string {
	return s.imageBase + "/" + linkCode(link) + "/"
}

// ProviderDisplayName resolves a game link to its provider's display name.
func (s *Service) ProviderDisplayName(link string) string {
	if name, ok := providerNames[linkCode(link)]; ok {
		return name
	}
	return "Pragmatic Play"
}

// GamesByCategorySlug returns up to limit games whose link shortcut code
// matches the slug with hyphens stripped. No alias table applies here.
func (s *Service) GamesByCategorySlug(slug string, limit int) []Game {
	want := strings.ToLower(strings.ReplaceAll(slug, "-", ""))
	var out []Game
	for i := range s.games {
		if strings.ToLower(linkCode(s.games[i].Link)) == want {
			out = append(out, s.games[i])
		}
	}
	return truncate(out, limit)
}

// Sticky selection setters. Last writer wins; values apply to every Filter
// call until overwritten or Reset.

func (s *Service) SetSearchTerm(term string)        { s.searchTerm = term }
func (s *Service) SetGameTypes(types []string)      { s.gameTypes = types }
func (s *Service) SetCategory(category string)      { s.category = category }
func (s *Service) SetProvider(p *Partner)           { s.provider = p }
func (s *Service) SetFilter(tag string)             { s.filter = tag }
func (s *Service) SetFavouritesOnly(on bool)        { s.favouritesOnly = on }
func (s *Service) SetSort(by SortKey, ord SortOrder) {
	s.sortBy = by
	s.sortOrder = ord
}

// Reset clears every sticky selection and invalidates the search cache. Cached
// text-search results are selection-scoped, so they go even though the catalog
// itself did not change.
func (s *Service) Reset() {
	s.searchTerm = ""
	s.gameTypes = nil
	s.category = ""
	s.provider = nil
	s.filter = ""
	s.favouritesOnly = false
	s.sortBy = SortName
	s.sortOrder = OrderAsc
	s.cache.clear()
}

func truncate(list []Game, limit int) []Game {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
