package catalog

import "strings"

// Criteria describes one structured query. Zero-valued fields fall back to the
// service's sticky selections; CategorySlug is pointer-typed because even an
// empty provided slug runs the slug pass.
type Criteria struct {
	SearchTerm     string
	GameTypes      []string
	Category       string
	CategorySlug   *string
	Provider       *Partner
	Filter         string // secondary-tag filter ("Bonus Buy", "Megaways", ...)
	FavouritesOnly bool
	SortBy         SortKey
	SortOrder      SortOrder
	Limit          int // 0 = unlimited
}

// providerAliases maps portal partner slugs onto the shortcut codes actually
// present in game links. Keep in sync with the catalog's link structure.
var providerAliases = map[string]string{
	"pragmatic":   "pp",
	"ion-slot":    "pgs",
	"funky-games": "sbofunkygame",
	"vplus":       "slotmania",
}

// resolveSlug applies the alias table, strips hyphens and lowercases.
func resolveSlug(slug string) string {
	lower := strings.ToLower(slug)
	if alias, ok := providerAliases[lower]; ok {
		lower = alias
	}
	return strings.ToLower(strings.ReplaceAll(lower, "-", ""))
}

// Filter applies the given criteria merged over the sticky selections and
// returns a fresh result list; the catalog itself is never mutated.
//
// A present search term (explicit or sticky) delegates the whole call to
// Search. Otherwise the passes run in a fixed order: game types, category,
// provider, category slug, secondary tag, favourites, homepage teaser, sort.
// Provider, slug and tag passes truncate to the limit where they run, before
// later passes and before sorting.
func (s *Service) Filter(c *Criteria) []Game {
	if term := s.effectiveSearchTerm(c); term != "" {
		limit := 0
		if c != nil {
			limit = c.Limit
		}
		if s.searchLimit > 0 {
			limit = s.searchLimit
		}
		return s.Search(term, limit)
	}

	games := make([]Game, len(s.games))
	copy(games, s.games)

	limit := 0
	if c != nil {
		limit = c.Limit
	}

	if types := s.effectiveGameTypes(c); len(types) > 0 {
		games = filterByTypes(games, types)
	}

	if category := s.effectiveCategory(c); category != "" {
		games = filterByCategory(games, category)
	}

	if provider := s.effectiveProvider(c); provider != nil {
		games = truncate(filterByLinkCode(games, resolveSlug(provider.Slug)), limit)
	}

	if c != nil && c.CategorySlug != nil {
		games = truncate(filterByLinkCode(games, resolveSlug(*c.CategorySlug)), limit)
	}

	if tag := s.effectiveFilter(c); tag != "" {
		games = truncate(filterByTag(games, tag), limit)
	}

	if s.effectiveFavouritesOnly(c) {
		games = filterFavourites(games)
	}

	// Homepage teaser: no criteria object and no sticky selection at all.
	if c == nil && !s.anySticky() {
		games = truncate(games, s.pageSize)
	}

	sortBy, sortOrder := s.effectiveSort(c)
	sortGames(games, sortBy, sortOrder)
	return games
}

func filterByTypes(games []Game, types []string) []Game {
	needles := make([]string, 0, len(types))
	for _, t := range types {
		needles = append(needles, strings.ToLower(strings.Replace(t, "Games", "", 1)))
	}
	var out []Game
	for i := range games {
		category := strings.ToLower(games[i].Category)
		for _, n := range needles {
			if strings.Contains(category, n) {
				out = append(out, games[i])
				break
			}
		}
	}
	return out
}

func filterByCategory(games []Game, category string) []Game {
	var out []Game
	for i := range games {
		g := &games[i]
		if g.Category == category {
			out = append(out, *g)
			continue
		}
		for _, c := range g.Categories {
			if c.Name == category {
				out = append(out, *g)
				break
			}
		}
	}
	return out
}

func filterByLinkCode(games []Game, slug string) []Game {
	var out []Game
	for i := range games {
		if strings.ToLower(linkCode(games[i].Link)) == slug {
			out = append(out, games[i])
		}
	}
	return out
}

func filterByTag(games []Game, tag string) []Game {
	needle := strings.ToLower(tag)
	var out []Game
	for i := range games {
		for _, c := range games[i].Categories {
			if strings.Contains(strings.ToLower(c.Name), needle) {
				out = append(out, games[i])
				break
			}
		}
	}
	return out
}

func filterFavourites(games []Game) []Game {
	var out []Game
	for i := range games {
		if games[i].IsFavourite {
			out = append(out, games[i])
		}
	}
	return out
}

// Explicit criteria win over sticky selections, field by field.

func (s *Service) effectiveSearchTerm(c *Criteria) string {
	if c != nil && c.SearchTerm != "" {
		return c.SearchTerm
	}
	return s.searchTerm
}

func (s *Service) effectiveGameTypes(c *Criteria) []string {
	if c != nil && len(c.GameTypes) > 0 {
		return c.GameTypes
	}
	return s.gameTypes
}

func (s *Service) effectiveCategory(c *Criteria) string {
	if c != nil && c.Category != "" {
		return c.Category
	}
	return s.category
}

func (s *Service) effectiveProvider(c *Criteria) *Partner {
	if c != nil && c.Provider != nil {
		return c.Provider
	}
	return s.provider
}

func (s *Service) effectiveFilter(c *Criteria) string {
	if c != nil && c.Filter != "" {
		return c.Filter
	}
	return s.filter
}

func (s *Service) effectiveFavouritesOnly(c *Criteria) bool {
	return (c != nil && c.FavouritesOnly) || s.favouritesOnly
}

func (s *Service) effectiveSort(c *Criteria) (SortKey, SortOrder) {
	by, ord := s.sortBy, s.sortOrder
	if c != nil && c.SortBy != "" {
		by = c.SortBy
	}
	if c != nil && c.SortOrder != "" {
		ord = c.SortOrder
	}
	return by, ord
}

func (s *Service) anySticky() bool {
	return s.searchTerm != "" ||
		len(s.gameTypes) > 0 ||
		s.category != "" ||
		s.provider != nil ||
		s.filter != "" ||
		s.favouritesOnly
}
