package catalog

import "sort"

// SortKey selects the comparison field for ordered results.
type SortKey string

const (
	SortName       SortKey = "name"
	SortProvider   SortKey = "provider"
	SortCategory   SortKey = "category"
	SortFavourites SortKey = "favourites"
)

// SortOrder is the comparison direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// sortAccessor projects a game onto a comparable value. Favourites map to 0/1
// so ascending order puts favourites first.
type sortAccessor struct {
	str func(*Game) string
	num func(*Game) int
}

var sortAccessors = map[SortKey]sortAccessor{
	SortName:     {str: func(g *Game) string { return g.Name }},
	SortProvider: {num: func(g *Game) int { return g.Provider }},
	SortCategory: {str: func(g *Game) string { return g.Category }},
	SortFavourites: {num: func(g *Game) int {
		if g.IsFavourite {
			return 0
		}
		return 1
	}},
}

// sortGames orders games in place. The default (name, asc) runs no sort pass
// at all: the list keeps filter-pipeline order, ties and all. Comparison is
// plain greater/less with no stability guarantee for equal keys.
func sortGames(games []Game, by SortKey, order SortOrder) {
	if by == "" {
		by = SortName
	}
	if order == "" {
		order = OrderAsc
	}
	if by == SortName && order == OrderAsc {
		return
	}
	acc, ok := sortAccessors[by]
	if !ok {
		acc = sortAccessors[SortName]
	}
	sort.Slice(games, func(i, j int) bool {
		a, b := &games[i], &games[j]
		var less bool
		if acc.str != nil {
			less = acc.str(a) < acc.str(b)
			if order == OrderDesc {
				less = acc.str(a) > acc.str(b)
			}
		} else {
			less = acc.num(a) < acc.num(b)
			if order == OrderDesc {
				less = acc.num(a) > acc.num(b)
			}
		}
		return less
	})
}
