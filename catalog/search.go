package catalog

import (
	"strconv"
	"strings"
)

// Search answers a free-text query over the catalog.
//
// Empty or whitespace-only text returns the catalog itself (or its first limit
// records) and never touches the cache. Otherwise results come from the cache
// when the same text+limit was asked before; cache hits return the cached
// slice verbatim, so callers treat results as immutable snapshots.
func (s *Service) Search(text string, limit int) []Game {
	if strings.TrimSpace(text) == "" {
		return truncate(s.games, limit)
	}

	key := strings.ToLower(text) + "-" + limitKey(limit)
	if cached, ok := s.cache.get(key); ok {
		return cached
	}

	term := strings.ToLower(strings.TrimSpace(text))
	tokens := splitTokens(term)

	target := limit
	if target <= 0 {
		target = len(s.games)
	}

	results := []Game{}
	for i := 0; i < len(s.games) && len(results) < target; i++ {
		g := &s.games[i]

		name := strings.ToLower(g.Name)
		code := strings.ToLower(g.GameCode)

		// Cheap checks first: name and game code.
		if strings.Contains(name, term) || strings.Contains(code, term) {
			results = append(results, *g)
			continue
		}

		if strings.Contains(strings.ToLower(g.Category), term) {
			results = append(results, *g)
			continue
		}

		// Multi-word search: every token must appear somewhere in the
		// combined text.
		if len(tokens) > 1 {
			haystack := name + " " + code + " " + strings.ToLower(g.Category)
			if containsAll(haystack, tokens) {
				results = append(results, *g)
			}
		}
	}

	s.cache.put(key, results)
	return results
}

func limitKey(limit int) string {
	if limit <= 0 {
		return "all"
	}
	return strconv.Itoa(limit)
}

func splitTokens(term string) []string {
	var tokens []string
	for _, t := range strings.Split(term, " ") {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func containsAll(haystack string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}
