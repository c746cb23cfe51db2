package catalog

// maxCacheEntries bounds the per-service search cache.
const maxCacheEntries = 50

// searchCache maps "query-limit" keys to materialized result lists. Eviction is
// FIFO on insertion order: hits do not refresh an entry's position.
type searchCache struct {
	entries map[string][]Game
	order   []string
}

func newSearchCache() *searchCache {
	return &searchCache{entries: make(map[string][]Game)}
}

func (c *searchCache) get(key string) ([]Game, bool) {
	list, ok := c.entries[key]
	return list, ok
}

func (c *searchCache) put(key string, results []Game) {
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = results
	if len(c.entries) > maxCacheEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

func (c *searchCache) len() int { return len(c.entries) }

func (c *searchCache) clear() {
	c.entries = make(map[string][]Game)
	c.order = nil
}
