package catalog

import "regexp"

// Launcher directives look like javascript:openNewTab('/path'[, 'Title']).
// The consuming launcher opens <gameOrigin><path> in a new tab; any other link
// value is a direct navigation target.
var launcherPattern = regexp.MustCompile(`openNewTab\(['"]([^'"]+)['"](?:\s*,\s*['"]([^'"]+)['"])?\)`)

// Launch is a parsed launcher directive.
type Launch struct {
	Path  string
	Title string
}

// ParseLauncher extracts the relative path and title from a launcher directive
// link. It returns false for direct URLs.
func ParseLauncher(link string) (Launch, bool) {
	const prefix = "javascript:"
	if len(link) < len(prefix) || link[:len(prefix)] != prefix {
		return Launch{}, false
	}
	m := launcherPattern.FindStringSubmatch(link[len(prefix):])
	if m == nil {
		return Launch{}, false
	}
	title := m[2]
	if title == "" {
		title = "Game"
	}
	return Launch{Path: m[1], Title: title}, true
}
