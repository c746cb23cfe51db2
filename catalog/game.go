package catalog

import "strings"

// Category is a secondary tag on a game ("Bonus Buy", "Megaways", ...).
type Category struct {
	Name  string `json:"name"`
	SeqNo int    `json:"seqNo"`
}

// Game is one playable title offered by a provider. The catalog treats these as
// read-only for the lifetime of a service instance.
type Game struct {
	Name        string     `json:"name"`
	GameCode    string     `json:"gameCode"`
	Category    string     `json:"category"`
	Categories  []Category `json:"categories,omitempty"`
	Provider    int        `json:"provider"`
	Link        string     `json:"link"`
	GameImage   string     `json:"gameImage"`
	IsFavourite bool       `json:"isFavourite"`
}

// Partner identifies a game provider as presented on the portal.
type Partner struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Category    string `json:"category"`
	Logo        string `json:"logo"`
	LogoColored string `json:"logo_colored"`
}

// linkCode extracts the provider shortcut code from a game link, the 4th
// slash-separated segment ("https://host/PP/vs20fruitsw" -> "PP"). Launcher
// directives with relative paths yield junk here and simply never match
// provider filters.
func linkCode(link string) string {
	parts := strings.Split(link, "/")
	if len(parts) < 4 {
		return ""
	}
	return parts[3]
}
