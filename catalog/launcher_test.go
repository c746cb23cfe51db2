package catalog

import "testing"

func TestParseLauncher(t *testing.T) {
	cases := []struct {
		link      string
		wantPath  string
		wantTitle string
		wantOK    bool
	}{
		{"javascript:openNewTab('/tangkas/G8-MMT01', 'MM Tangkas')", "/tangkas/G8-MMT01", "MM Tangkas", true},
		{"javascript:openNewTab('/tangkas/G8-BTK02')", "/tangkas/G8-BTK02", "Game", true},
		{`javascript:openNewTab("/x/y", "Z")`, "/x/y", "Z", true},
		{"https://games.example/PP/vs20fruitsw", "", "", false},
		{"javascript:alert('x')", "", "", false},
		{"", "", "", false},
	}
	for _, c := range cases {
		got, ok := ParseLauncher(c.link)
		if ok != c.wantOK {
			t.Errorf("%q: ok=%v want %v", c.link, ok, c.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if got.Path != c.wantPath || got.Title != c.wantTitle {
			t.Errorf("%q: got (%q, %q) want (%q, %q)", c.link, got.Path, got.Title, c.wantPath, c.wantTitle)
		}
	}
}
