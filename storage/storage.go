// Package storage writes uploaded files to a local root that fronts object
// storage (a mounted bucket in deployment) and hands back public URLs.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	root    string
	baseURL string
}

func New(root, baseURL string) *Store {
	if root == "" {
		root = "uploads"
	}
	return &Store{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Save streams the reader into root/dir/name and returns the public URL.
// Path pieces are flattened to their base names so callers cannot escape the
// storage root.
func (s *Store) Save(dir, name string, r io.Reader) (string, error) {
	dir = filepath.Base(filepath.Clean("/" + dir))
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("invalid file name")
	}
	target := filepath.Join(s.root, dir, name)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.baseURL + "/" + dir + "/" + name, nil
}

// Root exposes the local directory so the HTTP layer can serve it.
func (s *Store) Root() string { return s.root }
