package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveWritesFileAndReturnsURL(t *testing.T) {
	root := t.TempDir()
	s := New(root, "https://cdn.test/uploads/")

	url, err := s.Save("proofs", "receipt.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "https://cdn.test/uploads/proofs/receipt.png" {
		t.Errorf("url = %q", url)
	}
	data, err := os.ReadFile(filepath.Join(root, "proofs", "receipt.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("content = %q", data)
	}
}

func TestSaveFlattensTraversalPieces(t *testing.T) {
	root := t.TempDir()
	s := New(root, "https://cdn.test")

	url, err := s.Save("../outside", "../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.Contains(url, "..") {
		t.Errorf("traversal leaked into url: %q", url)
	}
	if _, err := os.Stat(filepath.Join(root, "outside", "passwd")); err != nil {
		t.Errorf("flattened file missing: %v", err)
	}
}
