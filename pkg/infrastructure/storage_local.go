package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const DefaultExportDir = "resume-data"

// LocalArtifactStore writes artifacts below a root directory, keyed by their
// slash-separated path.
type LocalArtifactStore struct {
	root string
}

func NewLocalArtifactStore(root string) *LocalArtifactStore {
	if root == "" {
		root = DefaultExportDir
	}
	return &LocalArtifactStore{root: root}
}

func (s *LocalArtifactStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid artifact key %q", key)
	}
	path := filepath.Join(s.root, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
