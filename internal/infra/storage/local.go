package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Local writes objects below dir; gin serves dir under publicURL.
type Local struct {
	dir       string
	publicURL string
}

func NewLocal(dir, publicURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &Local{dir: dir, publicURL: publicURL}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	dst := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, body, 0o644); err != nil {
		return "", err
	}
	return joinURL(l.publicURL, key), nil
}

func (l *Local) PublicURL() string {
	return l.publicURL
}
