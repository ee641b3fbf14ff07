package object

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slog"
)

// LocalStore keeps photos on the server's filesystem, served as static
// files under BaseURL. The development and single-node default.
type LocalStore struct {
	dir     string
	baseURL string
	log     *slog.Logger
}

func NewLocalStore(dir, baseURL string, log *slog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log.With("component", "local_store"),
	}, nil
}

func (s *LocalStore) Put(_ context.Context, name string, data []byte, _ string) (string, error) {
	// Object names contain a kind prefix like "card/..."; keep paths
	// inside the upload dir.
	clean := filepath.Clean(name)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("bad object name %q", name)
	}

	path := filepath.Join(s.dir, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0640); err != nil {
		s.log.Error("failed to write object", "name", name, "error", err)
		return "", fmt.Errorf("write object: %w", err)
	}

	return s.baseURL + "/" + filepath.ToSlash(clean), nil
}

// Dir is the root the HTTP server exposes as static files.
func (s *LocalStore) Dir() string {
	return s.dir
}
