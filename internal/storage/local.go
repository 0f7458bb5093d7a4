package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// localStore implements Store on the local file system, for development
// and for deployments without S3. Files land under a directory the HTTP
// server exposes at /public/uploads.
type localStore struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewLocalStore creates a file-system image store rooted at dir.
func NewLocalStore(dir, baseURL string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	return &localStore{
		dir:     dir,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "local-store").Logger(),
	}, nil
}

// Upload writes the object under key and returns its public URL.
func (s *localStore) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(key))

	f, err := os.Create(path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to create upload file")
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write upload file")
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return s.baseURL + "/" + filepath.Base(key), nil
}
