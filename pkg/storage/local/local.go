package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopsight-ai/shopsight-backend/pkg/config"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
)

// Store keeps durable blobs as files in a directory. Used for local
// development and tests in place of the GCS backend.
type Store struct {
	dir string
}

func NewStore(cfg config.StorageConfig, logg *logger.Logger) (*Store, error) {
	if cfg.LocalDir == "" {
		return nil, errors.New("local storage directory is required")
	}
	if err := os.MkdirAll(cfg.LocalDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating local storage directory: %w", err)
	}
	if logg != nil {
		logg.Info(context.Background(), "local blob store initialized")
	}
	return &Store{dir: cfg.LocalDir}, nil
}

func (s *Store) Download(ctx context.Context, object string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.path(object))
}

func (s *Store) Upload(ctx context.Context, object string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp := s.path(object) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(object))
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

func (s *Store) path(object string) string {
	return filepath.Join(s.dir, filepath.Base(object))
}
