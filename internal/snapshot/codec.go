package snapshot

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shopsight-ai/shopsight-backend/pkg/config"
	pkgerrors "github.com/shopsight-ai/shopsight-backend/pkg/errors"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
	"github.com/shopsight-ai/shopsight-backend/pkg/migrate"
)

// Tables that must be present for a blob to count as a store snapshot.
var requiredTables = []string{"customers", "products", "orders", "order_items"}

// Codec stages durable blobs as local SQLite files and owns the embedded
// engine lifecycle: every handle it produces is opened here and torn down on
// release. It carries no per-request state and is safe to share.
type Codec struct {
	workDir string
	logg    *logger.Logger
}

func NewCodec(cfg config.SnapshotConfig, logg *logger.Logger) (*Codec, error) {
	workDir := cfg.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot work dir: %w", err)
	}
	return &Codec{workDir: workDir, logg: logg}, nil
}

// Decode materializes a handle from a durable blob. Empty or malformed blobs
// fail with CORRUPT_SNAPSHOT rather than producing a partially usable handle.
// The prediction-table migration runs here so the schema invariant holds from
// the moment the handle exists.
func (c *Codec) Decode(ctx context.Context, blob []byte) (*Handle, error) {
	if len(blob) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeCorruptSnapshot, "snapshot blob is empty")
	}

	path := c.stagePath()
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "staging snapshot file")
	}

	handle, err := c.open(ctx, path)
	if err != nil {
		_ = os.Remove(path)
		return nil, pkgerrors.Wrap(pkgerrors.CodeCorruptSnapshot, err, "decoding snapshot")
	}

	if err := c.verify(ctx, handle); err != nil {
		closeErr := handle.Close()
		return nil, pkgerrors.Wrap(pkgerrors.CodeCorruptSnapshot, multierr.Append(err, closeErr), "verifying snapshot")
	}

	if err := c.migrateUp(ctx, handle); err != nil {
		closeErr := handle.Close()
		return nil, pkgerrors.Wrap(pkgerrors.CodeCorruptSnapshot, multierr.Append(err, closeErr), "migrating snapshot")
	}

	return handle, nil
}

// Encode seals the handle and returns the snapshot bytes. The handle is
// unusable afterwards; the staged file is removed.
func (c *Codec) Encode(ctx context.Context, h *Handle) ([]byte, error) {
	if h == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "nil snapshot handle")
	}
	if err := h.seal(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sealing snapshot")
	}

	blob, err := os.ReadFile(h.path)
	removeErr := os.Remove(h.path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, multierr.Append(err, removeErr), "reading snapshot file")
	}
	return blob, nil
}

// Create builds a fresh, empty store with the full operational schema.
// Used by the seeding tool and tests; production snapshots arrive seeded.
func (c *Codec) Create(ctx context.Context) (*Handle, error) {
	path := c.stagePath()

	handle, err := c.open(ctx, path)
	if err != nil {
		_ = os.Remove(path)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating snapshot")
	}

	for _, ddl := range schemaDDL {
		if err := handle.DB().WithContext(ctx).Exec(ddl).Error; err != nil {
			closeErr := handle.Close()
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, multierr.Append(err, closeErr), "applying schema")
		}
	}

	if err := c.migrateUp(ctx, handle); err != nil {
		closeErr := handle.Close()
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, multierr.Append(err, closeErr), "migrating new snapshot")
	}

	return handle, nil
}

func (c *Codec) open(_ context.Context, path string) (*Handle, error) {
	dsn := fmt.Sprintf("file:%s?_fk=1&_busy_timeout=5000", path)

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening embedded store: %w", err)
	}

	return &Handle{conn: conn, path: path}, nil
}

func (c *Codec) verify(ctx context.Context, h *Handle) error {
	var count int64
	err := h.DB().WithContext(ctx).
		Raw(
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN (?, ?, ?, ?)",
			requiredTables[0], requiredTables[1], requiredTables[2], requiredTables[3],
		).
		Scan(&count).Error
	if err != nil {
		return fmt.Errorf("inspecting snapshot schema: %w", err)
	}
	if count != int64(len(requiredTables)) {
		return fmt.Errorf("snapshot is missing required tables (%d of %d present)", count, len(requiredTables))
	}
	return nil
}

func (c *Codec) migrateUp(ctx context.Context, h *Handle) error {
	sqlDB, err := h.DB().DB()
	if err != nil {
		return err
	}
	return migrate.Up(ctx, sqlDB)
}

func (c *Codec) stagePath() string {
	return filepath.Join(c.workDir, fmt.Sprintf("snapshot-%s.db", uuid.NewString()))
}
