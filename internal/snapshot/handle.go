package snapshot

import (
	"context"
	"errors"
	"os"

	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// ErrReleased is returned when a handle is used after release.
var ErrReleased = errors.New("snapshot handle already released")

// Handle is a mutable in-memory view of the store, materialized from a
// durable blob for the duration of one request. It is not safe for use by
// concurrent goroutines and is unusable after release.
type Handle struct {
	conn     *gorm.DB
	path     string
	mutated  bool
	released bool
}

// DB returns the underlying GORM connection.
func (h *Handle) DB() *gorm.DB {
	return h.conn
}

// MarkMutated flags the handle so the gateway persists it on release.
func (h *Handle) MarkMutated() {
	h.mutated = true
}

func (h *Handle) Mutated() bool {
	return h.mutated
}

// WithTx executes fn inside a transaction, rolling back on error/panic.
func (h *Handle) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if h.released {
		return ErrReleased
	}

	tx := h.conn.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// Close tears down the embedded engine and removes the staged file without
// persisting anything.
func (h *Handle) Close() error {
	if h == nil || h.released {
		return nil
	}
	h.released = true

	var errs error
	if sqlDB, err := h.conn.DB(); err != nil {
		errs = multierr.Append(errs, err)
	} else if err := sqlDB.Close(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		errs = multierr.Append(errs, err)
	}
	return errs
}

// seal closes the engine but keeps the staged file for the codec to read.
func (h *Handle) seal() error {
	if h.released {
		return ErrReleased
	}
	h.released = true

	sqlDB, err := h.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
