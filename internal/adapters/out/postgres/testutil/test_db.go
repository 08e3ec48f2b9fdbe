// Package testutil opens throwaway databases for repository and pipeline
// tests.
package testutil

import (
	"testing"

	"marketplace/internal/adapters/out/postgres"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type options struct {
	autoMigrate bool
}

// Option tunes MustOpenTestDB.
type Option func(*options)

// WithAutoMigrate creates every repository table.
func WithAutoMigrate() Option {
	return func(o *options) {
		o.autoMigrate = true
	}
}

// MustOpenTestDB returns an isolated in-memory SQLite database that is closed
// when the test ends.
func MustOpenTestDB(t *testing.T, opts ...Option) *gorm.DB {
	t.Helper()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	db, err := postgres.Open(postgres.Config{Driver: postgres.DriverSQLite})
	require.NoError(t, err)

	if o.autoMigrate {
		require.NoError(t, postgres.AutoMigrate(db))
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
