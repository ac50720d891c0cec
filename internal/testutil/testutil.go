// Package testutil provides an in-memory store and quiet logger for tests.
package testutil

import (
	"fmt"
	"io"
	"testing"
	"time"

	"movie-loader/internal/config"
	"movie-loader/internal/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// NewTestDatabase opens a private in-memory SQLite store with the load schema
// migrated. A single connection keeps the memory database alive.
func NewTestDatabase(t *testing.T) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), config.DatabaseConfig{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		QueryTimeout:    5 * time.Second,
		AutoMigrate:     true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func NewTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// MoviesHeader is the header row of the movies CSV.
const MoviesHeader = "Rank,Title,Genre,Description,Director,Actors,Year,Runtime (Minutes),Rating,Votes,Revenue (Millions),Metascore\n"
