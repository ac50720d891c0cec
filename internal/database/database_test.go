package database

import (
	"context"
	"testing"
	"time"

	"movie-loader/internal/config"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(migrate bool) config.DatabaseConfig {
	return config.DatabaseConfig{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		QueryTimeout:    2 * time.Second,
		AutoMigrate:     migrate,
	}
}

func TestOpenCreatesLoadSchema(t *testing.T) {
	db, err := Open(sqlite.Open("file:schema?mode=memory&cache=shared"), testConfig(true))
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"movies", "genre_ref", "actor_ref", "director_ref", "movie_genre", "movie_actor", "movie_director"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasColumn("actor_ref", "middle_name"))
	assert.Equal(t, 2*time.Second, db.GetQueryTimeout())
}

func TestOpenWithoutMigration(t *testing.T) {
	db, err := Open(sqlite.Open("file:bare?mode=memory&cache=shared"), testConfig(false))
	require.NoError(t, err)
	defer db.Close()

	assert.False(t, db.Migrator().HasTable("movies"))
}

func TestHealthCheckAfterClose(t *testing.T) {
	db, err := Open(sqlite.Open("file:health?mode=memory&cache=shared"), testConfig(false))
	require.NoError(t, err)

	require.NoError(t, db.HealthCheck(context.Background()))
	require.NoError(t, db.Close())
	assert.Error(t, db.HealthCheck(context.Background()))
}
