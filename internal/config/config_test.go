package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_MAX_OPEN_CONNS", "IMPORT_FILE", "IMPORT_BUCKET", "AWS_BUCKET", "IMPORT_STRICT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Equal(t, "movies.csv", cfg.Import.File)
	assert.False(t, cfg.Import.Strict)
	assert.False(t, cfg.Import.DedupeLinks)
	assert.False(t, cfg.UsesObjectStorage())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_QUERY_TIMEOUT", "2s")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("IMPORT_STRICT", "1")
	t.Setenv("IMPORT_DEDUPE_LINKS", "true")
	t.Setenv("IMPORT_BUCKET", "")
	t.Setenv("AWS_BUCKET", "imports")

	cfg := Load()

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Import.Strict)
	assert.True(t, cfg.Import.DedupeLinks)
	assert.Equal(t, "imports", cfg.Import.Bucket)
	assert.True(t, cfg.UsesObjectStorage())
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("DB_QUERY_TIMEOUT", "soon")
	t.Setenv("IMPORT_STRICT", "maybe")

	cfg := Load()

	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.False(t, cfg.Import.Strict)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Host: "localhost", DBName: "movies"},
			Import:   ImportConfig{File: "movies.csv"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "local file", mutate: func(*Config) {}},
		{name: "missing host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "DB_HOST"},
		{name: "missing file", mutate: func(c *Config) { c.Import.File = "" }, wantErr: "IMPORT_FILE"},
		{
			name: "bucket without credentials",
			mutate: func(c *Config) {
				c.Import.Bucket = "imports"
				c.MinIO.Endpoint = "localhost:9000"
			},
			wantErr: "AWS_ACCESS_KEY_ID",
		},
		{
			name: "bucket with credentials",
			mutate: func(c *Config) {
				c.Import.Bucket = "imports"
				c.MinIO = MinIOConfig{Endpoint: "localhost:9000", AccessKeyID: "key", SecretAccessKey: "secret"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", DBName: "movies", SSLMode: "require"}
	assert.Equal(t,
		"host=db port=5433 user=u password=p dbname=movies sslmode=require TimeZone=UTC connect_timeout=10",
		cfg.DSN(),
	)
}
