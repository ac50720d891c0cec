package database

import (
	"context"
	"fmt"
	"time"

	"movie-loader/internal/config"
	"movie-loader/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	*gorm.DB
	config config.DatabaseConfig
}

// Connect opens the PostgreSQL store described by cfg.
func Connect(cfg config.DatabaseConfig) (*Database, error) {
	return Open(postgres.Open(cfg.DSN()), cfg)
}

// Open wraps any gorm dialector, which lets tests run against SQLite.
func Open(dialector gorm.Dialector, cfg config.DatabaseConfig) (*Database, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
		PrepareStmt:                              true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		logrus.WithError(err).Error("Failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// The loader is a single sequential writer, so one connection is the default.
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	database := &Database{
		DB:     db,
		config: cfg,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := database.HealthCheck(ctx); err != nil {
		logrus.WithError(err).Error("Failed to ping database")
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"dialect":        db.Dialector.Name(),
		"max_open_conns": cfg.MaxOpenConns,
	}).Info("Database connection established successfully")

	if cfg.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			logrus.WithError(err).Error("Failed to run auto migration")
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to run auto migration: %w", err)
		}
	}

	return database, nil
}

func (d *Database) GetQueryTimeout() time.Duration {
	return d.config.QueryTimeout
}

// HealthCheck pings the store, giving up after three seconds.
func (d *Database) HealthCheck(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Tables lists the load schema, reference tables before the join tables
// that point at them.
func Tables() []interface{} {
	return []interface{}{
		&models.Movie{},
		&models.Genre{},
		&models.Actor{},
		&models.Director{},
		&models.MovieGenre{},
		&models.MovieActor{},
		&models.MovieDirector{},
	}
}

// AutoMigrate creates the load schema. Production stores are expected to
// have it already.
func AutoMigrate(db *gorm.DB) error {
	logrus.Info("Creating load schema...")

	if err := db.AutoMigrate(Tables()...); err != nil {
		return err
	}

	logrus.WithField("tables", len(Tables())).Info("Load schema ready")
	return nil
}
