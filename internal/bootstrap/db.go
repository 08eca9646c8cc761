package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/config"
	httpapi "github.com/snapcourse/snapcourse-backend/internal/api/http"
	courseservice "github.com/snapcourse/snapcourse-backend/internal/courses/service"
	"github.com/snapcourse/snapcourse-backend/internal/maintenance"
	projectservice "github.com/snapcourse/snapcourse-backend/internal/projects/service"
	"github.com/snapcourse/snapcourse-backend/internal/storage/migrations"
	"github.com/snapcourse/snapcourse-backend/internal/storage/postgres"
	"github.com/snapcourse/snapcourse-backend/internal/storage/sqlite"
	userservice "github.com/snapcourse/snapcourse-backend/internal/users/service"
)

// Storage is the set of repositories backed by the configured database.
type Storage struct {
	Users    userservice.Repository
	Projects projectservice.Repository
	Courses  courseservice.Repository
	Purger   maintenance.Purger
	Health   httpapi.Pinger
	Close    func() error
}

type DBOptions struct {
	ConnectTO time.Duration
	PingTO    time.Duration
}

// OpenStorage migrates and opens the database selected by DB_DRIVER.
func OpenStorage(ctx context.Context, cfg *config.DatabaseConfig, opt DBOptions, logger *zap.Logger) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if err := migrations.Up(migrations.DialectPostgres, postgres.DSN(cfg), logger); err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg, postgres.PoolOptions{ConnectTO: opt.ConnectTO, PingTO: opt.PingTO})
		if err != nil {
			return nil, err
		}
		store := postgres.NewStore(pool)
		logger.Info("Connected to postgres",
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port),
			zap.String("database", cfg.Name))
		return &Storage{
			Users:    store.Users(),
			Projects: store.Projects(),
			Courses:  store.Courses(),
			Purger:   store,
			Health:   store,
			Close:    store.Close,
		}, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Opened sqlite database", zap.String("path", cfg.SQLitePath))
		return &Storage{
			Users:    store.Users(),
			Projects: store.Projects(),
			Courses:  store.Courses(),
			Purger:   store,
			Health:   store,
			Close:    store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}
