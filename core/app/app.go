// Package app wires the storefront services from the environment. Both
// the HTTP server and the standalone GraphQL server start from Build.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shopzone.GO/api"
	"shopzone.GO/config"
	"shopzone.GO/core/cache"
	"shopzone.GO/core/events"
	componentRepo "shopzone.GO/model/repository/component"
	orderRepo "shopzone.GO/model/repository/order"
	productRepo "shopzone.GO/model/repository/product"
	"shopzone.GO/service/cart"
	"shopzone.GO/service/catalog"
	"shopzone.GO/service/checkout"
	"shopzone.GO/service/order"
	"shopzone.GO/service/storefront"
)

// CatalogTTL is how long product and component lists stay cached.
const CatalogTTL = 5 * time.Minute

// App holds the wired services and what must be closed on shutdown.
type App struct {
	Deps      *api.Deps
	Cache     *cache.Cache
	Publisher events.Publisher

	closers []func() error
}

// Build opens the database, migrates it and wires every service. Redis,
// RabbitMQ and Elasticsearch are optional: when unset or unreachable the
// matching feature is turned off and a warning is logged.
func Build(ctx context.Context) (*App, error) {
	log := config.Logger()

	db, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := ping(ctx, db); err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, err
	}
	return BuildWithDB(db, log), nil
}

// BuildWithDB wires the services on an open, migrated db.
func BuildWithDB(db *gorm.DB, log *zap.Logger) *App {
	a := &App{Cache: cache.NewCache()}
	cfg := config.App()

	config.InitRedis()
	log.Info(config.PingRedis())
	var snapshots cart.SnapshotStore
	if config.RedisClient != nil {
		snapshots = cart.NewRedisSnapshotStore(config.RedisClient, cfg.SessionTTL)
		a.closers = append(a.closers, config.RedisClient.Close)
	}

	a.Publisher = events.NopPublisher{}
	if url := config.GetEnv("RABBITMQ_URL", ""); url != "" {
		p, err := events.Dial(url)
		if err != nil {
			log.Warn("rabbitmq unavailable, order events disabled", zap.Error(err))
		} else {
			a.Publisher = p
			a.closers = append(a.closers, p.Close)
		}
	}

	catalogSvc := catalog.NewService(
		productRepo.NewProductRepository(db),
		componentRepo.NewComponentRepository(db),
		a.Cache, CatalogTTL, log,
	)
	if search, err := catalog.NewSearchServiceFromEnv(); err != nil {
		log.Warn("elasticsearch unavailable, using in-memory search", zap.Error(err))
	} else if search != nil {
		catalogSvc.WithSearch(search)
	}

	orders := order.NewService(orderRepo.NewOrderRepository(db), a.Publisher, log)
	sessions := storefront.NewManager(a.Cache, storefront.Options{
		TTL:       cfg.SessionTTL,
		Snapshots: snapshots,
		Placer:    orders,
		Rates:     checkout.RatesFromConfig(cfg),
		Log:       log,
	})

	a.Deps = &api.Deps{DB: db, Catalog: catalogSvc, Sessions: sessions, Log: log}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}
	return a
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	return nil
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}
