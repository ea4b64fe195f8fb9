package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-trade-order-service/internal/config"
	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/cache"
	publisher "github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/postgres/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.OrderConfig
	DB           *gorm.DB
	CacheStore   cache.Store
	Publisher    *publisher.DefaultKafkaPublisher
	Registry     *prometheus.Registry
	Repositories *Repositories
}

type Repositories struct {
	OrderRepo domain.OrderRepository
	UserRepo  domain.UserRepository
}

func InitializeDependencies(cfg *config.OrderConfig) (*Dependencies, error) {
	db := postgres.MustInitDB(cfg)

	store, err := initCacheStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("cache store: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var pub *publisher.DefaultKafkaPublisher
	if cfg.KafkaService.Enabled {
		pub = publisher.NewDefaultKafkaPublisher(cfg.KafkaService.Brokers())
		slog.Info("order events enabled", "brokers", cfg.KafkaService.Brokers(), "topic", cfg.KafkaService.Topic)
	}

	repos := &Repositories{
		OrderRepo: repository.NewDefaultOrderRepository(db),
		UserRepo:  repository.NewDefaultUserRepository(db),
	}

	return &Dependencies{
		Config:       cfg,
		DB:           db,
		CacheStore:   store,
		Publisher:    pub,
		Registry:     registry,
		Repositories: repos,
	}, nil
}

// initCacheStore never fails on an unreachable Redis: the views degrade to
// the order store until it comes back.
func initCacheStore(cfg *config.OrderConfig) (cache.Store, error) {
	switch cfg.Redis.Driver {
	case "memory":
		slog.Info("using in-process cache store")
		return cache.NewMemoryStore(), nil
	case "redis":
		store := cache.NewRedisStore(cache.RedisOptions{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
			OpTimeout:   cfg.Redis.OpTimeout,
		})
		if err := store.Ping(context.Background()); err != nil {
			slog.Warn("redis is unreachable, cache reads will fall back to the database", "addr", cfg.Redis.Addr, "error", err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown cache driver %q", cfg.Redis.Driver)
}

func (d *Dependencies) PingDB(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Dependencies) Close() error {
	var errs []error
	if d.Publisher != nil {
		if err := d.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("kafka publisher: %w", err))
		}
	}
	if err := d.CacheStore.Close(); err != nil {
		errs = append(errs, fmt.Errorf("cache store: %w", err))
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}
