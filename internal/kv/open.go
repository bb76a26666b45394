package kv

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/config"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/db"
)

// Open builds the backend selected by cfg.StoreBackend. The returned func
// releases its connections.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		store, err := DialRedis(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.BackendMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		return openSQL(gormDB)
	case config.BackendMemory:
		return NewMemoryStore(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("kv: unknown backend %q", cfg.StoreBackend)
	}
}

// openSQL migrates the kv table and hands back the pool's Close. The pool is
// released when migration fails.
func openSQL(gormDB *gorm.DB) (Store, func() error, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("mysql handle: %w", err)
	}
	store := NewSQL(gormDB)
	if err := store.Migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return store, sqlDB.Close, nil
}
