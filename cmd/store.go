package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/store"
)

// initStore opens the configured backend. Validation runs first so a
// misconfigured process fails at startup with every missing value named.
func initStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.Path)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Database.URL(), &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}
