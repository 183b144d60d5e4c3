package source

import (
	"context"
	"log/slog"

	"github.com/JonMunkholm/ModCompare/internal/config"
	"github.com/JonMunkholm/ModCompare/internal/core"
)

// Open builds the source described by cfg. The returned close function
// releases the database pool, if any, and is never nil.
func Open(ctx context.Context, cfg config.SourceConfig) (core.Source, func(), error) {
	if cfg.UsesDatabase() {
		pool, err := OpenPool(ctx, cfg.DatabaseURL, cfg.MaxConns)
		if err != nil {
			return nil, func() {}, core.NewDataLoadError("postgres:"+cfg.Table, err)
		}
		slog.Info("using postgres source", "table", cfg.Table)
		return NewPostgresSource(pool, cfg.Table), pool.Close, nil
	}

	path, err := Discover(cfg.DataDir, cfg.File)
	if err != nil {
		return nil, func() {}, err
	}
	src := NewFileSource(path)
	slog.Info("using file source", "path", src.Path())
	return src, func() {}, nil
}
