package commands

import (
	"context"
	"fmt"

	"divequote/internal/catalog"
	"divequote/internal/config"
	"divequote/internal/pricing"
	"divequote/internal/storage"

	"go.uber.org/zap"
)

// loadSettings reads the catalog from the configured source.
func loadSettings(ctx context.Context, app *appContext) (*catalog.Settings, error) {
	switch app.cfg.Catalog.Source {
	case config.CatalogFile:
		app.logger.Info("Loading catalog file", zap.String("path", app.cfg.Catalog.File))
		return catalog.LoadFile(app.cfg.Catalog.File)

	case config.CatalogPostgres:
		pg, err := storage.NewPostgresStorage(ctx, app.cfg.Database, app.logger)
		if err != nil {
			return nil, err
		}
		defer pg.Close()
		return catalog.FromSource(ctx, pg)

	default:
		return catalog.Builtin(), nil
	}
}

func buildEngine(ctx context.Context, app *appContext, composition string) (*pricing.Engine, error) {
	settings, err := loadSettings(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if composition == "" {
		composition = app.cfg.Pricing.Composition
	}
	c, err := pricing.ParseComposition(composition)
	if err != nil {
		return nil, err
	}
	return settings.NewEngine(c), nil
}
