package cmd

import (
	"log/slog"
	"path/filepath"

	"github.com/danielroe/directus-typegen/internal/config"
	"github.com/danielroe/directus-typegen/internal/dbmeta"
	"github.com/danielroe/directus-typegen/internal/directus"
	"github.com/danielroe/directus-typegen/internal/pg"
	"github.com/danielroe/directus-typegen/internal/snapshot"
	"github.com/danielroe/directus-typegen/internal/source"
)

// newProvider builds the metadata provider selected by cfg.Source. The
// config has been validated so the required options are present.
func newProvider(s Settings, cfg *config.Config, logger *slog.Logger) source.Provider {
	switch cfg.Source {
	case config.SourceSnapshot:
		path := cfg.Snapshot.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.WorkingDir, path)
		}

		return &snapshot.Provider{Path: path, IncludeSystem: cfg.IncludeSystem}
	case config.SourceSql:
		return newSqlProvider(s, cfg)
	case config.SourceDatabase:
		return &dbmeta.Provider{DatabaseURL: cfg.DatabaseURL, IncludeSystem: cfg.IncludeSystem}
	default:
		return directus.NewClient(directus.ClientOptions{
			URL:           cfg.URL,
			Token:         cfg.Token,
			IncludeSystem: cfg.IncludeSystem,
			Timeout:       cfg.Timeout,
			Logger:        logger,
		})
	}
}

func newSqlProvider(s Settings, cfg *config.Config) *pg.Provider {
	migrations := make([]string, 0, len(cfg.Migrations))
	for _, m := range cfg.Migrations {
		migrations = append(migrations, m.Path)
	}

	return &pg.Provider{
		WorkingDir:    s.WorkingDir,
		Migrations:    migrations,
		IncludeSystem: cfg.IncludeSystem,
	}
}
