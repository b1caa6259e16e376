package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/danielroe/directus-typegen/internal/config"
	"github.com/danielroe/directus-typegen/internal/gen"
	"github.com/danielroe/directus-typegen/internal/model"
	"github.com/danielroe/directus-typegen/internal/source"
	"github.com/danielroe/directus-typegen/internal/watch"
)

type Settings struct {
	WorkingDir string
	Args       []string
	LookupEnv  func(string) (string, bool)
	Stdout     io.Writer
	Stderr     io.Writer
}

func (s Settings) withDefaults() Settings {
	if s.LookupEnv == nil {
		s.LookupEnv = func(string) (string, bool) { return "", false }
	}

	if s.Stdout == nil {
		s.Stdout = io.Discard
	}

	if s.Stderr == nil {
		s.Stderr = io.Discard
	}

	return s
}

func Run(ctx context.Context, s Settings) error {
	s = s.withDefaults()

	cfg, err := config.Load(s.WorkingDir, s.Args, s.LookupEnv)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(s.Stderr, "Usage: directus-typegen [flags]")
		config.Usage(s.Stderr)
		return nil
	}

	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, s.Stderr)
	if err != nil {
		return err
	}

	r := &runner{
		settings: s,
		config:   cfg,
		logger:   logger,
		provider: newProvider(s, cfg, logger),
	}

	if !cfg.Watch {
		return r.generate(ctx)
	}

	return r.watch(ctx)
}

type runner struct {
	settings Settings
	config   *config.Config
	logger   *slog.Logger
	provider source.Provider
}

// generate runs one fetch, render and write cycle. Nothing is written
// unless every step succeeds.
func (r *runner) generate(ctx context.Context) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	collections, err := r.provider.FetchCollections(ctx)
	if err != nil {
		var fetchErr *source.FetchError
		if errors.As(err, &fetchErr) && fetchErr.Unauthorized() {
			r.logger.Warn("directus rejected the token, check DIRECTUS_TOKEN or the token option")
		}

		return fmt.Errorf("failed to fetch collections: %w", err)
	}

	text, err := r.render(collections)
	if err != nil {
		return err
	}

	if err := r.write(text); err != nil {
		return err
	}

	r.logger.Info("generated types",
		"source", r.config.Source,
		"format", r.config.Format,
		"collections", len(collections),
		"output", r.config.Output,
		"duration", time.Since(start),
	)

	return nil
}

func (r *runner) render(collections []model.Collection) (string, error) {
	opts := gen.Options{
		SchemaName:            r.config.SchemaName,
		SingularizeSingletons: r.config.SingularizeSingletons,
		Package:               r.config.Package.Name,
	}

	switch r.config.Format {
	case config.FormatGo:
		return gen.Go(collections, opts)
	default:
		return gen.TypeScript(collections, opts)
	}
}

func (r *runner) write(text string) error {
	switch r.config.Output {
	case "":
		return nil
	case config.OutputStdout:
		if _, err := io.WriteString(r.settings.Stdout, text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		return nil
	default:
		return gen.WriteFile(r.path(r.config.Output), text)
	}
}

func (r *runner) watch(ctx context.Context) error {
	if err := r.generate(ctx); err != nil {
		r.logger.Error("generation failed", "error", err)
	}

	opts, err := r.watchOptions()
	if err != nil {
		return err
	}

	r.logger.Info("watching for changes", "files", opts.Files, "patterns", opts.Patterns)

	return watch.Run(ctx, opts, r.generate)
}

func (r *runner) watchOptions() (watch.Options, error) {
	opts := watch.Options{Logger: r.logger}

	switch r.config.Source {
	case config.SourceSnapshot:
		opts.Files = []string{r.path(r.config.Snapshot.Path)}
	case config.SourceSql:
		// Globs rather than their current matches so that new migrations
		// trigger a rebuild.
		opts.Patterns = newSqlProvider(r.settings, r.config).Patterns()
	default:
		return opts, fmt.Errorf(`watch is not supported for source "%s"`, r.config.Source)
	}

	return opts, nil
}

func (r *runner) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(r.settings.WorkingDir, p)
}
