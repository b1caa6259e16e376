package pg

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/danielroe/directus-typegen/internal/model"
	"github.com/danielroe/directus-typegen/internal/source"
)

const providerName = "sql migrations"

// Provider derives collections from SQL migration files instead of asking
// Directus. Files matched by each glob are applied in lexical order, globs
// in the order given.
type Provider struct {
	WorkingDir    string
	Migrations    []string
	IncludeSystem bool
}

func (p *Provider) FetchCollections(ctx context.Context) ([]model.Collection, error) {
	files, err := p.Files()
	if err != nil {
		return nil, &source.FetchError{Provider: providerName, Op: "glob", Err: err}
	}

	db := NewDB()
	for _, mf := range files {
		if err := ctx.Err(); err != nil {
			return nil, &source.FetchError{Provider: providerName, Op: "migrate " + mf, Err: err}
		}

		if err := MigrateFile(db, mf); err != nil {
			return nil, &source.FetchError{Provider: providerName, Op: "migrate " + mf, Err: err}
		}
	}

	return Collections(db, p.IncludeSystem), nil
}

// Patterns returns the provider's migration globs resolved against the
// working directory.
func (p *Provider) Patterns() []string {
	out := make([]string, 0, len(p.Migrations))

	for _, m := range p.Migrations {
		if filepath.IsAbs(m) {
			out = append(out, m)
		} else {
			out = append(out, filepath.Join(p.WorkingDir, m))
		}
	}

	return out
}

// Files returns the migration files currently matched by the provider's
// globs.
func (p *Provider) Files() ([]string, error) {
	out := make([]string, 0)

	for i, pattern := range p.Patterns() {
		files, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf(`failed to resolve migration files using glob "%s": %w`, p.Migrations[i], err)
		}

		out = append(out, files...)
	}

	return out, nil
}
