package pg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielroe/directus-typegen/internal/model"
	"github.com/danielroe/directus-typegen/internal/source"
	assert "github.com/stretchr/testify/require"
)

func TestFetchCollections(t *testing.T) {
	p := &Provider{
		WorkingDir: "testdata",
		Migrations: []string{"migrations/*.sql"},
	}

	got, err := p.FetchCollections(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, []model.Collection{
		{
			Name: "articles",
			Fields: []model.Field{
				{Field: "id", Type: "integer", Schema: &model.FieldSchema{DataType: "integer", PrimaryKey: true}},
				{Field: "title", Type: "string", Schema: &model.FieldSchema{DataType: "character varying"}},
				{Field: "content", Type: "text", Schema: &model.FieldSchema{DataType: "text"}},
				{Field: "published", Type: "boolean", Schema: &model.FieldSchema{DataType: "boolean"}},
				{Field: "tags", Type: "unknown", Schema: &model.FieldSchema{DataType: "ARRAY", IsNullable: true}},
				{Field: "created_at", Type: "timestamp", Schema: &model.FieldSchema{DataType: "timestamp with time zone"}},
				{Field: "metadata", Type: "json", Schema: &model.FieldSchema{DataType: "jsonb", IsNullable: true}},
				{Field: "price", Type: "decimal", Schema: &model.FieldSchema{DataType: "numeric", IsNullable: true}},
			},
		},
		{
			Name: "settings",
			Fields: []model.Field{
				{Field: "id", Type: "integer", Schema: &model.FieldSchema{DataType: "integer", PrimaryKey: true}},
				{Field: "site_name", Type: "text", Schema: &model.FieldSchema{DataType: "text"}},
			},
		},
	}, got)
}

func TestFetchCollectionsIncludeSystem(t *testing.T) {
	p := &Provider{
		WorkingDir:    "testdata",
		Migrations:    []string{"migrations/00001_init.sql"},
		IncludeSystem: true,
	}

	got, err := p.FetchCollections(context.Background())
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, "directus_users", got[2].Name)
	assert.Equal(t, "uuid", got[2].Fields[0].Schema.DataType)
}

func TestFetchCollectionsBrokenMigration(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "001.sql"), []byte("ALTER TABLE missing ADD COLUMN x INT;"), 0600))

	p := &Provider{WorkingDir: dir, Migrations: []string{"*.sql"}}
	_, err := p.FetchCollections(context.Background())

	var fetchErr *source.FetchError
	assert.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "migrate "+filepath.Join(dir, "001.sql"), fetchErr.Op)
}

func TestFetchCollectionsBadGlob(t *testing.T) {
	p := &Provider{WorkingDir: "testdata", Migrations: []string{"[.sql"}}
	_, err := p.FetchCollections(context.Background())

	var fetchErr *source.FetchError
	assert.True(t, errors.As(err, &fetchErr))
	assert.ErrorIs(t, err, filepath.ErrBadPattern)
}

func TestPatterns(t *testing.T) {
	p := &Provider{WorkingDir: "/project", Migrations: []string{"migrations/*.sql", "/abs/*.sql"}}
	assert.Equal(t, []string{"/project/migrations/*.sql", "/abs/*.sql"}, p.Patterns())
}
