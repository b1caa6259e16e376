// Package dbmeta reads collection metadata straight from the Postgres
// database of a Directus instance: the directus_collections and
// directus_fields tables combined with information_schema.
package dbmeta

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/danielroe/directus-typegen/internal/directus"
	"github.com/danielroe/directus-typegen/internal/model"
	"github.com/danielroe/directus-typegen/internal/source"
)

const providerName = "directus database"

const collectionsSql = `
SELECT t.table_name, COALESCE(c.singleton, false)
FROM information_schema.tables t
LEFT JOIN directus_collections c ON c.collection = t.table_name
WHERE t.table_schema = current_schema() AND t.table_type = 'BASE TABLE'
ORDER BY t.table_name`

const columnsSql = `
SELECT
	col.table_name,
	col.column_name,
	col.data_type,
	col.is_nullable = 'YES',
	EXISTS (
		SELECT 1
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = tc.constraint_name
			AND kcu.table_schema = tc.table_schema
			AND kcu.table_name = tc.table_name
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND tc.table_schema = col.table_schema
			AND tc.table_name = col.table_name
			AND kcu.column_name = col.column_name
	),
	f.id IS NOT NULL,
	COALESCE(f.special, ''),
	COALESCE(f.interface, ''),
	COALESCE(f.hidden, false),
	COALESCE(f.required, false),
	COALESCE(f.note, ''),
	f.sort
FROM information_schema.columns col
LEFT JOIN directus_fields f ON f.collection = col.table_name AND f.field = col.column_name
WHERE col.table_schema = current_schema()
ORDER BY col.table_name, col.ordinal_position`

// aliasesSql selects fields that exist only in Directus (o2m, m2m,
// presentation fields and the like).
const aliasesSql = `
SELECT
	f.collection,
	f.field,
	COALESCE(f.special, ''),
	COALESCE(f.interface, ''),
	COALESCE(f.hidden, false),
	COALESCE(f.required, false),
	COALESCE(f.note, ''),
	f.sort
FROM directus_fields f
WHERE NOT EXISTS (
	SELECT 1
	FROM information_schema.columns col
	WHERE col.table_schema = current_schema()
		AND col.table_name = f.collection
		AND col.column_name = f.field
)
ORDER BY f.collection, f.id`

type Provider struct {
	DatabaseURL   string
	IncludeSystem bool
}

func (p *Provider) FetchCollections(ctx context.Context) ([]model.Collection, error) {
	db, err := Open(ctx, p.DatabaseURL)
	if err != nil {
		return nil, &source.FetchError{Provider: providerName, Op: "connect", Err: err}
	}
	defer db.Close()

	return Read(ctx, db, p.IncludeSystem)
}

// Read loads the collections from an open Directus database.
func Read(ctx context.Context, db *sql.DB, includeSystem bool) ([]model.Collection, error) {
	collections, err := readCollections(ctx, db)
	if err != nil {
		return nil, &source.FetchError{Provider: providerName, Op: "read collections", Err: err}
	}

	fields, err := readColumns(ctx, db)
	if err != nil {
		return nil, &source.FetchError{Provider: providerName, Op: "read columns", Err: err}
	}

	aliases, err := readAliases(ctx, db)
	if err != nil {
		return nil, &source.FetchError{Provider: providerName, Op: "read alias fields", Err: err}
	}

	return directus.Assemble(collections, append(fields, aliases...), includeSystem), nil
}

func readCollections(ctx context.Context, db *sql.DB) ([]directus.Collection, error) {
	rows, err := db.QueryContext(ctx, collectionsSql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []directus.Collection
	for rows.Next() {
		var c directus.Collection
		var singleton bool

		if err := rows.Scan(&c.Collection, &singleton); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}

		c.Meta = &directus.CollectionMeta{Singleton: singleton}
		c.Schema = &directus.CollectionSchema{Name: c.Collection}
		out = append(out, c)
	}

	return out, rows.Err()
}

func readColumns(ctx context.Context, db *sql.DB) ([]directus.Field, error) {
	rows, err := db.QueryContext(ctx, columnsSql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []directus.Field
	for rows.Next() {
		var f directus.Field
		var schema directus.FieldSchema
		var meta directus.FieldMeta
		var hasMeta bool
		var special string
		var sort sql.NullInt64

		if err := rows.Scan(
			&f.Collection,
			&f.Field,
			&schema.DataType,
			&schema.IsNullable,
			&schema.IsPrimaryKey,
			&hasMeta,
			&special,
			&meta.Interface,
			&meta.Hidden,
			&meta.Required,
			&meta.Note,
			&sort,
		); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}

		f.Schema = &schema
		f.Type = fieldType(special, schema.DataType)

		if hasMeta {
			meta.Sort = sortValue(sort)
			f.Meta = &meta
		}

		out = append(out, f)
	}

	return out, rows.Err()
}

func readAliases(ctx context.Context, db *sql.DB) ([]directus.Field, error) {
	rows, err := db.QueryContext(ctx, aliasesSql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []directus.Field
	for rows.Next() {
		var f directus.Field
		var meta directus.FieldMeta
		var special string
		var sort sql.NullInt64

		if err := rows.Scan(
			&f.Collection,
			&f.Field,
			&special,
			&meta.Interface,
			&meta.Hidden,
			&meta.Required,
			&meta.Note,
			&sort,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alias field: %w", err)
		}

		meta.Sort = sortValue(sort)
		f.Type = fieldType(special, "")
		f.Meta = &meta
		out = append(out, f)
	}

	return out, rows.Err()
}

// fieldType derives the Directus field type from the comma separated
// `special` flags of a field, falling back to its column's data type.
func fieldType(special string, dataType string) string {
	for _, s := range strings.Split(special, ",") {
		switch strings.TrimSpace(s) {
		case "cast-json":
			return model.TypeJson
		case "cast-csv":
			return model.TypeCsv
		case "alias", "o2m", "m2m", "m2a", "no-data":
			return model.TypeAlias
		}
	}

	switch dataType {
	case "json", "jsonb":
		return model.TypeJson
	case "":
		return model.TypeAlias
	}

	return dataType
}

func sortValue(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}

	i := int(v.Int64)
	return &i
}
