package gen

import (
	"github.com/danielroe/directus-typegen/internal/model"
	"github.com/danielroe/directus-typegen/internal/naming"
)

const defaultSchemaName = "Schema"

type Options struct {
	// SchemaName is the name of the aggregate type mapping collection keys
	// to collection types. Defaults to "Schema".
	SchemaName string

	// SingularizeSingletons makes singleton collections go through
	// naming.Singularize too. By default only non-singletons do.
	SingularizeSingletons bool

	// Package is the package clause of the Go output.
	Package string
}

func (o Options) schemaName() string {
	if o.SchemaName == "" {
		return defaultSchemaName
	}

	return o.SchemaName
}

type namedCollection struct {
	model.Collection
	TypeName string
}

// TypeName returns the type name for a collection: the pascal cased
// collection name, singularized unless the collection is a singleton.
func TypeName(c model.Collection, opts Options) string {
	if c.Singleton && !opts.SingularizeSingletons {
		return naming.PascalCase(c.Name)
	}

	return naming.PascalCase(naming.Singularize(c.Name))
}

// nameCollections resolves the type names of all collections in order using
// `toIdent` to turn a type name into a target language identifier. Fails
// with a `CollisionError` if two collections end up with the same name.
func nameCollections(collections []model.Collection, opts Options, toIdent func(string) string) ([]namedCollection, error) {
	schemaName := toIdent(opts.schemaName())
	owners := make(map[string]string, len(collections))
	out := make([]namedCollection, 0, len(collections))

	for _, c := range collections {
		typeName := toIdent(TypeName(c, opts))

		if typeName == schemaName {
			return nil, &CollisionError{TypeName: typeName, Collections: []string{c.Name}}
		}

		if owner, ok := owners[typeName]; ok {
			return nil, &CollisionError{TypeName: typeName, Collections: []string{owner, c.Name}}
		}

		owners[typeName] = c.Name
		out = append(out, namedCollection{Collection: c, TypeName: typeName})
	}

	return out, nil
}
