package gen

import (
	"bytes"
	"fmt"

	"github.com/danielroe/directus-typegen/internal/field"
	"github.com/danielroe/directus-typegen/internal/model"
	"github.com/danielroe/directus-typegen/internal/naming"
	"github.com/dave/jennifer/jen"
)

const (
	defaultPackage = "schema"
	tagJson        = "json"
	tagOmitEmpty   = ",omitempty"
	headerComment  = "Code generated by directus-typegen. DO NOT EDIT."
)

// Go generates one struct per collection and an aggregate schema struct.
// Optional and nullable members become pointers unless their Go type is
// already nilable.
func Go(collections []model.Collection, opts Options) (string, error) {
	named, err := nameCollections(collections, opts, naming.GoIdentifier)
	if err != nil {
		return "", err
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = defaultPackage
	}

	f := jen.NewFile(pkg)
	f.HeaderComment(headerComment)

	for _, c := range named {
		genStruct(f, c)
	}

	genSchemaStruct(f, naming.GoIdentifier(opts.schemaName()), named)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render Go code: %w", err)
	}

	return buf.String(), nil
}

func genStruct(f *jen.File, c namedCollection) {
	ids := newIdentifiers()

	f.Type().Id(c.TypeName).StructFunc(func(g *jen.Group) {
		for _, fd := range c.Fields {
			cl := field.Classify(fd)
			if !cl.Include {
				continue
			}

			if doc := field.DocText(fd); doc != "" {
				g.Comment(doc)
			}

			g.Id(ids.next(fd.Field)).Add(goType(cl)).Tag(jsonTag(fd.Field, cl.Optional))
		}
	})
	f.Line()
}

func genSchemaStruct(f *jen.File, name string, named []namedCollection) {
	ids := newIdentifiers()

	f.Type().Id(name).StructFunc(func(g *jen.Group) {
		for _, c := range named {
			t := jen.Id(c.TypeName)
			if !c.Singleton {
				t = jen.Index().Id(c.TypeName)
			}

			g.Id(ids.next(c.Name)).Add(t).Tag(jsonTag(c.Name, false))
		}
	})
}

func goType(cl field.Classification) *jen.Statement {
	var t *jen.Statement
	nilable := false

	switch cl.Kind {
	case field.KindInteger:
		t = jen.Int64()
	case field.KindNumber:
		t = jen.Float64()
	case field.KindBoolean:
		t = jen.Bool()
	case field.KindString:
		t = jen.String()
	case field.KindJson:
		t, nilable = jen.Map(jen.String()).Id("any"), true
	case field.KindCsv:
		t, nilable = jen.Index().String(), true
	default:
		t, nilable = jen.Id("any"), true
	}

	if (cl.Optional || cl.Nullable) && !nilable {
		return jen.Op("*").Add(t)
	}

	return t
}

func jsonTag(name string, omitEmpty bool) map[string]string {
	if omitEmpty {
		return map[string]string{tagJson: name + tagOmitEmpty}
	}

	return map[string]string{tagJson: name}
}

// identifiers hands out unique Go identifiers within one struct.
type identifiers struct {
	used map[string]bool
}

func newIdentifiers() *identifiers {
	return &identifiers{used: make(map[string]bool)}
}

func (ids *identifiers) next(name string) string {
	id := naming.GoIdentifier(name)
	candidate := id

	for i := 2; ids.used[candidate]; i += 1 {
		candidate = fmt.Sprintf("%s%d", id, i)
	}

	ids.used[candidate] = true
	return candidate
}
