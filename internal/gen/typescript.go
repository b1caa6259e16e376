package gen

import (
	"strings"

	"github.com/danielroe/directus-typegen/internal/field"
	"github.com/danielroe/directus-typegen/internal/model"
	"github.com/danielroe/directus-typegen/internal/naming"
)

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// TypeScript generates one `export interface` per collection followed by the
// aggregate schema interface. Collections and fields are emitted in the
// order given, so the same input always produces the same output.
func TypeScript(collections []model.Collection, opts Options) (string, error) {
	named, err := nameCollections(collections, opts, naming.TypeScriptIdentifier)
	if err != nil {
		return "", err
	}

	var s stringBuilder

	for _, c := range named {
		genInterface(&s, c)
		s.WriteNewLine()
	}

	genSchemaInterface(&s, opts.schemaName(), named)
	return s.String(), nil
}

func genInterface(s *stringBuilder, c namedCollection) {
	s.WriteLine("export interface ", c.TypeName, " {")
	s.Indent()

	for _, f := range c.Fields {
		cl := field.Classify(f)
		if !cl.Include {
			continue
		}

		if doc := field.DocComment(f); doc != "" {
			s.WriteLine(doc)
		}

		s.WriteString(memberName(f.Field))
		if cl.Optional {
			s.WriteString("?")
		}

		s.WriteString(": ")
		s.WriteString(cl.TypeExpression)
		if cl.Nullable {
			s.WriteString(" | null")
		}

		s.WriteLine(";")
	}

	s.DeIndent()
	s.WriteLine("}")
}

func genSchemaInterface(s *stringBuilder, name string, named []namedCollection) {
	s.WriteLine("export interface ", name, " {")
	s.Indent()

	for _, c := range named {
		s.WriteString(memberName(c.Name))
		s.WriteString(": ")
		s.WriteString(c.TypeName)
		if !c.Singleton {
			s.WriteString("[]")
		}

		s.WriteLine(";")
	}

	s.DeIndent()
	s.WriteLine("}")
}

func memberName(name string) string {
	if naming.IsSafeIdentifier(name) {
		return name
	}

	return "'" + quoteEscaper.Replace(name) + "'"
}
