package pg

import (
	"github.com/danielroe/directus-typegen/internal/model"
	"github.com/danielroe/directus-typegen/internal/source"
)

type typeMapping struct {
	// dataType is the name information_schema (and so Directus) reports.
	dataType string
	// fieldType is the Directus field type for columns of this type.
	fieldType string
}

var typeMappings = map[string]typeMapping{
	"int2":        {"smallint", "integer"},
	"int4":        {"integer", "integer"},
	"serial":      {"integer", "integer"},
	"serial4":     {"integer", "integer"},
	"smallserial": {"smallint", "integer"},
	"serial2":     {"smallint", "integer"},
	"int8":        {"bigint", "bigInteger"},
	"bigserial":   {"bigint", "bigInteger"},
	"serial8":     {"bigint", "bigInteger"},
	"float4":      {"real", "float"},
	"float8":      {"double precision", "float"},
	"numeric":     {"numeric", "decimal"},
	"decimal":     {"numeric", "decimal"},
	"bool":        {"boolean", "boolean"},
	"text":        {"text", "text"},
	"varchar":     {"character varying", "string"},
	"bpchar":      {"character", "string"},
	"char":        {"character", "string"},
	"uuid":        {"uuid", "uuid"},
	"timestamp":   {"timestamp without time zone", "dateTime"},
	"timestamptz": {"timestamp with time zone", "timestamp"},
	"date":        {"date", "date"},
	"time":        {"time without time zone", "time"},
	"timetz":      {"time with time zone", "time"},
}

// Collections turns the tables of db into collections. Only tables in the
// default schema are Directus collections. System tables are skipped unless
// includeSystem is set.
func Collections(db *DB, includeSystem bool) []model.Collection {
	out := make([]model.Collection, 0, len(db.Tables))

	for _, t := range db.Tables {
		if t.Name.HasSchema() {
			continue
		}

		if !includeSystem && source.IsSystemCollection(t.Name.Name) {
			continue
		}

		c := model.Collection{
			Name:   t.Name.Name,
			Fields: make([]model.Field, 0, len(t.Columns)),
		}

		for _, col := range t.Columns {
			c.Fields = append(c.Fields, columnField(col))
		}

		out = append(out, c)
	}

	return out
}

func columnField(col *Column) model.Field {
	m := mapType(col.Type)

	return model.Field{
		Field: col.Name,
		Type:  m.fieldType,
		Schema: &model.FieldSchema{
			DataType:   m.dataType,
			IsNullable: !col.Type.NotNull && !col.PrimaryKey,
			PrimaryKey: col.PrimaryKey,
		},
	}
}

func mapType(t DataType) typeMapping {
	if t.Array {
		return typeMapping{dataType: "ARRAY", fieldType: "unknown"}
	}

	if t.Json() {
		return typeMapping{dataType: t.Name, fieldType: model.TypeJson}
	}

	if m, ok := typeMappings[t.Name]; ok {
		return m
	}

	return typeMapping{dataType: t.Name, fieldType: "unknown"}
}
