package field

import (
	"strings"

	"github.com/danielroe/directus-typegen/internal/model"
)

// Kind is the target-independent shape of a field's value. Emitters turn a
// Kind into a concrete type expression.
type Kind string

const (
	KindInteger  Kind = "integer"
	KindNumber   Kind = "number"
	KindBoolean  Kind = "boolean"
	KindString   Kind = "string"
	KindJson     Kind = "json"
	KindCsv      Kind = "csv"
	KindRelation Kind = "relation"
	KindUnknown  Kind = "unknown"
)

// relationInterfaces are the Directus interfaces that store the primary key
// of a single related item.
var relationInterfaces = map[string]bool{
	"select-dropdown-m2o": true,
	"many-to-one":         true,
	"one-to-one":          true,
	"file":                true,
	"file-image":          true,
	"user":                true,
}

// Classification is the outcome of classifying a single field.
type Classification struct {
	Include        bool
	Kind           Kind
	TypeExpression string
	Optional       bool
	Nullable       bool
}

func Classify(f model.Field) Classification {
	required := IsRequired(f)

	return Classification{
		Include:        ShouldInclude(f),
		Kind:           DetermineKind(f),
		TypeExpression: DetermineType(f),
		Optional:       !required,
		Nullable:       f.Schema != nil && f.Schema.IsNullable && !required,
	}
}

// ShouldInclude drops hidden fields that have no backing column. Fields with
// a schema are always included.
func ShouldInclude(f model.Field) bool {
	return !(f.Hidden() && f.Schema == nil)
}

func IsRequired(f model.Field) bool {
	return (f.Schema != nil && f.Schema.PrimaryKey) || (f.Meta != nil && f.Meta.Required)
}

// DetermineType returns the TypeScript type expression for f without the
// null union.
func DetermineType(f model.Field) string {
	return TypeScript(DetermineKind(f))
}

func DetermineKind(f model.Field) Kind {
	if f.Meta != nil && relationInterfaces[f.Meta.Interface] {
		switch k := kindOfDataType(f.DataType()); k {
		case KindInteger, KindNumber, KindString:
			return k
		}

		return KindRelation
	}

	switch f.Type {
	case model.TypeJson:
		return KindJson
	case model.TypeCsv:
		return KindCsv
	}

	return kindOfDataType(f.DataType())
}

func kindOfDataType(dataType string) Kind {
	switch strings.ToLower(dataType) {
	case "integer", "bigint", "smallint", "tinyint":
		return KindInteger
	case "float", "decimal", "double", "real", "numeric", "double precision":
		return KindNumber
	case "boolean":
		return KindBoolean
	case "text", "string", "varchar", "char", "character", "character varying", "uuid", "hash":
		return KindString
	// Dates travel as ISO 8601 text over the API.
	case "timestamp", "date", "datetime", "time",
		"timestamp with time zone", "timestamp without time zone",
		"time with time zone", "time without time zone":
		return KindString
	case "json", "jsonb":
		return KindJson
	default:
		return KindUnknown
	}
}

// TypeScript renders a Kind as a TypeScript type expression.
func TypeScript(k Kind) string {
	switch k {
	case KindInteger, KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindJson:
		return "Record<string, unknown>"
	case KindCsv:
		return "string[]"
	case KindRelation:
		return "number | string"
	default:
		return "unknown"
	}
}
