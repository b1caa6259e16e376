package model

// Collection describes one Directus collection as returned by a metadata
// source. Fields are kept in declaration order.
type Collection struct {
	Name      string
	Singleton bool
	Fields    []Field
}

// Field describes a single field of a collection. Schema is nil for fields
// that have no backing database column (aliases, dividers, o2m, ...).
type Field struct {
	Field  string
	Type   string
	Schema *FieldSchema
	Meta   *FieldMeta
}

type FieldSchema struct {
	DataType   string
	IsNullable bool
	PrimaryKey bool
}

type FieldMeta struct {
	Required    bool
	Hidden      bool
	Interface   string
	Note        string
	Description string
}

// Well known semantic field types.
const (
	TypeAlias = "alias"
	TypeJson  = "json"
	TypeCsv   = "csv"
)

func (f *Field) Hidden() bool {
	return f.Meta != nil && f.Meta.Hidden
}

func (f *Field) DataType() string {
	if f.Schema != nil {
		return f.Schema.DataType
	}

	return ""
}
