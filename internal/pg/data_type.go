package pg

const (
	DataTypeJson  = "json"
	DataTypeJsonb = "jsonb"
)

// DataType represents a postgres data type as written in DDL. Names are
// lower cased and use the canonical names the parser produces (`int4`
// instead of `integer`).
type DataType struct {
	Name    string
	Schema  *string
	NotNull bool

	// Array is true if the type is a postgres array. For example `INT[]`
	// would produce a DataType `{ Name: "int4", Array: true }`.
	Array bool
}

func (d *DataType) Json() bool {
	return d.Name == DataTypeJson || d.Name == DataTypeJsonb
}

func (d *DataType) Clone() DataType {
	return DataType{
		Name:    d.Name,
		NotNull: d.NotNull,
		Array:   d.Array,
		Schema:  d.Schema,
	}
}

func (d *DataType) writeString(s *stringBuilder) {
	if d.Schema != nil {
		s.WriteString(*d.Schema)
		s.WriteString(".")
	}

	s.WriteString(d.Name)

	if d.Array {
		s.WriteString("[]")
	}

	if d.NotNull {
		s.WriteString(" not null")
	}
}

func (d *DataType) String() string {
	var s stringBuilder
	d.writeString(&s)
	return s.String()
}
