package pg

// Column represents a table column.
type Column struct {
	Name       string
	Type       DataType
	PrimaryKey bool
}

func (c *Column) Clone() *Column {
	return &Column{
		Name:       c.Name,
		Type:       c.Type.Clone(),
		PrimaryKey: c.PrimaryKey,
	}
}

func (c *Column) writeString(s *stringBuilder) {
	s.WriteString(c.Name)
	s.WriteString(" ")
	c.Type.writeString(s)

	if c.PrimaryKey {
		s.WriteString(" primary key")
	}
}

func (c *Column) String() string {
	var s stringBuilder
	c.writeString(&s)
	return s.String()
}
