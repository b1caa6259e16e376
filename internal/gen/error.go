package gen

import "fmt"

// CollisionError is returned when two collections would be emitted under
// the same type name, or when a collection's type name clashes with the
// aggregate schema type.
type CollisionError struct {
	TypeName    string
	Collections []string
}

func (e *CollisionError) Error() string {
	if len(e.Collections) == 1 {
		return fmt.Sprintf(`collection "%s" generates type name "%s" which is reserved for the schema type`, e.Collections[0], e.TypeName)
	}

	return fmt.Sprintf(`collections "%s" and "%s" both generate type name "%s"`, e.Collections[0], e.Collections[1], e.TypeName)
}
