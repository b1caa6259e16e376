package pg

import pg_query "github.com/pganalyze/pg_query_go/v5"

const defaultSchema = "public"

func getString(node *pg_query.Node) string {
	return node.GetString_().GetSval()
}

// tableName builds the name of the relation. The default schema is dropped
// so that `public.foo` and `foo` refer to the same table.
func tableName(rel *pg_query.RangeVar) TableName {
	schema := rel.GetSchemaname()
	if schema == defaultSchema {
		schema = ""
	}

	return NewTableName(rel.GetRelname(), schema)
}
