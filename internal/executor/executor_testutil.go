package executor

import (
	"testing"

	language "github.com/hanpama/exportgraph/internal/language"
	schema "github.com/hanpama/exportgraph/internal/schema"
)

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

func scalarTypes() map[string]*schema.Type {
	return map[string]*schema.Type{
		"String":  {Name: "String", Kind: schema.TypeKindScalar},
		"ID":      {Name: "ID", Kind: schema.TypeKindScalar},
		"Int":     {Name: "Int", Kind: schema.TypeKindScalar},
		"Boolean": {Name: "Boolean", Kind: schema.TypeKindScalar},
	}
}

// testSchema builds a schema from the builtin scalars plus the given types.
func testSchema(types ...*schema.Type) *schema.Schema {
	s := &schema.Schema{
		QueryType:    "Query",
		MutationType: "Mutation",
		Types:        scalarTypes(),
	}
	for _, t := range types {
		s.Types[t.Name] = t
	}
	return s
}
