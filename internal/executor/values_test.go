package executor

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	language "github.com/hanpama/exportgraph/internal/language"
	schema "github.com/hanpama/exportgraph/internal/schema"
)

func TestCoerceVariableValues_DefaultsAndRequired(t *testing.T) {
	sch := testSchema()

	doc := mustParseQuery(t, `query ($a: Int = 10, $b: String!, $c: Boolean) { __typename }`)
	op := doc.Operations[0]

	got, err := coerceVariableValues(sch, op, map[string]any{"b": "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"a": 10, "b": "hi"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("coerced variables mismatch (-want +got):\n%s", diff)
	}

	_, err = coerceVariableValues(sch, op, nil)
	if err == nil || !strings.Contains(err.Error(), "$b") {
		t.Fatalf("err = %v, want missing $b", err)
	}

	_, err = coerceVariableValues(sch, op, map[string]any{"b": nil})
	if err == nil {
		t.Fatal("expected error for null on non-null variable")
	}
}

func TestCoerceVariableValues_ListCoercion(t *testing.T) {
	sch := testSchema()

	doc := mustParseQuery(t, `query ($ids: [ID!]) { __typename }`)
	op := doc.Operations[0]

	got, err := coerceVariableValues(sch, op, map[string]any{"ids": []any{1, "2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"ids": []any{"1", "2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("coerced variables mismatch (-want +got):\n%s", diff)
	}

	// Single value coerces to a one-element list.
	got, err = coerceVariableValues(sch, op, map[string]any{"ids": "7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = map[string]any{"ids": []any{"7"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("coerced variables mismatch (-want +got):\n%s", diff)
	}
}

func TestCoerceArgumentValues_VariableSubstitution(t *testing.T) {
	state := &executionState{vars: newVariableStore(map[string]any{"id": "p-1"})}
	fieldDef := &schema.Field{
		Name: "post",
		Type: schema.NamedType("String"),
		Arguments: []*schema.InputValue{
			{Name: "id", Type: schema.NonNullType(schema.NamedType("ID"))},
			{Name: "limit", Type: schema.NamedType("Int"), DefaultValue: 10},
		},
	}
	doc := mustParseQuery(t, `{ post(id: $id) }`)
	field := doc.Operations[0].SelectionSet[0].(*language.Field)

	got, gerr := coerceArgumentValues(state, fieldDef, field.Arguments, Path{"post"})
	if gerr != nil {
		t.Fatalf("unexpected error: %v", gerr)
	}
	want := map[string]any{"id": "p-1", "limit": 10}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("arguments mismatch (-want +got):\n%s", diff)
	}
}

func TestCoerceArgumentValues_UndefinedVariable(t *testing.T) {
	state := &executionState{vars: newVariableStore(nil)}
	fieldDef := &schema.Field{
		Name: "post",
		Type: schema.NamedType("String"),
		Arguments: []*schema.InputValue{
			{Name: "id", Type: schema.NamedType("ID")},
		},
	}
	doc := mustParseQuery(t, `{ post(id: $id) }`)
	field := doc.Operations[0].SelectionSet[0].(*language.Field)

	got, gerr := coerceArgumentValues(state, fieldDef, field.Arguments, Path{"post"})
	if got != nil {
		t.Fatalf("arguments = %v, want nil", got)
	}
	if gerr == nil || gerr.Kind != ErrKindUndefinedVariable {
		t.Fatalf("err = %v, want UndefinedVariable", gerr)
	}
	if diff := cmp.Diff(Path{"post"}, gerr.Path); diff != "" {
		t.Fatalf("error path mismatch (-want +got):\n%s", diff)
	}
}

func TestCoerceArgumentValues_MissingRequired(t *testing.T) {
	state := &executionState{vars: newVariableStore(nil)}
	fieldDef := &schema.Field{
		Name: "post",
		Type: schema.NamedType("String"),
		Arguments: []*schema.InputValue{
			{Name: "id", Type: schema.NonNullType(schema.NamedType("ID"))},
		},
	}
	doc := mustParseQuery(t, `{ post }`)
	field := doc.Operations[0].SelectionSet[0].(*language.Field)

	_, gerr := coerceArgumentValues(state, fieldDef, field.Arguments, Path{"post"})
	if gerr == nil {
		t.Fatal("expected error for missing required argument")
	}
}
