package executor

import (
	"context"
	"testing"

	schema "github.com/hanpama/exportgraph/internal/schema"
)

func TestContext_CancelledBeforeExecution(t *testing.T) {
	sch := testSchema(
		&schema.Type{Name: "Query", Kind: schema.TypeKindObject, Fields: []*schema.Field{
			{Name: "a", Type: schema.NamedType("String")},
		}},
	)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.a": NewMockValueResolver("A"),
	})
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `{ a }`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gotRes := exec.ExecuteRequest(ctx, doc, "", nil, nil)

	if len(gotRes.Errors) == 0 {
		t.Fatal("expected a cancellation error")
	}
	if calls := rt.GetCalls(); len(calls) != 0 {
		t.Fatalf("resolver calls = %v, want none", calls)
	}
}

func TestContext_SerialStopsBetweenSiblings(t *testing.T) {
	sch := testSchema(
		&schema.Type{Name: "Query", Kind: schema.TypeKindObject, Fields: []*schema.Field{
			{Name: "ping", Type: schema.NamedType("String")},
		}},
		&schema.Type{Name: "Mutation", Kind: schema.TypeKindObject, Fields: []*schema.Field{
			{Name: "first", Type: schema.NamedType("String")},
			{Name: "second", Type: schema.NamedType("String")},
		}},
	)
	ctx, cancel := context.WithCancel(context.Background())
	rt := NewMockRuntime(map[string]MockResolver{
		"Mutation.first": func(ctx context.Context, source any, args map[string]any) (any, error) {
			cancel()
			return "F", nil
		},
		"Mutation.second": NewMockValueResolver("never reached"),
	})
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `mutation { first second }`)

	gotRes := exec.ExecuteRequest(ctx, doc, "", nil, nil)

	if len(gotRes.Errors) == 0 {
		t.Fatal("expected a cancellation error")
	}
	calls := rt.GetCalls()
	if len(calls) != 1 || calls[0].Field != "first" {
		t.Fatalf("resolver calls = %v, want only first", calls)
	}
}
