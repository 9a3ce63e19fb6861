package executor

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	schema "github.com/hanpama/exportgraph/internal/schema"
)

func TestCollect_SkipAndIncludeWithVariables(t *testing.T) {
	sch := testSchema(
		&schema.Type{Name: "Query", Kind: schema.TypeKindObject, Fields: []*schema.Field{
			{Name: "a", Type: schema.NamedType("String")},
			{Name: "b", Type: schema.NamedType("String")},
			{Name: "c", Type: schema.NamedType("String")},
		}},
	)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.a": NewMockValueResolver("A"),
		"Query.b": NewMockValueResolver("B"),
		"Query.c": NewMockValueResolver("C"),
	})
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `query ($yes: Boolean!, $no: Boolean!) {
		a @skip(if: $yes)
		b @include(if: $yes)
		c @include(if: $no)
	}`)

	gotRes := exec.ExecuteRequest(context.Background(), doc, "", map[string]any{"yes": true, "no": false}, nil)

	wantRes := &ExecutionResult{Data: map[string]any{"b": "B"}, Errors: []GraphQLError{}}
	if diff := cmp.Diff(wantRes, gotRes); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_FragmentOnInterfaceMatchesImplementor(t *testing.T) {
	sch := testSchema(
		&schema.Type{Name: "Query", Kind: schema.TypeKindObject, Fields: []*schema.Field{
			{Name: "node", Type: schema.NamedType("Node")},
		}},
		&schema.Type{Name: "Node", Kind: schema.TypeKindInterface,
			Fields:        []*schema.Field{{Name: "id", Type: schema.NamedType("ID")}},
			PossibleTypes: []string{"Post"},
		},
		&schema.Type{Name: "Post", Kind: schema.TypeKindObject,
			Fields: []*schema.Field{
				{Name: "id", Type: schema.NamedType("ID")},
				{Name: "title", Type: schema.NamedType("String")},
			},
			Interfaces: []string{"Node"},
		},
	)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.node": NewMockValueResolver(map[string]any{"__typename": "Post", "id": "p-1", "title": "hello"}),
	})
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `{
		node {
			... on Node { id }
			... on Post { title }
		}
	}`)

	gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

	wantRes := &ExecutionResult{
		Data:   map[string]any{"node": map[string]any{"id": "p-1", "title": "hello"}},
		Errors: []GraphQLError{},
	}
	if diff := cmp.Diff(wantRes, gotRes); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_FragmentOnUnionMember(t *testing.T) {
	sch := testSchema(
		&schema.Type{Name: "Query", Kind: schema.TypeKindObject, Fields: []*schema.Field{
			{Name: "item", Type: schema.NamedType("SearchResult")},
		}},
		&schema.Type{Name: "SearchResult", Kind: schema.TypeKindUnion, PossibleTypes: []string{"Post", "User"}},
		&schema.Type{Name: "Post", Kind: schema.TypeKindObject, Fields: []*schema.Field{
			{Name: "title", Type: schema.NamedType("String")},
		}},
		&schema.Type{Name: "User", Kind: schema.TypeKindObject, Fields: []*schema.Field{
			{Name: "name", Type: schema.NamedType("String")},
		}},
	)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.item": NewMockValueResolver(map[string]any{"__typename": "User", "name": "amy"}),
	})
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `{
		item {
			... on Post { title }
			... on User { name }
		}
	}`)

	gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

	wantRes := &ExecutionResult{
		Data:   map[string]any{"item": map[string]any{"name": "amy"}},
		Errors: []GraphQLError{},
	}
	if diff := cmp.Diff(wantRes, gotRes); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_NamedFragmentAndMerge(t *testing.T) {
	sch := testSchema(
		&schema.Type{Name: "Query", Kind: schema.TypeKindObject, Fields: []*schema.Field{
			{Name: "post", Type: schema.NamedType("Post")},
		}},
		&schema.Type{Name: "Post", Kind: schema.TypeKindObject, Fields: []*schema.Field{
			{Name: "id", Type: schema.NamedType("ID")},
			{Name: "title", Type: schema.NamedType("String")},
		}},
	)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.post": NewMockValueResolver(map[string]any{"id": "p-1", "title": "hi"}),
	})
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `
		query { post { ...Meta title } }
		fragment Meta on Post { id }
	`)

	gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

	wantRes := &ExecutionResult{
		Data:   map[string]any{"post": map[string]any{"id": "p-1", "title": "hi"}},
		Errors: []GraphQLError{},
	}
	if diff := cmp.Diff(wantRes, gotRes); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}
