package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	language "github.com/hanpama/exportgraph/internal/language"
)

func TestRulesShareOnePass(t *testing.T) {
	doc := mustParseQuery(t, `query Q { a b { c } }`)

	var fieldsA, fieldsB []string
	ruleA := &Rule{EnterField: func(f *language.Field) { fieldsA = append(fieldsA, f.Name) }}
	ruleB := &Rule{EnterField: func(f *language.Field) { fieldsB = append(fieldsB, f.Name) }}
	Walk(doc, ruleA, ruleB)

	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, fieldsA); diff != "" {
		t.Fatalf("rule A fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, fieldsB); diff != "" {
		t.Fatalf("rule B fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSpreadExpansionIsOptIn(t *testing.T) {
	doc := mustParseQuery(t, `
		query { ...f ...f }
		fragment f on Query { a }
	`)

	var inline, standalone []string
	expanding := &Rule{
		VisitFragmentSpreads: true,
		EnterField:           func(f *language.Field) { inline = append(inline, f.Name) },
	}
	plain := &Rule{
		EnterField: func(f *language.Field) { standalone = append(standalone, f.Name) },
	}
	Walk(doc, expanding, plain)

	// Opted-in rule sees the fragment body once per spread site and never as
	// a standalone definition.
	if diff := cmp.Diff([]string{"a", "a"}, inline); diff != "" {
		t.Fatalf("inlined fields mismatch (-want +got):\n%s", diff)
	}
	// The plain rule sees the fragment definition exactly once, at top level.
	if diff := cmp.Diff([]string{"a"}, standalone); diff != "" {
		t.Fatalf("standalone fields mismatch (-want +got):\n%s", diff)
	}
}

func TestOperationBoundaries(t *testing.T) {
	doc := mustParseQuery(t, `query A { a } mutation B { b }`)

	var events []string
	rule := &Rule{
		EnterOperation: func(op *language.OperationDefinition) { events = append(events, "enter "+op.Name) },
		LeaveOperation: func(op *language.OperationDefinition) { events = append(events, "leave "+op.Name) },
		EnterField:     func(f *language.Field) { events = append(events, "field "+f.Name) },
	}
	Walk(doc, rule)

	want := []string{"enter A", "field a", "leave A", "enter B", "field b", "leave B"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("event order mismatch (-want +got):\n%s", diff)
	}
}
