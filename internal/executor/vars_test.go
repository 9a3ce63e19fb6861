package executor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	language "github.com/hanpama/exportgraph/internal/language"
)

func exportDirective(arg, target string) *language.Directive {
	return &language.Directive{
		Name: language.ExportDirective,
		Arguments: language.ArgumentList{
			{Name: arg, Value: &language.Value{Kind: language.StringValue, Raw: target}},
		},
	}
}

func TestVariableStore_ResolveSeeded(t *testing.T) {
	s := newVariableStore(map[string]any{"id": "42"})

	got, gerr := s.resolve("id")
	if gerr != nil {
		t.Fatalf("unexpected error: %v", gerr)
	}
	if got != "42" {
		t.Fatalf("resolve(id) = %v, want 42", got)
	}
}

func TestVariableStore_ResolveUndefined(t *testing.T) {
	s := newVariableStore(nil)

	got, gerr := s.resolve("missing")
	if got != nil {
		t.Fatalf("resolve(missing) = %v, want nil", got)
	}
	if gerr == nil {
		t.Fatal("expected an error")
	}
	if gerr.Kind != ErrKindUndefinedVariable {
		t.Fatalf("Kind = %q, want %q", gerr.Kind, ErrKindUndefinedVariable)
	}
	if gerr.Message != "Undefined variable missing" {
		t.Fatalf("Message = %q", gerr.Message)
	}
}

func TestVariableStore_ExportAsOverwrites(t *testing.T) {
	s := newVariableStore(map[string]any{"x": "declared"})

	s.applyExport(exportDirective("as", "x"), "first")
	s.applyExport(exportDirective("as", "x"), "second")

	got, gerr := s.resolve("x")
	if gerr != nil {
		t.Fatalf("unexpected error: %v", gerr)
	}
	if got != "second" {
		t.Fatalf("resolve(x) = %v, want second", got)
	}
}

func TestVariableStore_ExportIntoAppendsInOrder(t *testing.T) {
	s := newVariableStore(nil)

	s.applyExport(exportDirective("into", "ids"), "1")
	s.applyExport(exportDirective("into", "ids"), "2")
	s.applyExport(exportDirective("into", "ids"), "3")

	got, gerr := s.resolve("ids")
	if gerr != nil {
		t.Fatalf("unexpected error: %v", gerr)
	}
	if diff := cmp.Diff([]any{"1", "2", "3"}, got); diff != "" {
		t.Fatalf("resolve(ids) mismatch (-want +got):\n%s", diff)
	}
}

func TestVariableStore_ExportWithoutTargetIsIgnored(t *testing.T) {
	s := newVariableStore(nil)

	s.applyExport(&language.Directive{Name: language.ExportDirective}, "v")

	if len(s.values) != 0 {
		t.Fatalf("store = %v, want empty", s.values)
	}
}
