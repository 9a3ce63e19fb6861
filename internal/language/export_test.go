package language

import "testing"

func parseFirstFieldDirective(t *testing.T, q string) *Directive {
	t.Helper()
	doc, err := ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	field := doc.Operations[0].SelectionSet[0].(*Field)
	return FindExport(field.Directives)
}

func TestExportTargetAs(t *testing.T) {
	d := parseFirstFieldDirective(t, `mutation { createPost @export(as: "postId") }`)
	name, collect, ok := ExportTarget(d)
	if !ok || name != "postId" || collect {
		t.Fatalf("got name=%q collect=%v ok=%v", name, collect, ok)
	}
}

func TestExportTargetInto(t *testing.T) {
	d := parseFirstFieldDirective(t, `mutation { createPost @export(into: "postIds") }`)
	name, collect, ok := ExportTarget(d)
	if !ok || name != "postIds" || !collect {
		t.Fatalf("got name=%q collect=%v ok=%v", name, collect, ok)
	}
}

func TestExportTargetAsWinsOverInto(t *testing.T) {
	d := parseFirstFieldDirective(t, `mutation { createPost @export(as: "one", into: "two") }`)
	name, collect, ok := ExportTarget(d)
	if !ok || name != "one" || collect {
		t.Fatalf("got name=%q collect=%v ok=%v", name, collect, ok)
	}
}

func TestExportTargetIgnoresOtherDirectives(t *testing.T) {
	d := parseFirstFieldDirective(t, `{ posts @skip(if: false) }`)
	if d != nil {
		t.Fatalf("expected no export directive, got %v", d)
	}
	if _, _, ok := ExportTarget(nil); ok {
		t.Fatal("nil directive must not register a target")
	}
}

func TestExportTargetNonStringArgument(t *testing.T) {
	d := parseFirstFieldDirective(t, `mutation { createPost @export(as: 42) }`)
	if _, _, ok := ExportTarget(d); ok {
		t.Fatal("non-string target must not register")
	}
}
