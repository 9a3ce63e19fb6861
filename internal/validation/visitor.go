package validation

import (
	"fmt"

	language "github.com/hanpama/exportgraph/internal/language"
)

// Rule receives callbacks as nodes are entered during one document-order,
// depth-first traversal. Nil callbacks are skipped. All registered rules
// share a single pass over the document; the traversal never mutates it.
type Rule struct {
	// VisitFragmentSpreads expands each spread fragment's body in place for
	// this rule, exactly once per spread site. Rules that opt in do not see
	// standalone fragment definitions, so fragment content is attributed to
	// the operation that spreads it rather than counted twice.
	VisitFragmentSpreads bool

	EnterOperation          func(*language.OperationDefinition)
	LeaveOperation          func(*language.OperationDefinition)
	EnterFragmentDefinition func(*language.FragmentDefinition)
	EnterFragmentSpread     func(*language.FragmentSpread)
	EnterField              func(*language.Field)
	EnterDirective          func(*language.Directive)
	EnterVariableDefinition func(*language.VariableDefinition)
	EnterVariableReference  func(*language.Value)
}

// Walk drives all rules over doc in a single depth-first pass.
//
// Fragment-cycle detection is a prior rule's job; the walker still guards
// its own expansion with a stack so a recursive fragment cannot loop it.
func Walk(doc *language.QueryDocument, rules ...*Rule) {
	w := &walker{doc: doc, expanding: map[string]bool{}}

	for _, op := range doc.Operations {
		for _, r := range rules {
			if r.EnterOperation != nil {
				r.EnterOperation(op)
			}
		}
		for _, vd := range op.VariableDefinitions {
			for _, r := range rules {
				if r.EnterVariableDefinition != nil {
					r.EnterVariableDefinition(vd)
				}
			}
			w.walkDirectives(rules, vd.Directives)
		}
		w.walkDirectives(rules, op.Directives)
		w.walkSelectionSet(rules, op.SelectionSet)
		for _, r := range rules {
			if r.LeaveOperation != nil {
				r.LeaveOperation(op)
			}
		}
	}

	// Standalone fragment definitions are only interesting to rules that do
	// not already see their content inlined at spread sites.
	var standalone []*Rule
	for _, r := range rules {
		if !r.VisitFragmentSpreads {
			standalone = append(standalone, r)
		}
	}
	if len(standalone) == 0 {
		return
	}
	for _, frag := range doc.Fragments {
		for _, r := range standalone {
			if r.EnterFragmentDefinition != nil {
				r.EnterFragmentDefinition(frag)
			}
		}
		w.walkDirectives(standalone, frag.Directives)
		w.walkSelectionSet(standalone, frag.SelectionSet)
	}
}

type walker struct {
	doc *language.QueryDocument
	// expanding guards in-place spread expansion against recursive fragments.
	expanding map[string]bool
}

func (w *walker) walkSelectionSet(rules []*Rule, set language.SelectionSet) {
	for _, sel := range set {
		switch s := sel.(type) {
		case *language.Field:
			for _, r := range rules {
				if r.EnterField != nil {
					r.EnterField(s)
				}
			}
			for _, arg := range s.Arguments {
				w.walkValue(rules, arg.Value)
			}
			w.walkDirectives(rules, s.Directives)
			w.walkSelectionSet(rules, s.SelectionSet)

		case *language.InlineFragment:
			w.walkDirectives(rules, s.Directives)
			w.walkSelectionSet(rules, s.SelectionSet)

		case *language.FragmentSpread:
			for _, r := range rules {
				if r.EnterFragmentSpread != nil {
					r.EnterFragmentSpread(s)
				}
			}
			w.walkDirectives(rules, s.Directives)
			w.expandSpread(rules, s)

		default:
			// Parser contract violation, not a user-facing condition.
			panic(fmt.Sprintf("validation: unexpected selection node %T", sel))
		}
	}
}

func (w *walker) expandSpread(rules []*Rule, spread *language.FragmentSpread) {
	var inlining []*Rule
	for _, r := range rules {
		if r.VisitFragmentSpreads {
			inlining = append(inlining, r)
		}
	}
	if len(inlining) == 0 || w.expanding[spread.Name] {
		return
	}
	frag := w.doc.Fragments.ForName(spread.Name)
	if frag == nil {
		return
	}
	w.expanding[spread.Name] = true
	w.walkSelectionSet(inlining, frag.SelectionSet)
	delete(w.expanding, spread.Name)
}

func (w *walker) walkDirectives(rules []*Rule, directives language.DirectiveList) {
	for _, d := range directives {
		for _, r := range rules {
			if r.EnterDirective != nil {
				r.EnterDirective(d)
			}
		}
		for _, arg := range d.Arguments {
			w.walkValue(rules, arg.Value)
		}
	}
}

func (w *walker) walkValue(rules []*Rule, v *language.Value) {
	if v == nil {
		return
	}
	if v.Kind == language.Variable {
		for _, r := range rules {
			if r.EnterVariableReference != nil {
				r.EnterVariableReference(v)
			}
		}
		return
	}
	for _, child := range v.Children {
		w.walkValue(rules, child.Value)
	}
}
