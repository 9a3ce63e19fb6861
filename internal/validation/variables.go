package validation

import (
	"fmt"

	language "github.com/hanpama/exportgraph/internal/language"
)

// NoUndefinedVariables reports every variable reference whose name is
// introduced neither by a variable definition nor by an @export directive in
// the same operation, fragment spreads included.
//
// The name set is membership-only and the check runs at operation exit, once
// the whole operation has been seen. Document position therefore never
// affects the outcome: a reference ahead of the field exporting its name is
// statically fine. Whether the export has actually happened by the time the
// reference is needed is enforced by the variable store at execution time.
func NoUndefinedVariables(c *Collector) *Rule {
	type use struct {
		name string
		pos  *language.Position
	}
	var names map[string]struct{}
	var uses []use

	return &Rule{
		VisitFragmentSpreads: true,
		EnterOperation: func(*language.OperationDefinition) {
			names = map[string]struct{}{}
			uses = nil
		},
		EnterVariableDefinition: func(vd *language.VariableDefinition) {
			names[vd.Variable] = struct{}{}
		},
		EnterDirective: func(d *language.Directive) {
			if name, _, ok := language.ExportTarget(d); ok {
				names[name] = struct{}{}
			}
		},
		EnterVariableReference: func(v *language.Value) {
			uses = append(uses, use{name: v.Raw, pos: v.Position})
		},
		LeaveOperation: func(*language.OperationDefinition) {
			for _, u := range uses {
				if _, ok := names[u.name]; !ok {
					c.add(ErrUndefinedVariable, u.pos, fmt.Sprintf("Undefined variable %s", u.name))
				}
			}
		},
	}
}

// Validate runs all validation rules owned by this package over doc and
// returns the complete batch of findings; it never stops at the first error.
func Validate(doc *language.QueryDocument) []Error {
	c := &Collector{}
	Walk(doc, NoUndefinedVariables(c))
	return c.Errors()
}
