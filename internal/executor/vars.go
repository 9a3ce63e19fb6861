package executor

import (
	"fmt"
	"sync"

	language "github.com/hanpama/exportgraph/internal/language"
)

// VariableStore holds the live variable bindings of one execution. It is
// created once per ExecuteRequest, seeded from the caller's coerced
// variables, and passed down the execution call tree; it is never shared
// across executions.
//
// Writes happen only when a field carrying an @export directive completes.
// Under the serial strategy every write is sequenced before any later read
// by the sibling join, which is what makes export-then-consume chaining
// reliable. Under the parallel strategy sibling reads and writes are not
// ordered at all; the mutex below keeps the map memory-safe but a consumer
// racing its exporter still observes an absent name. That configuration is
// a documented hazard, not a supported pattern.
type VariableStore struct {
	mu     sync.Mutex
	values map[string]any
}

func newVariableStore(seed map[string]any) *VariableStore {
	values := make(map[string]any, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &VariableStore{values: values}
}

// resolve returns the binding for name at this moment, or an
// UndefinedVariable field error when the name has no binding yet. This is
// the runtime counterpart of the static scope check and the mechanism that
// surfaces out-of-order export usage.
func (s *VariableStore) resolve(name string) (any, *GraphQLError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[name]
	if !ok {
		return nil, &GraphQLError{
			Kind:    ErrKindUndefinedVariable,
			Message: fmt.Sprintf("Undefined variable %s", name),
		}
	}
	return v, nil
}

// applyExport records value under the directive's target name. The "as"
// form overwrites (last write wins); the "into" form appends to an ordered
// list created on first use, preserving the completion order of exporting
// fields. A target that collides with a declared variable simply takes the
// slot over; the behavior is implementation-defined but never fails.
func (s *VariableStore) applyExport(d *language.Directive, value any) {
	name, collect, ok := language.ExportTarget(d)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if collect {
		list, _ := s.values[name].([]any)
		s.values[name] = append(list, value)
		return
	}
	s.values[name] = value
}
