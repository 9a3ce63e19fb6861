package executor

import (
	"fmt"
	"reflect"
	"sync"

	"context"

	eventbus "github.com/hanpama/exportgraph/internal/eventbus"
	events "github.com/hanpama/exportgraph/internal/events"
	language "github.com/hanpama/exportgraph/internal/language"
	schema "github.com/hanpama/exportgraph/internal/schema"
)

type Path []PathElement

type PathElement any

// executionState holds the state shared by one operation execution. The
// variable store is the only value mutated across sibling fields; the error
// slice is guarded because parallel siblings report concurrently.
type executionState struct {
	runtime  Runtime
	schema   *schema.Schema
	document *language.QueryDocument
	vars     *VariableStore
	context  context.Context
	serial   bool

	mu     sync.Mutex
	errors []GraphQLError
}

func (s *executionState) addError(e GraphQLError) {
	s.mu.Lock()
	s.errors = append(s.errors, e)
	s.mu.Unlock()
}

func (s *executionState) addMessage(message string, path Path) {
	s.addError(GraphQLError{Message: message, Path: path})
}

// hasErrorAt reports whether an error with the given path already exists.
func (s *executionState) hasErrorAt(path Path) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, err := range s.errors {
		if reflect.DeepEqual(err.Path, path) {
			return true
		}
	}
	return false
}

type Executor struct {
	runtime Runtime
	schema  *schema.Schema
}

func NewExecutor(runtime Runtime, schema *schema.Schema) *Executor {
	return &Executor{runtime: runtime, schema: schema}
}

// ExecuteRequest runs one operation of the document. Mutations execute their
// sibling fields serially in document order; queries and subscriptions fan
// siblings out concurrently. The variable store is seeded from
// variableValues before any field resolution begins and lives until the
// returned result is assembled.
func (e *Executor) ExecuteRequest(
	ctx context.Context,
	document *language.QueryDocument,
	operationName string,
	variableValues map[string]any,
	initialValue any,
) *ExecutionResult {
	operation := getOperation(document, operationName)
	if operation == nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: "operation not found"}}}
	}

	seed, err := coerceVariableValues(e.schema, operation, variableValues)
	if err != nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: err.Error()}}}
	}

	var rootType *schema.Type
	switch operation.Operation {
	case language.Query:
		rootType = e.schema.GetQueryType()
	case language.Mutation:
		rootType = e.schema.GetMutationType()
	case language.Subscription:
		rootType = e.schema.GetSubscriptionType()
	default:
		return &ExecutionResult{Errors: []GraphQLError{{Message: fmt.Sprintf("unsupported operation type: %s", operation.Operation)}}}
	}
	if rootType == nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: fmt.Sprintf("root type not found for %s operation", operation.Operation)}}}
	}

	state := &executionState{
		runtime:  e.runtime,
		schema:   e.schema,
		document: document,
		vars:     newVariableStore(seed),
		context:  ctx,
		serial:   operation.Operation == language.Mutation,
		errors:   []GraphQLError{},
	}

	data := executeSelectionSet(state, rootType, operation.SelectionSet, initialValue, Path{})
	result := &ExecutionResult{Errors: state.errors}
	if data != nil {
		result.Data = data
	}
	return result
}

// executeSelectionSet produces the response map for one selection set, or
// nil when a Non-Null field failure bubbled past this level.
func executeSelectionSet(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet, objectValue any, path Path) map[string]any {
	grouped := collectFields(state, objectType, selectionSet)
	if state.serial {
		return executeFieldsSerially(state, objectType, grouped.orderedFields(), objectValue, path)
	}
	return executeFieldsInParallel(state, objectType, grouped.orderedFields(), objectValue, path)
}

// executeFieldsSerially resolves siblings strictly one at a time in document
// order. A sibling's whole subtree, including its export application,
// settles before the next sibling starts; that join is the ordering
// guarantee export-then-consume chaining relies on. Once a Non-Null sibling
// nulls this level no further sibling work is started.
func executeFieldsSerially(state *executionState, objectType *schema.Type, fields []collectedField, objectValue any, path Path) map[string]any {
	resultMap := make(map[string]any)
	for _, cf := range fields {
		if err := state.context.Err(); err != nil {
			state.addMessage(err.Error(), path)
			break
		}
		fieldPath := appendPath(path, cf.ResponseName)

		if cf.Fields[0].Name == "__typename" {
			resultMap[cf.ResponseName] = objectType.Name
			continue
		}
		fieldDef := objectType.GetField(cf.Fields[0].Name)
		if fieldDef == nil {
			state.addMessage(fmt.Sprintf("Cannot query field '%s' on type '%s'", cf.Fields[0].Name, objectType.Name), fieldPath)
			continue
		}

		var completed any
		args, argErr := coerceArgumentValues(state, fieldDef, cf.Fields[0].Arguments, fieldPath)
		if argErr != nil {
			state.addError(*argErr)
		} else {
			completed = resolveAndComplete(state, objectType, fieldDef, cf.Fields, objectValue, args, fieldPath)
		}

		if schema.IsNonNull(fieldDef.Type) && isNullish(completed) {
			return nil
		}
		if isNullish(completed) {
			resultMap[cf.ResponseName] = nil
		} else {
			resultMap[cf.ResponseName] = completed
		}
	}
	return resultMap
}

// executeFieldsInParallel fans sibling resolution out to goroutines and
// joins before producing the level's result.
//
// Arguments are resolved in document order before any sibling starts, so
// every sibling sees the same store snapshot. An export→consume dependency
// between siblings therefore fails deterministically with
// UndefinedVariable instead of racing the exporting resolver; exports only
// become visible to deeper levels and later operations of a serial parent.
func executeFieldsInParallel(state *executionState, objectType *schema.Type, fields []collectedField, objectValue any, path Path) map[string]any {
	type slot struct {
		cf       collectedField
		path     Path
		fieldDef *schema.Field
		args     map[string]any
		typename bool
		failed   bool
		result   any
	}

	slots := make([]*slot, 0, len(fields))
	for _, cf := range fields {
		s := &slot{cf: cf, path: appendPath(path, cf.ResponseName)}
		slots = append(slots, s)
		if cf.Fields[0].Name == "__typename" {
			s.typename = true
			continue
		}
		s.fieldDef = objectType.GetField(cf.Fields[0].Name)
		if s.fieldDef == nil {
			state.addMessage(fmt.Sprintf("Cannot query field '%s' on type '%s'", cf.Fields[0].Name, objectType.Name), s.path)
			continue
		}
		args, argErr := coerceArgumentValues(state, s.fieldDef, cf.Fields[0].Arguments, s.path)
		if argErr != nil {
			state.addError(*argErr)
			s.failed = true
			continue
		}
		s.args = args
	}

	var wg sync.WaitGroup
	for _, s := range slots {
		if s.typename || s.failed || s.fieldDef == nil {
			continue
		}
		if err := state.context.Err(); err != nil {
			state.addMessage(err.Error(), path)
			break
		}
		wg.Add(1)
		go func(s *slot) {
			defer wg.Done()
			s.result = resolveAndComplete(state, objectType, s.fieldDef, s.cf.Fields, objectValue, s.args, s.path)
		}(s)
	}
	wg.Wait()

	resultMap := make(map[string]any)
	for _, s := range slots {
		if s.typename {
			resultMap[s.cf.ResponseName] = objectType.Name
			continue
		}
		if s.fieldDef == nil {
			// Unknown field; the error is already recorded and the entry is
			// omitted from the result.
			continue
		}
		if schema.IsNonNull(s.fieldDef.Type) && isNullish(s.result) {
			return nil
		}
		if isNullish(s.result) {
			resultMap[s.cf.ResponseName] = nil
		} else {
			resultMap[s.cf.ResponseName] = s.result
		}
	}
	return resultMap
}

// resolveAndComplete runs one field: invoke the resolver, apply any @export
// directive with the resolved value, then complete the value (which recurses
// into the field's own selection set under the same strategy).
func resolveAndComplete(state *executionState, objectType *schema.Type, fieldDef *schema.Field, fields []*language.Field, objectValue any, args map[string]any, path Path) any {
	value, err := state.runtime.ResolveField(state.context, objectType.Name, fieldDef.Name, objectValue, args)
	if err != nil {
		state.addError(GraphQLError{Message: err.Error(), Path: path})
		return nil
	}
	applyExports(state, fields, value)
	return completeValue(state, fieldDef.Type, fields, value, path)
}

func applyExports(state *executionState, fields []*language.Field, value any) {
	for _, f := range fields {
		d := language.FindExport(f.Directives)
		if d == nil {
			continue
		}
		state.vars.applyExport(d, value)
		if name, collect, ok := language.ExportTarget(d); ok {
			eventbus.Publish(state.context, events.ExportApplied{Name: name, Collect: collect})
		}
	}
}

// completeValue completes a value per the GraphQL rules: Non-Null unwraps
// and records a violation when the inner completion is null, lists complete
// element-wise with index-aware paths, leaves serialize through the runtime,
// objects recurse, abstract types resolve their concrete type first.
func completeValue(state *executionState, fieldType *schema.TypeRef, fields []*language.Field, result any, path Path) any {
	if schema.IsNonNull(fieldType) {
		completed := completeValue(state, schema.Unwrap(fieldType), fields, result, path)
		if isNullish(completed) {
			if !state.hasErrorAt(path) {
				state.addMessage(fmt.Sprintf("Cannot return null for non-nullable field %s", pathToString(path)), path)
			}
			return nil
		}
		return completed
	}

	if isNullish(result) {
		return nil
	}

	if schema.IsList(fieldType) {
		return completeListValue(state, fieldType, fields, result, path)
	}

	namedType := schema.GetNamedType(fieldType)
	typeObj := state.schema.Types[namedType]
	if typeObj == nil {
		state.addMessage(fmt.Sprintf("Unknown type: %s", namedType), path)
		return nil
	}

	switch typeObj.Kind {
	case schema.TypeKindScalar, schema.TypeKindEnum:
		serialized, err := state.runtime.SerializeLeafValue(state.context, namedType, result)
		if err != nil {
			state.addMessage(err.Error(), path)
			return nil
		}
		return serialized
	case schema.TypeKindObject:
		return executeSelectionSet(state, typeObj, mergeSelectionSets(fields), result, path)
	case schema.TypeKindInterface, schema.TypeKindUnion:
		return completeAbstractValue(state, namedType, fields, result, path)
	default:
		state.addMessage(fmt.Sprintf("Cannot complete value of unexpected type: %s", typeObj.Kind), path)
		return nil
	}
}

func completeListValue(state *executionState, listType *schema.TypeRef, fields []*language.Field, result any, path Path) any {
	var items []any
	if direct, ok := result.([]any); ok {
		items = direct
	} else {
		rv := reflect.ValueOf(result)
		if rv.Kind() != reflect.Slice {
			state.addMessage(fmt.Sprintf("Expected list value, got %T", result), path)
			return nil
		}
		items = make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = rv.Index(i).Interface()
		}
	}

	inner := schema.Unwrap(listType)
	completed := make([]any, len(items))
	for i, item := range items {
		p := appendPath(path, i)
		v := completeValue(state, inner, fields, item, p)
		if schema.IsNonNull(inner) && isNullish(v) {
			// Error already recorded by the inner completion; nullify the
			// entire list value.
			return nil
		}
		completed[i] = v
	}
	return completed
}

func completeAbstractValue(state *executionState, abstractTypeName string, fields []*language.Field, result any, path Path) any {
	typeName, err := state.runtime.ResolveType(state.context, abstractTypeName, result)
	if err != nil {
		state.addMessage(err.Error(), path)
		return nil
	}
	objectType := state.schema.Types[typeName]
	if objectType == nil || objectType.Kind != schema.TypeKindObject {
		state.addMessage(fmt.Sprintf("Abstract type %s must resolve to an Object type at runtime. Got: %s", abstractTypeName, typeName), path)
		return nil
	}
	return executeSelectionSet(state, objectType, mergeSelectionSets(fields), result, path)
}

func mergeSelectionSets(fields []*language.Field) language.SelectionSet {
	var merged language.SelectionSet
	for _, f := range fields {
		merged = append(merged, f.SelectionSet...)
	}
	return merged
}

func getOperation(document *language.QueryDocument, operationName string) *language.OperationDefinition {
	if operationName == "" && len(document.Operations) == 1 {
		return document.Operations[0]
	}
	return document.Operations.ForName(operationName)
}

func isNullish(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func pathToString(path Path) string {
	result := ""
	for i, elem := range path {
		switch v := elem.(type) {
		case string:
			if i > 0 {
				result += "."
			}
			result += v
		case int:
			result += fmt.Sprintf("[%d]", v)
		}
	}
	return result
}

func appendPath(path Path, elem PathElement) Path {
	newPath := make(Path, len(path)+1)
	copy(newPath, path)
	newPath[len(path)] = elem
	return newPath
}
