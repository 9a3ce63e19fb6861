package executor

import (
	"context"
)

// Runtime defines the host integration surface for field resolution,
// abstract type resolution, and leaf-value serialization used by the
// Executor.
//
// General contract
//   - ResolveField is invoked once per field occurrence in the response tree.
//     Under the parallel strategy sibling invocations run on separate
//     goroutines; under the serial strategy a field's call only starts after
//     the previous sibling's whole subtree has settled.
//   - Implementations may block; the calling goroutine is the await point.
//     Respect ctx for cancellation. In-flight calls are not interrupted by
//     the executor when ctx is cancelled; it only stops issuing new work.
//   - Errors returned from any method are converted into located GraphQL
//     errors. If the field's return type is Non-Null, the executor
//     propagates the null up to the nearest nullable ancestor.
//   - Implementations should be stateless or otherwise concurrency-safe and
//     must not mutate source or args values.
//
// Object/field identifiers
//   - objectType is the GraphQL type name (e.g. "User").
//   - field is the GraphQL field name on that type (e.g. "posts").
//   - For root fields, objectType is the root type name (e.g. "Mutation").
//   - source is the parent object value (nil for root).
//   - args is the map of argument names to already-coerced Go values; any
//     variable references have been substituted from the variable store
//     before the call.
type Runtime interface {
	// ResolveField resolves a single field value. Return (nil, nil) to
	// produce a GraphQL null for nullable fields.
	ResolveField(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error)

	// ResolveType determines the concrete runtime type name for a value of
	// an abstract GraphQL type (interface or union). The returned name must
	// identify an object type in the schema.
	ResolveType(ctx context.Context, abstractType string, value any) (string, error)

	// SerializeLeafValue serializes a scalar or enum value to a JSON-safe Go
	// value. For enums, return the symbolic name as string.
	SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error)
}
