// Package executor implements a GraphQL executor with two sibling execution
// strategies and a per-execution variable store fed by the @export directive.
//
// # Strategies
//
// Mutations execute their sibling fields serially in document order: a
// field's entire subtree, including any export it applies, settles before
// the next sibling begins. Queries and subscriptions fan sibling fields out
// to goroutines and join before assembling the level's result; response
// order is document order regardless of completion order.
//
// # The variable store
//
// Each ExecuteRequest creates one VariableStore seeded with the coerced
// caller variables. When a field carrying @export completes its resolver,
// the raw resolver value is published into the store before value
// completion descends into the field's subtree:
//
//   - @export(as: "name") binds name to the value, overwriting any prior
//     binding including declared variables.
//   - @export(into: "name") appends the value to a list created on first
//     use, preserving the completion order of the exporting fields.
//
// Consumers read the store when their arguments are coerced, immediately
// before their own resolver is invoked. A name with no binding at that
// moment produces an UndefinedVariable field error; the field is not
// resolved and completes as null. Whether a given read observes a given
// export is therefore purely a question of execution order:
//
//   - Serial: an exporting sibling earlier in document order is always
//     visible to later siblings. This is the supported chaining pattern.
//   - Parallel: sibling arguments are all resolved in document order before
//     any sibling's resolver starts, so an intra-level export→consume
//     dependency fails deterministically with UndefinedVariable instead of
//     racing the exporting resolver. Exports do become visible to the
//     exporting field's own subtree and to anything sequenced after the
//     level's join.
//
// # Value completion
//
// Completion follows the GraphQL rules: Non-Null unwraps and records a
// violation when the inner completion is null, propagating null to the
// nearest nullable ancestor (at the root the whole data value becomes
// null); lists complete element-wise with index-aware paths, and a null
// element of a Non-Null inner type nullifies the list; leaves serialize
// through Runtime.SerializeLeafValue; objects recurse under the same
// strategy; interfaces and unions resolve their concrete type through
// Runtime.ResolveType first.
//
// # Errors and partial success
//
// Errors accumulate as located GraphQL errors (message, optional kind,
// path). A failing field yields null at its path while unrelated siblings
// keep their values, subject to Non-Null propagation.
package executor
