package events

import "time"

// GraphQLStart is emitted before executing a GraphQL operation.
type GraphQLStart struct {
	Query         string
	OperationName string
	OperationType string
}

// GraphQLFinish is emitted after executing a GraphQL operation.
type GraphQLFinish struct {
	Query         string
	OperationName string
	OperationType string
	Errors        []error
	Duration      time.Duration
}

// ValidationFinish is emitted after validating a document, whether or not
// execution follows.
type ValidationFinish struct {
	Query         string
	OperationName string
	ErrorCount    int
	Duration      time.Duration
}

// ExportApplied is emitted when a completed field publishes its value into
// the execution's variable store via @export.
type ExportApplied struct {
	Name    string
	Collect bool
}
