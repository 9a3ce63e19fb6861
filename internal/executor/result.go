package executor

// ErrKindUndefinedVariable marks a field error raised when a variable
// reference has no binding in the store at the moment it is resolved. It is
// deliberately the same name the static check uses: passing validation only
// proves the name is introduced somewhere, not that the exporting field has
// completed by the time a consumer needs it.
const ErrKindUndefinedVariable = "UndefinedVariable"

// GraphQLError represents an error that occurred during execution
type GraphQLError struct {
	Message    string         `json:"message"`
	Kind       string         `json:"kind,omitempty"`
	Path       Path           `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string {
	return e.Message
}

// ExecutionResult represents the result of executing a GraphQL operation.
// Data is nil when an error bubbled all the way to the operation root.
type ExecutionResult struct {
	Data   any            `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}
