package validation

import (
	"fmt"

	language "github.com/hanpama/exportgraph/internal/language"
)

// ErrorKind classifies a validation error.
type ErrorKind string

const ErrUndefinedVariable ErrorKind = "UndefinedVariable"

// Error is one static validation finding with its source location.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Line    int       `json:"line"`
	Column  int       `json:"column"`
}

func (e Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Line, e.Column)
	}
	return e.Message
}

// Collector accumulates validation errors across all rules and operations of
// one document. It is append-only; rules never remove or reorder entries.
type Collector struct {
	errs []Error
}

func (c *Collector) add(kind ErrorKind, pos *language.Position, message string) {
	e := Error{Kind: kind, Message: message}
	if pos != nil {
		e.Line = pos.Line
		e.Column = pos.Column
	}
	c.errs = append(c.errs, e)
}

// Errors returns every collected error in the order it was reported.
func (c *Collector) Errors() []Error { return c.errs }
