package errors

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// GraphQLError is the located error shape returned to clients: a message plus
// enough position information to point back at the offending part of the
// operation. OriginalError, when set, is the resolver or completion error that
// caused this one; it is never serialized.
type GraphQLError struct {
	Message       string                 `json:"message"`
	Locations     []Location             `json:"locations,omitempty"`
	Path          []interface{}          `json:"path,omitempty"`
	Extensions    map[string]interface{} `json:"extensions,omitempty"`
	Rule          string                 `json:"-"`
	OriginalError error                  `json:"-"`
}

func (err *GraphQLError) Error() string {
	if err == nil {
		return "<nil>"
	}
	str := fmt.Sprintf("graphql: %s", err.Message)
	for _, loc := range err.Locations {
		str += fmt.Sprintf(" (%d:%d)", loc.Line, loc.Column)
	}
	if err.Path != nil {
		str += fmt.Sprintf(" path: %v", err.Path)
	}
	return str
}

func (err *GraphQLError) Unwrap() error {
	if err == nil {
		return nil
	}
	return err.OriginalError
}

// MultiError accumulates every located error raised while servicing a single
// request. It is append-only for the lifetime of an execution.
type MultiError []*GraphQLError

func (m MultiError) Error() string {
	var res string
	for _, err := range m {
		res += err.Error() + "\n"
	}
	return res
}

var _ error = (*GraphQLError)(nil)

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (a Location) Before(b Location) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Column < b.Column)
}

// New builds an error with no location or path information. Used for request
// level failures raised before a path exists (variable coercion, missing
// operation, and the like).
func New(format string, arg ...interface{}) *GraphQLError {
	return &GraphQLError{
		Message: fmt.Sprintf(format, arg...),
	}
}

// Wrap locates originalError at path using positions gathered from the AST
// nodes responsible for the failing field, argument, or directive.
func Wrap(originalError error, path []interface{}, positions ...*ast.Position) *GraphQLError {
	if located, ok := originalError.(*GraphQLError); ok && located.Path != nil {
		return located
	}
	err := &GraphQLError{
		Message:       originalError.Error(),
		Path:          path,
		OriginalError: originalError,
	}
	for _, pos := range positions {
		if pos == nil {
			continue
		}
		err.Locations = append(err.Locations, Location{Line: pos.Line, Column: pos.Column})
	}
	return err
}
