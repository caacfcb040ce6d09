package graphql

import (
	"sync"

	"github.com/vektah/gqlparser/v2/ast"

	gerrors "github.com/shyptr/gqlexec/errors"
)

// ExecutionContext is the state shared by every field resolved while
// servicing one request: the schema being queried, the parsed operation and
// its sibling fragments, the coerced variables, the error sink every located
// error is recorded into, and the dispatcher incremental delivery is queued
// on. A fresh ExecutionContext is built once per Do call and threaded by
// pointer through collection, resolution and completion.
type ExecutionContext struct {
	Schema         *Schema
	Operation      *ast.OperationDefinition
	Fragments      ast.FragmentDefinitionList
	VariableValues map[string]interface{}
	RootValue      interface{}

	errors     errorSink
	memo       collectMemo
	dispatcher *Dispatcher
}

// errorSink accumulates located errors as they are discovered anywhere in
// the completion tree. It is safe for concurrent use since a request with
// async fields resolves several of them on separate goroutines.
type errorSink struct {
	mu   sync.Mutex
	errs []*gerrors.GraphQLError
}

func (s *errorSink) add(err *gerrors.GraphQLError) {
	s.mu.Lock()
	s.errs = append(s.errs, err)
	s.mu.Unlock()
}

func (s *errorSink) all() []*gerrors.GraphQLError {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*gerrors.GraphQLError, len(s.errs))
	copy(out, s.errs)
	return out
}

// forkErrors returns a shallow copy of ec with a fresh, private error sink.
// Schema, Operation, Fragments, VariableValues, RootValue, memo and dispatcher
// are all shared by reference (memo and dispatcher are already safe for
// concurrent use on their own), so the only thing that needs isolating per
// dispatched unit of work is where its errors land. Used by queueDefer and
// queueStreamItem so a deferred fragment's or streamed item's own errors can
// never be observed by a concurrent read of the main response's error sink.
func (ec *ExecutionContext) forkErrors() *ExecutionContext {
	fork := *ec
	fork.errors = errorSink{}
	return &fork
}

// recordError locates err at path using fieldNodes' positions and appends it
// to the context's error sink, returning the located error for immediate use
// in a propagating value.
func (ec *ExecutionContext) recordError(err error, path *Path, fieldNodes []*ast.Field) *gerrors.GraphQLError {
	var positions []*ast.Position
	for _, node := range fieldNodes {
		positions = append(positions, node.Position)
	}
	located := gerrors.Wrap(err, path.Linearize(), positions...)
	ec.errors.add(located)
	return located
}
