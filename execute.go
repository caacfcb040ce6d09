package graphql

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	gerrors "github.com/shyptr/gqlexec/errors"
)

// Params bundles a single request's inputs: the operation document text, an
// optional operation name disambiguating a multi-operation document, its
// variables, and the go context.Context resolvers see as their ctx
// parameter (request deadline, RequestContext, tracing spans, and so on).
type Params struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
	Context       context.Context        `json:"-"`
}

// Do parses, validates and executes a single request against schema,
// returning the finished Response. It returns an error only for a request
// that could not even be parsed; a failed validation, an operation name the
// document doesn't have, or a missing root type comes back as a Response
// whose Errors carries it and whose Executed is false.
func Do(schema *Schema, params Params) (*Response, error) {
	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	doc, gqlErr := parser.ParseQuery(&ast.Source{Name: "query", Input: params.Query})
	if gqlErr != nil {
		return nil, gerrors.New("%s", gqlErr.Error())
	}

	vars := params.Variables
	if vars == nil {
		vars = map[string]interface{}{}
	}

	// ApplySelectionSet doubles as this executor's static validation pass:
	// it fills in declared variable defaults (mutating vars in place),
	// resolves the requested operation, and rejects unknown fields, fragment
	// cycles, and conflicting selections before a single resolver runs.
	opKind, _, applyErr := ApplySelectionSet(schema, doc, params.OperationName, vars)
	if applyErr != nil {
		return &Response{Errors: gerrors.MultiError{gerrors.New("%s", applyErr.Error())}}, nil
	}

	op := doc.Operations.ForName(params.OperationName)
	rootType, _ := schema.RootType(opKind).(*Object)
	if rootType == nil {
		return &Response{Errors: gerrors.MultiError{gerrors.New("schema has no root type for operation %s", opKind)}}, nil
	}

	ec := &ExecutionContext{
		Schema:         schema,
		Operation:      op,
		Fragments:      doc.Fragments,
		VariableValues: vars,
		memo:           newCollectMemo(),
		dispatcher:     NewDispatcher(),
	}

	var root *Path
	groups, deferred := CollectFields(ctx, ec, interface{}(op), rootType, op.SelectionSet)

	var dataValue value
	if opKind == ast.Mutation {
		dataValue = executeFieldGroupsSerial(ctx, ec, root, rootType, nil, groups)
	} else {
		dataValue = executeFieldGroups(ctx, ec, root, rootType, nil, groups)
	}
	for _, d := range deferred {
		ec.dispatcher.queueDefer(ctx, ec, root, d, nil)
	}

	data, _ := dataValue.await()
	go ec.dispatcher.Wait()
	resp := &Response{Data: data, Errors: ec.errors.all(), Executed: true}
	for patch := range ec.dispatcher.Patches() {
		resp.Incremental = append(resp.Incremental, patch)
	}
	return resp, nil
}

// executeFieldGroupsSerial is executeFieldGroups' mutation-only sibling: the
// spec requires top-level mutation fields to run one at a time, in selection
// order, each fully settled before the next resolver starts, rather than
// concurrently.
func executeFieldGroupsSerial(ctx context.Context, ec *ExecutionContext, path *Path, objectType *Object, source interface{}, groups []*FieldGroup) value {
	obj := newOrderedMap(len(groups))
	for _, group := range groups {
		childPath := AppendPath(path, group.ResponseKey, objectType.Name)
		v := resolveField(ctx, ec, childPath, objectType, source, group)
		res, err := v.await()
		if err != nil {
			return readyValue(nil, err)
		}
		obj.set(group.ResponseKey, res)
	}
	return readyValue(obj, nil)
}

// Subscribe resolves the operation's single root field once to obtain its
// event source - a resolver on the Subscription root type is expected to
// return a channel of raw event values, typically via Go(fn) if producing
// the channel itself takes setup - then re-executes the remaining selection
// once per event, treating the event as the new root value. The returned
// channel closes when the event source closes or ctx is done.
func Subscribe(ctx context.Context, schema *Schema, params Params) (<-chan *Response, error) {
	if params.Context == nil {
		params.Context = ctx
	}

	doc, gqlErr := parser.ParseQuery(&ast.Source{Name: "query", Input: params.Query})
	if gqlErr != nil {
		return nil, gerrors.New("%s", gqlErr.Error())
	}
	vars := params.Variables
	if vars == nil {
		vars = map[string]interface{}{}
	}
	opKind, _, applyErr := ApplySelectionSet(schema, doc, params.OperationName, vars)
	if applyErr != nil {
		return nil, gerrors.New("%s", applyErr.Error())
	}
	if opKind != ast.Subscription {
		return nil, gerrors.New("operation is not a subscription")
	}

	op := doc.Operations.ForName(params.OperationName)
	rootType, _ := schema.RootType(opKind).(*Object)
	if rootType == nil {
		return nil, gerrors.New("schema has no subscription root type")
	}

	ec := &ExecutionContext{
		Schema:         schema,
		Operation:      op,
		Fragments:      doc.Fragments,
		VariableValues: vars,
		memo:           newCollectMemo(),
	}

	var root *Path
	groups, _ := CollectFields(ctx, ec, interface{}(op), rootType, op.SelectionSet)
	if len(groups) != 1 {
		return nil, gerrors.New("subscription must select exactly one top level field")
	}
	group := groups[0]
	fieldDef, ok := rootType.Fields[group.Nodes[0].Name]
	if !ok {
		return nil, gerrors.New("unknown subscription field %q", group.Nodes[0].Name)
	}
	args, err := coerceArguments(ctx, fieldDef.Args, group.Nodes[0].Arguments, vars, group.Nodes[0])
	if err != nil {
		return nil, gerrors.New("%s", err.Error())
	}
	raw, err := safeResolve(params.Context, fieldDef.FieldResolve, nil, args)
	if err != nil {
		return nil, gerrors.New("%s", err.Error())
	}
	if fut, isFuture := raw.(*Future); isFuture {
		raw, err = fut.Await()
		if err != nil {
			return nil, gerrors.New("%s", err.Error())
		}
	}
	events, ok := asEventChannel(raw)
	if !ok {
		return nil, gerrors.New("subscription resolver for %q did not return an event channel", group.Nodes[0].Name)
	}

	out := make(chan *Response)
	go pumpSubscription(params.Context, ec, root, rootType, group, events, out)
	return out, nil
}

// asEventChannel accepts either channel direction a subscription resolver
// might return: a bidirectional chan interface{} it produced directly, or a
// receive-only <-chan interface{} it exposed after fanning events into it
// on another goroutine (the common shape when Go(fn) built it).
func asEventChannel(raw interface{}) (<-chan interface{}, bool) {
	switch ch := raw.(type) {
	case chan interface{}:
		return ch, true
	case <-chan interface{}:
		return ch, true
	default:
		return nil, false
	}
}

func pumpSubscription(ctx context.Context, ec *ExecutionContext, path *Path, rootType *Object, group *FieldGroup, events <-chan interface{}, out chan<- *Response) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			childPath := AppendPath(path, group.ResponseKey, rootType.Name)
			v := settle(rootType.Fields[group.Nodes[0].Name].Type, completeValue(ctx, ec, childPath, rootType.Fields[group.Nodes[0].Name].Type, group.Nodes, event))
			data, _ := v.await()
			obj := newOrderedMap(1)
			obj.set(group.ResponseKey, data)
			resp := &Response{Data: obj, Errors: ec.errors.all(), Executed: true}
			select {
			case out <- resp:
			case <-ctx.Done():
				return
			}
		}
	}
}
