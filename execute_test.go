package graphql

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDo(t *testing.T, schema *Schema, query string) *Response {
	t.Helper()
	resp, err := Do(schema, Params{Query: query, Context: context.Background()})
	require.NoError(t, err)
	return resp
}

func TestDoSyncQueryNeverAllocatesAFuture(t *testing.T) {
	builder := NewSchema()
	builder.Query().FieldFunc("hello", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		return "world", nil
	}, Output(""))
	schema := builder.MustBuild()

	resp := mustDo(t, schema, `{ hello }`)
	require.Empty(t, resp.Errors)
	obj := resp.Data.(*OrderedMap)
	v, ok := obj.Get("hello")
	require.True(t, ok)
	assert.Equal(t, "world", v)
}

func TestDoAsyncFieldResolvesThroughFuture(t *testing.T) {
	builder := NewSchema()
	builder.Query().FieldFunc("answer", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		return Go(func() (interface{}, error) { return 42, nil }), nil
	}, Output(0))
	schema := builder.MustBuild()

	resp := mustDo(t, schema, `{ answer }`)
	require.Empty(t, resp.Errors)
	obj := resp.Data.(*OrderedMap)
	v, _ := obj.Get("answer")
	assert.Equal(t, 42, v)
}

func TestDoNonNullFieldReturningNilBubblesToTopLevelNull(t *testing.T) {
	builder := NewSchema()
	builder.Query().FieldFunc("greet", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		return nil, nil
	}, Output("", Nonnull()))
	schema := builder.MustBuild()

	resp := mustDo(t, schema, `{ greet }`)
	require.Len(t, resp.Errors, 1)
	assert.Nil(t, resp.Data)
}

func TestDoMutationFieldsRunInSelectionOrder(t *testing.T) {
	var order []string

	builder := NewSchema()
	builder.Query().FieldFunc("noop", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		return true, nil
	}, Output(true))

	mutation := builder.Mutation()
	appendOp := func(tag string) FieldResolve {
		return func(ctx context.Context, source, args interface{}) (interface{}, error) {
			order = append(order, tag)
			return true, nil
		}
	}
	mutation.FieldFunc("a", appendOp("a"), Output(true))
	mutation.FieldFunc("b", appendOp("b"), Output(true))
	mutation.FieldFunc("c", appendOp("c"), Output(true))
	schema := builder.MustBuild()

	resp := mustDo(t, schema, `mutation { c: a b: b a: c }`)
	require.Empty(t, resp.Errors)
	assert.Equal(t, []string{"a", "b", "c"}, order, "mutation root fields must resolve one at a time in selection order")
}

func TestDoStreamDirectiveDeliversInitialItemsThenIncrementalPatches(t *testing.T) {
	builder := NewSchema()
	builder.Query().FieldFunc("items", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		return []string{"a", "b", "c", "d"}, nil
	}, Output([]string{}))
	schema := builder.MustBuild()

	resp := mustDo(t, schema, `{ items @stream(initialCount: 2) }`)
	require.Empty(t, resp.Errors)

	obj := resp.Data.(*OrderedMap)
	items, _ := obj.Get("items")
	assert.Equal(t, []interface{}{"a", "b"}, items)
	assert.Len(t, resp.Incremental, 2, "the two items past initialCount arrive as incremental patches")
}

func TestDoDeferredFragmentErrorStaysScopedToItsOwnPatch(t *testing.T) {
	builder := NewSchema()
	query := builder.Query()
	query.FieldFunc("id", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		return "1", nil
	}, Output(""))
	query.FieldFunc("boom", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		return nil, fmt.Errorf("slow field failed")
	}, Output(""))
	schema := builder.MustBuild()

	resp := mustDo(t, schema, `{ id ... @defer(label: "slow") { boom } }`)
	require.Empty(t, resp.Errors, "a deferred fragment's own error must never appear in the main response's error list")
	require.Len(t, resp.Incremental, 1)
	assert.Len(t, resp.Incremental[0].Errors, 1, "the deferred field's error belongs to its own patch")
}

func TestDoMissingRequiredArgumentFailsWithLocatedError(t *testing.T) {
	builder := NewSchema()
	builder.Query().FieldFunc("greet", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		name, _ := argString(args, "name")
		return "hello " + name, nil
	}, Output(""), Input("name", "", Nonnull()))
	schema := builder.MustBuild()

	resp := mustDo(t, schema, `{ greet }`)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Message, `argument "name" of required type is not provided`)
	assert.NotEmpty(t, resp.Errors[0].Locations, "the error must be located at the field's own position")
}
