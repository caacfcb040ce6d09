package graphql

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

// fieldNode parses source and returns the single top-level field selection's
// AST node, the unit completeValue and resolveField need as fieldNodes[0]
// for error positions and directive lookups.
func fieldNode(t *testing.T, source string) (*ExecutionContext, *ast.Field) {
	t.Helper()
	op, fragments := parseOperation(t, source)
	ec := newTestExecutionContext(op, fragments)
	ec.dispatcher = NewDispatcher()
	field := op.SelectionSet[0].(*ast.Field)
	return ec, field
}

func TestCompleteValueSerializesScalar(t *testing.T) {
	ec, field := fieldNode(t, `{ name }`)
	v := completeValue(context.Background(), ec, nil, testStringScalar, []*ast.Field{field}, "hi")
	res, err := v.await()
	require.NoError(t, err)
	assert.Equal(t, "hi", res)
}

func TestCompleteValueScalarSerializeErrorYieldsNullPlusRecordedError(t *testing.T) {
	boom := errors.New("boom")
	badScalar := &Scalar{Name: "Bad", Serialize: func(interface{}) (interface{}, error) { return nil, boom }}
	ec, field := fieldNode(t, `{ name }`)

	v := completeValue(context.Background(), ec, nil, badScalar, []*ast.Field{field}, "anything")
	res, err := v.await()
	require.NoError(t, err, "completeValue itself never propagates a scalar serialize error")
	assert.Nil(t, res)
	assert.Len(t, ec.errors.all(), 1)
}

func TestCompleteValueEnumLooksUpName(t *testing.T) {
	enum := &Enum{Name: "Color", ValuesLookup: map[interface{}]string{1: "RED", 2: "BLUE"}}
	ec, field := fieldNode(t, `{ name }`)

	v := completeValue(context.Background(), ec, nil, enum, []*ast.Field{field}, 2)
	res, err := v.await()
	require.NoError(t, err)
	assert.Equal(t, "BLUE", res)
}

func TestCompleteValueEnumUnknownMemberRecordsError(t *testing.T) {
	enum := &Enum{Name: "Color", ValuesLookup: map[interface{}]string{1: "RED"}}
	ec, field := fieldNode(t, `{ name }`)

	v := completeValue(context.Background(), ec, nil, enum, []*ast.Field{field}, 99)
	res, err := v.await()
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Len(t, ec.errors.all(), 1)
}

func TestCompleteValueNilResultShortCircuitsToNull(t *testing.T) {
	ec, field := fieldNode(t, `{ name }`)
	var nilSlice []int
	v := completeValue(context.Background(), ec, nil, &List{Type: testStringScalar}, []*ast.Field{field}, nilSlice)
	res, err := v.await()
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestCompleteValueNonNullBubblesNilAsError(t *testing.T) {
	ec, field := fieldNode(t, `{ name }`)
	nn := &NonNull{Type: testStringScalar}

	v := completeValue(context.Background(), ec, nil, nn, []*ast.Field{field}, nil)
	res, err := v.await()
	require.Error(t, err, "a NonNull wrapper around a nil result must surface an error, not swallow it")
	assert.Nil(t, res)
}

func TestSettleSwallowsForNullableAndPropagatesForNonNull(t *testing.T) {
	boom := errors.New("boom")

	nullable := settle(testStringScalar, readyValue(nil, boom))
	res, err := nullable.await()
	require.NoError(t, err)
	assert.Nil(t, res)

	nonNull := settle(&NonNull{Type: testStringScalar}, readyValue(nil, boom))
	_, err = nonNull.await()
	assert.Equal(t, boom, err)
}

func TestCompleteListValueAppliesStreamInitialCount(t *testing.T) {
	ec, field := fieldNode(t, `{ name @stream(initialCount: 2) }`)
	listType := &List{Type: testStringScalar}

	v := completeListValue(context.Background(), ec, nil, listType, []*ast.Field{field}, []interface{}{"a", "b", "c", "d"})
	res, err := v.await()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b"}, res, "only the first initialCount items complete synchronously")

	ec.dispatcher.wg.Wait()
	close(ec.dispatcher.patches)
	var patches []*Patch
	for p := range ec.dispatcher.patches {
		patches = append(patches, p)
	}
	require.Len(t, patches, 2, "the remaining items are queued onto the dispatcher as individual patches")
}

func TestCompleteObjectValueRejectsMismatchedIsTypeOf(t *testing.T) {
	objectType := &Object{
		Name:     "Person",
		Fields:   map[string]*Field{"name": {Name: "name", Type: testStringScalar}},
		IsTypeOf: func(ctx context.Context, v interface{}) bool { return false },
	}
	ec, field := fieldNode(t, `{ name }`)

	v := completeObjectValue(context.Background(), ec, nil, objectType, []*ast.Field{field}, struct{}{})
	_, err := v.await()
	assert.Error(t, err)
}

func TestResolveAbstractTypeMatchesByIsTypeOf(t *testing.T) {
	type Cat struct{}
	catObj := &Object{Name: "Cat", ReflectType: nil, IsTypeOf: func(ctx context.Context, v interface{}) bool {
		_, ok := v.(Cat)
		return ok
	}}
	dogObj := &Object{Name: "Dog", IsTypeOf: func(ctx context.Context, v interface{}) bool { return false }}

	resolved, err := resolveAbstractType(context.Background(), nil, map[string]*Object{"Cat": catObj, "Dog": dogObj}, Cat{})
	require.NoError(t, err)
	assert.Equal(t, "Cat", resolved.Name)
}

func TestResolveAbstractTypeFallsBackToReflectType(t *testing.T) {
	type Cat struct{}
	catObj := &Object{Name: "Cat", ReflectType: reflect.TypeOf(Cat{})}

	resolved, err := resolveAbstractType(context.Background(), nil, map[string]*Object{"Cat": catObj}, Cat{})
	require.NoError(t, err)
	assert.Equal(t, "Cat", resolved.Name)
}

func TestResolveAbstractTypeNoMatchIsError(t *testing.T) {
	type Cat struct{}
	type Dog struct{}
	dogObj := &Object{Name: "Dog", ReflectType: reflect.TypeOf(Dog{})}

	_, err := resolveAbstractType(context.Background(), nil, map[string]*Object{"Dog": dogObj}, Cat{})
	assert.Error(t, err)
}
