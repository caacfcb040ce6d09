package graphql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyValueStaysSynchronous(t *testing.T) {
	v := readyValue("a", nil)
	assert.False(t, v.isPending())
	res, err := v.await()
	require.NoError(t, err)
	assert.Equal(t, "a", res)
}

func TestMapValueSyncFastPath(t *testing.T) {
	v := mapValue(readyValue(2, nil), func(v interface{}) (interface{}, error) {
		return v.(int) * 2, nil
	})
	assert.False(t, v.isPending(), "mapValue must not allocate a future when the input is ready")
	res, err := v.await()
	require.NoError(t, err)
	assert.Equal(t, 4, res)
}

func TestMapValuePropagatesPendingFuture(t *testing.T) {
	fut := Go(func() (interface{}, error) { return 21, nil })
	v := mapValue(pendingValue(fut), func(v interface{}) (interface{}, error) {
		return v.(int) * 2, nil
	})
	assert.True(t, v.isPending())
	res, err := v.await()
	require.NoError(t, err)
	assert.Equal(t, 42, res)
}

func TestFlatMapValueChainsBothDirections(t *testing.T) {
	// sync producing an async continuation
	v := flatMapValue(readyValue(1, nil), func(v interface{}) value {
		return pendingValue(Go(func() (interface{}, error) { return v.(int) + 1, nil }))
	})
	res, err := v.await()
	require.NoError(t, err)
	assert.Equal(t, 2, res)

	// async producing a sync continuation
	v2 := flatMapValue(pendingValue(Go(func() (interface{}, error) { return 1, nil })), func(v interface{}) value {
		return readyValue(v.(int)+1, nil)
	})
	res2, err := v2.await()
	require.NoError(t, err)
	assert.Equal(t, 2, res2)
}

func TestSwallowToNullDiscardsError(t *testing.T) {
	boom := errors.New("boom")
	v := swallowToNull(readyValue(nil, boom))
	res, err := v.await()
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSwallowToNullPassesThroughSuccess(t *testing.T) {
	v := swallowToNull(readyValue("ok", nil))
	res, err := v.await()
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
}

func TestAllValuesPreservesOrderAcrossMixedTiming(t *testing.T) {
	vs := []value{
		pendingValue(Go(func() (interface{}, error) { return 1, nil })),
		readyValue(2, nil),
		pendingValue(Go(func() (interface{}, error) { return 3, nil })),
	}
	v := allValues(vs)
	res, err := v.await()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{1, 2, 3}, res)
}

func TestAllValuesShortCircuitsOnError(t *testing.T) {
	boom := errors.New("boom")
	vs := []value{readyValue(1, nil), readyValue(nil, boom)}
	_, err := allValues(vs).await()
	assert.Equal(t, boom, err)
}

func TestMapObjectValuesPreservesInsertionOrder(t *testing.T) {
	kvs := []keyedValue{
		{key: "b", value: pendingValue(Go(func() (interface{}, error) { return 2, nil }))},
		{key: "a", value: readyValue(1, nil)},
	}
	v := mapObjectValues(kvs)
	res, err := v.await()
	require.NoError(t, err)
	obj := res.(*OrderedMap)
	assert.Equal(t, []string{"b", "a"}, obj.Keys())
	bv, _ := obj.Get("b")
	assert.Equal(t, 2, bv)
}
