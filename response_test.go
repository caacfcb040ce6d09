package graphql

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/shyptr/gqlexec/errors"
)

func TestResponseMarshalJSONOmitsDataKeyBeforeExecution(t *testing.T) {
	resp := &Response{Errors: gerrors.MultiError{gerrors.New("bad request")}}

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	_, hasData := decoded["data"]
	assert.False(t, hasData, "a pre-execution failure must not carry a data key at all")
	assert.Contains(t, decoded, "errors")
}

func TestResponseMarshalJSONEmitsNullDataAfterExecution(t *testing.T) {
	resp := &Response{Executed: true, Errors: gerrors.MultiError{gerrors.New("non-null field returned null")}}

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	v, hasData := decoded["data"]
	assert.True(t, hasData, "a root-level null after execution began must still carry a data key")
	assert.Nil(t, v)
}
