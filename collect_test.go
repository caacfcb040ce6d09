package graphql

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// parseOperation parses source and returns its single operation plus the
// document's fragments, the two pieces CollectFields needs from a request
// that never goes through Do's full validation pipeline.
func parseOperation(t *testing.T, source string) (*ast.OperationDefinition, ast.FragmentDefinitionList) {
	t.Helper()
	doc, err := parser.ParseQuery(&ast.Source{Name: "test", Input: source})
	require.NoError(t, err)
	require.Len(t, doc.Operations, 1)
	return doc.Operations[0], doc.Fragments
}

var testStringScalar Type = &Scalar{Name: "String", Serialize: func(v interface{}) (interface{}, error) { return v, nil }}

func newTestObject(name string) *Object {
	return &Object{Name: name, Fields: map[string]*Field{
		"id":   {Name: "id", Type: testStringScalar},
		"name": {Name: "name", Type: testStringScalar},
	}}
}

func newTestExecutionContext(op *ast.OperationDefinition, fragments ast.FragmentDefinitionList) *ExecutionContext {
	return &ExecutionContext{
		Operation:      op,
		Fragments:      fragments,
		VariableValues: map[string]interface{}{},
		memo:           newCollectMemo(),
	}
}

func TestCollectFieldsMergesDuplicateSelections(t *testing.T) {
	op, fragments := parseOperation(t, `{ id name id }`)
	ec := newTestExecutionContext(op, fragments)
	objectType := newTestObject("Person")

	groups, deferred := CollectFields(nil, ec, interface{}(op), objectType, op.SelectionSet)
	require.Empty(t, deferred)
	require.Len(t, groups, 2)

	idGroup := groups[0]
	require.Equal(t, "id", idGroup.ResponseKey)
	require.Len(t, idGroup.Nodes, 2, "the two selections of id must merge into one group")
}

func TestCollectFieldsSkipDirectiveOmitsSelection(t *testing.T) {
	op, fragments := parseOperation(t, `{ id name @skip(if: true) }`)
	ec := newTestExecutionContext(op, fragments)
	objectType := newTestObject("Person")

	groups, _ := CollectFields(nil, ec, interface{}(op), objectType, op.SelectionSet)
	require.Len(t, groups, 1)
	require.Equal(t, "id", groups[0].ResponseKey)
}

func TestCollectFieldsIncludeDirectiveFalseOmitsSelection(t *testing.T) {
	op, fragments := parseOperation(t, `{ id name @include(if: false) }`)
	ec := newTestExecutionContext(op, fragments)
	objectType := newTestObject("Person")

	groups, _ := CollectFields(nil, ec, interface{}(op), objectType, op.SelectionSet)
	require.Len(t, groups, 1)
	require.Equal(t, "id", groups[0].ResponseKey)
}

func TestCollectFieldsInlinesFragmentSpread(t *testing.T) {
	op, fragments := parseOperation(t, `{ id ...Rest } fragment Rest on Person { name }`)
	ec := newTestExecutionContext(op, fragments)
	objectType := newTestObject("Person")

	groups, _ := CollectFields(nil, ec, interface{}(op), objectType, op.SelectionSet)
	var keys []string
	for _, g := range groups {
		keys = append(keys, g.ResponseKey)
	}
	require.ElementsMatch(t, []string{"id", "name"}, keys)
}

func TestCollectFieldsExtractsDeferredInlineFragment(t *testing.T) {
	op, fragments := parseOperation(t, `{ id ... @defer(label: "slow") { name } }`)
	ec := newTestExecutionContext(op, fragments)
	objectType := newTestObject("Person")

	groups, deferred := CollectFields(nil, ec, interface{}(op), objectType, op.SelectionSet)
	require.Len(t, groups, 1)
	require.Equal(t, "id", groups[0].ResponseKey)
	require.Len(t, deferred, 1)
	require.Equal(t, "slow", deferred[0].Label)
	require.Equal(t, objectType, deferred[0].ObjectType)
}

func TestCollectFieldsMemoizesByOwnerAndTypeName(t *testing.T) {
	op, fragments := parseOperation(t, `{ id name }`)
	ec := newTestExecutionContext(op, fragments)
	objectType := newTestObject("Person")

	first, _ := CollectFields(nil, ec, interface{}(op), objectType, op.SelectionSet)
	second, _ := CollectFields(nil, ec, interface{}(op), objectType, op.SelectionSet)
	require.True(t, len(first) == len(second) && &first[0] == &second[0], "second call must return the memoized slice, not recompute it")
}
