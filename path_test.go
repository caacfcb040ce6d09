package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathLinearizeOrdersRootFirst(t *testing.T) {
	p := AppendPath(AppendPath(AppendPath(nil, "items", "Query"), 2, "Item"), "name", "Item")
	assert.Equal(t, []interface{}{"items", 2, "name"}, p.Linearize())
}

func TestNilPathLinearizesEmpty(t *testing.T) {
	var p *Path
	assert.Nil(t, p.Linearize())
}

func TestAppendPathRejectsInvalidKey(t *testing.T) {
	assert.Panics(t, func() { AppendPath(nil, 3.14, "") })
}

func TestPathEqualByValueNotIdentity(t *testing.T) {
	a := AppendPath(AppendPath(nil, "a", ""), 1, "")
	b := AppendPath(AppendPath(nil, "a", ""), 1, "")
	assert.True(t, a.Equal(b))

	c := AppendPath(AppendPath(nil, "a", ""), 2, "")
	assert.False(t, a.Equal(c))
}
