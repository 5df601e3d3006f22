package nameindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetLastWins(t *testing.T) {
	idx := New[int]()
	idx.Put("a", 1)
	idx.Put("b", 2)
	idx.Put("a", 3)

	v, ok := idx.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	assert.Equal(t, []string{"a", "b"}, idx.Names(), "first-seen order must survive overwrites")
	assert.Equal(t, 2, idx.Len())
}

func TestDelete(t *testing.T) {
	idx := New[string]()
	idx.Put("x", "one")
	idx.Put("y", "two")
	idx.Delete("x")

	_, ok := idx.Get("x")
	assert.False(t, ok)
	assert.Equal(t, []string{"y"}, idx.Names())
}

func TestIDStable(t *testing.T) {
	assert.Equal(t, ID("tex_hero"), ID("tex_hero"))
	assert.NotEqual(t, ID("tex_hero"), ID("tex_villain"))
}
