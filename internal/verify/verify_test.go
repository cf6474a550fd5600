package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeavesSkipComments(t *testing.T) {
	leaves, err := Leaves(context.Background(), []byte("x = 1  # one\n# two\n"))
	require.NoError(t, err)
	var texts []string
	for _, l := range leaves {
		texts = append(texts, l.Text)
		assert.NotEqual(t, "comment", l.Type)
	}
	assert.Equal(t, []string{"x", "=", "1"}, texts)
	assert.Equal(t, 1, leaves[0].Line)
}

func TestEquivalentIgnoresCommentLayout(t *testing.T) {
	before := []byte("def f():\n    x = 1  # a b\n    #      # c d\n    return x\n")
	after := []byte("def f():\n    x = 1  # a b c d\n    return x\n")
	assert.NoError(t, Equivalent(context.Background(), before, after))
}

func TestEquivalentCatchesCodeChange(t *testing.T) {
	before := []byte("s = 'a # b'\n")
	after := []byte("s = 'a\n# b'\n")
	err := Equivalent(context.Background(), before, after)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotEquivalent)
}

func TestEquivalentCatchesDroppedCode(t *testing.T) {
	err := Equivalent(context.Background(), []byte("a = 1\nb = 2\n"), []byte("a = 1\n"))
	assert.ErrorIs(t, err, ErrNotEquivalent)
}
