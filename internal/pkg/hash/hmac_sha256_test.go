package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACSHA256(t *testing.T) {
	h := NewHMACSHA256("secret-key")

	sum, err := h.Hash("123456")
	require.NoError(t, err)
	assert.Len(t, sum, 64) // hex encoded sha256

	assert.True(t, h.Verify(string(sum), "123456"))
	assert.False(t, h.Verify(string(sum), "654321"))
	assert.False(t, h.Verify("not-a-hash", "123456"))
}

func TestHMACSHA256_KeyedDigest(t *testing.T) {
	a, err := NewHMACSHA256("key-a").Hash("123456")
	require.NoError(t, err)
	b, err := NewHMACSHA256("key-b").Hash("123456")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "digest must depend on the key")
	assert.False(t, NewHMACSHA256("key-b").Verify(string(a), "123456"))
}

func TestHMACSHA256_Deterministic(t *testing.T) {
	h := NewHMACSHA256("secret-key")

	first, err := h.Hash("123456")
	require.NoError(t, err)
	second, err := h.Hash("123456")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
