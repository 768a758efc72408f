package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityPassesThrough(t *testing.T) {
	src := []byte{1, 2, 3}
	out, err := Identity{}.Encode(src, nil)
	require.NoError(t, err)
	assert.Equal(t, src, out)

	out, err = Identity{}.Decode(src, nil)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestZstdCodecRoundTrip(t *testing.T) {
	c, err := NewZstdCodec()
	require.NoError(t, err)
	defer c.Close()

	src := make([]byte, 4096)
	for i := range src {
		src[i] = byte(i % 251)
	}

	encoded, err := c.Encode(src, nil)
	require.NoError(t, err)

	decoded, err := c.Decode(encoded, nil)
	require.NoError(t, err)
	assert.Equal(t, src, decoded)
}
