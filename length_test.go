package tlsh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLengthTableStrictlyIncreasing(t *testing.T) {
	for i := 1; i < len(lengthTop); i++ {
		require.Greaterf(t, lengthTop[i], lengthTop[i-1], "lengthTop[%d..%d] not increasing", i-1, i)
	}
}

func TestLengthEncodeDecodeRoundTrip(t *testing.T) {
	for code := 0; code < len(lengthTop); code++ {
		lo, hi, ok := lengthDecode(byte(code))
		require.True(t, ok)
		for _, n := range []uint32{lo, hi} {
			got, ok := lengthEncode(n)
			require.True(t, ok)
			require.Equalf(t, byte(code), got, "lengthEncode(%d) for code %d", n, code)
		}
	}
}

func TestLengthEncodeTooLarge(t *testing.T) {
	_, ok := lengthEncode(maxEncodableLength + 1)
	require.False(t, ok)
}

func TestLengthDecodeOutOfRange(t *testing.T) {
	_, _, ok := lengthDecode(170)
	require.False(t, ok)
	_, _, ok = lengthDecode(255)
	require.False(t, ok)
}

func TestRingDistance8(t *testing.T) {
	require.Equal(t, byte(0), ringDistance8(5, 5))
	require.Equal(t, byte(1), ringDistance8(0, 1))
	require.Equal(t, byte(1), ringDistance8(0, 255))
	require.Equal(t, byte(128), ringDistance8(0, 128))
}

func TestLengthDistance(t *testing.T) {
	require.Equal(t, uint32(0), lengthDistance(10, 10))
	require.Equal(t, uint32(1), lengthDistance(10, 11))
	require.Equal(t, uint32(2*12), lengthDistance(10, 12))
	require.LessOrEqual(t, lengthDistance(0, 128), uint32(maxLengthDistance))
}
