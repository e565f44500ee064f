package tlsh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDibitDistanceOutlier(t *testing.T) {
	require.Equal(t, byte(0), dibitDistance(0, 0))
	require.Equal(t, byte(1), dibitDistance(0, 1))
	require.Equal(t, byte(2), dibitDistance(0, 2))
	require.Equal(t, byte(bodyOutlierValue), dibitDistance(0, 3))
	require.Equal(t, byte(bodyOutlierValue), dibitDistance(3, 0))
}

func TestBodyDistanceNaiveMatchesTable(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := make([]byte, 32)
	b := make([]byte, 32)
	rng.Read(a)
	rng.Read(b)
	require.Equal(t, bodyDistanceNaive(a, b), bodyDistanceTable(a, b))
}

func TestBodyDistanceIdentityIsZero(t *testing.T) {
	a := []byte{0x1b, 0xe4, 0xff, 0x00}
	require.Equal(t, uint32(0), bodyDistanceNaive(a, a))
	require.Equal(t, uint32(0), bodyDistanceTable(a, a))
}

func TestChecksumDistance(t *testing.T) {
	require.Equal(t, uint32(0), checksumDistance([]byte{1, 2, 3}, []byte{1, 2, 3}))
	require.Equal(t, uint32(1), checksumDistance([]byte{1, 2, 3}, []byte{1, 9, 3}))
	require.Equal(t, uint32(3), checksumDistance([]byte{1, 2, 3}, []byte{9, 9, 9}))
}

func TestRingDistanceNibble(t *testing.T) {
	require.Equal(t, byte(0), ringDistanceNibble(5, 5))
	require.Equal(t, byte(1), ringDistanceNibble(0, 1))
	require.Equal(t, byte(1), ringDistanceNibble(0, 15))
	require.Equal(t, byte(8), ringDistanceNibble(0, 8))
}

func TestQRatioSubDistanceMax(t *testing.T) {
	require.Equal(t, uint32((8-1)*12), qratioSubDistance(0, 8))
}

func TestQRatioDistanceMax(t *testing.T) {
	// Low nibble maximally far, high nibble maximally far.
	require.Equal(t, uint32(maxQRatioDistance), qratioDistance(0x08, 0x80))
}

func TestDistanceIdenticalDigestsAreZero(t *testing.T) {
	g := NewNormal()
	_, _ = g.Write([]byte("a reasonably long sentence used purely to exercise the generator"))
	d, err := g.Finalize()
	require.NoError(t, err)

	dist, err := Distance(d, d)
	require.NoError(t, err)
	require.Equal(t, uint32(0), dist)
}

func TestDistanceVariantMismatch(t *testing.T) {
	short := NewShort()
	_, _ = short.Write([]byte("short variant input text padded to clear minimum length"))
	sd, err := short.Finalize()
	require.NoError(t, err)

	normal := NewNormal()
	_, _ = normal.Write([]byte("a reasonably long sentence used purely to exercise the generator"))
	nd, err := normal.Finalize()
	require.NoError(t, err)

	_, err = Distance(sd, nd)
	require.Error(t, err)
}

func TestDistanceSkipLengthOption(t *testing.T) {
	a, err := DecodeHex(VariantNormal, "T12AD5BE86FFE41D17CC268876A9AE472077B2B0032716DBAF1849A7647DDB7C0DF16488")
	require.NoError(t, err)
	b, err := DecodeHex(VariantNormal, "T1EDD5BE96FFE41D1BCC268C7699AE4720B7B2A0032716DBAF1848A7647DD77C0DF16488")
	require.NoError(t, err)

	withLength, err := Distance(a, b)
	require.NoError(t, err)
	withoutLength, err := Distance(a, b, SkipLengthDistance())
	require.NoError(t, err)

	require.LessOrEqual(t, withoutLength, withLength)
}
