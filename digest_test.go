package tlsh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigestHexRoundTrip(t *testing.T) {
	g := NewNormal()
	_, _ = g.Write([]byte("round trip exercising text that is plenty long enough to satisfy the minimum"))
	d, err := g.Finalize()
	require.NoError(t, err)

	hexForm := d.EncodeHex()
	require.True(t, len(hexForm) > 2)
	require.Equal(t, "T1", hexForm[:2])

	back, err := DecodeHex(VariantNormal, hexForm)
	require.NoError(t, err)
	require.Equal(t, d.EncodeHex(), back.EncodeHex())
	require.Equal(t, d.Checksum(), back.Checksum())
	require.Equal(t, d.Body(), back.Body())
}

func TestDigestHexAcceptsMissingPrefix(t *testing.T) {
	g := NewShort()
	_, _ = g.Write([]byte("some text long enough to clear the short variant minimum length"))
	d, err := g.Finalize()
	require.NoError(t, err)

	withPrefix := d.EncodeHex()
	withoutPrefix := withPrefix[2:]

	back, err := DecodeHex(VariantShort, withoutPrefix)
	require.NoError(t, err)
	require.Equal(t, d.EncodeHex(), back.EncodeHex())
}

func TestDigestBytesRoundTrip(t *testing.T) {
	g := NewLongChecksum()
	_, _ = g.Write([]byte("yet more exercising text, this time long enough for the 256-bucket variant with its higher minimums to accept it without complaint"))
	d, err := g.Finalize()
	require.NoError(t, err)

	buf := make([]byte, VariantLongChecksum.DigestSize())
	n, err := d.EncodeBytes(buf)
	require.NoError(t, err)
	require.Equal(t, VariantLongChecksum.DigestSize(), n)

	back, err := DecodeBytes(VariantLongChecksum, buf)
	require.NoError(t, err)
	require.Equal(t, d.EncodeHex(), back.EncodeHex())
}

func TestDigestEncodeBytesBufferTooSmall(t *testing.T) {
	g := NewNormal()
	_, _ = g.Write([]byte("some text long enough to clear the minimum length for the normal variant"))
	d, err := g.Finalize()
	require.NoError(t, err)

	_, err = d.EncodeBytes(make([]byte, 1))
	require.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestDecodeHexRejectsWrongLength(t *testing.T) {
	_, err := DecodeHex(VariantNormal, "T1ABCD")
	require.ErrorIs(t, err, ErrInvalidStringLength)
}

func TestDecodeHexPermissiveByDefaultAcceptsInvalidLengthCode(t *testing.T) {
	g := NewNormal()
	_, _ = g.Write([]byte("some text long enough to clear the minimum length for the normal variant"))
	d, err := g.Finalize()
	require.NoError(t, err)

	buf := make([]byte, VariantNormal.DigestSize())
	_, err = d.EncodeBytes(buf)
	require.NoError(t, err)
	d2, err := DecodeBytes(VariantNormal, buf)
	require.NoError(t, err)

	d2.lengthCode = 255
	hexWithBadCode := d2.EncodeHex()

	back, err := DecodeHex(VariantNormal, hexWithBadCode)
	require.NoError(t, err)
	require.False(t, back.Valid())

	_, err = DecodeHex(VariantNormal, hexWithBadCode, Strict())
	require.ErrorIs(t, err, ErrLengthTooLarge)
}

func TestDecodeBytesStrictRejectsInvalidLengthCode(t *testing.T) {
	g := NewNormal()
	_, _ = g.Write([]byte("some text long enough to clear the minimum length for the normal variant"))
	d, err := g.Finalize()
	require.NoError(t, err)

	buf := make([]byte, VariantNormal.DigestSize())
	_, err = d.EncodeBytes(buf)
	require.NoError(t, err)
	buf[VariantNormal.Checksum] = 255 // length code byte

	back, err := DecodeBytes(VariantNormal, buf)
	require.NoError(t, err)
	require.False(t, back.Valid())

	_, err = DecodeBytes(VariantNormal, buf, Strict())
	require.ErrorIs(t, err, ErrLengthTooLarge)
}

func TestDecodeHexStrictRejectsOversizedShortChecksum(t *testing.T) {
	g := NewShort()
	_, _ = g.Write([]byte("some text long enough to clear the short variant minimum length"))
	d, err := g.Finalize()
	require.NoError(t, err)

	buf := make([]byte, VariantShort.DigestSize())
	_, err = d.EncodeBytes(buf)
	require.NoError(t, err)
	buf[0] = 200 // checksum byte, out of the valid 0..48 range

	d2, err := DecodeBytes(VariantShort, buf)
	require.NoError(t, err)
	require.False(t, d2.Valid())

	hexWithBadChecksum := d2.EncodeHex()
	_, err = DecodeHex(VariantShort, hexWithBadChecksum, Strict())
	require.ErrorIs(t, err, ErrInvalidChecksum)
}

func TestDecodeHexRejectsWrongPrefix(t *testing.T) {
	g := NewNormal()
	_, _ = g.Write([]byte("some text long enough to clear the minimum length for the normal variant"))
	d, err := g.Finalize()
	require.NoError(t, err)

	wrongPrefix := "T9" + d.EncodeHex()[2:]
	_, err = DecodeHex(VariantNormal, wrongPrefix)
	require.ErrorIs(t, err, ErrInvalidPrefix)
}
