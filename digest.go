package tlsh

import (
	"encoding/hex"
	"strings"
)

// maxBodySize is the body byte count of the largest variant (256 buckets).
const maxBodySize = 256 / 4

// Digest is an immutable, fixed-size TLSH digest for some Variant. The
// zero value is not a valid digest; obtain one from Generator.Finalize or
// DecodeBytes/DecodeHex.
type Digest struct {
	variant    Variant
	checksum   [3]byte
	lengthCode byte
	qratios    byte
	body       [maxBodySize]byte
}

// Variant reports the (B, C) trio this digest was produced for.
func (d Digest) Variant() Variant { return d.variant }

// Checksum returns a copy of the digest's checksum bytes.
func (d Digest) Checksum() []byte {
	out := make([]byte, d.variant.Checksum)
	copy(out, d.checksum[:d.variant.Checksum])
	return out
}

// LengthCode returns the raw 8-bit encoded length.
func (d Digest) LengthCode() byte { return d.lengthCode }

// QRatios returns the packed byte holding both Q-ratio nibbles.
func (d Digest) QRatios() byte { return d.qratios }

// Body returns a copy of the digest's packed quartile body bytes.
func (d Digest) Body() []byte {
	out := make([]byte, d.variant.BodySize())
	copy(out, d.body[:d.variant.BodySize()])
	return out
}

// Valid reports whether d satisfies the strict-parser rules from spec §6:
// the length code must be one of the 170 valid codes, and a 48-bucket
// variant's single checksum byte must not exceed 48. A digest that fails
// Valid still parsed successfully under the default permissive mode; it
// is merely ill-formed.
func (d Digest) Valid() bool {
	return validateStrict(d.variant, d) == nil
}

// validateStrict applies the spec §6 strict-parser checks to an already
// decoded digest.
func validateStrict(v Variant, d Digest) error {
	if _, _, ok := lengthDecode(d.lengthCode); !ok {
		return ErrLengthTooLarge
	}
	if v.Buckets == 48 && d.checksum[0] > 48 {
		return ErrInvalidChecksum
	}
	return nil
}

func swapNibbles(b byte) byte { return b<<4 | b>>4 }

// splitPrefix strips an optional literal "T1" prefix from s, which must
// otherwise be exactly hexLen characters long. A present-but-wrong prefix
// (the right total length, wrong leading two characters) is reported as
// ErrInvalidPrefix rather than folded into ErrInvalidCharacter or
// ErrInvalidStringLength.
func splitPrefix(s string, hexLen int) (string, error) {
	switch len(s) {
	case hexLen:
		return s, nil
	case hexLen + 2:
		if s[:2] != "T1" {
			return "", ErrInvalidPrefix
		}
		return s[2:], nil
	default:
		return "", ErrInvalidStringLength
	}
}

// EncodeBytes writes the digest's raw binary form (checksum, length code,
// Q-ratios, then body, all in natural byte order) to dst, which must hold
// at least Variant.DigestSize() bytes.
func (d Digest) EncodeBytes(dst []byte) (int, error) {
	n := d.variant.DigestSize()
	if len(dst) < n {
		return 0, ErrBufferTooSmall
	}
	c := d.variant.Checksum
	copy(dst[0:c], d.checksum[:c])
	dst[c] = d.lengthCode
	dst[c+1] = d.qratios
	copy(dst[c+2:n], d.body[:d.variant.BodySize()])
	return n, nil
}

// DecodeBytes parses the raw binary form produced by EncodeBytes for the
// given variant. By default it is permissive, matching spec §6: pass
// Strict() to additionally reject an invalid length code or (for the
// 48-bucket variant) an out-of-range checksum byte.
func DecodeBytes(v Variant, src []byte, opts ...ParseOption) (Digest, error) {
	if err := v.Validate(); err != nil {
		return Digest{}, err
	}
	var cfg parseConfig
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	n := v.DigestSize()
	if len(src) != n {
		return Digest{}, ErrInvalidStringLength
	}
	var d Digest
	d.variant = v
	c := v.Checksum
	copy(d.checksum[:c], src[0:c])
	d.lengthCode = src[c]
	d.qratios = src[c+1]
	copy(d.body[:v.BodySize()], src[c+2:n])

	if cfg.strict {
		if err := validateStrict(v, d); err != nil {
			return Digest{}, err
		}
	}
	return d, nil
}

// EncodeHex renders the canonical "T1" + uppercase hex string form. The
// checksum, length code and Q-ratios bytes are emitted nibble-swapped, and
// the body bytes are emitted in their stored order with natural nibble
// order, matching the historical TLSH wire format every interoperable
// implementation reproduces.
func (d Digest) EncodeHex() string {
	c := d.variant.Checksum
	bodySize := d.variant.BodySize()

	head := make([]byte, c+2)
	for i := 0; i < c; i++ {
		head[i] = swapNibbles(d.checksum[i])
	}
	head[c] = swapNibbles(d.lengthCode)
	head[c+1] = swapNibbles(d.qratios)

	body := d.body[:bodySize]

	var sb strings.Builder
	sb.Grow(2 + 2*len(head) + 2*len(body))
	sb.WriteString("T1")
	sb.WriteString(strings.ToUpper(hex.EncodeToString(head)))
	sb.WriteString(strings.ToUpper(hex.EncodeToString(body)))
	return sb.String()
}

// DecodeHex parses the canonical hex form for v, with or without the "T1"
// prefix. By default it is permissive, matching spec §6: pass Strict() to
// additionally reject an invalid length code or (for the 48-bucket
// variant) an out-of-range checksum byte.
func DecodeHex(v Variant, s string, opts ...ParseOption) (Digest, error) {
	if err := v.Validate(); err != nil {
		return Digest{}, err
	}
	var cfg parseConfig
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	body, err := splitPrefix(s, v.HexLen())
	if err != nil {
		return Digest{}, err
	}
	raw, err := hex.DecodeString(body)
	if err != nil {
		return Digest{}, ErrInvalidCharacter
	}

	c := v.Checksum
	bodySize := v.BodySize()

	var d Digest
	d.variant = v
	for i := 0; i < c; i++ {
		d.checksum[i] = swapNibbles(raw[i])
	}
	d.lengthCode = swapNibbles(raw[c])
	d.qratios = swapNibbles(raw[c+1])
	copy(d.body[:bodySize], raw[c+2:c+2+bodySize])

	if cfg.strict {
		if err := validateStrict(v, d); err != nil {
			return Digest{}, err
		}
	}
	return d, nil
}

// String returns the canonical hex form, implementing fmt.Stringer.
func (d Digest) String() string { return d.EncodeHex() }
