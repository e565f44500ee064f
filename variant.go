package tlsh

import "fmt"

// Variant is the construction-time (B, C) trio every digest and generator
// commits to: B is the number of effective buckets, C is the checksum byte
// count. The combination (B=48, C=3) is forbidden.
type Variant struct {
	Buckets  int // 48, 128, or 256
	Checksum int // 1 or 3
}

// Named variants covering every legal (B, C) combination.
var (
	VariantShort              = Variant{Buckets: 48, Checksum: 1}
	VariantNormal             = Variant{Buckets: 128, Checksum: 1}
	VariantNormalLongChecksum = Variant{Buckets: 128, Checksum: 3}
	VariantLong               = Variant{Buckets: 256, Checksum: 1}
	VariantLongChecksum       = Variant{Buckets: 256, Checksum: 3}
)

// Validate reports whether v is one of the legal (B, C) combinations.
func (v Variant) Validate() error {
	switch v.Buckets {
	case 48, 128, 256:
	default:
		return fmt.Errorf("tlsh: invalid bucket count %d", v.Buckets)
	}
	switch v.Checksum {
	case 1, 3:
	default:
		return fmt.Errorf("tlsh: invalid checksum size %d", v.Checksum)
	}
	if v.Buckets == 48 && v.Checksum == 3 {
		return fmt.Errorf("tlsh: 48-bucket variant cannot use a 3-byte checksum")
	}
	return nil
}

// BodySize returns the number of body bytes (B/4) the variant packs.
func (v Variant) BodySize() int { return v.Buckets / 4 }

// DigestSize returns the number of bytes (checksum + length + qratios +
// body) the binary form of the variant occupies.
func (v Variant) DigestSize() int { return v.Checksum + 2 + v.BodySize() }

// HexLen returns the number of hex characters the canonical form occupies,
// excluding the optional "T1" prefix.
func (v Variant) HexLen() int { return 2 * v.DigestSize() }

// minNonzeroBuckets is the number of nonzero bucket counters Finalize
// requires unless the caller allows a weak half.
func (v Variant) minNonzeroBuckets() int {
	switch v.Buckets {
	case 48:
		return 18
	default:
		return v.Buckets/2 + 1
	}
}

// lengthBounds returns the {min_any, min_strict, max} triple from spec §4.C.
func (v Variant) lengthBounds() (minAny, minStrict, max uint32) {
	max = maxEncodableLength
	switch v.Buckets {
	case 48:
		return 10, 10, max
	default:
		return 50, 128, max
	}
}

func (v Variant) String() string {
	return fmt.Sprintf("B=%d,C=%d", v.Buckets, v.Checksum)
}
