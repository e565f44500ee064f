package tlsh

import "github.com/tlsh-go/tlsh/internal/simd"

// bodyOutlierValue is the per-dibit distance assigned when two quartile
// codes are maximally far apart (0 vs 3): deliberately larger than the
// linear |3-0|=3 would suggest, so a single wildly different bucket
// dominates the body score.
const bodyOutlierValue = 6

// bytePairDistance[a][b] is the summed dibit distance between every one of
// the four 2-bit lanes packed into bytes a and b. Precomputing the table
// at init time turns the per-byte body distance into a single lookup, the
// same table-driven trick the reference TLSH implementations use instead
// of branching on each dibit at compare time.
var bytePairDistance = buildBytePairDistanceTable()

func buildBytePairDistanceTable() [256][256]byte {
	var t [256][256]byte
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			var sum byte
			for shift := uint(0); shift < 8; shift += 2 {
				da := (byte(a) >> shift) & 0x3
				db := (byte(b) >> shift) & 0x3
				sum += dibitDistance(da, db)
			}
			t[a][b] = sum
		}
	}
	return t
}

func dibitDistance(x, y byte) byte {
	var d byte
	if x > y {
		d = x - y
	} else {
		d = y - x
	}
	if d == 3 {
		return bodyOutlierValue
	}
	return d
}

// bodyDistanceImpl is resolved once from the detected CPU feature level.
var bodyDistanceImpl = selectBodyDistanceImpl()

func selectBodyDistanceImpl() func(a, b []byte) uint32 {
	if simd.Detected() >= simd.LevelSSE2 {
		return bodyDistanceTable
	}
	return bodyDistanceNaive
}

func bodyDistance(a, b []byte) uint32 {
	return bodyDistanceImpl(a, b)
}

// bodyDistanceNaive is the reference implementation: decode each byte into
// its four dibits and sum the per-dibit distance directly.
func bodyDistanceNaive(a, b []byte) uint32 {
	var total uint32
	for i := range a {
		for shift := uint(0); shift < 8; shift += 2 {
			da := (a[i] >> shift) & 0x3
			db := (b[i] >> shift) & 0x3
			total += uint32(dibitDistance(da, db))
		}
	}
	return total
}

// bodyDistanceTable computes the identical sum via the precomputed
// byte-pair table, the fast path selected on CPUs reporting at least
// SSE2.
func bodyDistanceTable(a, b []byte) uint32 {
	var total uint32
	for i := range a {
		total += uint32(bytePairDistance[a[i]][b[i]])
	}
	return total
}

// maxBodyDistance is the largest possible bodyDistance for a body of the
// given byte length (every one of its dibits at maximal outlier distance).
func maxBodyDistance(bodySize int) uint32 {
	return uint32(bodySize) * 4 * bodyOutlierValue
}

// checksumDistance counts the checksum bytes that differ between two
// digests of the same variant.
func checksumDistance(a, b []byte) uint32 {
	var total uint32
	for i := range a {
		if a[i] != b[i] {
			total++
		}
	}
	return total
}

// ringDistanceNibble is ringDistance8's analogue on the ring of integers
// modulo 16, used for the packed Q-ratio nibbles.
func ringDistanceNibble(x, y byte) byte {
	var d byte
	if x > y {
		d = x - y
	} else {
		d = y - x
	}
	if d > 8 {
		return 16 - d
	}
	return d
}

// qratioSubDistance scores one Q-ratio nibble pair: the ring distance
// itself when it is 0 or 1, otherwise (distance-1)*12.
func qratioSubDistance(x, y byte) uint32 {
	d := uint32(ringDistanceNibble(x, y))
	if d <= 1 {
		return d
	}
	return (d - 1) * 12
}

// qratioDistance sums the two packed Q-ratio nibbles' sub-distances.
func qratioDistance(a, b byte) uint32 {
	return qratioSubDistance(a&0x0F, b&0x0F) + qratioSubDistance((a>>4)&0x0F, (b>>4)&0x0F)
}

// maxQRatioDistance is the largest possible qratioDistance.
const maxQRatioDistance = 2 * ((8 - 1) * 12)

// Distance computes the similarity score between two digests of the same
// Variant: 0 means identical, and larger scores mean less similar. It
// sums the body, checksum and Q-ratio sub-distances, plus the length
// sub-distance unless SkipLengthDistance is given.
func Distance(a, b Digest, opts ...CompareOption) (uint32, error) {
	if a.variant != b.variant {
		return 0, errVariantMismatch(a.variant, b.variant)
	}

	var cfg compareConfig
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	bodySize := a.variant.BodySize()
	checksumSize := a.variant.Checksum

	total := bodyDistance(a.body[:bodySize], b.body[:bodySize])
	total += checksumDistance(a.checksum[:checksumSize], b.checksum[:checksumSize])
	total += qratioDistance(a.qratios, b.qratios)
	if !cfg.skipLength {
		total += lengthDistance(a.lengthCode, b.lengthCode)
	}
	return total, nil
}

// MaxDistance returns the largest possible Distance for two digests of v,
// useful for normalizing scores into a [0, 1] similarity.
func MaxDistance(v Variant, opts ...CompareOption) uint32 {
	var cfg compareConfig
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	total := maxBodyDistance(v.BodySize()) + uint32(v.Checksum) + uint32(maxQRatioDistance)
	if !cfg.skipLength {
		total += uint32(maxLengthDistance)
	}
	return total
}
