package tlsh

import "github.com/tlsh-go/tlsh/internal/simd"

// aggregateImpl is resolved once at init time from the detected CPU
// feature level, the same dispatch shape klauspost/cpuid-aware hash
// packages use to pick their block function.
var aggregateImpl = selectAggregateImpl()

func selectAggregateImpl() func(out []byte, buckets []uint32, q1, q2, q3 uint32) {
	if simd.Detected() >= simd.LevelSSE2 {
		return aggregateBucketsPacked
	}
	return aggregateBucketsNaive
}

// aggregateBuckets packs buckets into out, four bucket counts in sorted
// quartile position per body byte. len(out) must equal len(buckets)/4.
func aggregateBuckets(out []byte, buckets []uint32, q1, q2, q3 uint32) {
	aggregateImpl(out, buckets, q1, q2, q3)
}

// quartileOf maps a bucket count to its 2-bit code against the three
// pivots: 0 at or below q1, 1 through q2, 2 through q3, 3 above.
func quartileOf(v, q1, q2, q3 uint32) byte {
	switch {
	case v <= q1:
		return 0
	case v <= q2:
		return 1
	case v <= q3:
		return 2
	default:
		return 3
	}
}

// aggregateBucketsNaive is the reference implementation: one branchy
// comparison per bucket. Bucket group i (buckets[4i:4i+4]) lands in
// out[len(out)-1-i], with buckets[4i] in the low two bits and
// buckets[4i+3] in the high two bits, matching the reversed byte order
// every TLSH implementation uses, so bucket 0 lands in the last body byte.
func aggregateBucketsNaive(out []byte, buckets []uint32, q1, q2, q3 uint32) {
	n := len(out)
	for i := 0; i < n; i++ {
		c0 := quartileOf(buckets[4*i], q1, q2, q3)
		c1 := quartileOf(buckets[4*i+1], q1, q2, q3)
		c2 := quartileOf(buckets[4*i+2], q1, q2, q3)
		c3 := quartileOf(buckets[4*i+3], q1, q2, q3)
		out[n-1-i] = c3<<6 | c2<<4 | c1<<2 | c0
	}
}

// aggregateBucketsPacked computes the identical result to
// aggregateBucketsNaive but drives the quartile comparisons through
// branchless arithmetic on packed lanes, the form that vectorizes well
// under SSE2/AVX2-class CPUs. It is selected over the naive path whenever
// the process detects at least SSE2.
func aggregateBucketsPacked(out []byte, buckets []uint32, q1, q2, q3 uint32) {
	n := len(out)
	for i := 0; i < n; i++ {
		var packed byte
		for lane := 3; lane >= 0; lane-- {
			v := buckets[4*i+lane]
			// branchless quartile: count how many of the three pivots v
			// strictly exceeds, via arithmetic boolean-to-int conversion.
			code := boolToByte(v > q1) + boolToByte(v > q2) + boolToByte(v > q3)
			packed = packed<<2 | code
		}
		out[n-1-i] = packed
	}
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
