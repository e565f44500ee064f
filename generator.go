package tlsh

// maxProcessedLen is the saturation point for Generator's internal byte
// counter: 2^32 - 4. Bytes beyond this point are silently dropped rather
// than wrapping the counter.
const maxProcessedLen = uint32(1<<32 - 1 - 3)

// Generator accumulates a sliding 5-byte window over arbitrary input and,
// on Finalize, reduces the accumulated bucket statistics to a Digest. A
// Generator is a single-owner value: it has no internal synchronization
// and must not be shared across goroutines without external locking.
type Generator struct {
	variant Variant

	buckets  [256]uint32 // only buckets[:variant.Buckets] are effective
	checksum [3]byte     // only checksum[:variant.Checksum] are effective

	tail    [4]byte
	tailLen int

	length    uint32 // bytes consumed minus the current tail
	saturated bool
}

// New creates a generator for an arbitrary legal variant.
func New(v Variant) (*Generator, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &Generator{variant: v}, nil
}

// NewShort creates a generator for the 48-bucket, 1-byte-checksum variant.
func NewShort() *Generator { return &Generator{variant: VariantShort} }

// NewNormal creates a generator for the 128-bucket, 1-byte-checksum variant.
func NewNormal() *Generator { return &Generator{variant: VariantNormal} }

// NewNormalLongChecksum creates a generator for the 128-bucket,
// 3-byte-checksum variant.
func NewNormalLongChecksum() *Generator { return &Generator{variant: VariantNormalLongChecksum} }

// NewLong creates a generator for the 256-bucket, 1-byte-checksum variant.
func NewLong() *Generator { return &Generator{variant: VariantLong} }

// NewLongChecksum creates a generator for the 256-bucket, 3-byte-checksum
// variant.
func NewLongChecksum() *Generator { return &Generator{variant: VariantLongChecksum} }

// Variant reports the generator's construction-time (B, C) trio.
func (g *Generator) Variant() Variant { return g.variant }

// Write appends bytes to the running hash. It never returns an error and
// satisfies io.Writer. Calling Write(x) then Write(y) is equivalent to a
// single Write(x ++ y) call.
func (g *Generator) Write(data []byte) (int, error) {
	n := len(data)
	for _, b := range data {
		g.consume(b)
	}
	return n, nil
}

// consume folds one byte into the sliding window, updating the checksum
// and six bucket counters once the window is primed.
func (g *Generator) consume(b4 byte) {
	if g.saturated {
		return
	}
	if g.tailLen < 4 {
		g.tail[g.tailLen] = b4
		g.tailLen++
		return
	}

	b0, b1, b2, b3 := g.tail[0], g.tail[1], g.tail[2], g.tail[3]
	g.updateChecksum(b4, b3)
	g.updateBuckets(b0, b1, b2, b3, b4)
	g.tail[0], g.tail[1], g.tail[2], g.tail[3] = b1, b2, b3, b4

	if g.length >= maxProcessedLen {
		g.saturated = true
	} else {
		g.length++
	}
}

// bMapping applies the variant's Pearson bucket mapping: the 48-bucket
// mapping for the short variant, the 256-bucket mapping otherwise.
func (g *Generator) bMapping(b0, b1, b2, b3 byte) byte {
	if g.variant.Buckets == 48 {
		return bucketIndex48(b0, b1, b2, b3)
	}
	return bucketIndex256(b0, b1, b2, b3)
}

func (g *Generator) updateChecksum(curr, prev byte) {
	g.checksum[0] = g.bMapping(0, curr, prev, g.checksum[0])
	if g.variant.Checksum == 3 {
		g.checksum[1] = bucketIndex256(g.checksum[0], curr, prev, g.checksum[1])
		g.checksum[2] = bucketIndex256(g.checksum[1], curr, prev, g.checksum[2])
	}
}

// updateBuckets increments the six counters selected by the salts 2, 3, 5,
// 7, 11, 13 (the primes used as the first Pearson byte) over the window
// (b0, b1, b2, b3, b4).
func (g *Generator) updateBuckets(b0, b1, b2, b3, b4 byte) {
	g.incBucket(g.bMapping(2, b4, b3, b2))
	g.incBucket(g.bMapping(3, b4, b3, b1))
	g.incBucket(g.bMapping(5, b4, b2, b1))
	g.incBucket(g.bMapping(7, b4, b2, b0))
	g.incBucket(g.bMapping(11, b4, b3, b0))
	g.incBucket(g.bMapping(13, b4, b1, b0))
}

// incBucket increments the bucket at idx unless it falls outside the
// variant's effective bucket range (the 48-bucket drain value, or the
// upper half of the 256-wide mapping used by the 128-bucket variant).
func (g *Generator) incBucket(idx byte) {
	if int(idx) >= g.variant.Buckets {
		return
	}
	g.buckets[idx]++
}

// totalLen is the number of bytes consumed so far, including the
// not-yet-windowed tail. It is computed in 64 bits to stay exact right up
// to the saturation point.
func (g *Generator) totalLen() uint64 {
	return uint64(g.length) + uint64(g.tailLen)
}

// ProcessedLen reports the exact number of bytes consumed so far, or false
// if the internal counter has saturated (more than 2^32-4 bytes written).
func (g *Generator) ProcessedLen() (uint32, bool) {
	total := g.totalLen()
	if g.saturated || total > uint64(maxProcessedLen) {
		return 0, false
	}
	return uint32(total), true
}

// Finalize reduces the generator's accumulated bucket statistics to a
// Digest. It does not mutate the generator: further bytes may be written
// and Finalize called again, possibly with different options.
func (g *Generator) Finalize(opts ...FinalizeOption) (Digest, error) {
	var cfg finalizeConfig
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	total := g.totalLen()
	minAny, minStrict, max := g.variant.lengthBounds()
	if total > uint64(max) {
		return Digest{}, ErrTooLargeInput
	}

	minRequired := uint64(minAny)
	if cfg.conservative && !cfg.allowSmall {
		minRequired = uint64(minStrict)
	}
	if total < minRequired {
		return Digest{}, ErrTooSmallInput
	}

	nonzero := 0
	for i := 0; i < g.variant.Buckets; i++ {
		if g.buckets[i] != 0 {
			nonzero++
		}
	}
	if nonzero < g.variant.minNonzeroBuckets() && !cfg.allowWeakHalf {
		return Digest{}, ErrBucketsHalfEmpty
	}

	q1, q2, q3 := selectQuartiles(g.buckets[:g.variant.Buckets])
	if q3 == 0 {
		if !cfg.allowWeakQuarter {
			return Digest{}, ErrBucketsThreeQuarterEmpty
		}
		q1, q2, q3 = 1, 1, 1
	}

	var qratios byte
	if cfg.legacyQRatio {
		qratios = qratiosLegacy(q1, q2, q3)
	} else {
		qratios = qratiosInteger(q1, q2, q3)
	}

	lengthCode, ok := lengthEncode(uint32(total))
	if !ok {
		return Digest{}, ErrTooLargeInput
	}

	var d Digest
	d.variant = g.variant
	copy(d.checksum[:], g.checksum[:g.variant.Checksum])
	d.lengthCode = lengthCode
	d.qratios = qratios
	aggregateBuckets(d.body[:g.variant.BodySize()], g.buckets[:g.variant.Buckets], q1, q2, q3)
	return d, nil
}

// selectQuartiles returns the values occupying sorted positions B/4-1,
// B/2-1 and 3B/4-1 of buckets, using three independent O(B) selections
// (quickselect) rather than a full sort.
func selectQuartiles(buckets []uint32) (q1, q2, q3 uint32) {
	b := len(buckets)

	tmp := make([]uint32, b)
	copy(tmp, buckets)
	q1 = nthSmallest(tmp, b/4-1)

	copy(tmp, buckets)
	q2 = nthSmallest(tmp, b/2-1)

	copy(tmp, buckets)
	q3 = nthSmallest(tmp, 3*b/4-1)

	return q1, q2, q3
}

// nthSmallest returns the value that would occupy index k if a were
// sorted ascending, using Lomuto-partition quickselect. It mutates a.
func nthSmallest(a []uint32, k int) uint32 {
	lo, hi := 0, len(a)-1
	for lo < hi {
		p := partitionLomuto(a, lo, hi)
		switch {
		case k == p:
			return a[p]
		case k < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
	return a[lo]
}

func partitionLomuto(a []uint32, lo, hi int) int {
	mid := lo + (hi-lo)/2
	a[mid], a[hi] = a[hi], a[mid]
	pivot := a[hi]
	store := lo
	for i := lo; i < hi; i++ {
		if a[i] < pivot {
			a[i], a[store] = a[store], a[i]
			store++
		}
	}
	a[store], a[hi] = a[hi], a[store]
	return store
}

// qratiosInteger computes the packed Q-ratio byte using integer division,
// the modern default path.
func qratiosInteger(q1, q2, q3 uint32) byte {
	r1 := byte((uint64(q1) * 100 / uint64(q3)) % 16)
	r2 := byte((uint64(q2) * 100 / uint64(q3)) % 16)
	return r2<<4 | r1
}

// qratiosLegacy computes the packed Q-ratio byte using float32 division,
// matching pre-4.12.1 reference implementations bit-for-bit on the inputs
// where the two paths diverge.
func qratiosLegacy(q1, q2, q3 uint32) byte {
	r1 := uint32(float32(q1)*100/float32(q3)) % 16
	r2 := uint32(float32(q2)*100/float32(q3)) % 16
	return byte(r2)<<4 | byte(r1)
}
