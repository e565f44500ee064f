package tlsh

// finalizeConfig holds the resolved state of a chain of FinalizeOption
// values. The zero value is the permissive, integer-Q-ratio default.
type finalizeConfig struct {
	conservative     bool
	allowSmall       bool
	allowWeakHalf    bool
	allowWeakQuarter bool
	legacyQRatio     bool
}

// FinalizeOption configures a single call to Generator.Finalize. The option
// pattern mirrors the apply-based options used elsewhere in the fuzzy
// hashing ecosystem for hash constructors.
type FinalizeOption interface {
	apply(*finalizeConfig)
}

type finalizeOptionFunc func(*finalizeConfig)

func (f finalizeOptionFunc) apply(c *finalizeConfig) { f(c) }

// Conservative requires at least the variant's min_strict byte count
// instead of min_any, matching the original TLSH implementation's default
// behavior. Combine with AllowSmallInput to relax it back down.
func Conservative() FinalizeOption {
	return finalizeOptionFunc(func(c *finalizeConfig) { c.conservative = true })
}

// AllowSmallInput permits Conservative mode to accept inputs as short as
// min_any instead of failing below min_strict.
func AllowSmallInput() FinalizeOption {
	return finalizeOptionFunc(func(c *finalizeConfig) { c.allowSmall = true })
}

// AllowWeakHalf suppresses ErrBucketsHalfEmpty, accepting a digest even
// when fewer than the minimum number of buckets were touched.
func AllowWeakHalf() FinalizeOption {
	return finalizeOptionFunc(func(c *finalizeConfig) { c.allowWeakHalf = true })
}

// AllowWeakQuarter suppresses ErrBucketsThreeQuarterEmpty, pinning all
// three quartile pivots to 1 instead of failing when q3 is zero.
func AllowWeakQuarter() FinalizeOption {
	return finalizeOptionFunc(func(c *finalizeConfig) { c.allowWeakQuarter = true })
}

// LegacyQRatio selects the historical float32-based Q-ratio computation
// instead of the integer path, for interop with pre-4.12.1 reference
// implementations.
func LegacyQRatio() FinalizeOption {
	return finalizeOptionFunc(func(c *finalizeConfig) { c.legacyQRatio = true })
}

// compareConfig holds the resolved state of a chain of CompareOption
// values. The zero value includes length distance.
type compareConfig struct {
	skipLength bool
}

// CompareOption configures a single call to Distance.
type CompareOption interface {
	apply(*compareConfig)
}

type compareOptionFunc func(*compareConfig)

func (f compareOptionFunc) apply(c *compareConfig) { f(c) }

// SkipLengthDistance excludes the length sub-distance from the total,
// useful when callers intentionally compare inputs of very different size.
func SkipLengthDistance() CompareOption {
	return compareOptionFunc(func(c *compareConfig) { c.skipLength = true })
}

// parseConfig holds the resolved state of a chain of ParseOption values.
// The zero value is permissive: a digest that fails the strict checks
// still parses, and may only later compare as an ill-formed digest.
type parseConfig struct {
	strict bool
}

// ParseOption configures a single call to DecodeHex or DecodeBytes.
type ParseOption interface {
	apply(*parseConfig)
}

type parseOptionFunc func(*parseConfig)

func (f parseOptionFunc) apply(c *parseConfig) { f(c) }

// Strict additionally rejects length codes >= 170 and, for the 48-bucket
// variant, a checksum byte greater than 48. Without it, DecodeHex and
// DecodeBytes accept any digest that merely fits the wire format.
func Strict() ParseOption {
	return parseOptionFunc(func(c *parseConfig) { c.strict = true })
}
