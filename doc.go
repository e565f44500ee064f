// Package tlsh implements the Trend Micro Locality Sensitive Hash (TLSH), a
// similarity-preserving digest: inputs that resemble each other produce
// digests with small numeric distance under Distance.
//
// A Generator ingests bytes through Write and produces a Digest through
// Finalize. Distance compares two digests of the same Variant and returns a
// non-negative score where 0 means identical and larger values mean less
// similar.
package tlsh

// WindowSize is the number of trailing bytes (including the current one)
// that influence each bucket and checksum update.
const WindowSize = 5
