// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

// Deflate-family format constants: window size, match bounds, alphabet sizes,
// and the RFC 1951 length/distance extra-bit tables.

const (
	// windowSize is W, the sliding-window size in bytes (2^15).
	windowSize = 1 << 15

	// minMatch / maxMatch bound back-reference length (spec.md MIN_MATCH/MAX_MATCH).
	minMatch = 3
	maxMatch = 258

	// defaultMaxChainDepth is the MatchFinder's default max_chain_depth.
	defaultMaxChainDepth = 64

	// hashBits sizes the 3-byte rolling-hash table so it distributes into [0, windowSize).
	hashBits = 15
	hashSize = 1 << hashBits

	// emptyPos is the EMPTY sentinel for the hash-chain head/prev tables:
	// no valid WinPos is negative, so -1 signals "no entry".
	emptyPos = -1
)

const (
	// numLitLenSymbols is the literal/length alphabet size: 256 literals + 29
	// length codes (257-285) + the end-of-block symbol (256).
	numLitLenSymbols = 286
	// numDistSymbols is the distance alphabet size.
	numDistSymbols = 30
	// numCodeLenSymbols is the code-length alphabet size used to transmit the
	// literal/length and distance code-length tables themselves.
	numCodeLenSymbols = 19

	// endOfBlockSymbol terminates the token stream of a compressed block.
	endOfBlockSymbol = 256
	// firstLengthSymbol is the literal/length alphabet index of the shortest
	// back-reference length code.
	firstLengthSymbol = 257

	// maxCodeLength is the length-limit ceiling the format allows L to reach.
	maxCodeLength = 15
)

// codeLengthOrder is the fixed transmission order for the code-length
// alphabet's own lengths in a dynamic block header (RFC 1951 §3.2.7).
var codeLengthOrder = [numCodeLenSymbols]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// lengthBase and lengthExtraBits give, for literal/length symbol
// firstLengthSymbol+i, the smallest length it encodes and the number of extra
// bits (read LSB-first, per spec.md's bit-ordering contract) that select the
// exact length within its range. Index 28 (symbol 285) is the length-258
// special case with 0 extra bits.
var lengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtraBits = [29]int{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase and distExtraBits give, for distance symbol i, the smallest
// distance it encodes and its extra-bit count.
var distBase = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257, 385, 513,
	769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtraBits = [30]int{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// Run-length escapes in the code-length alphabet used to compress the
// transmitted code-length tables themselves (RFC 1951 §3.2.7).
const (
	clenRepeatPrev   = 16 // repeat previous code length 3-6 times (2 extra bits)
	clenRepeatZero3  = 17 // repeat code length 0, 3-10 times (3 extra bits)
	clenRepeatZero11 = 18 // repeat code length 0, 11-138 times (7 extra bits)
)

// lengthSymbolFor returns the literal/length alphabet symbol (257..285) and
// the extra-bits value and width for a back-reference of the given length.
func lengthSymbolFor(length int) (symbol, extra, extraBits int) {
	for i := len(lengthBase) - 1; i >= 0; i-- {
		if length >= lengthBase[i] {
			return firstLengthSymbol + i, length - lengthBase[i], lengthExtraBits[i]
		}
	}
	panic("zflate: length below minMatch")
}

// distSymbolFor returns the distance alphabet symbol and extra-bits value and
// width for the given back-reference distance (1..windowSize).
func distSymbolFor(dist int) (symbol, extra, extraBits int) {
	for i := len(distBase) - 1; i >= 0; i-- {
		if dist >= distBase[i] {
			return i, dist - distBase[i], distExtraBits[i]
		}
	}
	panic("zflate: distance below 1")
}
