// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

// fixedLitLenLengths and fixedDistLengths are the literal/length and
// distance code lengths RFC 1951 §3.2.6 fixes for BTYPE=01 blocks: no
// dynamic table is transmitted, and both ends build the same canonicalCoder
// from these constants. The tables cover all 288 literal/length and 32
// distance codes the RFC assigns, so the codes are complete; symbols 286-287
// and distances 30-31 never occur in a valid stream.
var fixedLitLenLengths = buildFixedLitLenLengths()
var fixedDistLengths = buildFixedDistLengths()

func buildFixedLitLenLengths() []int {
	lengths := make([]int, 288)
	for sym := 0; sym < 288; sym++ {
		switch {
		case sym <= 143:
			lengths[sym] = 8
		case sym <= 255:
			lengths[sym] = 9
		case sym <= 279:
			lengths[sym] = 7
		default:
			lengths[sym] = 8
		}
	}
	return lengths
}

func buildFixedDistLengths() []int {
	lengths := make([]int, 32)
	for sym := range lengths {
		lengths[sym] = 5
	}
	return lengths
}

var fixedLitLenCoder, _ = newCanonicalCoder(fixedLitLenLengths)
var fixedDistCoder, _ = newCanonicalCoder(fixedDistLengths)
