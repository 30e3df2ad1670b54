// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

// Token is the unit MatchFinder emits: either a literal byte or a
// back-reference copying Length bytes from Distance bytes behind the current
// output cursor. IsBackref selects which fields are meaningful.
type Token struct {
	IsBackref bool
	Literal   byte
	Distance  int // 1..windowSize, valid only when IsBackref
	Length    int // minMatch..maxMatch, valid only when IsBackref
}

// literalToken constructs a literal Token.
func literalToken(b byte) Token {
	return Token{Literal: b}
}

// backrefToken constructs a back-reference Token.
func backrefToken(distance, length int) Token {
	return Token{IsBackref: true, Distance: distance, Length: length}
}

// encodeTokenWord packs a Token into the testing-hook wire format from
// spec.md §6: a literal is one byte with a leading 0 marker; a back-reference
// is a leading 1 marker followed by 24 bits carrying (distance-1: 15,
// length: 9), so every distance in 1..windowSize fits. This is an internal
// format exercised only by tests, never part of the public API.
func encodeTokenWord(t Token) uint32 {
	if !t.IsBackref {
		return uint32(t.Literal)
	}
	// Leading marker bit (bit 24, just above the 24-bit payload)
	// distinguishes a backref word from a literal byte value, which never
	// exceeds 0xFF.
	return 1<<24 | uint32((t.Distance-1)&0x7fff)<<9 | uint32(t.Length&0x1ff)
}

// decodeTokenWord is the inverse of encodeTokenWord.
func decodeTokenWord(w uint32) Token {
	if w&(1<<24) == 0 {
		return literalToken(byte(w))
	}
	distance := int((w>>9)&0x7fff) + 1
	length := int(w & 0x1ff)
	return backrefToken(distance, length)
}
