// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

import "sort"

// maxLookupBits sizes the CanonicalCoder's primary decode table: codes up to
// this many bits decode in one table probe; longer codes fall through to a
// secondary per-length linear scan. 9 covers the overwhelming majority of
// real literal/length and distance codes while keeping the table at a modest
// 512 entries, per spec.md §4.3's CanonicalCoder.MAX_LOOKUP_BITS.
const maxLookupBits = 9

// canonicalEntry is one decode-table slot: the symbol it maps to and the
// codeword length actually consumed, so the reader advances by the right
// number of bits even though every slot is probed with a fixed-width peek.
type canonicalEntry struct {
	symbol uint16
	length uint8
}

// canonicalOverflow holds the codewords whose length exceeds maxLookupBits,
// consulted only when a primary-table probe reports an entry whose recorded
// length is the overflow sentinel (length == 0 is never otherwise valid, so
// 0 marks "look in overflow").
type canonicalOverflow struct {
	code   uint32
	length int
	symbol uint16
}

// canonicalCoder is a canonical Huffman code over an alphabet of fixed size,
// built from a set of RFC 1951-style code lengths (spec.md §4.3). It
// supports encode (symbol -> codeword, MSB-first) and decode (bit stream ->
// symbol) in both directions needed by BlockWriter/BlockReader.
type canonicalCoder struct {
	lengths []int // per-symbol code length, 0 meaning "absent from this code"

	// Encode side: codeword and length per present symbol.
	codes     []uint32
	codeLens  []int

	// Decode side: primary lookup table indexed by the next maxLookupBits
	// bits (MSB-first), plus an overflow list for longer codes.
	table    [1 << maxLookupBits]canonicalEntry
	overflow []canonicalOverflow

	// singleSymbol is set when exactly one symbol has a non-zero length; RFC
	// 1951's degenerate one-leaf code is represented as the one-bit codeword
	// 0, and decoding consumes exactly one bit, per spec.md §4.3's
	// single-symbol special case.
	singleSymbol    uint16
	hasSingleSymbol bool
}

// newCanonicalCoder builds a canonicalCoder from per-symbol code lengths
// (0 <= length <= maxCodeLength, 0 meaning the symbol is unused). It
// validates the Kraft equality (sum of 2^-length over present symbols == 1,
// unless there are 0 or 1 present symbols) and returns ErrMalformedCodeLengths
// on violation.
func newCanonicalCoder(lengths []int) (*canonicalCoder, error) {
	c := &canonicalCoder{lengths: append([]int(nil), lengths...)}

	present := 0
	maxLen := 0
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		if l < 0 || l > maxCodeLength {
			return nil, ErrMalformedCodeLengths
		}
		present++
		if l > maxLen {
			maxLen = l
		}
	}

	if present == 0 {
		return c, nil
	}
	if present == 1 {
		for sym, l := range lengths {
			if l != 0 {
				c.hasSingleSymbol = true
				c.singleSymbol = uint16(sym)
				c.codes = make([]uint32, len(lengths))
				c.codeLens = make([]int, len(lengths))
				c.codeLens[sym] = 1
				for i := range c.table {
					c.table[i] = canonicalEntry{symbol: uint16(sym), length: 1}
				}
				break
			}
		}
		return c, nil
	}

	// Count of codes at each length, per RFC 1951 §3.2.2.
	blCount := make([]int, maxLen+1)
	for _, l := range lengths {
		if l != 0 {
			blCount[l]++
		}
	}

	// Kraft equality check: sum(count[l] * 2^(maxLen-l)) must equal 2^maxLen.
	var total uint64
	for l := 1; l <= maxLen; l++ {
		total += uint64(blCount[l]) << uint(maxLen-l)
	}
	if total != uint64(1)<<uint(maxLen) {
		return nil, ErrMalformedCodeLengths
	}

	nextCode := make([]uint32, maxLen+1)
	var code uint32
	for bits := 1; bits <= maxLen; bits++ {
		code = (code + uint32(blCount[bits-1])) << 1
		nextCode[bits] = code
	}

	c.codes = make([]uint32, len(lengths))
	c.codeLens = make([]int, len(lengths))
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		c.codes[sym] = nextCode[l]
		c.codeLens[sym] = l
		nextCode[l]++
	}

	c.buildDecodeTable()
	return c, nil
}

// buildDecodeTable populates the primary lookup table and the overflow list
// from c.codes/c.codeLens.
func (c *canonicalCoder) buildDecodeTable() {
	for i := range c.table {
		c.table[i] = canonicalEntry{length: 0}
	}

	for sym, l := range c.codeLens {
		if l == 0 {
			continue
		}
		codeword := c.codes[sym]
		if l <= maxLookupBits {
			// Fill every table slot whose top l bits match codeword; the
			// remaining (maxLookupBits-l) low bits are don't-care.
			shift := uint(maxLookupBits - l)
			base := codeword << shift
			for fill := uint32(0); fill < (1 << shift); fill++ {
				c.table[base|fill] = canonicalEntry{symbol: uint16(sym), length: uint8(l)}
			}
		} else {
			c.overflow = append(c.overflow, canonicalOverflow{
				code:   codeword,
				length: l,
				symbol: uint16(sym),
			})
		}
	}

	sort.Slice(c.overflow, func(i, j int) bool { return c.overflow[i].length < c.overflow[j].length })
}

// encode returns the MSB-first codeword and bit-width for symbol sym. sym
// must have a non-zero length in the coder (callers only ever encode
// symbols that were counted into the frequency tally that produced this
// coder's lengths).
func (c *canonicalCoder) encode(sym int) (code uint32, length int) {
	if c.hasSingleSymbol {
		return 0, 1
	}
	return c.codes[sym], c.codeLens[sym]
}

// decode reads one symbol from r. It first probes the primary table with a
// maxLookupBits-wide peek; if that table slot's recorded length is 0 (the
// next bits begin a code longer than maxLookupBits, or match no code), it
// scans the overflow entries in ascending length order. A code that would
// need more bits than remain in r yields ErrTruncatedStream.
func (c *canonicalCoder) decode(r *bitReader) (int, error) {
	if c.hasSingleSymbol {
		if _, err := r.readBitsMSB(1); err != nil {
			return 0, err
		}
		return int(c.singleSymbol), nil
	}
	if len(c.codes) == 0 {
		return 0, ErrMalformedCodeLengths
	}

	peek := r.peekBitsMSB(maxLookupBits)
	entry := c.table[peek]
	if entry.length != 0 {
		if uint(entry.length) > r.remainingBits() {
			return 0, ErrTruncatedStream
		}
		r.advance(int(entry.length))
		return int(entry.symbol), nil
	}

	for _, ov := range c.overflow {
		full := r.peekBitsMSB(ov.length)
		if full == ov.code {
			if uint(ov.length) > r.remainingBits() {
				return 0, ErrTruncatedStream
			}
			r.advance(ov.length)
			return int(ov.symbol), nil
		}
	}
	return 0, ErrMalformedCodeLengths
}
