// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

// Block types, per RFC 1951 §3.2.3's BTYPE field.
const (
	btypeStored  = 0
	btypeFixed   = 1
	btypeDynamic = 2
)

// writeBlockHeader emits BFINAL and BTYPE, the two fields that begin every
// block regardless of type. Both are packed LSB-first, per spec.md §4.3's
// "data elements other than Huffman codewords are LSB-first" rule.
func writeBlockHeader(w *bitWriter, final bool, btype uint32) {
	if final {
		w.pushBitsLSB(1, 1)
	} else {
		w.pushBitsLSB(0, 1)
	}
	w.pushBitsLSB(btype, 2)
}

// writeStoredBlock emits data verbatim (BTYPE=00), per RFC 1951 §3.2.4: after
// the 3-bit header the stream is byte-aligned, then LEN, ~LEN (both 16-bit
// little-endian), then the raw bytes.
func writeStoredBlock(w *bitWriter, data []byte, final bool) {
	writeBlockHeader(w, final, btypeStored)
	w.align()
	ln := uint16(len(data))
	w.pushByte(byte(ln))
	w.pushByte(byte(ln >> 8))
	nln := ^ln
	w.pushByte(byte(nln))
	w.pushByte(byte(nln >> 8))
	for _, b := range data {
		w.pushByte(b)
	}
}

// writeFixedBlock emits tokens under RFC 1951's fixed Huffman tables
// (BTYPE=01): no table is transmitted, both ends already know the lengths.
func writeFixedBlock(w *bitWriter, tokens []Token, final bool) {
	writeBlockHeader(w, final, btypeFixed)
	writeTokenStream(w, tokens, fixedLitLenCoder, fixedDistCoder)
}

// writeDynamicBlock emits tokens with a per-block canonical code built by
// PackageMergeAny from the block's own symbol frequencies (BTYPE=10), per
// spec.md §4.2/§4.3 and RFC 1951 §3.2.7's code-length table transmission.
func writeDynamicBlock(w *bitWriter, tokens []Token, final bool) error {
	ft := newFrequencyTally(tokens)

	litLenFreq := ft.litLen[:]
	distFreq := ft.dist[:]
	var distFreqBuf [numDistSymbols]uint32
	if allZero(distFreq) {
		// RFC 1951 requires at least one transmitted distance code even
		// when a block has no back-references; give symbol 0 a nominal
		// frequency so PackageMergeAny assigns it length 1.
		distFreqBuf = ft.dist
		distFreqBuf[0] = 1
		distFreq = distFreqBuf[:]
	}

	litLenLengths, err := PackageMergeAny(litLenFreq, maxCodeLength)
	if err != nil {
		return err
	}
	distLengths, err := PackageMergeAny(distFreq, maxCodeLength)
	if err != nil {
		return err
	}

	hlit := numLitLenSymbols
	for hlit > 257 && litLenLengths[hlit-1] == 0 {
		hlit--
	}
	hdist := numDistSymbols
	for hdist > 1 && distLengths[hdist-1] == 0 {
		hdist--
	}

	clSeq := make([]int, 0, hlit+hdist)
	for i := 0; i < hlit; i++ {
		clSeq = append(clSeq, int(litLenLengths[i]))
	}
	for i := 0; i < hdist; i++ {
		clSeq = append(clSeq, int(distLengths[i]))
	}
	rle := rleCodeLengths(clSeq)

	var clFreq [numCodeLenSymbols]uint32
	for _, s := range rle {
		clFreq[s.symbol]++
	}
	clLengthsWide, err := PackageMergeAny(clFreq[:], 7)
	if err != nil {
		return err
	}
	clLengths := make([]int, numCodeLenSymbols)
	for i, l := range clLengthsWide {
		clLengths[i] = int(l)
	}

	hclen := numCodeLenSymbols
	for hclen > 4 && clLengths[codeLengthOrder[hclen-1]] == 0 {
		hclen--
	}

	clCoder, err := newCanonicalCoder(clLengths)
	if err != nil {
		return err
	}
	litLenInts := make([]int, numLitLenSymbols)
	for i, l := range litLenLengths {
		litLenInts[i] = int(l)
	}
	distInts := make([]int, numDistSymbols)
	for i, l := range distLengths {
		distInts[i] = int(l)
	}
	litLenCoder, err := newCanonicalCoder(litLenInts)
	if err != nil {
		return err
	}
	distCoder, err := newCanonicalCoder(distInts)
	if err != nil {
		return err
	}

	writeBlockHeader(w, final, btypeDynamic)
	w.pushBitsLSB(uint32(hlit-257), 5)
	w.pushBitsLSB(uint32(hdist-1), 5)
	w.pushBitsLSB(uint32(hclen-4), 4)
	for i := 0; i < hclen; i++ {
		w.pushBitsLSB(uint32(clLengths[codeLengthOrder[i]]), 3)
	}
	for _, s := range rle {
		code, length := clCoder.encode(s.symbol)
		w.pushBitsMSB(code, length)
		if s.extraBits > 0 {
			w.pushBitsLSB(uint32(s.extra), s.extraBits)
		}
	}

	writeTokenStream(w, tokens, litLenCoder, distCoder)
	return nil
}

// writeTokenStream emits each token's codeword(s) followed by the
// end-of-block symbol, using litLenCoder/distCoder for the literal/length
// and distance alphabets.
func writeTokenStream(w *bitWriter, tokens []Token, litLenCoder, distCoder *canonicalCoder) {
	for _, t := range tokens {
		if !t.IsBackref {
			code, length := litLenCoder.encode(int(t.Literal))
			w.pushBitsMSB(code, length)
			continue
		}
		lsym, lextra, lextraBits := lengthSymbolFor(t.Length)
		code, length := litLenCoder.encode(lsym)
		w.pushBitsMSB(code, length)
		if lextraBits > 0 {
			w.pushBitsLSB(uint32(lextra), lextraBits)
		}

		dsym, dextra, dextraBits := distSymbolFor(t.Distance)
		dcode, dlength := distCoder.encode(dsym)
		w.pushBitsMSB(dcode, dlength)
		if dextraBits > 0 {
			w.pushBitsLSB(uint32(dextra), dextraBits)
		}
	}
	code, length := litLenCoder.encode(endOfBlockSymbol)
	w.pushBitsMSB(code, length)
}

func allZero(freqs []uint32) bool {
	for _, f := range freqs {
		if f != 0 {
			return false
		}
	}
	return true
}

// clSymbol is one emitted code-length-alphabet symbol: either a literal
// length value (extraBits == 0) or a run-length escape (16/17/18) with its
// accompanying extra-bit payload.
type clSymbol struct {
	symbol    int
	extra     int
	extraBits int
}

// rleCodeLengths run-length-encodes a sequence of code lengths using the
// code-length alphabet's repeat escapes (RFC 1951 §3.2.7): 16 repeats the
// previous length 3-6 times, 17 repeats a zero length 3-10 times, 18 repeats
// a zero length 11-138 times.
func rleCodeLengths(seq []int) []clSymbol {
	var out []clSymbol
	i := 0
	for i < len(seq) {
		v := seq[i]
		runLen := 1
		for i+runLen < len(seq) && seq[i+runLen] == v {
			runLen++
		}

		if v == 0 {
			j := 0
			for j < runLen {
				remaining := runLen - j
				switch {
				case remaining >= 11:
					n := min(remaining, 138)
					out = append(out, clSymbol{clenRepeatZero11, n - 11, 7})
					j += n
				case remaining >= 3:
					n := min(remaining, 10)
					out = append(out, clSymbol{clenRepeatZero3, n - 3, 3})
					j += n
				default:
					out = append(out, clSymbol{symbol: 0})
					j++
				}
			}
		} else {
			out = append(out, clSymbol{symbol: v})
			remaining := runLen - 1
			for remaining > 0 {
				if remaining < 3 {
					for k := 0; k < remaining; k++ {
						out = append(out, clSymbol{symbol: v})
					}
					remaining = 0
					continue
				}
				n := min(remaining, 6)
				out = append(out, clSymbol{clenRepeatPrev, n - 3, 2})
				remaining -= n
			}
		}
		i += runLen
	}
	return out
}
