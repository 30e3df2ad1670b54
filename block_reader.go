// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

// readBlockHeader reads BFINAL and BTYPE.
func readBlockHeader(r *bitReader) (final bool, btype uint32, err error) {
	bfinal, err := r.readBitsLSB(1)
	if err != nil {
		return false, 0, err
	}
	bt, err := r.readBitsLSB(2)
	if err != nil {
		return false, 0, err
	}
	return bfinal == 1, bt, nil
}

// readStoredBlock reads a BTYPE=00 block and appends its payload to output.
func readStoredBlock(r *bitReader, output []byte) ([]byte, error) {
	r.align()
	lo, err := r.readByte()
	if err != nil {
		return output, err
	}
	hi, err := r.readByte()
	if err != nil {
		return output, err
	}
	ln := uint16(lo) | uint16(hi)<<8

	nlo, err := r.readByte()
	if err != nil {
		return output, err
	}
	nhi, err := r.readByte()
	if err != nil {
		return output, err
	}
	nln := uint16(nlo) | uint16(nhi)<<8
	if nln != ^ln {
		return output, ErrTruncatedStream
	}

	for i := uint16(0); i < ln; i++ {
		b, err := r.readByte()
		if err != nil {
			return output, err
		}
		output = append(output, b)
	}
	return output, nil
}

// readFixedBlock reads a BTYPE=01 block using RFC 1951's fixed tables.
func readFixedBlock(r *bitReader, output []byte) ([]byte, error) {
	return readTokenStream(r, output, fixedLitLenCoder, fixedDistCoder)
}

// readDynamicBlock reads a BTYPE=10 block: the transmitted code-length table,
// then the literal/length and distance tables it describes, then the token
// stream itself.
func readDynamicBlock(r *bitReader, output []byte) ([]byte, error) {
	hlitField, err := r.readBitsLSB(5)
	if err != nil {
		return output, err
	}
	hdistField, err := r.readBitsLSB(5)
	if err != nil {
		return output, err
	}
	hclenField, err := r.readBitsLSB(4)
	if err != nil {
		return output, err
	}
	hlit := int(hlitField) + 257
	hdist := int(hdistField) + 1
	hclen := int(hclenField) + 4

	clLengths := make([]int, numCodeLenSymbols)
	for i := 0; i < hclen; i++ {
		v, err := r.readBitsLSB(3)
		if err != nil {
			return output, err
		}
		clLengths[codeLengthOrder[i]] = int(v)
	}
	clCoder, err := newCanonicalCoder(clLengths)
	if err != nil {
		return output, err
	}

	total := hlit + hdist
	seq := make([]int, 0, total)
	var prev int
	for len(seq) < total {
		sym, err := clCoder.decode(r)
		if err != nil {
			return output, err
		}
		switch sym {
		case clenRepeatPrev:
			extra, err := r.readBitsLSB(2)
			if err != nil {
				return output, err
			}
			n := int(extra) + 3
			if len(seq) == 0 || len(seq)+n > total {
				return output, ErrMalformedCodeLengths
			}
			for i := 0; i < n; i++ {
				seq = append(seq, prev)
			}
		case clenRepeatZero3:
			extra, err := r.readBitsLSB(3)
			if err != nil {
				return output, err
			}
			n := int(extra) + 3
			if len(seq)+n > total {
				return output, ErrMalformedCodeLengths
			}
			for i := 0; i < n; i++ {
				seq = append(seq, 0)
			}
			prev = 0
		case clenRepeatZero11:
			extra, err := r.readBitsLSB(7)
			if err != nil {
				return output, err
			}
			n := int(extra) + 11
			if len(seq)+n > total {
				return output, ErrMalformedCodeLengths
			}
			for i := 0; i < n; i++ {
				seq = append(seq, 0)
			}
			prev = 0
		default:
			seq = append(seq, sym)
			prev = sym
		}
	}

	litLenLengths := make([]int, numLitLenSymbols)
	copy(litLenLengths, seq[:hlit])
	distLengths := make([]int, numDistSymbols)
	copy(distLengths, seq[hlit:hlit+hdist])

	litLenCoder, err := newCanonicalCoder(litLenLengths)
	if err != nil {
		return output, err
	}
	distCoder, err := newCanonicalCoder(distLengths)
	if err != nil {
		return output, err
	}

	return readTokenStream(r, output, litLenCoder, distCoder)
}

// readTokenStream decodes literal/backref tokens until the end-of-block
// symbol, appending the expanded bytes to output.
func readTokenStream(r *bitReader, output []byte, litLenCoder, distCoder *canonicalCoder) ([]byte, error) {
	for {
		sym, err := litLenCoder.decode(r)
		if err != nil {
			return output, err
		}
		if sym == endOfBlockSymbol {
			return output, nil
		}
		if sym < endOfBlockSymbol {
			output = append(output, byte(sym))
			continue
		}

		li := sym - firstLengthSymbol
		if li < 0 || li >= len(lengthBase) {
			return output, ErrMalformedCodeLengths
		}
		extra, err := r.readBitsLSB(lengthExtraBits[li])
		if err != nil {
			return output, err
		}
		length := lengthBase[li] + int(extra)

		dsym, err := distCoder.decode(r)
		if err != nil {
			return output, err
		}
		if dsym < 0 || dsym >= len(distBase) {
			return output, ErrMalformedCodeLengths
		}
		dextra, err := r.readBitsLSB(distExtraBits[dsym])
		if err != nil {
			return output, err
		}
		distance := distBase[dsym] + int(dextra)

		output, err = appendBackref(output, distance, length)
		if err != nil {
			return output, err
		}
	}
}

// appendBackref expands a back-reference of the given distance and length
// onto the end of output, using the exponential-doubling copy idiom (each
// pass doubles the already-expanded region until it covers the full match)
// for the case where the match overlaps its own source.
func appendBackref(output []byte, distance, length int) ([]byte, error) {
	if distance < 1 || distance > windowSize {
		return output, ErrOversizeDistance
	}
	if distance > len(output) {
		return output, ErrOversizeLength
	}

	start := len(output)
	mPos := start - distance
	output = append(output, make([]byte, length)...)

	if distance >= length {
		copy(output[start:start+length], output[mPos:mPos+length])
		return output, nil
	}

	copy(output[start:start+distance], output[mPos:start])
	copied := distance
	for copied < length {
		n := copy(output[start+copied:start+length], output[start:start+copied])
		copied += n
	}
	return output, nil
}
