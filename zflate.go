// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

// blockSpan bounds how much input each compressed block covers. Splitting
// at a fixed span keeps per-block match-finder state (and, for dynamic
// blocks, the per-block canonical tables) bounded regardless of total input
// size, at the cost of back-references never crossing a span boundary.
const blockSpan = 1 << 16

// storedMaxLen is the largest payload a single stored block can carry: LEN
// is a 16-bit field (RFC 1951 §3.2.4).
const storedMaxLen = 1<<16 - 1

// Compress encodes input into a Deflate-family byte stream per opts.Level. A
// nil opts uses DefaultCompressOptions.
func Compress(input []byte, opts *CompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}

	var w bitWriter
	if len(input) == 0 {
		writeStoredBlock(&w, nil, true)
		return w.Bytes(), nil
	}

	switch {
	case opts.Level <= 0:
		compressStoredOnly(&w, input)
	case opts.Level == 1:
		if err := compressSpans(&w, input, nil); err != nil {
			return nil, err
		}
	default:
		params := paramsForLevel(opts.Level)
		if err := compressSpans(&w, input, &params); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// compressStoredOnly emits the whole input as a sequence of stored blocks
// (level 0: no match finding, no entropy coding).
func compressStoredOnly(w *bitWriter, input []byte) {
	for i := 0; i < len(input); i += storedMaxLen {
		end := min(i+storedMaxLen, len(input))
		final := end == len(input)
		writeStoredBlock(w, input[i:end], final)
	}
}

// compressSpans splits input into blockSpan-sized chunks, tokenizes each
// independently, and emits it as a fixed block (params == nil) or a dynamic
// block (params != nil), falling back to a stored block when the entropy-
// coded form would not be smaller.
func compressSpans(w *bitWriter, input []byte, params *levelParams) error {
	for i := 0; i < len(input); i += blockSpan {
		end := min(i+blockSpan, len(input))
		final := end == len(input)
		span := input[i:end]

		tokens := tokenizeSpan(span, params)

		var tw bitWriter
		if params == nil {
			writeFixedBlock(&tw, tokens, final)
		} else if err := writeDynamicBlock(&tw, tokens, final); err != nil {
			return err
		}

		if tw.totalBits() <= storedBlockBitBudget(span) {
			w.appendBits(&tw)
		} else {
			for j := 0; j < len(span); j += storedMaxLen {
				e := min(j+storedMaxLen, len(span))
				writeStoredBlock(w, span[j:e], final && e == len(span))
			}
		}
	}
	return nil
}

// storedBlockBitBudget conservatively over-estimates the bit cost of
// emitting span as stored blocks of at most storedMaxLen bytes each
// (worst-case 7 bits of alignment padding, a 3-bit header, and the 32-bit
// LEN/~LEN pair per block), so the fallback only fires when the
// entropy-coded block is genuinely no better.
func storedBlockBitBudget(span []byte) int {
	blocks := max(1, (len(span)+storedMaxLen-1)/storedMaxLen)
	return blocks*(3+7+32) + len(span)*8
}

// tokenizeSpan runs the match finder over span start to finish. params ==
// nil selects the fixed-block tuning: defaultMaxChainDepth candidates per
// search and no nice-length early exit below maxMatch.
func tokenizeSpan(span []byte, params *levelParams) []Token {
	maxChainDepth := defaultMaxChainDepth
	niceLength := maxMatch
	if params != nil {
		maxChainDepth = params.maxChainDepth
		niceLength = params.niceLength
	}

	mf := NewMatchFinder(span, maxChainDepth, niceLength)
	defer mf.Close()

	var tokens []Token
	for {
		tok, ok := mf.NextToken()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Decompress decodes a Deflate-family byte stream produced by Compress (or
// any stream following the same framing). opts bounds how many blocks the
// stream may contain; a nil opts uses DefaultDecompressOptions (no limit).
func Decompress(input []byte, opts *DecompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultDecompressOptions()
	}

	r := newBitReader(input)
	var output []byte
	blocks := 0

	for {
		final, btype, err := readBlockHeader(r)
		if err != nil {
			return nil, err
		}
		blocks++
		if opts.MaxBlocks > 0 && blocks > opts.MaxBlocks {
			return nil, ErrTruncatedStream
		}

		switch btype {
		case btypeStored:
			output, err = readStoredBlock(r, output)
		case btypeFixed:
			output, err = readFixedBlock(r, output)
		case btypeDynamic:
			output, err = readDynamicBlock(r, output)
		default:
			return nil, ErrInvalidBlockType
		}
		if err != nil {
			return nil, err
		}

		if final {
			return output, nil
		}
	}
}
