// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

// MatchFinder is the LZ77-style sliding-window match finder: it consumes raw
// bytes and emits literal or back-reference Tokens such that concatenating
// literals and expanding back-references reproduces the input exactly.
//
// head[h] holds the most recent window-relative position whose next 3 bytes
// hashed to h; prev[q] links position q to the prior position sharing the
// same hash, so a chain walk starting at head[h] visits candidates from most
// to least recent (see sliding_window.go in the teacher repo for the ring-
// buffer ancestor of this idiom; MatchFinder trades the ring buffer for a
// base-pointer + window-relative-index scheme per spec.md §3/§4.1).
type MatchFinder struct {
	input []byte
	base  int // absolute input offset the window currently starts at
	pos   int // absolute input offset of the lookahead cursor

	maxChainDepth int // candidates visited per search (spec.md's max_chain_depth)
	niceLength    int // stop searching once a match at least this long is found

	head [hashSize]int32
	prev [windowSize]int32
}

// NewMatchFinder returns a MatchFinder over input, ready to emit tokens from
// the start. maxChainDepth must be >= 1; niceLength bounds the search only
// when it is > 0 and <= maxMatch.
func NewMatchFinder(input []byte, maxChainDepth, niceLength int) *MatchFinder {
	mf := acquireMatchFinder()
	mf.reset(input, maxChainDepth, niceLength)
	return mf
}

// reset reinitializes mf for a new input, reusing its backing arrays.
func (mf *MatchFinder) reset(input []byte, maxChainDepth, niceLength int) {
	mf.input = input
	mf.base = 0
	mf.pos = 0
	mf.maxChainDepth = maxChainDepth
	mf.niceLength = niceLength
	for i := range mf.head {
		mf.head[i] = emptyPos
	}
	for i := range mf.prev {
		mf.prev[i] = emptyPos
	}
}

// hash3 hashes the 3 bytes at b[0:3] into [0, hashSize).
func hash3(b []byte) uint32 {
	h := uint32(b[0])
	h = h<<5 ^ uint32(b[1])
	h = h<<5 ^ uint32(b[2])
	h = (h * 0x9e3779b1) >> (32 - hashBits)
	return h & (hashSize - 1)
}

// maybeRebase implements spec.md §4.1's window re-basing: once the window-
// relative position of pos reaches W, shift base forward by W and re-index
// every chain entry by subtracting the old relative position, turning
// now-negative (out-of-window) entries into EMPTY. Called before every search
// and insert so q = pos - base always lies in [0, windowSize).
func (mf *MatchFinder) maybeRebase(pos int) {
	q := pos - mf.base
	if q < windowSize {
		return
	}
	mf.rebase(q)
}

func (mf *MatchFinder) rebase(oldQ int) {
	mf.base += oldQ
	for i := range mf.head {
		if mf.head[i] == emptyPos {
			continue
		}
		v := mf.head[i] - int32(oldQ)
		if v < 0 {
			v = emptyPos
		}
		mf.head[i] = v
	}
	for i := range mf.prev {
		if mf.prev[i] == emptyPos {
			continue
		}
		v := mf.prev[i] - int32(oldQ)
		if v < 0 {
			v = emptyPos
		}
		mf.prev[i] = v
	}
}

// matchLength returns the length of the common prefix of input[a:] and
// input[b:], capped at maxLen.
func matchLength(input []byte, a, b, maxLen int) int {
	n := 0
	for n < maxLen && input[a+n] == input[b+n] {
		n++
	}
	return n
}

// longestMatch searches the hash chain for the longest match at absolute
// position pos, per spec.md §4.1 steps 1-6. Returns (0, 0) if no match of at
// least minMatch length exists or the remaining input is too short.
func (mf *MatchFinder) longestMatch(pos int) (bestLen, bestDist int) {
	maxLen := min(maxMatch, len(mf.input)-pos)
	if maxLen < minMatch {
		return 0, 0
	}

	p := pos - mf.base
	limit := p - windowSize
	h := hash3(mf.input[pos:])

	cand := mf.head[h]
	depth := mf.maxChainDepth
	for cand != emptyPos && int(cand) > limit && depth > 0 {
		candPos := mf.base + int(cand)
		length := matchLength(mf.input, candPos, pos, maxLen)
		if length > bestLen && length >= minMatch {
			bestLen = length
			bestDist = pos - candPos
			if bestLen >= maxLen || (mf.niceLength > 0 && bestLen >= mf.niceLength) {
				break
			}
		}
		cand = mf.prev[cand]
		depth--
	}
	return bestLen, bestDist
}

// insert records the 3-byte hash of input[pos:] in the dictionary. Positions
// within minMatch of the input's end are skipped without hashing, per
// spec.md's "remaining bytes are skipped without hashing" rule, since no
// 3-byte window exists there.
func (mf *MatchFinder) insert(pos int) {
	if pos+minMatch > len(mf.input) {
		return
	}
	mf.maybeRebase(pos)
	q := pos - mf.base
	h := hash3(mf.input[pos:])
	mf.prev[q] = mf.head[h]
	mf.head[h] = int32(q)
}

// NextToken advances the match finder by one literal or one back-reference,
// updating the dictionary for every byte consumed. The second return value
// is false once the input is exhausted.
func (mf *MatchFinder) NextToken() (Token, bool) {
	if mf.pos >= len(mf.input) {
		return Token{}, false
	}
	mf.maybeRebase(mf.pos)

	length, dist := mf.longestMatch(mf.pos)
	if length < minMatch {
		mf.insert(mf.pos)
		tok := literalToken(mf.input[mf.pos])
		mf.pos++
		return tok, true
	}

	for i := 0; i < length; i++ {
		mf.insert(mf.pos + i)
	}
	mf.pos += length
	return backrefToken(dist, length), true
}

// Close releases mf's scratch arrays back to the pool. Callers must not use
// mf after calling Close.
func (mf *MatchFinder) Close() {
	releaseMatchFinder(mf)
}
