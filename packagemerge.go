// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

// Boundary Package-Merge (Moffat, Katajainen & Turpin 1995), per spec.md
// §4.2/§9. This is the length-limited optimal code-length assigner: given a
// sorted, strictly-positive frequency multiset and a depth limit L, it
// produces the unique code-length assignment minimizing total weighted cost
// subject to every length <= L.
//
// Chains live in a fixed arena (pmArena) sized L*(L+1)/2 + 1, managed by an
// intrusive free-list, per spec.md §3's Chain data model and DESIGN NOTES'
// "arena + integer indices; never via owning pointers" guidance. A chain is
// freed the instant nothing references it any longer — tracked here with a
// reference count rather than the spec's "reclaim after each append in list
// L-1, then walk back-links" batching, because refcounting frees the same
// set of chains (anything no longer reachable from any list's rightmost
// chain) without needing a separate reachability sweep.

const pmNoChain = -1

// pmChain is one node of a Boundary Package-Merge list. count is the number
// of leaves represented so far along this chain (cumulative, not a subtree
// size — see spec.md §3's Chain definition); tail links to the chain in the
// next-lower list this chain was packaged from, or pmNoChain.
//
// While a chain is on the arena's free list, count is overlaid with the
// index of the next free chain (the teacher's intrusive free-list idiom,
// DESIGN NOTES).
type pmChain struct {
	count int
	tail  int
	refs  int
}

// pmArena is the fixed-size chain pool for one PackageMerge invocation,
// exclusively owned for the call's duration (spec.md §5).
type pmArena struct {
	chains   []pmChain
	freeHead int
}

func newPMArena(capacity int) *pmArena {
	a := &pmArena{chains: make([]pmChain, capacity), freeHead: 0}
	for i := 0; i < capacity-1; i++ {
		a.chains[i].count = i + 1
	}
	a.chains[capacity-1].count = pmNoChain
	return a
}

// alloc takes a chain off the free list. Exhaustion indicates a programming
// defect (the arena is sized L*(L+1)/2+1 to always suffice), so it panics
// rather than returning an error, per spec.md §7's "a violation indicates a
// programming defect" for internal invariants.
func (a *pmArena) alloc() int {
	if a.freeHead == pmNoChain {
		panic("zflate: package-merge chain arena exhausted")
	}
	idx := a.freeHead
	a.freeHead = a.chains[idx].count
	a.chains[idx] = pmChain{tail: pmNoChain}
	return idx
}

func (a *pmArena) free(idx int) {
	a.chains[idx].count = a.freeHead
	a.freeHead = idx
}

// retain marks idx as referenced by one more owner (a list's rightmost-chain
// slot, or another chain's tail pointer). A no-op for pmNoChain.
func (a *pmArena) retain(idx int) {
	if idx == pmNoChain {
		return
	}
	a.chains[idx].refs++
}

// release drops one reference to idx, cascading the free down the tail chain
// once a chain's reference count reaches zero — the "released aggressively
// once unreferenced by any list's rightmost chain" lifetime from spec.md §3.
func (a *pmArena) release(idx int) {
	if idx == pmNoChain {
		return
	}
	a.chains[idx].refs--
	if a.chains[idx].refs == 0 {
		tail := a.chains[idx].tail
		a.free(idx)
		a.release(tail)
	}
}

// setList installs idx as list l's rightmost chain, retaining it and
// releasing whatever chain previously held that slot.
func (a *pmArena) setList(lists []int, l, idx int) {
	old := lists[l]
	lists[l] = idx
	a.retain(idx)
	a.release(old)
}

// packageMergeCore runs the Boundary Package-Merge main loop over a sorted,
// strictly-positive frequency vector and returns the code length for each
// symbol in sorted order. Preconditions (n >= 1, 1 <= limit <= 32,
// 2^limit >= n) must already be checked by the caller.
func packageMergeCore(freqs []uint32, limit int) []int {
	n := len(freqs)
	if n == 1 {
		return []int{1}
	}

	arena := newPMArena(limit*(limit+1)/2 + 1)
	lists := make([]int, limit)
	weights := make([]uint64, limit)

	for l := 0; l < limit; l++ {
		idx := arena.alloc()
		arena.chains[idx].count = 2
		lists[l] = idx
		arena.retain(idx)
		weights[l] = uint64(freqs[0]) + uint64(freqs[1])
	}

	target := 2*n - 2
	terminalCount := 2
	current := limit - 1
	var stack []int

	for terminalCount < target {
		curChain := lists[current]
		nextLeaf := arena.chains[curChain].count
		haveLeaf := nextLeaf < n

		// Base case (Katajainen/Moffat/Turpin's boundaryPM, index == 0 &&
		// lastcount >= numsymbols): list 0 has already consumed every leaf,
		// and list 0 has no lower list to package from, so this call
		// contributes nothing.
		noop := current == 0 && !haveLeaf

		takeLeaf := false
		if !noop {
			switch {
			case current == 0:
				takeLeaf = true
			case !haveLeaf:
				takeLeaf = false
			default:
				takeLeaf = uint64(freqs[nextLeaf]) <= weights[current-1]
			}
		}

		switch {
		case noop:
			// Nothing to do.
		case takeLeaf:
			// Extend the current chain with one more leaf.
			idx := arena.alloc()
			arena.chains[idx].count = nextLeaf + 1
			arena.chains[idx].tail = arena.chains[curChain].tail
			arena.retain(arena.chains[idx].tail)
			arena.setList(lists, current, idx)
			weights[current] += uint64(freqs[nextLeaf])
		default:
			// Package the two rightmost chains of list current-1.
			idx := arena.alloc()
			arena.chains[idx].count = nextLeaf
			arena.chains[idx].tail = lists[current-1]
			arena.retain(lists[current-1])
			arena.setList(lists, current, idx)
			weights[current] += weights[current-1]
			weights[current-1] = 0
			stack = append(stack, current-1, current-1)
		}

		if current == limit-1 {
			terminalCount++
		}

		if len(stack) > 0 {
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		} else {
			current = limit - 1
		}
	}

	// Extraction: walk tail links from list limit-1's rightmost chain.
	a := make([]int, limit)
	for i := range a {
		a[i] = -1
	}
	node := lists[limit-1]
	for k := 1; node != pmNoChain && k <= limit; k++ {
		a[limit-k] = arena.chains[node].count
		node = arena.chains[node].tail
	}
	for l := limit - 2; l >= 0; l-- {
		if a[l] == -1 {
			a[l] = 0
		}
	}

	lengths := make([]int, n)
	sym := 0
	for l := 0; l < limit; l++ {
		length := limit - l
		count := a[l]
		if l > 0 {
			count = a[l] - a[l-1]
		}
		for j := 0; j < count; j++ {
			lengths[sym] = length
			sym++
		}
	}
	if sym != n {
		panic("zflate: package-merge produced a malformed length assignment")
	}
	return lengths
}

// PackageMerge computes length-limited code lengths for freqs, which must be
// sorted ascending and strictly positive (spec.md §3's SortedFrequencies
// contract; violating the sort order is a caller error and is not
// re-validated here). limit is the maximum code length L.
func PackageMerge(freqs []uint32, limit int) ([]uint32, error) {
	n := len(freqs)
	if n == 0 {
		return nil, ErrEmptyFrequencies
	}
	if limit > 32 {
		return nil, ErrLimitTooLarge
	}
	if limit < 1 || uint64(1)<<uint(limit) < uint64(n) {
		return nil, ErrLimitTooSmall
	}
	for _, f := range freqs {
		if f == 0 {
			return nil, ErrZeroFrequency
		}
	}

	lengths := packageMergeCore(freqs, limit)
	out := make([]uint32, n)
	for i, l := range lengths {
		out[i] = uint32(l)
	}
	return out, nil
}

// PackageMergeAny computes length-limited code lengths for freqs in any
// order, including zero frequencies. Symbols with zero frequency receive
// code length 0 (absent from the block); freqs[i]'s original position is
// preserved in the result, per spec.md §6.
func PackageMergeAny(freqs []uint32, limit int) ([]uint32, error) {
	n := len(freqs)
	if n == 0 {
		return nil, ErrEmptyFrequencies
	}
	if limit > 32 {
		return nil, ErrLimitTooLarge
	}
	if limit < 1 {
		return nil, ErrLimitTooSmall
	}

	type indexed = struct {
		freq uint32
		idx  int
	}
	positive := make([]indexed, 0, n)
	for i, f := range freqs {
		if f > 0 {
			positive = append(positive, indexed{f, i})
		}
	}

	out := make([]uint32, n)
	if len(positive) == 0 {
		return out, nil
	}

	if uint64(1)<<uint(limit) < uint64(len(positive)) {
		return nil, ErrLimitTooSmall
	}

	insertionSortIndexed(positive)
	sortedFreqs := make([]uint32, len(positive))
	for i, p := range positive {
		sortedFreqs[i] = p.freq
	}

	lengths := packageMergeCore(sortedFreqs, limit)
	for i, p := range positive {
		out[p.idx] = uint32(lengths[i])
	}
	return out, nil
}

// insertionSortIndexed sorts by (freq ascending, idx ascending), matching
// spec.md §3's SortedFrequencies tie-break rule. Insertion sort keeps this
// dependency-free and is fast enough for the alphabet sizes zflate ever
// builds (at most 286 symbols).
func insertionSortIndexed(s []struct {
	freq uint32
	idx  int
}) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && (s[j].freq > v.freq || (s[j].freq == v.freq && s[j].idx > v.idx)) {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}
