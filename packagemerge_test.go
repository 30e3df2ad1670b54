// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

import (
	"container/heap"
	"testing"
)

func TestPackageMerge_BasicAscendingFrequencies(t *testing.T) {
	freqs := []uint32{1, 1, 2, 3, 5, 8}
	lengths, err := PackageMerge(freqs, 15)
	if err != nil {
		t.Fatalf("PackageMerge failed: %v", err)
	}
	if err := validateKraftEquality(lengths); err != nil {
		t.Fatalf("invalid code lengths: %v", err)
	}
	// Lower-frequency symbols must never get a strictly shorter code than a
	// higher-frequency one (monotonicity of an optimal prefix code).
	for i := 1; i < len(lengths); i++ {
		if lengths[i] > lengths[i-1] {
			t.Fatalf("length not monotonically non-increasing at %d: %v", i, lengths)
		}
	}
}

func TestPackageMerge_SingleSymbol(t *testing.T) {
	lengths, err := PackageMerge([]uint32{42}, 15)
	if err != nil {
		t.Fatalf("PackageMerge failed: %v", err)
	}
	if len(lengths) != 1 || lengths[0] != 1 {
		t.Fatalf("single symbol should get length 1, got %v", lengths)
	}
}

func TestPackageMerge_LimitTooSmall(t *testing.T) {
	// 20 symbols cannot fit in a depth-4 code (2^4 == 16 < 20).
	freqs := make([]uint32, 20)
	for i := range freqs {
		freqs[i] = uint32(i + 1)
	}
	if _, err := PackageMerge(freqs, 4); err != ErrLimitTooSmall {
		t.Fatalf("expected ErrLimitTooSmall, got %v", err)
	}
}

func TestPackageMerge_LimitTooLarge(t *testing.T) {
	if _, err := PackageMerge([]uint32{1, 2}, 33); err != ErrLimitTooLarge {
		t.Fatalf("expected ErrLimitTooLarge, got %v", err)
	}
}

func TestPackageMerge_EmptyFrequencies(t *testing.T) {
	if _, err := PackageMerge(nil, 15); err != ErrEmptyFrequencies {
		t.Fatalf("expected ErrEmptyFrequencies, got %v", err)
	}
}

func TestPackageMerge_ZeroFrequencyRejected(t *testing.T) {
	if _, err := PackageMerge([]uint32{1, 0, 3}, 15); err != ErrZeroFrequency {
		t.Fatalf("expected ErrZeroFrequency, got %v", err)
	}
}

func TestPackageMerge_RespectsDepthLimit(t *testing.T) {
	// A Fibonacci-weighted alphabet is the classic adversarial case for an
	// unbounded Huffman tree: it forces maximal tree depth. Limiting L well
	// below n's natural Huffman depth must still produce a valid code.
	n := 42
	freqs := make([]uint32, n)
	freqs[0], freqs[1] = 1, 1
	for i := 2; i < n; i++ {
		freqs[i] = freqs[i-1] + freqs[i-2]
	}
	const limit = 12
	lengths, err := PackageMerge(freqs, limit)
	if err != nil {
		t.Fatalf("PackageMerge failed: %v", err)
	}
	if err := validateKraftEquality(lengths); err != nil {
		t.Fatalf("invalid code lengths: %v", err)
	}
	for _, l := range lengths {
		if l < 1 || l > limit {
			t.Fatalf("length %d exceeds limit %d", l, limit)
		}
	}
}

func TestPackageMergeAny_ZeroFrequenciesGetZeroLength(t *testing.T) {
	freqs := []uint32{0, 5, 0, 3, 7, 0}
	lengths, err := PackageMergeAny(freqs, 15)
	if err != nil {
		t.Fatalf("PackageMergeAny failed: %v", err)
	}
	for i, f := range freqs {
		if f == 0 && lengths[i] != 0 {
			t.Fatalf("symbol %d has zero frequency but nonzero length %d", i, lengths[i])
		}
		if f != 0 && lengths[i] == 0 {
			t.Fatalf("symbol %d has nonzero frequency but zero length", i)
		}
	}
	positive := make([]uint32, 0, len(freqs))
	for _, f := range freqs {
		if f != 0 {
			positive = append(positive, f)
		}
	}
	var positiveLengths []uint32
	for _, l := range lengths {
		if l != 0 {
			positiveLengths = append(positiveLengths, l)
		}
	}
	if err := validateKraftEquality(positiveLengths); err != nil {
		t.Fatalf("invalid code lengths: %v", err)
	}
}

func TestPackageMergeAny_AllZero(t *testing.T) {
	lengths, err := PackageMergeAny([]uint32{0, 0, 0}, 15)
	if err != nil {
		t.Fatalf("PackageMergeAny failed: %v", err)
	}
	for _, l := range lengths {
		if l != 0 {
			t.Fatalf("expected all-zero lengths, got %v", lengths)
		}
	}
}

// TestPackageMerge_WeakOptimalityVsUnboundedHuffman cross-checks
// PackageMerge's total weighted code length against an independent,
// unbounded Huffman tree built with container/heap: when the depth limit is
// generous enough to never bind, PackageMerge must match the unbounded
// optimum exactly (the "weak optimality" property: length-limiting can only
// cost more when the limit actually constrains the assignment).
func TestPackageMerge_WeakOptimalityVsUnboundedHuffman(t *testing.T) {
	freqs := []uint32{1, 1, 2, 3, 5, 8, 13, 21, 34, 55}
	const limit = 20 // generous enough to never bind for 10 symbols

	lengths, err := PackageMerge(freqs, limit)
	if err != nil {
		t.Fatalf("PackageMerge failed: %v", err)
	}

	pmCost := weightedCost(freqs, lengths)
	huffLengths := unboundedHuffmanLengths(freqs)
	huffCost := weightedCost(freqs, huffLengths)

	if pmCost != huffCost {
		t.Fatalf("package-merge cost %d does not match unbounded Huffman optimum %d", pmCost, huffCost)
	}
}

func weightedCost(freqs []uint32, lengths []uint32) uint64 {
	var total uint64
	for i, f := range freqs {
		total += uint64(f) * uint64(lengths[i])
	}
	return total
}

func validateKraftEquality(lengths []uint32) error {
	var sum uint64
	maxLen := uint32(0)
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	for _, l := range lengths {
		sum += uint64(1) << uint(maxLen-l)
	}
	if sum != uint64(1)<<uint(maxLen) {
		return ErrMalformedCodeLengths
	}
	return nil
}

// huffNode and the heap below build a plain, unbounded Huffman tree purely
// as an independent reference oracle for the optimality cross-check; it has
// no role in zflate's actual encoding path.
type huffNode struct {
	weight      uint64
	left, right *huffNode
	leaf        int
	isLeaf      bool
}

type huffHeap []*huffNode

func (h huffHeap) Len() int            { return len(h) }
func (h huffHeap) Less(i, j int) bool  { return h[i].weight < h[j].weight }
func (h huffHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *huffHeap) Push(x interface{}) { *h = append(*h, x.(*huffNode)) }
func (h *huffHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func unboundedHuffmanLengths(freqs []uint32) []uint32 {
	n := len(freqs)
	lengths := make([]uint32, n)
	if n == 1 {
		lengths[0] = 1
		return lengths
	}

	h := make(huffHeap, n)
	for i, f := range freqs {
		h[i] = &huffNode{weight: uint64(f), leaf: i, isLeaf: true}
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(*huffNode)
		b := heap.Pop(&h).(*huffNode)
		heap.Push(&h, &huffNode{weight: a.weight + b.weight, left: a, right: b})
	}
	root := heap.Pop(&h).(*huffNode)

	var walk func(node *huffNode, depth int)
	walk = func(node *huffNode, depth int) {
		if node.isLeaf {
			if depth == 0 {
				depth = 1
			}
			lengths[node.leaf] = uint32(depth)
			return
		}
		walk(node.left, depth+1)
		walk(node.right, depth+1)
	}
	walk(root, 0)
	return lengths
}
