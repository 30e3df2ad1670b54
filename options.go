// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

// CompressOptions configures Compress. Level 0 emits stored blocks only
// (no match finding, no entropy coding). Level 1 uses the RFC 1951 fixed
// Huffman tables. Levels 2-9 build per-block dynamic tables and scale the
// match finder's search depth with level (see levelParams).
type CompressOptions struct {
	// Level: 0 = stored; 1 = fixed Huffman; 2-9 = dynamic Huffman, increasing
	// match-finder effort.
	Level int
}

// DefaultCompressOptions returns options for level 6, a balanced default.
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{Level: 6}
}

// DecompressOptions configures Decompress.
type DecompressOptions struct {
	// MaxBlocks limits how many blocks a stream may contain (0 = no limit).
	// Guards against a BFINAL bit that is never set in malformed input.
	MaxBlocks int
}

// DefaultDecompressOptions returns options with no block-count limit.
func DefaultDecompressOptions() *DecompressOptions {
	return &DecompressOptions{}
}
