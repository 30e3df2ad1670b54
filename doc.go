// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

/*
Package zflate implements a Deflate-family lossless byte-stream compressor and
decompressor (RFC 1951 compatible for dynamic and fixed blocks).

The pipeline is LZ77-style sliding-window match finding (see MatchFinder) over a
32 KiB window, followed by length-limited canonical Huffman coding. Code lengths
are chosen by the Boundary Package-Merge algorithm (see PackageMerge), which
produces the lowest-cost code lengths subject to a maximum depth, rather than the
unbounded lengths a plain Huffman tree would produce.

# Compress

Level 0 always emits stored (uncompressed) blocks. Level 1 uses the fixed
Huffman tables from RFC 1951. Levels 2-9 build dynamic per-block tables and
scale the match finder's search depth with level:

	out, err := zflate.Compress(data, &zflate.CompressOptions{Level: 6})

# Decompress

Decompress accepts any RFC 1951-conformant stream (stored, fixed, or dynamic
blocks) regardless of which level produced it:

	out, err := zflate.Decompress(compressed, nil)

# Package-Merge

The length-limited code-length assigner is also exposed directly for callers
that want canonical codes without the rest of the pipeline:

	lengths, err := zflate.PackageMerge(sortedPositiveFreqs, 15)
	lengths, err := zflate.PackageMergeAny(anyOrderFreqs, 15)
*/
package zflate
