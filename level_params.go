// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

// levelParams holds internal match-finder tuning for one compression level
// (levels 2-9; level 0 bypasses the match finder entirely, and level 1 runs it
// with tokenizeSpan's fixed-block defaults instead of a levelParams entry).
type levelParams struct {
	maxChainDepth int // MatchFinder.maxChainDepth: chain positions visited per search
	niceLength    int // stop searching once a match of at least this length is found
}

// fixedLevels defines match-finder tuning for levels 2-9, scaling chain depth
// and the early-exit threshold by level the way the teacher's fixedLevels
// table scales maxChain/niceLen by level.
var fixedLevels = [8]levelParams{
	{maxChainDepth: 8, niceLength: 32},     // level 2
	{maxChainDepth: 16, niceLength: 48},    // level 3
	{maxChainDepth: 32, niceLength: 64},    // level 4
	{maxChainDepth: 64, niceLength: 96},    // level 5
	{maxChainDepth: 128, niceLength: 128},  // level 6
	{maxChainDepth: 256, niceLength: 192},  // level 7
	{maxChainDepth: 512, niceLength: 258},  // level 8
	{maxChainDepth: 4096, niceLength: 258}, // level 9
}

// paramsForLevel returns the match-finder tuning for level (clamped to
// [2,9]); levels below 2 are never passed here (see Compress's dispatch).
func paramsForLevel(level int) levelParams {
	level = max(level, 2)
	level = min(level, 9)
	return fixedLevels[level-2]
}
