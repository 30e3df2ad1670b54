// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

import "sync"

// matchFinderPool recycles MatchFinder's O(W) hash-chain arrays across
// compression calls, following the teacher's slidingWindowDictPool pattern
// (sliding_window_pool.go) for its own O(W) scratch state.
var matchFinderPool = sync.Pool{
	New: func() any {
		return &MatchFinder{}
	},
}

func acquireMatchFinder() *MatchFinder {
	return matchFinderPool.Get().(*MatchFinder)
}

// releaseMatchFinder returns mf to the pool. mf must not be used afterward.
func releaseMatchFinder(mf *MatchFinder) {
	if mf == nil {
		return
	}
	mf.input = nil
	matchFinderPool.Put(mf)
}
