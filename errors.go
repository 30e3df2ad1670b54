// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

import "errors"

// Sentinel errors for PackageMerge, CanonicalCoder, and block decoding.
var (
	// ErrLimitTooSmall is returned when 2^limit < n: no length-limited prefix
	// code can represent n symbols within the requested depth.
	ErrLimitTooSmall = errors.New("zflate: depth limit too small for symbol count")
	// ErrLimitTooLarge is returned when limit > 32, outside the design envelope.
	ErrLimitTooLarge = errors.New("zflate: depth limit too large")
	// ErrEmptyFrequencies is returned when the frequency vector has zero symbols.
	ErrEmptyFrequencies = errors.New("zflate: empty frequency vector")
	// ErrZeroFrequency is returned when PackageMerge (not PackageMergeAny) is
	// given a non-positive frequency; PackageMerge requires a strictly-positive,
	// pre-sorted vector per its contract.
	ErrZeroFrequency = errors.New("zflate: zero or negative frequency")
	// ErrMalformedCodeLengths is returned when a set of code lengths violates
	// the Kraft equality and cannot form a canonical prefix code.
	ErrMalformedCodeLengths = errors.New("zflate: code lengths violate Kraft equality")

	// ErrTruncatedStream is returned when the bit stream ends mid-symbol or
	// mid-block.
	ErrTruncatedStream = errors.New("zflate: truncated stream")
	// ErrInvalidBlockType is returned when BTYPE == 3 (reserved) is observed.
	ErrInvalidBlockType = errors.New("zflate: invalid block type")
	// ErrOversizeDistance is returned when a decoded distance is 0 or exceeds
	// the window size.
	ErrOversizeDistance = errors.New("zflate: distance out of range")
	// ErrOversizeLength is returned when a decoded back-reference would copy
	// from before the start of the output.
	ErrOversizeLength = errors.New("zflate: length refers before output start")
)
