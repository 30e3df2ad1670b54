// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

// frequencyTally counts symbol occurrences in the literal/length alphabet and
// the distance alphabet by scanning a token stream, per spec.md §2's
// FrequencyTally responsibility.
type frequencyTally struct {
	litLen [numLitLenSymbols]uint32
	dist   [numDistSymbols]uint32
}

// newFrequencyTally builds a tally from tokens. The end-of-block symbol is
// always counted once, since every block emits exactly one.
func newFrequencyTally(tokens []Token) *frequencyTally {
	ft := &frequencyTally{}
	for _, t := range tokens {
		ft.add(t)
	}
	ft.litLen[endOfBlockSymbol]++
	return ft
}

func (ft *frequencyTally) add(t Token) {
	if !t.IsBackref {
		ft.litLen[t.Literal]++
		return
	}
	lengthSym, _, _ := lengthSymbolFor(t.Length)
	ft.litLen[lengthSym]++
	distSym, _, _ := distSymbolFor(t.Distance)
	ft.dist[distSym]++
}
