// SPDX-License-Identifier: MIT
// Source: github.com/zflate/zflate

package zflate

import (
	"bytes"
	"testing"
)

// reconstruct replays tokens against themselves to rebuild the original
// input, the way BlockReader's token stream consumer does, so MatchFinder's
// output can be checked for round-trip correctness independent of any
// entropy coding.
func reconstruct(tokens []Token) ([]byte, error) {
	var out []byte
	var err error
	for _, t := range tokens {
		if !t.IsBackref {
			out = append(out, t.Literal)
			continue
		}
		out, err = appendBackref(out, t.Distance, t.Length)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func TestMatchFinder_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"tiny", []byte("ab")},
		{"no-repeats", []byte("the quick brown fox jumps")},
		{"simple-repeat", []byte("abcabcabcabcabcabc")},
		{"abracadabra", bytes.Repeat([]byte("abracadabra"), 20)},
		{"long-run", bytes.Repeat([]byte{0x7A}, 5000)},
		{"near-window-size", bytes.Repeat([]byte("0123456789"), windowSize/5)},
		{"spans-window-rebase", bytes.Repeat([]byte("rebase-me!"), windowSize/3)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mf := NewMatchFinder(c.data, defaultMaxChainDepth, maxMatch)
			defer mf.Close()

			var tokens []Token
			for {
				tok, ok := mf.NextToken()
				if !ok {
					break
				}
				tokens = append(tokens, tok)
				if tok.IsBackref {
					if tok.Length < minMatch || tok.Length > maxMatch {
						t.Fatalf("backref length out of range: %d", tok.Length)
					}
					if tok.Distance < 1 || tok.Distance > windowSize {
						t.Fatalf("backref distance out of range: %d", tok.Distance)
					}
				}
			}

			got, err := reconstruct(tokens)
			if err != nil {
				t.Fatalf("reconstruct failed: %v", err)
			}
			if !bytes.Equal(got, c.data) {
				t.Fatalf("round-trip mismatch:\n got=%q\nwant=%q", got, c.data)
			}
		})
	}
}

func TestMatchFinder_FindsObviousRepeat(t *testing.T) {
	data := []byte("abcdefgh" + "abcdefgh")
	mf := NewMatchFinder(data, defaultMaxChainDepth, maxMatch)
	defer mf.Close()

	var sawBackref bool
	for {
		tok, ok := mf.NextToken()
		if !ok {
			break
		}
		if tok.IsBackref {
			sawBackref = true
			if tok.Distance != 8 {
				t.Fatalf("expected backref distance 8, got %d", tok.Distance)
			}
		}
	}
	if !sawBackref {
		t.Fatal("expected at least one back-reference for an obviously repeated string")
	}
}

func TestMatchFinder_NiceLengthBoundsMatchSearch(t *testing.T) {
	data := bytes.Repeat([]byte{0x01}, 300)
	const niceLength = 16

	mf := NewMatchFinder(data, defaultMaxChainDepth, niceLength)
	defer mf.Close()

	var tokens []Token
	for {
		tok, ok := mf.NextToken()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}

	got, err := reconstruct(tokens)
	if err != nil {
		t.Fatalf("reconstruct failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round-trip mismatch with a small nice-length threshold")
	}

	var sawMatchAtLeastNiceLength bool
	for _, tok := range tokens {
		if tok.IsBackref && tok.Length >= niceLength {
			sawMatchAtLeastNiceLength = true
		}
	}
	if !sawMatchAtLeastNiceLength {
		t.Fatal("expected a match to reach the nice-length threshold in a 300-byte run")
	}
}

func TestTokenWord_RoundTrip(t *testing.T) {
	cases := []Token{
		literalToken(0x00),
		literalToken(0xFF),
		backrefToken(1, minMatch),
		backrefToken(windowSize, maxMatch),
		backrefToken(12345, 200),
	}
	for _, tok := range cases {
		word := encodeTokenWord(tok)
		got := decodeTokenWord(word)
		if got != tok {
			t.Fatalf("token word round-trip mismatch: got=%+v want=%+v", got, tok)
		}
	}
}
