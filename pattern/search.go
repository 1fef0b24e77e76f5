package pattern

import "github.com/Vorticode/expect.js/lexer"

// Match is one located occurrence of a pattern in a haystack.
type Match struct {
	// Index is the haystack offset the match starts at.
	Index int

	// Tokens is the matched sub-slice of the haystack. It shares backing
	// storage with the haystack, so a consumer may rewrite a matched token
	// in place.
	Tokens []lexer.Token
}

// FindFirst scans start offsets left to right and returns the first match.
// The offset just past the last token is scanned too, so zero-width patterns
// such as End can land there.
func FindFirst(m Matcher, haystack []lexer.Token) (Match, bool) {
	for i := 0; i <= len(haystack); i++ {
		if n, ok := m(haystack[i:]); ok {
			return Match{Index: i, Tokens: haystack[i : i+n]}, true
		}
	}
	return Match{}, false
}

// FindAll scans every start offset, not just offsets past the previous match,
// so overlapping matches are collected. At most limit matches are returned;
// limit <= 0 means unbounded.
func FindAll(m Matcher, haystack []lexer.Token, limit int) []Match {
	var matches []Match
	for i := 0; i <= len(haystack); i++ {
		if limit > 0 && len(matches) == limit {
			break
		}
		if n, ok := m(haystack[i:]); ok {
			matches = append(matches, Match{Index: i, Tokens: haystack[i : i+n]})
		}
	}
	return matches
}
