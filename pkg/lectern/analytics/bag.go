package analytics

import (
	"sort"
	"unicode/utf8"
)

// Bag maps a token to its occurrence count. Counts are always positive;
// a token with no occurrences is absent.
type Bag map[string]int

// TermCount is one bag entry.
type TermCount struct {
	Token string
	Count int
}

// BagOf counts tokens.
func BagOf(tokens []string) Bag {
	b := make(Bag, len(tokens)/2)
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		b[tok]++
	}
	return b
}

// Add increases the count of token by n. Non-positive n is ignored.
func (b Bag) Add(token string, n int) {
	if n <= 0 || token == "" {
		return
	}
	b[token] += n
}

// Merge adds every count of other into b.
func (b Bag) Merge(other Bag) {
	for tok, c := range other {
		b.Add(tok, c)
	}
}

// Total returns the sum of all counts.
func (b Bag) Total() int {
	total := 0
	for _, c := range b {
		total += c
	}
	return total
}

// Has reports whether token occurs at least once.
func (b Bag) Has(token string) bool {
	return b[token] > 0
}

// Clone returns an independent copy.
func (b Bag) Clone() Bag {
	out := make(Bag, len(b))
	for tok, c := range b {
		out[tok] = c
	}
	return out
}

// Sorted returns the entries ordered by descending count, then ascending token.
func (b Bag) Sorted() []TermCount {
	return b.Filter(func(string, int) bool { return true })
}

// Filter returns the entries accepted by keep, in Sorted order.
func (b Bag) Filter(keep func(token string, count int) bool) []TermCount {
	out := make([]TermCount, 0, len(b))
	for tok, c := range b {
		if keep(tok, c) {
			out = append(out, TermCount{Token: tok, Count: c})
		}
	}
	SortTermCounts(out)
	return out
}

// Vocabulary returns the tokens with count >= minCount and rune length >= minLen.
func (b Bag) Vocabulary(minCount, minLen int) map[string]struct{} {
	set := make(map[string]struct{})
	for tok, c := range b {
		if c >= minCount && utf8.RuneCountInString(tok) >= minLen {
			set[tok] = struct{}{}
		}
	}
	return set
}

// SortTermCounts orders entries by descending count, then ascending token.
func SortTermCounts(terms []TermCount) {
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Token < terms[j].Token
	})
}
