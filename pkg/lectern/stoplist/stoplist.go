package stoplist

import (
	"sort"
	"strings"
)

// Origin records where a stopword came from
type Origin string

const (
	OriginBuiltin Origin = "builtin"
	OriginFile    Origin = "file"
	OriginConfig  Origin = "config"
)

// builtin is the mixed Polish/English list used for lecture slides and
// tests: function words of both languages plus filler terms that appear
// on nearly every slide or question ("przykład", "zadanie", "python").
var builtin = []string{
	// PL
	"i", "oraz", "a", "ale", "albo", "lub", "że", "to", "te", "ta", "ten",
	"tę", "tych", "tym", "w", "we", "na", "do", "od", "dla", "po", "pod",
	"nad", "z", "ze", "o", "u", "jak", "jaki", "jaka", "jakie", "czy", "co",
	"kiedy", "gdzie", "który", "która", "które", "których", "którym", "się",
	"nie", "tak", "taka", "takie", "tego", "tej", "temu", "jest", "są",
	"być", "bywa", "będzie", "będą", "może", "można", "np", "itp", "etc",
	"przykład", "przyklad", "zadanie", "pytanie", "test",
	// EN
	"the", "and", "or", "an", "of", "in", "on", "for", "with", "as", "is",
	"are", "be", "this", "that", "these", "those", "from", "by", "at", "it",
	"its", "into", "about", "example", "examples", "python",
}

// Builtin returns a copy of the built-in stopword list.
func Builtin() []string {
	out := make([]string, len(builtin))
	copy(out, builtin)
	return out
}

// Manager holds the active stopword set
type Manager struct {
	stops map[string]Origin
}

// NewManager creates a manager seeded with the given words as builtin entries.
func NewManager(initialStops []string) *Manager {
	m := &Manager{stops: make(map[string]Origin, len(initialStops))}
	for _, s := range initialStops {
		m.Add(s, OriginBuiltin)
	}
	return m
}

// Default returns a manager with the built-in list loaded.
func Default() *Manager {
	return NewManager(builtin)
}

// IsStop checks if a token is a stopword. Tokens are expected lowercase.
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist. An existing entry keeps its origin.
func (m *Manager) Add(token string, origin Origin) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return
	}
	if _, ok := m.stops[token]; ok {
		return
	}
	m.stops[token] = origin
}

// AddAll adds every token with the same origin.
func (m *Manager) AddAll(tokens []string, origin Origin) {
	for _, t := range tokens {
		m.Add(t, origin)
	}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// Origin reports where a stopword was registered from.
func (m *Manager) Origin(token string) (Origin, bool) {
	o, ok := m.stops[token]
	return o, ok
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords in ascending order
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}
