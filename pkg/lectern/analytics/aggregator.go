package analytics

// Document is one analysed input file.
type Document struct {
	Name    string
	TextLen int // extracted text length in characters
	Tokens  Bag
}

// TokenTotal returns the number of tokens in the document.
func (d Document) TokenTotal() int {
	return d.Tokens.Total()
}

// Aggregator sums document bags into a corpus-level bag.
type Aggregator struct {
	totalDocs int
	counts    Bag
	docFreq   map[string]int
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		counts:  make(Bag),
		docFreq: make(map[string]int),
	}
}

// Process consumes one document's bag.
func (a *Aggregator) Process(b Bag) {
	a.totalDocs++
	for tok, c := range b {
		if c <= 0 {
			continue
		}
		a.counts[tok] += c
		a.docFreq[tok]++
	}
}

// Stats exposes the aggregated counts.
type Stats struct {
	TotalDocs int
	Counts    Bag            // summed token counts
	DocFreq   map[string]int // number of documents containing each token
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Aggregator) Snapshot() Stats {
	copyDF := make(map[string]int, len(a.docFreq))
	for tok, df := range a.docFreq {
		copyDF[tok] = df
	}
	return Stats{
		TotalDocs: a.totalDocs,
		Counts:    a.counts.Clone(),
		DocFreq:   copyDF,
	}
}

// Aggregate merges the bags of docs.
func Aggregate(docs []Document) Bag {
	a := NewAggregator()
	for _, d := range docs {
		a.Process(d.Tokens)
	}
	return a.Snapshot().Counts
}
