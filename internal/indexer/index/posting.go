package index

// Posting records how much of a document a term makes up.
type Posting struct {
	DocID    int
	TermFreq float64
}

type PostingList []Posting

// TermDocs maps document id to the term frequency of one term.
type TermDocs map[int]float64

type TermEntry struct {
	Term     string
	Postings PostingList
}
