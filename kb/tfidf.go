package kb

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Tokens of two or more letters/digits, matching the usual TF-IDF
// vectorizer default so single-character particles are dropped.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Hit is one ranked retrieval result.
type Hit struct {
	Doc   Document
	Score float64
}

// Index is a TF-IDF vector index over a fixed document set. It is fit once
// in NewIndex and immutable afterwards; corpus changes require a new Index.
type Index struct {
	docs  []Document
	vocab map[string]int
	idf   []float64
	vecs  [][]float64 // l2-normalised document vectors
}

// NewIndex fits a TF-IDF representation over docs. An empty document set is
// allowed and yields an index that retrieves nothing.
func NewIndex(docs []Document) *Index {
	ix := &Index{
		docs:  docs,
		vocab: make(map[string]int),
	}
	if len(docs) == 0 {
		return ix
	}

	counts := make([]map[int]float64, len(docs))
	for i, d := range docs {
		tf := make(map[int]float64)
		for _, tok := range tokenize(d.Text) {
			id, ok := ix.vocab[tok]
			if !ok {
				id = len(ix.vocab)
				ix.vocab[tok] = id
			}
			tf[id]++
		}
		counts[i] = tf
	}

	// Smoothed inverse document frequency: ln((1+n)/(1+df)) + 1.
	df := make([]int, len(ix.vocab))
	for _, tf := range counts {
		for id := range tf {
			df[id]++
		}
	}
	n := float64(len(docs))
	ix.idf = make([]float64, len(ix.vocab))
	for id, d := range df {
		ix.idf[id] = math.Log((1+n)/(1+float64(d))) + 1
	}

	ix.vecs = make([][]float64, len(docs))
	for i, tf := range counts {
		vec := make([]float64, len(ix.vocab))
		for id, c := range tf {
			vec[id] = c * ix.idf[id]
		}
		normalize(vec)
		ix.vecs[i] = vec
	}
	return ix
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int { return len(ix.docs) }

// Retrieve returns the k most cosine-similar documents to query, in
// descending score order. Ties keep original document order (stable sort),
// so repeated calls with an unchanged corpus return identical rankings.
// Query terms outside the fitted vocabulary are ignored. An empty corpus
// returns nil.
func (ix *Index) Retrieve(query string, k int) []Hit {
	if len(ix.docs) == 0 || k <= 0 {
		return nil
	}

	qvec := make([]float64, len(ix.vocab))
	for _, tok := range tokenize(query) {
		if id, ok := ix.vocab[tok]; ok {
			qvec[id]++
		}
	}
	for id := range qvec {
		qvec[id] *= ix.idf[id]
	}
	normalize(qvec)

	hits := make([]Hit, len(ix.docs))
	for i, vec := range ix.vecs {
		hits[i] = Hit{Doc: ix.docs[i], Score: dot(qvec, vec)}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Score > hits[b].Score })

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k]
}

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
