// Package retrieval ranks passages of acquired source text against a query
// using bag-of-words lexical overlap: no IDF, no stemming, no embeddings.
// An empty result is the designed signal to answer from the model's general
// knowledge, not an error.
package retrieval

import (
	"regexp"
	"sort"
	"strings"

	"edumuse/internal/acquire"
)

// DefaultTopK is the number of passages kept when none is configured.
const DefaultTopK = 3

var wordPattern = regexp.MustCompile(`\w+`)

// Ranker scores paragraphs by distinct-word overlap with the query.
type Ranker struct {
	topK int
}

// NewRanker creates a Ranker keeping at most topK passages; topK <= 0 means
// DefaultTopK.
func NewRanker(topK int) *Ranker {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Ranker{topK: topK}
}

// scoredPassage pairs a paragraph with its overlap score and original
// position for stable tie-breaking.
type scoredPassage struct {
	text  string
	score int
	index int
}

// Retrieve returns the top-K paragraphs of the acquisition by lexical
// overlap with the query, highest first, zero-overlap paragraphs dropped.
// Unusable content (absent, failed, or empty) yields an empty slice
// immediately.
func (r *Ranker) Retrieve(content *acquire.Acquisition, query string) []string {
	if !content.Usable() {
		return []string{}
	}

	queryWords := tokenize(query)
	if len(queryWords) == 0 {
		return []string{}
	}

	var scored []scoredPassage
	for i, para := range SplitParagraphs(content.Text) {
		overlap := overlapSize(tokenize(para), queryWords)
		if overlap > 0 {
			scored = append(scored, scoredPassage{text: para, score: overlap, index: i})
		}
	}

	// Stable sort: equal scores keep original document order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > r.topK {
		scored = scored[:r.topK]
	}

	passages := make([]string, len(scored))
	for i, sp := range scored {
		passages[i] = sp.text
	}
	return passages
}

// SplitParagraphs cuts text on blank-line boundaries and trims away empty
// chunks.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, chunk := range strings.Split(text, "\n\n") {
		if trimmed := strings.TrimSpace(chunk); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

// tokenize lowercases text and splits it into a set of words.
func tokenize(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		words[w] = true
	}
	return words
}

// overlapSize counts distinct words present in both sets.
func overlapSize(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}
