package summarizer

import (
	"github.com/localrivet/docsum/internal/annotation"
)

// WeightTable holds document-wide occurrence counts for content keys.
// Lemma and entity counts are kept in separate tables: a lemma that
// happens to equal an entity key (e.g. "president") must not merge
// counts across the two signals. Built once per document, read-only
// afterward, so a key's global frequency, not its local frequency,
// drives its contribution to every sentence.
type WeightTable struct {
	Lemmas   map[string]float64
	Entities map[string]float64
}

// BuildWeights counts every contentful lemma and every entity key in
// the document. Non-contentful tokens (stopwords, punctuation) get no
// entry. The counts are flat frequencies: no IDF, no case folding
// beyond what the annotator already applied to lemmas and keys.
func BuildWeights(doc *annotation.Document) WeightTable {
	weights := WeightTable{
		Lemmas:   make(map[string]float64),
		Entities: make(map[string]float64),
	}
	for _, t := range doc.Tokens {
		if t.Contentful {
			weights.Lemmas[t.Lemma]++
		}
	}
	for _, m := range doc.Mentions {
		weights.Entities[m.Key]++
	}
	return weights
}
