package summarizer

import (
	"testing"

	"github.com/localrivet/docsum/internal/annotation"
)

func TestBuildWeightsCountsContentfulLemmas(t *testing.T) {
	text := "cats chase cats in the yard."
	doc, err := annotation.NewDocument(text,
		[]annotation.Sentence{{Start: 0, End: 28}},
		[]annotation.Token{
			{Start: 0, End: 4, Lemma: "cat", Contentful: true},
			{Start: 5, End: 10, Lemma: "chase", Contentful: true},
			{Start: 11, End: 15, Lemma: "cat", Contentful: true},
			{Start: 16, End: 18, Lemma: "in", Contentful: false},
			{Start: 19, End: 22, Lemma: "the", Contentful: false},
			{Start: 23, End: 27, Lemma: "yard", Contentful: true},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("NewDocument returned error: %v", err)
	}

	weights := BuildWeights(doc)

	if got := weights.Lemmas["cat"]; got != 2 {
		t.Errorf("Expected weight 2 for 'cat', got %v", got)
	}
	if got := weights.Lemmas["chase"]; got != 1 {
		t.Errorf("Expected weight 1 for 'chase', got %v", got)
	}
	if _, ok := weights.Lemmas["the"]; ok {
		t.Error("Stopword 'the' should not appear in the weight table")
	}
	if _, ok := weights.Lemmas["in"]; ok {
		t.Error("Stopword 'in' should not appear in the weight table")
	}
}

func TestBuildWeightsKeepsLemmaAndEntityCountsSeparate(t *testing.T) {
	// The lemma "president" and an entity keyed "president" must not
	// merge counts.
	text := "The president spoke."
	doc, err := annotation.NewDocument(text,
		[]annotation.Sentence{{Start: 0, End: 20}},
		[]annotation.Token{
			{Start: 4, End: 13, Lemma: "president", Contentful: true},
			{Start: 14, End: 19, Lemma: "speak", Contentful: true},
		},
		[]annotation.Mention{
			{Start: 4, End: 13, Key: "president"},
		},
	)
	if err != nil {
		t.Fatalf("NewDocument returned error: %v", err)
	}

	weights := BuildWeights(doc)

	if got := weights.Lemmas["president"]; got != 1 {
		t.Errorf("Expected lemma weight 1 for 'president', got %v", got)
	}
	if got := weights.Entities["president"]; got != 1 {
		t.Errorf("Expected entity weight 1 for 'president', got %v", got)
	}
}
