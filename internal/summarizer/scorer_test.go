package summarizer

import (
	"math"
	"testing"

	"github.com/localrivet/docsum/internal/annotation"
)

const scoreTolerance = 1e-9

// threeSentenceDoc builds "aa bb. cc. aa bb aa." with every token
// contentful. Lemma frequencies: aa=3, bb=2, cc=1.
func threeSentenceDoc(t *testing.T, mentions []annotation.Mention) *annotation.Document {
	t.Helper()
	text := "aa bb. cc. aa bb aa."
	doc, err := annotation.NewDocument(text,
		[]annotation.Sentence{
			{Start: 0, End: 6},
			{Start: 7, End: 10},
			{Start: 11, End: 20},
		},
		[]annotation.Token{
			{Start: 0, End: 2, Lemma: "aa", Contentful: true},
			{Start: 3, End: 5, Lemma: "bb", Contentful: true},
			{Start: 7, End: 9, Lemma: "cc", Contentful: true},
			{Start: 11, End: 13, Lemma: "aa", Contentful: true},
			{Start: 14, End: 16, Lemma: "bb", Contentful: true},
			{Start: 17, End: 19, Lemma: "aa", Contentful: true},
		},
		mentions,
	)
	if err != nil {
		t.Fatalf("NewDocument returned error: %v", err)
	}
	return doc
}

func TestDecayFactor(t *testing.T) {
	n := 10
	for i := 1; i < n; i++ {
		if decayFactor(i, n) >= decayFactor(i-1, n) {
			t.Errorf("Decay factor should decrease with position: f(%d)=%v, f(%d)=%v",
				i-1, decayFactor(i-1, n), i, decayFactor(i, n))
		}
	}
	if last := decayFactor(n-1, n); last <= 0 {
		t.Errorf("Decay factor for the last sentence should stay positive, got %v", last)
	}
}

func TestScoreSentences(t *testing.T) {
	doc := threeSentenceDoc(t, nil)
	weights := BuildWeights(doc)
	scored := scoreSentences(doc, weights)

	// raw/len * log(n-i+1): (3+2)/2*log(4), 1/1*log(3), (3+2+3)/3*log(2)
	expected := []float64{
		5.0 / 2.0 * math.Log(4),
		1.0 * math.Log(3),
		8.0 / 3.0 * math.Log(2),
	}

	for i, want := range expected {
		if math.Abs(scored[i].Score-want) > scoreTolerance {
			t.Errorf("Sentence %d: expected score %v, got %v", i, want, scored[i].Score)
		}
	}
}

func TestScoreSentencesEntityMentionsAddWeight(t *testing.T) {
	// Mentions of the same entity in sentences 0 and 2; key frequency 2.
	mentions := []annotation.Mention{
		{Start: 0, End: 5, Key: "E1"},
		{Start: 11, End: 16, Key: "E1"},
	}

	plain := scoreSentences(threeSentenceDoc(t, nil), BuildWeights(threeSentenceDoc(t, nil)))
	doc := threeSentenceDoc(t, mentions)
	scored := scoreSentences(doc, BuildWeights(doc))

	// Tokens inside a mention span still count as lemmas; the mention
	// weight is added on top.
	want0 := (5.0 + 2.0) / 2.0 * math.Log(4)
	if math.Abs(scored[0].Score-want0) > scoreTolerance {
		t.Errorf("Sentence 0: expected score %v, got %v", want0, scored[0].Score)
	}
	if scored[0].Score <= plain[0].Score {
		t.Error("Entity mention should raise the sentence score")
	}
	if math.Abs(scored[1].Score-plain[1].Score) > scoreTolerance {
		t.Error("Sentence without mentions should score the same as without entities")
	}
}

func TestScoreSentencesZeroTokens(t *testing.T) {
	// The middle sentence contains no tokens at all.
	text := "aa bb. !!! cc."
	doc, err := annotation.NewDocument(text,
		[]annotation.Sentence{
			{Start: 0, End: 6},
			{Start: 7, End: 10},
			{Start: 11, End: 14},
		},
		[]annotation.Token{
			{Start: 0, End: 2, Lemma: "aa", Contentful: true},
			{Start: 3, End: 5, Lemma: "bb", Contentful: true},
			{Start: 11, End: 13, Lemma: "cc", Contentful: true},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("NewDocument returned error: %v", err)
	}

	scored := scoreSentences(doc, BuildWeights(doc))
	if scored[1].Score != 0 {
		t.Errorf("Sentence with zero tokens should score 0, got %v", scored[1].Score)
	}
	if scored[0].Score <= 0 || scored[2].Score <= 0 {
		t.Error("Sentences with contentful tokens should score above zero")
	}
}

func TestScoreSentencesDeterministic(t *testing.T) {
	doc := threeSentenceDoc(t, nil)
	weights := BuildWeights(doc)

	first := scoreSentences(doc, weights)
	second := scoreSentences(doc, weights)

	for i := range first {
		if first[i].Score != second[i].Score {
			t.Errorf("Sentence %d scored differently across runs: %v vs %v",
				i, first[i].Score, second[i].Score)
		}
	}
}

func TestScoreSentencesSingleSentence(t *testing.T) {
	text := "aa bb."
	doc, err := annotation.NewDocument(text,
		[]annotation.Sentence{{Start: 0, End: 6}},
		[]annotation.Token{
			{Start: 0, End: 2, Lemma: "aa", Contentful: true},
			{Start: 3, End: 5, Lemma: "bb", Contentful: true},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("NewDocument returned error: %v", err)
	}

	scored := scoreSentences(doc, BuildWeights(doc))
	want := (1.0 + 1.0) / 2.0 * math.Log(2)
	if math.Abs(scored[0].Score-want) > scoreTolerance {
		t.Errorf("Expected score %v for single sentence, got %v", want, scored[0].Score)
	}
}
