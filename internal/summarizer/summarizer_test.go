package summarizer

import (
	"errors"
	"testing"

	"github.com/localrivet/docsum/internal/annotation"
)

func TestSummarizeTopN(t *testing.T) {
	doc := threeSentenceDoc(t, nil)

	result, err := Summarize(doc, TopNBudget(2))
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	// Sentences 0 and 2 outscore sentence 1; the summary restores
	// document order.
	if result.Summary != "aa bb.\naa bb aa." {
		t.Errorf("Unexpected summary: %q", result.Summary)
	}
	if result.Info != "maintained 2 sentences (67% of original sentences)" {
		t.Errorf("Unexpected info line: %q", result.Info)
	}

	if len(result.Ranked) != 3 {
		t.Fatalf("Expected 3 ranked sentences, got %d", len(result.Ranked))
	}
	if result.Ranked[0].Text != "aa bb." || result.Ranked[1].Text != "aa bb aa." {
		t.Errorf("Unexpected ranking order: %q then %q", result.Ranked[0].Text, result.Ranked[1].Text)
	}
	for i := 1; i < len(result.Ranked); i++ {
		if result.Ranked[i].Score > result.Ranked[i-1].Score {
			t.Errorf("Ranked output not in descending score order at %d", i)
		}
	}
}

func TestSummarizePercent(t *testing.T) {
	doc := threeSentenceDoc(t, nil)

	result, err := Summarize(doc, PercentBudget(0.5))
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	// round(0.5 * 3) = 2 sentences kept
	if result.Info != "maintained 2 sentences (50% of original sentences)" {
		t.Errorf("Unexpected info line: %q", result.Info)
	}
}

func TestSummarizeKeepsAllWithFullPercent(t *testing.T) {
	doc := threeSentenceDoc(t, nil)

	result, err := Summarize(doc, PercentBudget(1.0))
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if result.Summary != "aa bb.\ncc.\naa bb aa." {
		t.Errorf("Expected all sentences in document order, got %q", result.Summary)
	}
	if result.Info != "maintained 3 sentences (100% of original sentences)" {
		t.Errorf("Unexpected info line: %q", result.Info)
	}
}

func TestSummarizeEntityMentionDoubleCount(t *testing.T) {
	// Tokens inside a mention span keep their lemma weight and gain
	// the entity weight on top.
	mentions := []annotation.Mention{
		{Start: 7, End: 9, Key: "E1"},
		{Start: 0, End: 2, Key: "E1"},
		{Start: 3, End: 5, Key: "E2"},
	}
	doc := threeSentenceDoc(t, mentions)
	plainDoc := threeSentenceDoc(t, nil)

	withEntities, err := Summarize(doc, TopNBudget(1))
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	plain, err := Summarize(plainDoc, TopNBudget(1))
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	// Both pick sentence 0, but the entity copy scores it higher.
	if withEntities.Ranked[0].Score <= plain.Ranked[0].Score {
		t.Errorf("Entity mentions should raise the top score: %v vs %v",
			withEntities.Ranked[0].Score, plain.Ranked[0].Score)
	}
}

func TestSummarizeTieBreakPrefersEarlierSentence(t *testing.T) {
	// No contentful tokens anywhere, so every sentence scores zero and
	// ties are broken by document position.
	text := "xx. yy. zz."
	doc, err := annotation.NewDocument(text,
		[]annotation.Sentence{
			{Start: 0, End: 3},
			{Start: 4, End: 7},
			{Start: 8, End: 11},
		},
		[]annotation.Token{
			{Start: 0, End: 2, Lemma: "xx", Contentful: false},
			{Start: 4, End: 6, Lemma: "yy", Contentful: false},
			{Start: 8, End: 10, Lemma: "zz", Contentful: false},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("NewDocument returned error: %v", err)
	}

	result, err := Summarize(doc, TopNBudget(2))
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if result.Summary != "xx.\nyy." {
		t.Errorf("Expected earliest sentences to win ties, got %q", result.Summary)
	}
}

func TestSummarizeTrimsTrailingLineBreaks(t *testing.T) {
	text := "aa bb.\ncc dd.\n"
	doc, err := annotation.NewDocument(text,
		[]annotation.Sentence{
			{Start: 0, End: 7, Text: "aa bb.\n"},
			{Start: 7, End: 14, Text: "cc dd.\n"},
		},
		[]annotation.Token{
			{Start: 0, End: 2, Lemma: "aa", Contentful: true},
			{Start: 3, End: 5, Lemma: "bb", Contentful: true},
			{Start: 7, End: 9, Lemma: "cc", Contentful: true},
			{Start: 10, End: 12, Lemma: "dd", Contentful: true},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("NewDocument returned error: %v", err)
	}

	result, err := Summarize(doc, PercentBudget(1.0))
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if result.Summary != "aa bb.\ncc dd." {
		t.Errorf("Expected trailing line breaks trimmed, got %q", result.Summary)
	}
}

func TestSummarizeEmptyDocument(t *testing.T) {
	doc, err := annotation.NewDocument("", nil, nil, nil)
	if err != nil {
		t.Fatalf("NewDocument returned error: %v", err)
	}

	result, err := Summarize(doc, DefaultBudget())
	if err != nil {
		t.Fatalf("Empty document should not be an error, got %v", err)
	}
	if result.Summary != "" {
		t.Errorf("Expected empty summary, got %q", result.Summary)
	}
	if len(result.Ranked) != 0 {
		t.Errorf("Expected empty ranking, got %d entries", len(result.Ranked))
	}
	if result.Info != "maintained 0 sentences (0% of original sentences)" {
		t.Errorf("Unexpected info line: %q", result.Info)
	}
}

func TestSummarizeInvalidBudget(t *testing.T) {
	doc := threeSentenceDoc(t, nil)

	for _, budget := range []Budget{TopNBudget(0), TopNBudget(-1), PercentBudget(2.0)} {
		_, err := Summarize(doc, budget)
		if err == nil {
			t.Fatalf("Expected error for budget %s, got nil", budget.String())
		}
		if !errors.Is(err, ErrInvalidBudget) {
			t.Errorf("Expected ErrInvalidBudget for budget %s, got %v", budget.String(), err)
		}
	}
}

func TestSummarizeTopNLargerThanDocument(t *testing.T) {
	doc := threeSentenceDoc(t, nil)

	result, err := Summarize(doc, TopNBudget(10))
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if result.Summary != "aa bb.\ncc.\naa bb aa." {
		t.Errorf("Expected all sentences kept, got %q", result.Summary)
	}
	// The requested fraction exceeds the document, and the info line
	// reports it as asked for: 10/3 rounds to 333%.
	if result.Info != "maintained 3 sentences (333% of original sentences)" {
		t.Errorf("Unexpected info line: %q", result.Info)
	}
}
