package annotation

import (
	"errors"
	"testing"
)

func TestNewDocumentDerivesSentenceFields(t *testing.T) {
	text := "Go is fun. Really fun."

	doc, err := NewDocument(text,
		[]Sentence{
			{Start: 0, End: 10},
			{Start: 11, End: 22},
		},
		[]Token{
			{Start: 0, End: 2, Lemma: "go", Contentful: true},
			{Start: 3, End: 5, Lemma: "be", Contentful: false},
			{Start: 6, End: 9, Lemma: "fun", Contentful: true},
			{Start: 11, End: 17, Lemma: "really", Contentful: true},
			{Start: 18, End: 21, Lemma: "fun", Contentful: true},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("NewDocument returned error: %v", err)
	}

	if doc.Sentences[0].Text != "Go is fun." {
		t.Errorf("Expected first sentence text %q, got %q", "Go is fun.", doc.Sentences[0].Text)
	}
	if doc.Sentences[1].Text != "Really fun." {
		t.Errorf("Expected second sentence text %q, got %q", "Really fun.", doc.Sentences[1].Text)
	}
	if doc.Sentences[0].TokenLength != 3 {
		t.Errorf("Expected first sentence token length 3, got %d", doc.Sentences[0].TokenLength)
	}
	if doc.Sentences[1].TokenLength != 2 {
		t.Errorf("Expected second sentence token length 2, got %d", doc.Sentences[1].TokenLength)
	}
}

func TestNewDocumentSortsSpans(t *testing.T) {
	text := "aa bb."

	doc, err := NewDocument(text,
		[]Sentence{{Start: 0, End: 6}},
		[]Token{
			{Start: 3, End: 5, Lemma: "bb", Contentful: true},
			{Start: 0, End: 2, Lemma: "aa", Contentful: true},
		},
		[]Mention{
			{Start: 3, End: 5, Key: "B"},
			{Start: 0, End: 2, Key: "A"},
		},
	)
	if err != nil {
		t.Fatalf("NewDocument returned error: %v", err)
	}

	if doc.Tokens[0].Lemma != "aa" || doc.Tokens[1].Lemma != "bb" {
		t.Errorf("Tokens not sorted by offset: %+v", doc.Tokens)
	}
	if doc.Mentions[0].Key != "A" || doc.Mentions[1].Key != "B" {
		t.Errorf("Mentions not sorted by offset: %+v", doc.Mentions)
	}
}

func TestNewDocumentMalformed(t *testing.T) {
	text := "One sentence. Two sentence."

	testCases := []struct {
		name      string
		sentences []Sentence
		tokens    []Token
		mentions  []Mention
	}{
		{
			name:      "Sentence Past End Of Text",
			sentences: []Sentence{{Start: 0, End: 100}},
		},
		{
			name:      "Negative Sentence Start",
			sentences: []Sentence{{Start: -1, End: 13}},
		},
		{
			name:      "Empty Sentence Span",
			sentences: []Sentence{{Start: 5, End: 5}},
		},
		{
			name: "Overlapping Sentences",
			sentences: []Sentence{
				{Start: 0, End: 13},
				{Start: 10, End: 27},
			},
		},
		{
			name: "Sentences Out Of Order",
			sentences: []Sentence{
				{Start: 14, End: 27},
				{Start: 0, End: 13},
			},
		},
		{
			name:      "Token Outside Any Sentence",
			sentences: []Sentence{{Start: 0, End: 13}},
			tokens:    []Token{{Start: 14, End: 17, Lemma: "two"}},
		},
		{
			name:      "Token Straddling Sentences",
			sentences: []Sentence{{Start: 0, End: 13}, {Start: 14, End: 27}},
			tokens:    []Token{{Start: 10, End: 17, Lemma: "x"}},
		},
		{
			name:      "Mention Outside Any Sentence",
			sentences: []Sentence{{Start: 0, End: 13}},
			mentions:  []Mention{{Start: 14, End: 17, Key: "E1"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDocument(text, tc.sentences, tc.tokens, tc.mentions)
			if err == nil {
				t.Fatal("Expected error for malformed annotation, got nil")
			}
			if !errors.Is(err, ErrMalformedAnnotation) {
				t.Errorf("Expected ErrMalformedAnnotation, got %v", err)
			}
		})
	}
}

func TestNewDocumentEmptyText(t *testing.T) {
	doc, err := NewDocument("", nil, nil, nil)
	if err != nil {
		t.Fatalf("NewDocument returned error for empty text: %v", err)
	}
	if len(doc.Sentences) != 0 {
		t.Errorf("Expected no sentences, got %d", len(doc.Sentences))
	}
}
