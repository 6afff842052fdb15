package annotator

import (
	"encoding/json"
	"testing"
)

// sampleADM is a trimmed annotation service response for the text
// "Alice runs. Bob waits."
const sampleADM = `{
	"data": "Alice runs. Bob waits.",
	"attributes": {
		"sentence": {
			"items": [
				{"startOffset": 0, "endOffset": 12},
				{"startOffset": 12, "endOffset": 22}
			]
		},
		"token": {
			"items": [
				{"startOffset": 0, "endOffset": 5, "text": "Alice",
					"analyses": [{"lemma": "Alice", "partOfSpeech": "PROPN", "raw": "Alice/PROPN"}]},
				{"startOffset": 6, "endOffset": 10, "text": "runs",
					"analyses": [{"lemma": "run", "partOfSpeech": "VERB"}]},
				{"startOffset": 10, "endOffset": 11, "text": ".",
					"analyses": [{"lemma": ".", "partOfSpeech": "PUNCT"}]},
				{"startOffset": 12, "endOffset": 15, "text": "Bob",
					"analyses": [{"lemma": "Bob", "partOfSpeech": "PROPN", "raw": "Bob/PROPN"}]},
				{"startOffset": 16, "endOffset": 21, "text": "waits",
					"analyses": [{"lemma": "wait", "partOfSpeech": "VERB"}]},
				{"startOffset": 21, "endOffset": 22, "text": ".",
					"analyses": [{"lemma": ".", "partOfSpeech": "PUNCT"}]}
			]
		},
		"entities": {
			"items": [
				{"entityId": "Q1", "type": "PERSON", "mentions": [
					{"startOffset": 0, "endOffset": 5, "normalized": "Alice"}
				]},
				{"entityId": "", "type": "PERSON", "mentions": [
					{"startOffset": 12, "endOffset": 15, "normalized": "Bob"}
				]},
				{"entityId": "Q9", "type": "TEMPORAL:TIME", "mentions": [
					{"startOffset": 16, "endOffset": 21, "normalized": "waits"}
				]}
			]
		}
	}
}`

func decodeSampleADM(t *testing.T) *adm {
	t.Helper()
	var a adm
	if err := json.Unmarshal([]byte(sampleADM), &a); err != nil {
		t.Fatalf("Failed to decode sample ADM: %v", err)
	}
	return &a
}

func TestADMToDocument(t *testing.T) {
	doc, err := decodeSampleADM(t).toDocument()
	if err != nil {
		t.Fatalf("toDocument returned error: %v", err)
	}

	if len(doc.Sentences) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(doc.Sentences))
	}
	if doc.Sentences[0].Text != "Alice runs. " {
		t.Errorf("Unexpected first sentence text: %q", doc.Sentences[0].Text)
	}
	if doc.Sentences[0].TokenLength != 3 {
		t.Errorf("Expected token length 3 for first sentence, got %d", doc.Sentences[0].TokenLength)
	}
}

func TestADMContentfulPOSFilter(t *testing.T) {
	doc, err := decodeSampleADM(t).toDocument()
	if err != nil {
		t.Fatalf("toDocument returned error: %v", err)
	}

	contentful := map[string]bool{}
	for _, tok := range doc.Tokens {
		contentful[tok.Lemma] = tok.Contentful
	}

	if !contentful["Alice/PROPN"] {
		t.Error("Proper noun should be contentful")
	}
	if !contentful["run/VERB"] {
		t.Error("Verb should be contentful")
	}
	if contentful["./PUNCT"] {
		t.Error("Punctuation should not be contentful")
	}
}

func TestADMLemmaKey(t *testing.T) {
	testCases := []struct {
		name  string
		token admToken
		want  string
	}{
		{
			name: "Raw Morphotag Preferred",
			token: admToken{Analyses: []admAnalysis{
				{Lemma: "run", PartOfSpeech: "VERB", Raw: "run/VERB/pres"},
			}},
			want: "run/VERB/pres",
		},
		{
			name: "Lemma And POS Fallback",
			token: admToken{Analyses: []admAnalysis{
				{Lemma: "run", PartOfSpeech: "VERB"},
			}},
			want: "run/VERB",
		},
		{
			name:  "No Analyses",
			token: admToken{},
			want:  "/",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.token.lemmaKey(); got != tc.want {
				t.Errorf("Expected key %q, got %q", tc.want, got)
			}
		})
	}
}

func TestADMEntityFilterAndKeys(t *testing.T) {
	doc, err := decodeSampleADM(t).toDocument()
	if err != nil {
		t.Fatalf("toDocument returned error: %v", err)
	}

	// TEMPORAL:TIME is not a contentful entity type and is dropped
	if len(doc.Mentions) != 2 {
		t.Fatalf("Expected 2 mentions, got %d", len(doc.Mentions))
	}
	if doc.Mentions[0].Key != "Q1" {
		t.Errorf("Expected entity ID as key, got %q", doc.Mentions[0].Key)
	}
	// Missing entity ID falls back to the normalized form
	if doc.Mentions[1].Key != "Bob" {
		t.Errorf("Expected normalized fallback key 'Bob', got %q", doc.Mentions[1].Key)
	}
}

func TestADMInconsistentSpans(t *testing.T) {
	a := decodeSampleADM(t)
	a.Attributes.Token.Items[0].End = 500

	if _, err := a.toDocument(); err == nil {
		t.Error("Expected error for token span outside the text")
	}
}
