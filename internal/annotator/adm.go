package annotator

import (
	"fmt"

	"github.com/localrivet/docsum/internal/annotation"
)

// contentfulPOSTags are the universal part-of-speech tags whose tokens
// carry content worth counting. Everything else (determiners,
// adpositions, punctuation, ...) is length-normalization ballast only.
var contentfulPOSTags = map[string]bool{
	"ADJ":   true,
	"ADV":   true,
	"NOUN":  true,
	"PROPN": true,
	"VERB":  true,
}

// contentfulEntityTypes are the entity types whose mentions contribute
// to sentence scores.
var contentfulEntityTypes = map[string]bool{
	"IDENTIFIER:DISTANCE":           true,
	"IDENTIFIER:LATITUDE_LONGITUDE": true,
	"IDENTIFIER:MONEY":              true,
	"LOCATION":                      true,
	"NATIONALITY":                   true,
	"ORGANIZATION":                  true,
	"PERSON":                        true,
	"PRODUCT":                       true,
	"RELIGION":                      true,
	"TEMPORAL:DATE":                 true,
	"TITLE":                         true,
}

// adm mirrors the wire shape of an annotated data model response:
// the document text under data, and per-attribute item lists of
// offset-bearing records.
type adm struct {
	Data       string `json:"data"`
	Attributes struct {
		Sentence struct {
			Items []admSpan `json:"items"`
		} `json:"sentence"`
		Token struct {
			Items []admToken `json:"items"`
		} `json:"token"`
		Entities struct {
			Items []admEntity `json:"items"`
		} `json:"entities"`
	} `json:"attributes"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

type admSpan struct {
	Start int `json:"startOffset"`
	End   int `json:"endOffset"`
}

type admToken struct {
	Start    int           `json:"startOffset"`
	End      int           `json:"endOffset"`
	Text     string        `json:"text"`
	Analyses []admAnalysis `json:"analyses"`
}

type admAnalysis struct {
	Lemma        string `json:"lemma"`
	PartOfSpeech string `json:"partOfSpeech"`
	Raw          string `json:"raw"`
}

type admEntity struct {
	EntityID string `json:"entityId"`
	Type     string `json:"type"`
	Mentions []struct {
		Start      int    `json:"startOffset"`
		End        int    `json:"endOffset"`
		Normalized string `json:"normalized"`
	} `json:"mentions"`
}

// analysis returns a token's first analysis, the annotator's best
// guess, or a zero value when none was produced.
func (t admToken) analysis() admAnalysis {
	if len(t.Analyses) == 0 {
		return admAnalysis{}
	}
	return t.Analyses[0]
}

// lemmaKey identifies a token in the frequency table: the raw
// morphotagged analysis when available, otherwise lemma plus
// part-of-speech so that homographs with different readings stay
// distinct.
func (t admToken) lemmaKey() string {
	a := t.analysis()
	if a.Raw != "" {
		return a.Raw
	}
	return a.Lemma + "/" + a.PartOfSpeech
}

// toDocument converts a decoded ADM into the validated document model,
// applying the contentful POS and entity-type filters.
func (a *adm) toDocument() (*annotation.Document, error) {
	sentences := make([]annotation.Sentence, 0, len(a.Attributes.Sentence.Items))
	for _, s := range a.Attributes.Sentence.Items {
		sentences = append(sentences, annotation.Sentence{Start: s.Start, End: s.End})
	}

	tokens := make([]annotation.Token, 0, len(a.Attributes.Token.Items))
	for _, t := range a.Attributes.Token.Items {
		tokens = append(tokens, annotation.Token{
			Start:      t.Start,
			End:        t.End,
			Lemma:      t.lemmaKey(),
			Contentful: contentfulPOSTags[t.analysis().PartOfSpeech],
		})
	}

	var mentions []annotation.Mention
	for _, e := range a.Attributes.Entities.Items {
		if !contentfulEntityTypes[e.Type] {
			continue
		}
		for _, m := range e.Mentions {
			key := e.EntityID
			if key == "" {
				key = m.Normalized
			}
			mentions = append(mentions, annotation.Mention{Start: m.Start, End: m.End, Key: key})
		}
	}

	doc, err := annotation.NewDocument(a.Data, sentences, tokens, mentions)
	if err != nil {
		return nil, fmt.Errorf("annotation service returned inconsistent spans: %w", err)
	}
	return doc, nil
}
