// Package annotation defines the annotated document model consumed by
// the docsum scoring core: sentence, token, and entity-mention spans
// expressed as character offsets over the document text.
package annotation

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedAnnotation indicates an annotation payload whose spans
// violate the document invariants (out-of-order or overlapping
// sentences, or a token/mention span not contained in any sentence).
// Scoring on such a payload would be silently wrong, so it is rejected
// outright rather than repaired.
var ErrMalformedAnnotation = errors.New("malformed annotation")

// Token is a single word occurrence. Contentful is false for
// stopwords, punctuation, and symbols; the classification is made by
// the annotation adapter, not here.
type Token struct {
	Start      int    `json:"startOffset"`
	End        int    `json:"endOffset"`
	Lemma      string `json:"lemma"`
	Contentful bool   `json:"contentful"`
}

// Mention is a named-entity occurrence. Mentions that refer to the
// same real-world entity share the same Key.
type Mention struct {
	Start int    `json:"startOffset"`
	End   int    `json:"endOffset"`
	Key   string `json:"key"`
}

// Sentence is one sentence span of the document. TokenLength counts
// every token inside the span, contentful or not; it is used only for
// length normalization. Score is written exactly once by the scorer.
type Sentence struct {
	Start       int     `json:"startOffset"`
	End         int     `json:"endOffset"`
	Text        string  `json:"text"`
	TokenLength int     `json:"tokenLength"`
	Score       float64 `json:"score"`
}

// Document is one annotated document. Sentences are in document order
// (ascending Start); Tokens and Mentions are sorted by Start during
// construction. Everything except Sentence.Score is immutable after
// NewDocument returns.
type Document struct {
	Text      string
	Sentences []Sentence
	Tokens    []Token
	Mentions  []Mention
}

// NewDocument assembles and validates a Document from raw annotation
// output. Sentence text and token lengths are derived here so that
// adapters only have to supply offsets.
func NewDocument(text string, sentences []Sentence, tokens []Token, mentions []Mention) (*Document, error) {
	doc := &Document{
		Text:      text,
		Sentences: append([]Sentence(nil), sentences...),
		Tokens:    append([]Token(nil), tokens...),
		Mentions:  append([]Mention(nil), mentions...),
	}

	sort.Slice(doc.Tokens, func(i, j int) bool {
		if doc.Tokens[i].Start != doc.Tokens[j].Start {
			return doc.Tokens[i].Start < doc.Tokens[j].Start
		}
		return doc.Tokens[i].End < doc.Tokens[j].End
	})
	sort.Slice(doc.Mentions, func(i, j int) bool {
		if doc.Mentions[i].Start != doc.Mentions[j].Start {
			return doc.Mentions[i].Start < doc.Mentions[j].Start
		}
		return doc.Mentions[i].End < doc.Mentions[j].End
	})

	if err := doc.validate(); err != nil {
		return nil, err
	}

	for i := range doc.Sentences {
		s := &doc.Sentences[i]
		if s.Text == "" {
			s.Text = text[s.Start:s.End]
		}
		s.TokenLength = 0
		for _, t := range doc.Tokens {
			if t.Start >= s.Start && t.End <= s.End {
				s.TokenLength++
			}
		}
	}

	return doc, nil
}

// validate checks the span invariants the scorer relies on.
func (d *Document) validate() error {
	prevEnd := 0
	for i, s := range d.Sentences {
		if s.Start < 0 || s.End > len(d.Text) || s.End <= s.Start {
			return fmt.Errorf("%w: sentence %d has span [%d,%d) outside text of length %d",
				ErrMalformedAnnotation, i, s.Start, s.End, len(d.Text))
		}
		if s.Start < prevEnd {
			return fmt.Errorf("%w: sentence %d at offset %d overlaps or precedes sentence %d ending at %d",
				ErrMalformedAnnotation, i, s.Start, i-1, prevEnd)
		}
		prevEnd = s.End
	}

	for _, t := range d.Tokens {
		if !d.contained(t.Start, t.End) {
			return fmt.Errorf("%w: token %q [%d,%d) not contained in any sentence",
				ErrMalformedAnnotation, t.Lemma, t.Start, t.End)
		}
	}
	for _, m := range d.Mentions {
		if !d.contained(m.Start, m.End) {
			return fmt.Errorf("%w: entity mention %q [%d,%d) not contained in any sentence",
				ErrMalformedAnnotation, m.Key, m.Start, m.End)
		}
	}
	return nil
}

// contained reports whether [start,end) lies entirely within one
// sentence span.
func (d *Document) contained(start, end int) bool {
	for _, s := range d.Sentences {
		if start >= s.Start && end <= s.End {
			return true
		}
	}
	return false
}
