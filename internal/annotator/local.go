package annotator

import (
	"context"
	"regexp"
	"strings"

	"github.com/localrivet/docsum/internal/annotation"
)

var (
	// A sentence runs to the next terminator (inclusive) or to the
	// end of the text.
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+|[^.!?]+$`)

	// Words or numbers, with internal apostrophes preserved.
	tokenPattern = regexp.MustCompile(`[\pL\pN]+(?:['’][\pL\pN]+)*`)
)

// Local is a deliberately naive in-process Annotator: regex word
// tokenization, terminator-based sentence splitting, lowercase tokens
// as lemmas, a stopword list as the contentful signal, and no entity
// recognition. It exists so the CLI works offline and tests need no
// network; it is not a substitute for a real linguistic analysis
// service.
type Local struct {
	stopwords map[string]struct{}
}

// NewLocal creates a Local annotator with the default stopword list.
func NewLocal() *Local {
	return &Local{stopwords: defaultStopwords()}
}

// Name returns the annotator provider name.
func (l *Local) Name() string {
	return ProviderLocal
}

// Annotate splits text into sentence and token spans. Tokens are
// found per sentence so every token span is contained in its
// sentence's span by construction.
func (l *Local) Annotate(_ context.Context, text string) (*annotation.Document, error) {
	var sentences []annotation.Sentence
	var tokens []annotation.Token

	for _, loc := range sentencePattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]

		// Trim surrounding whitespace out of the span; gaps between
		// sentences are fine, empty spans are not sentences.
		for start < end && isSpace(text[start]) {
			start++
		}
		for end > start && isSpace(text[end-1]) {
			end--
		}
		if start == end {
			continue
		}
		sentences = append(sentences, annotation.Sentence{Start: start, End: end})

		for _, tl := range tokenPattern.FindAllStringIndex(text[start:end], -1) {
			word := text[start+tl[0] : start+tl[1]]
			lemma := strings.ToLower(word)
			_, stop := l.stopwords[lemma]
			tokens = append(tokens, annotation.Token{
				Start:      start + tl[0],
				End:        start + tl[1],
				Lemma:      lemma,
				Contentful: !stop,
			})
		}
	}

	return annotation.NewDocument(text, sentences, tokens, nil)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else",
		"for", "to", "of", "in", "on", "at", "by", "with", "as",
		"is", "are", "was", "were", "be", "been", "being",
		"it", "its", "this", "that", "these", "those", "from",
		"up", "down", "over", "under", "again", "further", "than",
		"so", "such", "into", "about", "between", "through",
		"during", "before", "after", "above", "below", "out", "off",
		"own", "same", "too", "very", "can", "will", "just",
		"he", "she", "they", "we", "you", "i", "his", "her",
		"their", "our", "your", "not", "no", "nor", "do", "does",
		"did", "have", "has", "had", "what", "which", "who", "whom",
		"there", "here", "when", "where", "why", "how", "all", "any",
		"both", "each", "few", "more", "most", "other", "some",
		"should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
