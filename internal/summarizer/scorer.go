package summarizer

import (
	"math"

	"github.com/localrivet/docsum/internal/annotation"
)

// DecayOffset shifts the logarithmic positional decay so that the
// factor for sentence i of n is log(n - i + DecayOffset): the last
// sentence gets log(1 + DecayOffset) > 0 and earlier sentences get
// monotonically larger factors. Raising it flattens the curve,
// lowering it sharpens the preference for early sentences.
const DecayOffset = 1.0

// decayFactor is the positional multiplier for sentence i of n.
// It is non-increasing in i and strictly positive for all i < n.
func decayFactor(i, n int) float64 {
	return math.Log(float64(n-i) + DecayOffset)
}

// scoreSentences assigns every sentence its contentfulness score and
// returns the scored copy in document order.
//
// Per sentence: the raw score sums the global weight of each
// contentful token and each entity mention inside the sentence span.
// A token that is part of an entity mention is counted by both terms;
// the double counting is deliberate, entities act as an extra signal
// on top of lemma frequency. The raw score is normalized by the
// sentence's full token count and multiplied by the positional decay.
// A sentence with no tokens scores zero outright.
func scoreSentences(doc *annotation.Document, weights WeightTable) []annotation.Sentence {
	n := len(doc.Sentences)
	scored := append([]annotation.Sentence(nil), doc.Sentences...)

	// Tokens and mentions are sorted by offset, so a single sweep
	// with two cursors visits each exactly once.
	ti, mi := 0, 0
	for i := range scored {
		s := &scored[i]

		var raw float64
		for ti < len(doc.Tokens) && doc.Tokens[ti].End <= s.End {
			t := doc.Tokens[ti]
			if t.Start >= s.Start && t.Contentful {
				raw += weights.Lemmas[t.Lemma]
			}
			ti++
		}
		for mi < len(doc.Mentions) && doc.Mentions[mi].End <= s.End {
			m := doc.Mentions[mi]
			if m.Start >= s.Start {
				raw += weights.Entities[m.Key]
			}
			mi++
		}

		if s.TokenLength == 0 {
			s.Score = 0
			continue
		}
		s.Score = raw / float64(s.TokenLength) * decayFactor(i, n)
	}

	return scored
}
