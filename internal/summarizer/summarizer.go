// Package summarizer implements extractive summarization over an
// annotated document: every sentence receives a contentfulness score
// from document-wide lemma and entity frequencies, and the top-ranked
// subset under a size budget becomes the summary, reassembled in
// document order.
//
// The package is a pure function of its input: it performs no I/O and
// holds no state across calls.
package summarizer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/localrivet/docsum/internal/annotation"
)

// RankedSentence is one sentence of the ranked diagnostic output.
type RankedSentence struct {
	Start       int     `json:"startOffset"`
	End         int     `json:"endOffset"`
	Text        string  `json:"text"`
	Score       float64 `json:"score"`
	TokenLength int     `json:"tokenLength"`
}

// Result is the outcome of summarizing one document.
type Result struct {
	// Summary is the kept sentences' text in document order, each
	// trimmed of trailing line breaks and joined with a newline.
	Summary string `json:"summary"`

	// Ranked lists every sentence of the document in descending score
	// order (ties broken by document position) for verbose consumers.
	Ranked []RankedSentence `json:"ranked"`

	// Info describes how much of the document was kept, e.g.
	// "maintained 10 sentences (27% of original sentences)".
	Info string `json:"info"`
}

// Summarize scores the document's sentences, selects a subset under
// the budget, and assembles the summary. The budget is validated
// before any scoring happens. An empty document yields an empty
// summary and is not an error.
func Summarize(doc *annotation.Document, budget Budget) (*Result, error) {
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	n := len(doc.Sentences)
	if n == 0 {
		return &Result{
			Ranked: []RankedSentence{},
			Info:   formatInfo(0, 0),
		}, nil
	}

	weights := BuildWeights(doc)
	scored := scoreSentences(doc, weights)

	k, percent := budget.resolve(n)

	// Rank on a copy; the document order of scored stays canonical.
	ranked := make([]int, n)
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return scored[ranked[a]].Score > scored[ranked[b]].Score
	})

	// Keep the top k, then restore document order for assembly.
	kept := append([]int(nil), ranked[:k]...)
	sort.Ints(kept)

	lines := make([]string, 0, k)
	for _, i := range kept {
		lines = append(lines, strings.TrimRight(scored[i].Text, "\r\n"))
	}

	out := make([]RankedSentence, n)
	for pos, i := range ranked {
		s := scored[i]
		out[pos] = RankedSentence{
			Start:       s.Start,
			End:         s.End,
			Text:        s.Text,
			Score:       s.Score,
			TokenLength: s.TokenLength,
		}
	}

	return &Result{
		Summary: strings.Join(lines, "\n"),
		Ranked:  out,
		Info:    formatInfo(k, percent),
	}, nil
}

// formatInfo renders the kept-sentence count and percentage, with the
// percentage rounded to a whole number.
func formatInfo(k int, percent float64) string {
	return fmt.Sprintf("maintained %d sentences (%d%% of original sentences)",
		k, int(math.Round(percent*100)))
}
