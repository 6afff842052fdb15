package summarizer

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBudget indicates a selection budget outside its valid
// range: a percent outside (0, 1] or a non-positive absolute count.
// It is returned before any scoring executes.
var ErrInvalidBudget = errors.New("invalid summary budget")

// DefaultPercent is the fraction of sentences kept when the caller
// supplies no budget, matching the tool's historical default.
const DefaultPercent = 0.15

// Budget determines how many sentences the summary keeps. Construct
// one with PercentBudget or TopNBudget; the zero value behaves like
// PercentBudget(DefaultPercent). Exactly one budget applies per call:
// an absolute count never falls back to a percentage.
type Budget struct {
	percent  float64
	topN     int
	absolute bool
}

// PercentBudget keeps a fraction p of the document's sentences,
// p in (0, 1]. The resolved count is rounded and never below one for
// a non-empty document.
func PercentBudget(p float64) Budget {
	return Budget{percent: p}
}

// TopNBudget keeps the n highest-scoring sentences (or all of them if
// the document has fewer than n).
func TopNBudget(n int) Budget {
	return Budget{topN: n, absolute: true}
}

// DefaultBudget is the budget used when the caller specifies nothing.
func DefaultBudget() Budget {
	return PercentBudget(DefaultPercent)
}

// BudgetFrom maps optional percent and top-n values onto a budget.
// An absolute count wins over a percentage; neither means the service
// default.
func BudgetFrom(percent float64, topN int) Budget {
	if topN != 0 {
		return TopNBudget(topN)
	}
	if percent != 0 {
		return PercentBudget(percent)
	}
	return DefaultBudget()
}

// String renders the budget for logging and cache keys.
func (b Budget) String() string {
	if b.absolute {
		return fmt.Sprintf("n=%d", b.topN)
	}
	p := b.percent
	if p == 0 {
		p = DefaultPercent
	}
	return fmt.Sprintf("p=%g", p)
}

// Validate rejects out-of-range budgets before any work is done.
func (b Budget) Validate() error {
	if b.absolute {
		if b.topN <= 0 {
			return fmt.Errorf("%w: top-n must be positive, got %d", ErrInvalidBudget, b.topN)
		}
		return nil
	}
	p := b.percent
	if p == 0 {
		return nil // zero value, resolves to DefaultPercent
	}
	if p <= 0 || p > 1 {
		return fmt.Errorf("%w: percent must be in (0, 1], got %v", ErrInvalidBudget, p)
	}
	return nil
}

// resolve converts the budget into a concrete sentence count for a
// document of n sentences, plus the effective fraction kept (used for
// the info line). Assumes Validate passed and n >= 1.
func (b Budget) resolve(n int) (k int, percent float64) {
	if b.absolute {
		k = b.topN
		if k > n {
			k = n
		}
		return k, float64(b.topN) / float64(n)
	}
	p := b.percent
	if p == 0 {
		p = DefaultPercent
	}
	k = int(math.Round(p * float64(n)))
	if k < 1 {
		k = 1
	}
	return k, p
}
