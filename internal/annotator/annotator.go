// Package annotator supplies the linguistic annotations the scoring
// core consumes: sentence boundaries, lemmatized tokens with a
// contentful flag, and named-entity mentions, all as character offset
// spans over the document text.
//
// Two implementations exist: Client calls an external ADM-style
// annotation service over HTTP, and Local is a deliberately naive
// in-process annotator for offline use and tests.
package annotator

import (
	"context"
	"time"

	"github.com/localrivet/docsum/internal/annotation"
)

const (
	// Provider constants
	ProviderHTTP  = "http"
	ProviderLocal = "local"

	// Default settings
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 2 * time.Second
)

// Annotator produces an annotated document from raw text. The
// returned document is validated; annotation failures surface here,
// before the scoring core ever runs.
type Annotator interface {
	// Annotate analyzes text and returns the annotated document.
	Annotate(ctx context.Context, text string) (*annotation.Document, error)

	// Name returns the annotator provider name.
	Name() string
}

// Config holds common configuration for annotation providers.
// Zero values for Timeout, MaxRetries, and RetryDelay fall back to
// the package defaults.
type Config struct {
	BaseURL    string
	APIKey     string
	Language   string // ISO 639-2 T override; empty means auto-detect
	Timeout    time.Duration
	MaxRetries int           // retries after the first attempt
	RetryDelay time.Duration // pause between attempts
}
