package annotator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/localrivet/docsum/internal/annotation"
	"github.com/localrivet/docsum/internal/telemetry"
)

// annotateRequest is the request body sent to the annotation service.
type annotateRequest struct {
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

// Client is an Annotator backed by an external ADM annotation service.
// It requests combined sentence, token (with lemmas), and entity
// annotations in one call and converts the response into the
// validated document model.
type Client struct {
	Config
	httpClient *http.Client
	metrics    *telemetry.MetricsCollector
}

// NewClient creates a Client for the service at cfg.BaseURL.
func NewClient(cfg Config, metrics *telemetry.MetricsCollector) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if metrics == nil {
		metrics = telemetry.NewMetricsCollector()
	}
	return &Client{
		Config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		metrics:    metrics,
	}
}

// Name returns the annotator provider name.
func (c *Client) Name() string {
	return ProviderHTTP
}

// Annotate sends the text to the annotation service and decodes the
// resulting ADM. Transport errors and 5xx responses are retried up to
// MaxRetries times with RetryDelay between attempts; client errors and
// malformed payloads fail immediately. No partial document is ever
// produced.
func (c *Client) Annotate(ctx context.Context, text string) (*annotation.Document, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("annotation service URL not configured")
	}

	reqJSON, err := json.Marshal(annotateRequest{Content: text, Language: c.Language})
	if err != nil {
		return nil, fmt.Errorf("error marshaling annotation request: %v", err)
	}

	start := time.Now()
	c.metrics.IncrementCounter(telemetry.MetricAnnotatorCalls, 1)

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				c.metrics.IncrementCounter(telemetry.MetricAnnotatorFailure, 1)
				return nil, ctx.Err()
			case <-time.After(c.RetryDelay):
			}
		}

		doc, retryable, err := c.annotateOnce(ctx, reqJSON)
		if err == nil {
			c.metrics.IncrementCounter(telemetry.MetricAnnotatorSuccess, 1)
			c.metrics.RecordTimer(telemetry.MetricAnnotatorResponseTime, time.Since(start))
			return doc, nil
		}

		lastErr = err
		if !retryable {
			break
		}
	}

	c.metrics.IncrementCounter(telemetry.MetricAnnotatorFailure, 1)
	return nil, lastErr
}

// annotateOnce performs a single request against the annotation
// service. The retryable result distinguishes transient failures
// (transport errors, 5xx responses) from permanent ones.
func (c *Client) annotateOnce(ctx context.Context, reqJSON []byte) (*annotation.Document, bool, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.BaseURL+"/annotate?output=adm",
		bytes.NewReader(reqJSON),
	)
	if err != nil {
		return nil, false, fmt.Errorf("error creating annotation request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("error sending request to annotation service: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("error reading annotation response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= http.StatusInternalServerError
		var result adm
		if json.Unmarshal(respBody, &result) == nil && result.Message != "" {
			return nil, retryable, fmt.Errorf("annotation service error: %s: %s", result.Code, result.Message)
		}
		return nil, retryable, fmt.Errorf("annotation service returned status %d", resp.StatusCode)
	}

	var result adm
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, false, fmt.Errorf("error unmarshaling annotation response: %v", err)
	}

	doc, err := result.toDocument()
	if err != nil {
		return nil, false, err
	}
	return doc, false, nil
}
