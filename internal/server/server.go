// Package server provides the MCP server implementation for the docsum
// service.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/localrivet/gomcp/server"

	"github.com/localrivet/docsum/internal/annotator"
	"github.com/localrivet/docsum/internal/errortypes"
	"github.com/localrivet/docsum/internal/summarizer"
	"github.com/localrivet/docsum/internal/summarystore"
	"github.com/localrivet/docsum/internal/telemetry"
	"github.com/localrivet/docsum/internal/tools"
	"github.com/localrivet/docsum/internal/util"
	"github.com/localrivet/docsum/internal/vector"
)

// Common server error types
var (
	ErrServerNotInitialized = errors.New("server not initialized")
	ErrMissingDependencies  = errors.New("one or more required dependencies are nil")
)

// MCPSummaryToolServer implements the SummaryToolServer interface for
// handling MCP tool calls that summarize documents and manage the
// stored summaries.
type MCPSummaryToolServer struct {
	store         summarystore.SummaryStore
	annotator     annotator.Annotator
	embedder      vector.Embedder
	metrics       *telemetry.MetricsCollector
	defaultBudget summarizer.Budget
	mcpServer     server.Server
}

// NewSummaryToolServer creates a new MCPSummaryToolServer instance.
func NewSummaryToolServer(store summarystore.SummaryStore, ann annotator.Annotator, embedder vector.Embedder, metrics *telemetry.MetricsCollector) *MCPSummaryToolServer {
	if metrics == nil {
		metrics = telemetry.NewMetricsCollector()
	}
	return &MCPSummaryToolServer{
		store:     store,
		annotator: ann,
		embedder:  embedder,
		metrics:   metrics,
	}
}

// Initialize initializes the server with dependencies and configurations.
func (s *MCPSummaryToolServer) Initialize() error {
	slog.Info("Initializing MCP Summary Tool Server")

	if s.store == nil || s.annotator == nil || s.embedder == nil {
		return errortypes.ConfigError(ErrMissingDependencies, "server initialization failed")
	}

	// Create the MCP server
	srv := server.NewServer("docsum")

	// Register summarize_text tool
	srv = srv.Tool(tools.ToolSummarizeText, "Produce an extractive summary of a document",
		s.handleSummarizeText)

	// Register search_summaries tool
	srv = srv.Tool(tools.ToolSearchSummaries, "Find stored summaries related to a query",
		s.handleSearchSummaries)

	// Register delete_summary tool
	srv = srv.Tool(tools.ToolDeleteSummary, "Delete a stored summary by ID",
		s.handleDeleteSummary)

	// Register clear_summaries tool
	srv = srv.Tool(tools.ToolClearSummaries, "Clear all stored summaries",
		s.handleClearSummaries)

	s.mcpServer = srv
	slog.Info("MCP Summary Tool Server initialized successfully", "tool_count", 4)
	return nil
}

// Start starts the MCP server on the specified transport.
func (s *MCPSummaryToolServer) Start() error {
	if s.mcpServer == nil {
		return errortypes.ConfigError(ErrServerNotInitialized, "cannot start server")
	}

	slog.Info("Starting MCP Summary Tool Server")

	// Start the server using stdio transport
	stdioServer := s.mcpServer.AsStdio()
	return stdioServer.Run()
}

// Stop gracefully shuts down the MCP server.
func (s *MCPSummaryToolServer) Stop() error {
	slog.Info("Stopping MCP Summary Tool Server")
	// The server will exit when stdin is closed
	return nil
}

// SetDefaultBudget sets the budget applied to summarize_text requests
// that specify neither percent nor top_n. The zero value behaves like
// the built-in default.
func (s *MCPSummaryToolServer) SetDefaultBudget(b summarizer.Budget) {
	s.defaultBudget = b
}

// budgetFromRequest maps the optional request fields onto a budget.
// TopN wins over Percent; neither means the configured default.
func (s *MCPSummaryToolServer) budgetFromRequest(percent float64, topN int) summarizer.Budget {
	if topN == 0 && percent == 0 {
		return s.defaultBudget
	}
	return summarizer.BudgetFrom(percent, topN)
}

// handleSummarizeText handles the summarize_text MCP tool call.
func (s *MCPSummaryToolServer) handleSummarizeText(ctx *server.Context, req tools.SummarizeTextRequest) (tools.SummarizeTextResponse, error) {
	slog.Info("Processing summarize_text request", "text_length", len(req.Text))
	s.metrics.IncrementCounter(telemetry.MetricSummarizeRequests, 1)

	response := tools.SummarizeTextResponse{
		Status: "success",
	}

	budget := s.budgetFromRequest(req.Percent, req.TopN)
	if err := budget.Validate(); err != nil {
		err = errortypes.ValidationError(err, "invalid summarize_text budget").
			WithField("percent", req.Percent).
			WithField("top_n", req.TopN)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	// Reuse a stored summary for an identical (text, budget) pair.
	// Verbose requests recompute: the ranking is not persisted.
	sourceHash := util.SourceHash(req.Text, budget.String())
	if !req.Verbose {
		entry, err := s.store.Lookup(sourceHash)
		if err != nil {
			slog.Warn("Summary lookup failed, recomputing", "error", err)
		} else if entry != nil {
			s.metrics.IncrementCounter(telemetry.MetricStoreCacheHits, 1)
			slog.Info("Reusing stored summary", "id", entry.ID)
			response.ID = entry.ID
			response.Summary = entry.Summary
			response.Info = entry.Info
			return response, nil
		}
		s.metrics.IncrementCounter(telemetry.MetricStoreCacheMisses, 1)
	}

	// Annotate
	slog.Debug("Requesting annotation for summarize_text", "provider", s.annotator.Name())
	doc, err := s.annotator.Annotate(context.Background(), req.Text)
	if err != nil {
		err = errortypes.APIError(err, "failed to annotate text").
			WithField("text_length", len(req.Text))
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	// Score and select
	start := time.Now()
	result, err := summarizer.Summarize(doc, budget)
	if err != nil {
		err = errortypes.ValidationError(err, "failed to summarize document")
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}
	s.metrics.RecordTimer(telemetry.MetricSummarizeTime, time.Since(start))

	// Create embedding for the summary so it can be found later
	slog.Debug("Creating embedding for summarize_text")
	embedding, err := s.embedder.CreateEmbedding(result.Summary)
	if err != nil {
		err = errortypes.APIError(err, "failed to create embedding").
			WithField("summary_length", len(result.Summary))
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	embeddingBytes, err := vector.Float32SliceToBytes(embedding)
	if err != nil {
		err = errortypes.APIError(err, "failed to convert embedding to bytes").
			WithField("embedding_size", len(embedding))
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	// Store the summary
	timestamp := time.Now()
	id := util.GenerateHash(result.Summary, timestamp.UnixNano())

	slog.Debug("Storing summary for summarize_text", "id", id)
	err = s.store.Store(id, sourceHash, result.Summary, result.Info, embeddingBytes, timestamp)
	if err != nil {
		err = errortypes.DatabaseError(err, "failed to store summary").
			WithField("summary_id", id)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}
	s.metrics.IncrementCounter(telemetry.MetricStoreWrites, 1)

	response.ID = id
	response.Summary = result.Summary
	response.Info = result.Info
	if req.Verbose {
		response.Ranked = rankedToSchema(result.Ranked)
	}
	slog.Info("Successfully summarized text", "id", id, "info", result.Info)

	return response, nil
}

// handleSearchSummaries handles the search_summaries MCP tool call.
func (s *MCPSummaryToolServer) handleSearchSummaries(ctx *server.Context, req tools.SearchSummariesRequest) (tools.SearchSummariesResponse, error) {
	slog.Info("Processing search_summaries request", "query", req.Query, "limit", req.Limit)
	s.metrics.IncrementCounter(telemetry.MetricStoreSearches, 1)

	response := tools.SearchSummariesResponse{
		Status: "success",
	}

	// Set default limit if not specified
	limit := req.Limit
	if limit <= 0 {
		limit = tools.DefaultSearchLimit
		slog.Debug("Using default limit for search_summaries", "limit", limit)
	}

	// Create embedding for query
	slog.Debug("Creating embedding for query in search_summaries")
	queryEmbedding, err := s.embedder.CreateEmbedding(req.Query)
	if err != nil {
		err = errortypes.APIError(err, "failed to create embedding for query").
			WithField("query", req.Query)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	// Search summary store
	slog.Debug("Searching summary store for search_summaries")
	results, err := s.store.Search(queryEmbedding, limit)
	if err != nil {
		err = errortypes.DatabaseError(err, "failed to search summary store").
			WithField("limit", limit)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	response.Results = results
	slog.Info("Successfully retrieved summaries", "count", len(results))

	return response, nil
}

// handleDeleteSummary handles the delete_summary MCP tool call.
func (s *MCPSummaryToolServer) handleDeleteSummary(ctx *server.Context, req tools.DeleteSummaryRequest) (tools.DeleteSummaryResponse, error) {
	slog.Info("Processing delete_summary request", "id", req.ID)

	response := tools.DeleteSummaryResponse{
		Status: "success",
	}

	if req.ID == "" {
		err := errortypes.ValidationError(errors.New("id cannot be empty for delete_summary"), "invalid delete_summary request")
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	err := s.store.Delete(req.ID)
	if err != nil {
		err = errortypes.DatabaseError(err, "failed to delete summary").
			WithField("summary_id", req.ID)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	slog.Info("Successfully deleted summary", "id", req.ID)

	return response, nil
}

// handleClearSummaries handles the clear_summaries MCP tool call.
func (s *MCPSummaryToolServer) handleClearSummaries(ctx *server.Context, req tools.ClearSummariesRequest) (tools.ClearSummariesResponse, error) {
	slog.Info("Processing clear_summaries request")

	response := tools.ClearSummariesResponse{
		Status: "success",
	}

	// Check confirmation string
	if req.Confirmation != "confirm" {
		response.Status = "error"
		response.Error = "Confirmation required. Set confirmation to 'confirm' to proceed with clearing all summaries"
		slog.Warn("Clear summaries operation rejected: missing confirmation")
		return response, nil
	}

	count, err := s.store.Clear()
	if err != nil {
		err = errortypes.DatabaseError(err, "failed to clear summary store")
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	slog.Info("Successfully cleared summaries", "count", count)
	response.DeletedCount = count

	return response, nil
}

// rankedToSchema converts the scorer's ranking into the wire schema.
func rankedToSchema(ranked []summarizer.RankedSentence) []tools.RankedSentence {
	out := make([]tools.RankedSentence, len(ranked))
	for i, r := range ranked {
		out[i] = tools.RankedSentence{
			StartOffset: r.Start,
			EndOffset:   r.End,
			Text:        r.Text,
			Score:       r.Score,
			TokenLength: r.TokenLength,
		}
	}
	return out
}
