// Package docsum exposes the document summarization service as an
// embeddable library: annotation, extractive scoring, persistent
// summary storage, and the MCP tool surface.
package docsum

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/localrivet/docsum/internal/annotator"
	"github.com/localrivet/docsum/internal/config"
	"github.com/localrivet/docsum/internal/errortypes"
	"github.com/localrivet/docsum/internal/server"
	"github.com/localrivet/docsum/internal/summarizer"
	"github.com/localrivet/docsum/internal/summarystore"
	"github.com/localrivet/docsum/internal/util"
	"github.com/localrivet/docsum/internal/vector"
)

// Config represents the configuration for the docsum service.
type Config = config.Config

// Budget re-exports the summary selection budget so embedders can
// construct one without importing internal packages.
type Budget = summarizer.Budget

// Budget constructors re-exported from the summarizer package.
var (
	PercentBudget = summarizer.PercentBudget
	TopNBudget    = summarizer.TopNBudget
	DefaultBudget = summarizer.DefaultBudget
)

// Result is the outcome of summarizing one document.
type Result = summarizer.Result

// Server represents the docsum service.
type Server struct {
	config     *config.Config
	store      summarystore.SummaryStore
	annotator  annotator.Annotator
	embedder   vector.Embedder
	toolServer server.SummaryToolServer
	logger     *slog.Logger // Logger for this Server instance
}

// ServerOptions defines the options for creating a new Server.
type ServerOptions struct {
	Config     *Config      // Pre-filled config. If nil, ConfigPath is used.
	ConfigPath string       // Path to config file. Used if Config is nil. If both are empty, DefaultConfig() is used.
	Logger     *slog.Logger // External logger. If nil, slog.Default() is used.
}

// NewServer creates a new docsum Server with the given options.
// If opts.Config is provided, it will be used directly.
// Otherwise, if opts.ConfigPath is provided, configuration will be loaded from that path.
// If neither is provided, DefaultConfig() will be used.
// If opts.Logger is nil, slog.Default() will be used.
func NewServer(opts ServerOptions) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var cfg *Config
	var err error

	if opts.Config != nil {
		cfg = opts.Config
		logger.Info("Using provided Config object for server initialization")
	} else if opts.ConfigPath != "" {
		logger.Info("Loading configuration for server initialization", "path", opts.ConfigPath)
		cfg, err = config.LoadConfigWithPath(opts.ConfigPath)
		if err != nil {
			logger.Error("Failed to load configuration from path", "path", opts.ConfigPath, "error", err)
			return nil, errortypes.ConfigError(err, "Failed to load configuration from path: "+opts.ConfigPath)
		}
	} else {
		logger.Warn("No Config object or ConfigPath provided, using default configuration for server initialization")
		cfg = DefaultConfig()
	}

	store, ann, emb, err := CreateComponents(cfg, logger)
	if err != nil {
		// CreateComponents already logs the specific error
		logger.Error("Failed to create components during server initialization", "error", err)
		return nil, err
	}

	logger.Info("Initializing summary tool server component")
	mcpServer := server.NewSummaryToolServer(store, ann, emb, nil)
	mcpServer.SetDefaultBudget(summarizer.BudgetFrom(cfg.Summarizer.Percent, cfg.Summarizer.TopN))
	err = mcpServer.Initialize() // Note: mcpServer.Initialize still uses global slog internally
	if err != nil {
		logger.Error("Failed to initialize MCP summary tool server component", "error", err)
		return nil, errortypes.ConfigError(err, "Failed to initialize MCP summary tool server component")
	}

	logger.Info("docsum server successfully initialized")
	return &Server{
		config:     cfg,
		store:      store,
		annotator:  ann,
		embedder:   emb,
		toolServer: mcpServer,
		logger:     logger,
	}, nil
}

// DefaultConfig returns the default configuration for the docsum service.
func DefaultConfig() *Config {
	return config.NewConfig()
}

// SaveConfig renders the configuration as indented JSON.
func SaveConfig(config *Config, path string) ([]byte, error) {
	// Pretty-print the JSON for better readability
	content, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, errortypes.ConfigError(err, "failed to marshal configuration")
	}

	return content, nil
}

// loadConfig loads the configuration from the given path.
func loadConfig(configPath string) (*Config, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errortypes.ConfigError(err, "failed to read config file")
	}

	// Parse the config file
	config := &Config{}
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, errortypes.ConfigError(err, "failed to parse config file")
	}

	return config, nil
}

// Start starts the docsum service.
func (s *Server) Start() error {
	s.logger.Info("Starting docsum service")
	return s.toolServer.Start()
}

// Stop stops the docsum service.
func (s *Server) Stop() error {
	s.logger.Info("Stopping docsum service")
	err := s.toolServer.Stop()
	if err != nil {
		s.logger.Error("Error stopping tool server", "error", err)
		return err
	}

	// Close the store
	s.logger.Info("Closing store")
	err = s.store.Close()
	if err != nil {
		s.logger.Error("Failed to close store", "error", err)
		return err
	}

	s.logger.Info("docsum service stopped")
	return nil
}

// Summarize annotates the given text, produces an extractive summary
// under the budget, and persists the result. The stored summary's ID
// is returned alongside the result.
func (s *Server) Summarize(ctx context.Context, text string, budget Budget) (string, *Result, error) {
	if err := budget.Validate(); err != nil {
		s.logger.Error("Invalid summary budget", "budget", budget.String(), "error", err)
		return "", nil, err
	}

	// Annotate the document
	s.logger.Debug("Annotating text", "length", len(text), "provider", s.annotator.Name())
	doc, err := s.annotator.Annotate(ctx, text)
	if err != nil {
		s.logger.Error("Failed to annotate text", "error", err)
		return "", nil, err
	}

	// Score and select
	s.logger.Debug("Summarizing document", "sentences", len(doc.Sentences), "budget", budget.String())
	result, err := summarizer.Summarize(doc, budget)
	if err != nil {
		s.logger.Error("Failed to summarize document", "error", err)
		return "", nil, err
	}

	// Create embedding
	s.logger.Debug("Creating embedding for summary")
	embedding, err := s.embedder.CreateEmbedding(result.Summary)
	if err != nil {
		s.logger.Error("Failed to create embedding", "error", err)
		return "", nil, err
	}

	// Convert embedding to bytes
	embeddingBytes, err := vector.Float32SliceToBytes(embedding)
	if err != nil {
		s.logger.Error("Failed to convert embedding to bytes", "error", err)
		return "", nil, err
	}

	// Generate ID (simple hash of content + timestamp)
	timestamp := time.Now()
	id := GenerateHash(result.Summary, timestamp.UnixNano())

	// Store the summary
	s.logger.Debug("Storing summary", "id", id)
	sourceHash := util.SourceHash(text, budget.String())
	err = s.store.Store(id, sourceHash, result.Summary, result.Info, embeddingBytes, timestamp)
	if err != nil {
		s.logger.Error("Failed to store summary", "id", id, "error", err)
		return "", nil, err
	}

	s.logger.Info("Successfully saved summary", "id", id, "info", result.Info)
	return id, result, nil
}

// SearchSummaries retrieves stored summaries similar to the given query.
func (s *Server) SearchSummaries(query string, limit int) ([]string, error) {
	// Create embedding for query
	s.logger.Debug("Creating embedding for query", "query", query)
	queryEmbedding, err := s.embedder.CreateEmbedding(query)
	if err != nil {
		s.logger.Error("Failed to create embedding for query", "query", query, "error", err)
		return nil, err
	}

	// Search summary store
	s.logger.Debug("Searching for similar summaries", "limit", limit)
	results, err := s.store.Search(queryEmbedding, limit)
	if err != nil {
		s.logger.Error("Failed to search summary store", "limit", limit, "error", err)
		return nil, err
	}

	s.logger.Info("Retrieved summaries", "count", len(results))
	return results, nil
}

// GetStore returns the summary store instance used by the server.
func (s *Server) GetStore() summarystore.SummaryStore {
	return s.store
}

// GetAnnotator returns the annotator instance used by the server.
func (s *Server) GetAnnotator() annotator.Annotator {
	return s.annotator
}

// GetEmbedder returns the embedder instance used by the server.
func (s *Server) GetEmbedder() vector.Embedder {
	return s.embedder
}

// CreateComponents creates and initializes the components of the docsum
// service without creating a server instance. This is useful for
// components that need direct access to the store, annotator, and
// embedder.
func CreateComponents(cfg *Config, logger *slog.Logger) (summarystore.SummaryStore, annotator.Annotator, vector.Embedder, error) {
	if logger == nil {
		logger = slog.Default()
		logger.Debug("CreateComponents called with nil logger, defaulting to slog.Default()")
	}

	// Initialize SQLite summary store
	logger.Info("Initializing SQLite summary store", "path", cfg.Store.SQLitePath)
	store := summarystore.NewSQLiteSummaryStore()
	err := store.Initialize(cfg.Store.SQLitePath)
	if err != nil {
		logger.Error("Failed to initialize SQLite summary store", "path", cfg.Store.SQLitePath, "error", err)
		return nil, nil, nil, errortypes.DatabaseError(err, "Failed to initialize SQLite summary store")
	}

	// Initialize annotator
	logger.Info("Initializing annotator", "provider", cfg.Annotator.Provider)
	var ann annotator.Annotator
	switch cfg.Annotator.Provider {
	case annotator.ProviderHTTP:
		timeout := time.Duration(cfg.Annotator.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = annotator.DefaultTimeout
		}
		ann = annotator.NewClient(annotator.Config{
			BaseURL:  cfg.Annotator.BaseURL,
			APIKey:   cfg.Annotator.ApiKey,
			Language: cfg.Annotator.Language,
			Timeout:  timeout,
		}, nil)
	case annotator.ProviderLocal, "":
		ann = annotator.NewLocal()
	default:
		logger.Warn("Unknown annotator provider, using local annotator", "provider", cfg.Annotator.Provider)
		ann = annotator.NewLocal()
	}

	// Initialize embedder
	logger.Info("Initializing embedder", "dimensions", cfg.Embedder.Dimensions)
	dimensions := cfg.Embedder.Dimensions
	if dimensions <= 0 {
		dimensions = vector.DefaultEmbeddingDimensions
	}

	emb := vector.NewHashEmbedder(dimensions)
	if err := emb.Initialize(); err != nil {
		logger.Error("Failed to initialize embedder", "error", err)
		return nil, nil, nil, errortypes.ConfigError(err, "Failed to initialize embedder")
	}

	logger.Info("Components successfully initialized")
	return store, ann, emb, nil
}

// GenerateHash creates a hash from the summary and a timestamp.
// This is a convenience wrapper around the internal util.GenerateHash function.
func GenerateHash(summary string, timestamp int64) string {
	return util.GenerateHash(summary, timestamp)
}
