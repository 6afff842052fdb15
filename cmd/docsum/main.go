package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/localrivet/docsum/internal/annotator"
	"github.com/localrivet/docsum/internal/config"
	"github.com/localrivet/docsum/internal/logger"
	"github.com/localrivet/docsum/internal/server"
	"github.com/localrivet/docsum/internal/summarizer"
	"github.com/localrivet/docsum/internal/summarystore"
	"github.com/localrivet/docsum/internal/vector"
)

func main() {
	// Load environment variables from .env if present
	_ = godotenv.Load()

	inputPath := flag.String("i", "", "input file to summarize (default stdin)")
	percent := flag.Float64("p", 0, "fraction of sentences to keep, in (0, 1]")
	topN := flag.Int("n", 0, "absolute number of sentences to keep (overrides -p)")
	language := flag.String("l", "", "ISO 639 language code for annotation")
	verbose := flag.Bool("v", false, "print the full ranked output as JSON")
	configPath := flag.String("c", config.DefaultConfigFilename, "path to configuration file")
	serve := flag.Bool("serve", false, "run as an MCP server on stdio")
	flag.Parse()

	// Initialize logging first thing
	appLogger := setupLogging()

	// Load configuration
	cfg, err := config.LoadConfigWithPath(*configPath)
	if err != nil {
		logger.LogError(err)
		appLogger.Fatal("Failed to load configuration")
	}

	// Configure logging based on config
	if cfg.Logging.Level != "" {
		appLogger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	}
	if cfg.Logging.Format == "json" {
		appLogger.SetFormat(logger.JSON)
	}

	if *language != "" {
		cfg.Annotator.Language = *language
	}

	// Initialize the annotator
	ann := buildAnnotator(cfg)
	appLogger.WithContext("annotator").Info("Annotator initialized: %s", ann.Name())

	if *serve {
		runServer(cfg, ann, appLogger)
		return
	}

	runOnce(cfg, ann, *inputPath, *percent, *topN, *verbose, appLogger)
}

// runOnce summarizes a single document and prints the result.
func runOnce(cfg *config.Config, ann annotator.Annotator, inputPath string, percent float64, topN int, verbose bool, appLogger *logger.Logger) {
	text, err := readInput(inputPath)
	if err != nil {
		logger.LogError(logger.ValidationError(err, "Failed to read input"))
		appLogger.Fatal("Failed to read input")
	}

	budget := buildBudget(percent, topN, cfg)

	doc, err := ann.Annotate(context.Background(), text)
	if err != nil {
		logger.LogError(logger.APIError(err, "Failed to annotate document"))
		appLogger.Fatal("Failed to annotate document")
	}

	result, err := summarizer.Summarize(doc, budget)
	if err != nil {
		logger.LogError(logger.ValidationError(err, "Failed to summarize document"))
		appLogger.Fatal("Failed to summarize document")
	}

	if verbose {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.LogError(logger.InternalError(err, "Failed to encode result"))
			appLogger.Fatal("Failed to encode result")
		}
		fmt.Println(string(out))
		return
	}

	fmt.Println(result.Summary)
	appLogger.Info("%s", result.Info)
}

// runServer starts the MCP server and blocks until it terminates.
func runServer(cfg *config.Config, ann annotator.Annotator, appLogger *logger.Logger) {
	appLogger.Info("docsum MCP Server - Starting...")

	// Initialize the summary store
	store := summarystore.NewSQLiteSummaryStore()
	storeLogger := appLogger.WithContext("store")

	err := store.Initialize(cfg.Store.SQLitePath)
	if err != nil {
		err = logger.DatabaseError(err, "Failed to initialize SQLite summary store")
		logger.LogError(err)
		appLogger.Fatal("Failed to initialize SQLite summary store")
	}
	defer store.Close()
	storeLogger.Info("SQLite summary store initialized")

	// Initialize the embedder
	dimensions := cfg.Embedder.Dimensions
	if dimensions <= 0 {
		dimensions = vector.DefaultEmbeddingDimensions
	}
	emb := vector.NewHashEmbedder(dimensions)
	embLogger := appLogger.WithContext("embedder")

	err = emb.Initialize()
	if err != nil {
		err = logger.ConfigError(err, "Failed to initialize embedder")
		logger.LogError(err)
		appLogger.Fatal("Failed to initialize embedder")
	}
	embLogger.Info("Embedder initialized")

	// Initialize the MCP server
	srv := server.NewSummaryToolServer(store, ann, emb, nil)
	srv.SetDefaultBudget(summarizer.BudgetFrom(cfg.Summarizer.Percent, cfg.Summarizer.TopN))
	srvLogger := appLogger.WithContext("server")

	err = srv.Initialize()
	if err != nil {
		err = logger.ConfigError(err, "Failed to initialize MCP server")
		logger.LogError(err)
		appLogger.Fatal("Failed to initialize MCP server")
	}
	srvLogger.Info("MCP server initialized")

	// Handle graceful shutdown
	setupSignalHandler(store, appLogger)

	// Start the MCP server (this will block until server is terminated)
	srvLogger.Info("Starting MCP server...")
	if err := srv.Start(); err != nil {
		err = logger.APIError(err, "MCP server failed")
		logger.LogError(err)
		appLogger.Fatal("Failed to start MCP server")
	}
}

// buildAnnotator constructs the annotation provider from configuration.
func buildAnnotator(cfg *config.Config) annotator.Annotator {
	if cfg.Annotator.Provider == annotator.ProviderHTTP {
		timeout := time.Duration(cfg.Annotator.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = annotator.DefaultTimeout
		}
		return annotator.NewClient(annotator.Config{
			BaseURL:  cfg.Annotator.BaseURL,
			APIKey:   cfg.Annotator.ApiKey,
			Language: cfg.Annotator.Language,
			Timeout:  timeout,
		}, nil)
	}
	return annotator.NewLocal()
}

// buildBudget maps the command line flags onto a selection budget.
// An absolute count wins over a percentage; with neither flag set the
// configured defaults apply.
func buildBudget(percent float64, topN int, cfg *config.Config) summarizer.Budget {
	if topN == 0 && percent == 0 {
		return summarizer.BudgetFrom(cfg.Summarizer.Percent, cfg.Summarizer.TopN)
	}
	return summarizer.BudgetFrom(percent, topN)
}

// readInput reads the document text from a file or stdin.
func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// setupLogging configures and returns the application logger
func setupLogging() *logger.Logger {
	// Create default configuration
	config := logger.DefaultConfig()

	// Try to get log level from environment variable
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		config.Level = logger.ParseLevel(levelStr)
	}

	// Create and return logger
	appLogger := logger.New(config)
	logger.SetDefaultLogger(appLogger)

	return appLogger
}

// setupSignalHandler sets up a signal handler for graceful shutdown.
func setupSignalHandler(store summarystore.SummaryStore, log *logger.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Received shutdown signal, terminating gracefully...")

		// Close the store to ensure all data is saved
		if err := store.Close(); err != nil {
			err = logger.DatabaseError(err, "Error closing store during shutdown")
			logger.LogError(err)
		} else {
			log.Info("Database closed successfully")
		}

		log.Info("Shutdown complete")
		os.Exit(0)
	}()
}
