package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/localrivet/configurator"
	"github.com/localrivet/gomcp/logx"
)

// Global configuration instance
var (
	// Global is the global configuration instance
	Global *Config
	// initOnce ensures initialization happens only once
	initOnce sync.Once
)

// InitGlobal initializes the global configuration
func InitGlobal(configPath string) (*Config, error) {
	var err error
	initOnce.Do(func() {
		Global, err = LoadConfigWithPath(configPath)
	})
	return Global, err
}

// Config represents the docsum configuration
type Config struct {
	// Store contains storage-related configuration.
	Store struct {
		// SQLitePath is the path to the SQLite database file.
		SQLitePath string `json:"sqlite_path" env:"SQLITE_PATH" validate:"required"`
	} `json:"store"`

	// Annotator contains annotation-related configuration.
	Annotator struct {
		// Provider selects the annotation backend ("http", "local").
		Provider string `json:"provider" env:"ANNOTATOR_PROVIDER"`

		// BaseURL is the base URL of the HTTP annotation service.
		BaseURL string `json:"base_url" env:"ANNOTATOR_BASE_URL"`

		// ApiKey is the API key for the HTTP annotation service.
		ApiKey string `json:"api_key" env:"ANNOTATOR_API_KEY"`

		// Language is the ISO 639 code passed with each annotation
		// request. Empty means let the service detect it.
		Language string `json:"language" env:"ANNOTATOR_LANGUAGE"`

		// TimeoutSeconds bounds each annotation request.
		TimeoutSeconds int `json:"timeout_seconds" env:"ANNOTATOR_TIMEOUT_SECONDS"`
	} `json:"annotator"`

	// Summarizer contains summary selection configuration.
	Summarizer struct {
		// Percent is the default fraction of sentences to keep, in (0, 1].
		Percent float64 `json:"percent" env:"SUMMARIZER_PERCENT"`

		// TopN is the default absolute sentence count. When set it
		// overrides Percent.
		TopN int `json:"top_n" env:"SUMMARIZER_TOP_N"`
	} `json:"summarizer"`

	// Embedder contains embedding-related configuration.
	Embedder struct {
		// Dimensions is the number of dimensions for the embeddings.
		Dimensions int `json:"dimensions" env:"EMBEDDER_DIMENSIONS" validate:"min:1"`
	} `json:"embedder"`

	// Logging contains logging-related configuration.
	Logging struct {
		// Level is the minimum log level to display ("debug", "info", "warn", "error").
		Level string `json:"level" env:"LOG_LEVEL" validate:"required"`

		// Format is the log format to use ("text", "json").
		Format string `json:"format" env:"LOG_FORMAT"`
	} `json:"logging"`

	// Internal state (not saved to config file)
	configPath     string       `json:"-"`
	mutex          sync.RWMutex `json:"-"`
	lastModifiedAt time.Time    `json:"-"`
}

// Default configuration values
const (
	DefaultConfigFilename    = ".docsumconfig"
	DefaultSQLitePath        = ".docsum.db"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultAnnotatorProvider = "local"
	DefaultTimeoutSeconds    = 30
)

// NewConfig creates a new Config instance with default values
func NewConfig() *Config {
	config := &Config{}
	config.Store.SQLitePath = DefaultSQLitePath
	config.Annotator.Provider = DefaultAnnotatorProvider
	config.Annotator.TimeoutSeconds = DefaultTimeoutSeconds
	config.Embedder.Dimensions = 256
	config.Logging.Level = DefaultLogLevel
	config.Logging.Format = DefaultLogFormat
	return config
}

// LoadConfig loads the configuration from the default path
func LoadConfig() (*Config, error) {
	return LoadConfigWithPath(DefaultConfigFilename)
}

// LoadConfigWithPath loads the configuration from a specific path
func LoadConfigWithPath(configPath string) (*Config, error) {
	// Create a default logger for configuration loading
	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Create default configuration
	cfg := NewConfig()

	// Try to find config file if path is default
	if configPath == DefaultConfigFilename {
		foundPath, err := configurator.FindConfigFile(configPath)
		if err == nil {
			configPath = foundPath
			stdLogger.Debug("Found config file at " + foundPath)
		}
	}

	// Check if the file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// File doesn't exist, return default config
		stdLogger.Info("Config file not found, using default configuration", "path", configPath)
		cfg.configPath = configPath
		cfg.lastModifiedAt = time.Now()
		return cfg, nil
	}

	stdLogger.Info("Loading configuration", "path", configPath)

	// Create configurator instance
	config := configurator.New(stdLogger).
		WithProvider(configurator.NewDefaultProvider()).
		WithProvider(configurator.NewFileProvider(configPath)).
		WithProvider(configurator.NewEnvProvider("DOCSUM")).
		WithValidator(configurator.NewDefaultValidator())

	// Load configuration
	ctx := context.Background()
	if err := config.Load(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Store the config path for future operations
	cfg.configPath = configPath
	cfg.lastModifiedAt = time.Now()

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file
func (c *Config) SaveToFile(path string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Create directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Save using configurator's SaveToFile function
	if err := configurator.SaveToFile(c, path, configurator.FormatJSON); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Update internal state
	c.configPath = path
	c.lastModifiedAt = time.Now()

	return nil
}

// Save saves the configuration to the last used file path
func (c *Config) Save() error {
	if c.configPath == "" {
		c.configPath = DefaultConfigFilename
	}
	return c.SaveToFile(c.configPath)
}

// GetConfigPath returns the path of the currently loaded configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// GetLoggerFromConfig creates a gomcp logx.Logger based on the configuration
func GetLoggerFromConfig(cfg *Config) logx.Logger {
	return logx.NewLogger(cfg.Logging.Level)
}
