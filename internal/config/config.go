package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for newslens.
type Config struct {
	Browser   BrowserConfig   `mapstructure:"browser"   yaml:"browser"`
	Collector CollectorConfig `mapstructure:"collector" yaml:"collector"`
	LLM       LLMConfig       `mapstructure:"llm"       yaml:"llm"`
	Storage   StorageConfig   `mapstructure:"storage"   yaml:"storage"`
	SearchAd  SearchAdConfig  `mapstructure:"searchad"  yaml:"searchad"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// Credentials holds every secret the pipeline needs. They are loaded
// once at startup and injected into component constructors rather than
// read from the environment inside deep call stacks.
type Credentials struct {
	// LLMAPIKey authenticates the language-model collaborator.
	LLMAPIKey string

	// Search-ad API credentials (keyword search-volume lookups).
	AdAPIKey     string
	AdSecretKey  string
	AdCustomerID string

	// Open-API application credentials (blog total-count lookups).
	ClientID     string
	ClientSecret string
}

// BrowserConfig controls the headless browser session.
type BrowserConfig struct {
	Headless    bool          `mapstructure:"headless"     yaml:"headless"`
	NavTimeout  time.Duration `mapstructure:"nav_timeout"  yaml:"nav_timeout"`
	InitialWait time.Duration `mapstructure:"initial_wait" yaml:"initial_wait"`
	UserAgent   string        `mapstructure:"user_agent"   yaml:"user_agent"`
}

// CollectorConfig controls the scroll-pagination loop.
type CollectorConfig struct {
	MaxScrolls     int           `mapstructure:"max_scrolls"      yaml:"max_scrolls"`
	ScrollPause    time.Duration `mapstructure:"scroll_pause"     yaml:"scroll_pause"`
	NoGrowthLimit  int           `mapstructure:"no_growth_limit"  yaml:"no_growth_limit"`
	LoadMoreClicks int           `mapstructure:"load_more_clicks" yaml:"load_more_clicks"`
}

// LLMConfig controls the language-model collaborator.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"     yaml:"provider"`
	Model       string        `mapstructure:"model"        yaml:"model"`
	Endpoint    string        `mapstructure:"endpoint"     yaml:"endpoint"`
	MaxTokens   int           `mapstructure:"max_tokens"   yaml:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"  yaml:"temperature"`
	BatchSize   int           `mapstructure:"batch_size"   yaml:"batch_size"`
	BatchPause  time.Duration `mapstructure:"batch_pause"  yaml:"batch_pause"`
}

// StorageConfig selects and configures the report store backend.
type StorageConfig struct {
	Type            string `mapstructure:"type"             yaml:"type"`
	DataDir         string `mapstructure:"data_dir"         yaml:"data_dir"`
	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// SearchAdConfig points at the keyword-stats endpoints.
type SearchAdConfig struct {
	BaseURL    string `mapstructure:"base_url"     yaml:"base_url"`
	OpenAPIURL string `mapstructure:"open_api_url" yaml:"open_api_url"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:    true,
			NavTimeout:  30 * time.Second,
			InitialWait: 3 * time.Second,
			UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		Collector: CollectorConfig{
			MaxScrolls:     100,
			ScrollPause:    2 * time.Second,
			NoGrowthLimit:  3,
			LoadMoreClicks: 2,
		},
		LLM: LLMConfig{
			Provider:    "gemini",
			Model:       "gemini-2.5-flash",
			MaxTokens:   8192,
			Temperature: 0.5,
			BatchSize:   25,
			BatchPause:  1 * time.Second,
		},
		Storage: StorageConfig{
			Type:            "file",
			DataDir:         "./data",
			MongoDatabase:   "newslens",
			MongoCollection: "reports",
		},
		SearchAd: SearchAdConfig{
			BaseURL:    "https://api.searchad.naver.com",
			OpenAPIURL: "https://openapi.naver.com",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
