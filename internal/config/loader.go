package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and defaults.
// Priority (highest to lowest): env vars > config file > defaults.
// A .env file in the working directory is loaded first so that
// credentials behave identically in development and deployment.
func Load(configPath string) (*Config, error) {
	// Best-effort: absence of a .env file is the normal case.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("NEWSLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("newslens")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".newslens"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// LoadCredentials reads all secrets from the environment (after any
// .env load performed by Load).
func LoadCredentials() Credentials {
	return Credentials{
		LLMAPIKey:    firstEnv("GOOGLE_API_KEY", "LLM_API_KEY"),
		AdAPIKey:     os.Getenv("NAVER_AD_API_KEY"),
		AdSecretKey:  os.Getenv("NAVER_AD_SECRET_KEY"),
		AdCustomerID: os.Getenv("NAVER_CUSTOMER_ID"),
		ClientID:     os.Getenv("NAVER_CLIENT_ID"),
		ClientSecret: os.Getenv("NAVER_CLIENT_SECRET"),
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("browser.headless", cfg.Browser.Headless)
	v.SetDefault("browser.nav_timeout", cfg.Browser.NavTimeout)
	v.SetDefault("browser.initial_wait", cfg.Browser.InitialWait)
	v.SetDefault("browser.user_agent", cfg.Browser.UserAgent)

	v.SetDefault("collector.max_scrolls", cfg.Collector.MaxScrolls)
	v.SetDefault("collector.scroll_pause", cfg.Collector.ScrollPause)
	v.SetDefault("collector.no_growth_limit", cfg.Collector.NoGrowthLimit)
	v.SetDefault("collector.load_more_clicks", cfg.Collector.LoadMoreClicks)

	v.SetDefault("llm.provider", cfg.LLM.Provider)
	v.SetDefault("llm.model", cfg.LLM.Model)
	v.SetDefault("llm.endpoint", cfg.LLM.Endpoint)
	v.SetDefault("llm.max_tokens", cfg.LLM.MaxTokens)
	v.SetDefault("llm.temperature", cfg.LLM.Temperature)
	v.SetDefault("llm.batch_size", cfg.LLM.BatchSize)
	v.SetDefault("llm.batch_pause", cfg.LLM.BatchPause)

	v.SetDefault("storage.type", cfg.Storage.Type)
	v.SetDefault("storage.data_dir", cfg.Storage.DataDir)
	v.SetDefault("storage.mongo_uri", cfg.Storage.MongoURI)
	v.SetDefault("storage.mongo_database", cfg.Storage.MongoDatabase)
	v.SetDefault("storage.mongo_collection", cfg.Storage.MongoCollection)

	v.SetDefault("searchad.base_url", cfg.SearchAd.BaseURL)
	v.SetDefault("searchad.open_api_url", cfg.SearchAd.OpenAPIURL)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.output", cfg.Logging.Output)
}
