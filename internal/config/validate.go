package config

import (
	"fmt"
	"time"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Browser.NavTimeout <= 0 {
		return fmt.Errorf("browser.nav_timeout must be > 0")
	}
	if cfg.Browser.InitialWait < 0 {
		return fmt.Errorf("browser.initial_wait must be >= 0")
	}

	if cfg.Collector.MaxScrolls < 1 {
		return fmt.Errorf("collector.max_scrolls must be >= 1, got %d", cfg.Collector.MaxScrolls)
	}
	if cfg.Collector.ScrollPause < 100*time.Millisecond {
		return fmt.Errorf("collector.scroll_pause must be >= 100ms, got %s", cfg.Collector.ScrollPause)
	}
	if cfg.Collector.NoGrowthLimit < 1 {
		return fmt.Errorf("collector.no_growth_limit must be >= 1, got %d", cfg.Collector.NoGrowthLimit)
	}
	if cfg.Collector.LoadMoreClicks < 0 {
		return fmt.Errorf("collector.load_more_clicks must be >= 0, got %d", cfg.Collector.LoadMoreClicks)
	}

	if cfg.LLM.Provider != "gemini" && cfg.LLM.Provider != "openai" {
		return fmt.Errorf("llm.provider must be 'gemini' or 'openai', got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model must be set")
	}
	if cfg.LLM.BatchSize < 1 {
		return fmt.Errorf("llm.batch_size must be >= 1, got %d", cfg.LLM.BatchSize)
	}
	if cfg.LLM.BatchPause < 0 {
		return fmt.Errorf("llm.batch_pause must be >= 0")
	}

	if cfg.Storage.Type != "file" && cfg.Storage.Type != "mongodb" {
		return fmt.Errorf("storage.type must be 'file' or 'mongodb', got %q", cfg.Storage.Type)
	}
	if cfg.Storage.Type == "file" && cfg.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir must be set for file storage")
	}
	if cfg.Storage.Type == "mongodb" && cfg.Storage.MongoURI == "" {
		return fmt.Errorf("storage.mongo_uri must be set for mongodb storage")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return nil
}

// ValidateDateRange checks that start and end form an inclusive range.
func ValidateDateRange(start, end string) error {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if e.Before(s) {
		return fmt.Errorf("end date %s precedes start date %s", end, start)
	}
	return nil
}
