// Package ai wraps the language-model backends used for sentiment
// classification and report generation. Callers depend on the Generator
// interface; failures carry a typed kind derived from the HTTP status
// so downstream code can branch without sniffing message substrings.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"newslens/internal/config"
)

// ErrorKind classifies a model-call failure.
type ErrorKind string

const (
	KindModelUnavailable ErrorKind = "model_unavailable"
	KindQuotaExceeded    ErrorKind = "quota_exceeded"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindInvalidRequest   ErrorKind = "invalid_request"
	KindTransport        ErrorKind = "transport"
	KindOther            ErrorKind = "other"
)

// Error is a tagged model-call failure.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("llm %s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("llm %s: %s", e.Kind, e.Message)
}

// KindOf extracts the kind from an error chain, defaulting to other.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// kindForStatus maps an HTTP status onto a failure kind.
func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusNotFound:
		return KindModelUnavailable
	case status == http.StatusTooManyRequests:
		return KindQuotaExceeded
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusBadRequest:
		return KindInvalidRequest
	default:
		return KindOther
	}
}

// Generator is the single operation the rest of the system needs from a
// model backend.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client talks to a hosted model over HTTP.
type Client struct {
	cfg    config.LLMConfig
	apiKey string
	client *http.Client
	logger *slog.Logger
}

// NewClient builds a client for the configured provider. The API key is
// injected here rather than read from the environment inside the call
// path.
func NewClient(cfg config.LLMConfig, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger.With("component", "llm_client"),
	}
}

// Generate sends a prompt to the configured backend and returns the raw
// text response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	switch c.cfg.Provider {
	case "gemini":
		return c.generateGemini(ctx, prompt)
	case "openai":
		return c.generateOpenAI(ctx, prompt)
	default:
		return "", &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf("unsupported provider %q", c.cfg.Provider)}
	}
}

func (c *Client) generateGemini(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":     c.cfg.Temperature,
			"maxOutputTokens": c.cfg.MaxTokens,
		},
	}
	body, _ := json.Marshal(payload)

	endpoint := c.cfg.Endpoint
	if endpoint == "" {
		endpoint = "https://generativelanguage.googleapis.com/v1beta"
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", endpoint, c.cfg.Model)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindInvalidRequest, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: fmt.Sprintf("gemini request: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &Error{Kind: KindOther, Message: fmt.Sprintf("decode gemini response: %v", err)}
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", &Error{Kind: KindOther, Message: "empty gemini response"}
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) generateOpenAI(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  c.cfg.MaxTokens,
		"temperature": c.cfg.Temperature,
	}
	body, _ := json.Marshal(payload)

	endpoint := c.cfg.Endpoint
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1"
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindInvalidRequest, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: fmt.Sprintf("openai request: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &Error{Kind: KindOther, Message: fmt.Sprintf("decode openai response: %v", err)}
	}
	if len(result.Choices) == 0 {
		return "", &Error{Kind: KindOther, Message: "no choices in openai response"}
	}
	return result.Choices[0].Message.Content, nil
}

// statusError builds a tagged error from a non-200 response, keeping a
// bounded slice of the body as the diagnostic message.
func statusError(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	msg := http.StatusText(resp.StatusCode)

	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		msg = apiErr.Error.Message
	} else if len(body) > 0 {
		msg = string(body)
	}

	return &Error{
		Kind:    kindForStatus(resp.StatusCode),
		Status:  resp.StatusCode,
		Message: msg,
	}
}
