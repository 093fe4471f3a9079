package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newslens/internal/config"
	"newslens/internal/types"
)

// SentimentBatcher classifies article titles in fixed-size chunks to
// bound prompt size. Classification is best effort: a chunk whose call
// or parse fails degrades to all-Neutral instead of failing the run.
type SentimentBatcher struct {
	gen    Generator
	cfg    config.LLMConfig
	logger *slog.Logger

	// sleep is swappable so tests do not wait out the rate-limit pause.
	sleep func(ctx context.Context, d time.Duration)
}

// NewSentimentBatcher wires a batcher over any Generator.
func NewSentimentBatcher(gen Generator, cfg config.LLMConfig, logger *slog.Logger) *SentimentBatcher {
	return &SentimentBatcher{
		gen:    gen,
		cfg:    cfg,
		logger: logger.With("component", "sentiment"),
		sleep:  sleepCtx,
	}
}

// Classify returns one sentiment label per article, in input order. The
// output length always equals the input length regardless of what the
// model returns per chunk.
func (b *SentimentBatcher) Classify(ctx context.Context, articles []types.ArticleRecord) []string {
	if len(articles) == 0 {
		return nil
	}

	size := b.cfg.BatchSize
	if size <= 0 {
		size = 25
	}

	out := make([]string, 0, len(articles))
	for start := 0; start < len(articles); start += size {
		if start > 0 {
			b.sleep(ctx, b.cfg.BatchPause)
		}
		end := start + size
		if end > len(articles) {
			end = len(articles)
		}
		out = append(out, b.classifyChunk(ctx, articles[start:end])...)
	}
	return out
}

func (b *SentimentBatcher) classifyChunk(ctx context.Context, chunk []types.ArticleRecord) []string {
	raw, err := b.gen.Generate(ctx, sentimentPrompt(chunk))
	if err != nil {
		b.logger.Warn("sentiment chunk failed, defaulting to neutral",
			"size", len(chunk), "error", err)
		return neutralFill(len(chunk))
	}

	var labels []string
	if err := json.Unmarshal([]byte(StripFences(raw)), &labels); err != nil {
		b.logger.Warn("sentiment response is not a JSON array, defaulting to neutral",
			"size", len(chunk), "error", err)
		return neutralFill(len(chunk))
	}

	// Length mismatches from the model are routine: pad short responses
	// with Neutral and truncate long ones.
	if len(labels) > len(chunk) {
		labels = labels[:len(chunk)]
	}
	for len(labels) < len(chunk) {
		labels = append(labels, types.SentimentNeutral)
	}
	for i, l := range labels {
		labels[i] = normalizeSentiment(l)
	}
	return labels
}

func sentimentPrompt(chunk []types.ArticleRecord) string {
	var sb strings.Builder
	sb.WriteString("다음 뉴스 기사 제목들의 감성을 분석해 주세요.\n")
	sb.WriteString("각 제목마다 \"Positive\", \"Negative\", \"Neutral\" 중 하나로 분류하고,\n")
	sb.WriteString(fmt.Sprintf("JSON 배열로만 답하세요. 배열 길이는 정확히 %d여야 합니다.\n\n", len(chunk)))
	for i, a := range chunk {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, a.Title)
	}
	return sb.String()
}

// normalizeSentiment maps model label variants (Korean labels, casing)
// onto the canonical three.
func normalizeSentiment(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "positive", "긍정", "긍정적":
		return types.SentimentPositive
	case "negative", "부정", "부정적":
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}

func neutralFill(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = types.SentimentNeutral
	}
	return labels
}

// StripFences removes a Markdown code fence wrapper, with or without a
// language tag, leaving other text untouched.
func StripFences(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
