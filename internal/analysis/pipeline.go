// Package analysis drives the full run for one keyword: collect,
// classify, generate, repair, persist. It owns the policy glue between
// the collaborators; each step's component owns its own mechanics.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newslens/internal/report"
	"newslens/internal/storage"
	"newslens/internal/types"
)

// Searcher collects articles for a keyword over a date range.
type Searcher interface {
	Search(ctx context.Context, keyword, startDate, endDate string) ([]types.ArticleRecord, error)
}

// Classifier labels each article's sentiment, one label per article.
type Classifier interface {
	Classify(ctx context.Context, articles []types.ArticleRecord) []string
}

// Reporter produces the structured report for a classified article set.
type Reporter interface {
	Generate(ctx context.Context, keyword, startDate, endDate string, articles []types.ArticleRecord, counts types.SentimentCounts) *types.Report
}

// Pipeline composes the collaborators for end-to-end runs.
type Pipeline struct {
	searcher   Searcher
	classifier Classifier
	reporter   Reporter
	store      storage.ReportStore
	logger     *slog.Logger
	now        func() time.Time
}

// New wires a pipeline.
func New(searcher Searcher, classifier Classifier, reporter Reporter, store storage.ReportStore, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		searcher:   searcher,
		classifier: classifier,
		reporter:   reporter,
		store:      store,
		logger:     logger.With("component", "pipeline"),
		now:        time.Now,
	}
}

// Run executes a full analysis for keyword between startDate and
// endDate (inclusive, YYYY-MM-DD) and persists the result. An empty
// collection aborts before any model call with ErrNoArticles.
func (p *Pipeline) Run(ctx context.Context, keyword, startDate, endDate string) (*types.StoredReport, error) {
	articles, err := p.searcher.Search(ctx, keyword, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("collect %q: %w", keyword, err)
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("collect %q: %w", keyword, types.ErrNoArticles)
	}
	p.logger.Info("classifying sentiment", "keyword", keyword, "articles", len(articles))

	labels := p.classifier.Classify(ctx, articles)
	for i := range articles {
		if i < len(labels) {
			articles[i].Sentiment = labels[i]
		} else {
			articles[i].Sentiment = types.SentimentNeutral
		}
	}
	counts := types.CountSentiments(articles)

	stored := p.assemble(ctx, keyword, startDate, endDate, articles, counts)
	if err := p.store.Save(ctx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// Refresh regenerates a stored report from its persisted articles
// without touching the browser. This is how stale reports (written by
// an older model or schema) get brought up to date.
func (p *Pipeline) Refresh(ctx context.Context, keyword string) (*types.StoredReport, error) {
	existing, err := p.store.Load(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if len(existing.Articles) == 0 {
		return nil, fmt.Errorf("refresh %q: %w", keyword, types.ErrNoArticles)
	}

	startDate, endDate := splitPeriod(existing.Period)
	counts := types.CountSentiments(existing.Articles)

	stored := p.assemble(ctx, keyword, startDate, endDate, existing.Articles, counts)
	stored.Period = existing.Period
	if err := p.store.Save(ctx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// assemble runs generation and repair and builds the storage envelope.
// Error-shaped reports pass through and are persisted as-is so the
// display layer can diagnose them later.
func (p *Pipeline) assemble(ctx context.Context, keyword, startDate, endDate string, articles []types.ArticleRecord, counts types.SentimentCounts) *types.StoredReport {
	rep := p.reporter.Generate(ctx, keyword, startDate, endDate, articles, counts)
	report.Repair(rep, p.logger)

	return &types.StoredReport{
		Keyword:      keyword,
		Period:       startDate + " ~ " + endDate,
		SummaryStats: counts,
		Report:       rep,
		Articles:     articles,
		UpdatedAt:    p.now().Format("2006-01-02 15:04:05"),
	}
}

// splitPeriod reverses the "start ~ end" envelope format.
func splitPeriod(period string) (string, string) {
	parts := strings.SplitN(period, " ~ ", 2)
	if len(parts) != 2 {
		return period, period
	}
	return parts[0], parts[1]
}
