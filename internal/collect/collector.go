// Package collect drives a headless browser through an infinite-scroll
// search-results page and turns the rendered markup into a deduplicated
// list of article records. One browser session per call, sequential
// only, released on every exit path.
package collect

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newslens/internal/config"
	"newslens/internal/extract"
	"newslens/internal/profile"
	"newslens/internal/types"
)

// Collector is the top-level entry point for "search for keyword X
// between dates A and B".
type Collector struct {
	cfg       *config.Config
	table     *profile.Table
	extractor *extract.Extractor
	logger    *slog.Logger
}

// New creates a Collector. The profile table is injected so callers can
// extend the layout set without touching the orchestration.
func New(cfg *config.Config, table *profile.Table, logger *slog.Logger) *Collector {
	return &Collector{
		cfg:       cfg,
		table:     table,
		extractor: extract.New(logger, time.Now),
		logger:    logger.With("component", "collector"),
	}
}

// Search collects, extracts, deduplicates, and date-filters articles
// for the keyword. Navigation and launch failures are returned as a
// *types.CollectError with no retries; retry policy belongs to the
// caller. An empty result is not an error.
func (c *Collector) Search(ctx context.Context, keyword, startDate, endDate string) ([]types.ArticleRecord, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, types.ErrInvalidKeyword
	}

	searchURL := BuildSearchURL(keyword, startDate, endDate)
	c.logger.Info("starting collection",
		"keyword", keyword,
		"start", startDate,
		"end", endDate,
	)
	c.logger.Debug("search url built", "url", searchURL)

	sess, err := newSession(c.cfg, c.logger)
	if err != nil {
		return nil, &types.CollectError{URL: searchURL, Err: err}
	}
	defer sess.close()

	if err := sess.navigate(ctx, searchURL); err != nil {
		return nil, &types.CollectError{URL: searchURL, Err: err}
	}
	if err := sess.scrollToEnd(ctx); err != nil {
		return nil, &types.CollectError{URL: searchURL, Err: err}
	}
	sess.clickLoadMore(ctx)

	rendered, err := sess.html(ctx)
	if err != nil {
		return nil, &types.CollectError{URL: searchURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return nil, &types.CollectError{URL: searchURL, Err: err}
	}

	p := c.table.Detect(searchURL)
	articles := c.ExtractArticles(doc, p, startDate, endDate)

	c.logger.Info("collection finished",
		"keyword", keyword,
		"site", p.Site,
		"articles", len(articles),
	)
	return articles, nil
}

// ExtractArticles runs extraction over every candidate container node,
// drops non-articles, deduplicates by link (first occurrence wins,
// preserving document order), and applies the optional inclusive date
// filter.
func (c *Collector) ExtractArticles(doc *goquery.Document, p *profile.Profile, startDate, endDate string) []types.ArticleRecord {
	nodes := extract.Containers(doc, p.Containers)
	c.logger.Debug("container nodes enumerated", "count", len(nodes))

	seen := make(map[string]struct{}, len(nodes))
	var articles []types.ArticleRecord

	for _, node := range nodes {
		rec, ok := c.extractor.Extract(node, p)
		if !ok {
			continue
		}
		if _, dup := seen[rec.Link]; dup {
			continue
		}
		if startDate != "" && endDate != "" && !withinRange(rec.Date, startDate, endDate) {
			continue
		}
		seen[rec.Link] = struct{}{}
		articles = append(articles, *rec)
	}
	return articles
}

// withinRange reports whether date falls inside [start, end] inclusive.
// Any unparseable date — the record's or the bounds — keeps the record:
// the filter fails open rather than discarding on uncertainty.
func withinRange(date, start, end string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return true
	}
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return true
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return true
	}
	return !d.Before(s) && !d.After(e)
}
