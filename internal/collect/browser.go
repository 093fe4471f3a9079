package collect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"newslens/internal/config"
)

// session owns one headless browser for the duration of a collection
// run. It is acquired at the start of Search and released on every exit
// path.
type session struct {
	browser *rod.Browser
	page    *rod.Page
	cfg     *config.Config
	logger  *slog.Logger
}

// newSession launches a fingerprint-suppressed Chromium and opens a
// stealth page.
func newSession(cfg *config.Config, logger *slog.Logger) (*session, error) {
	l := launcher.New().
		Headless(cfg.Browser.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-extensions").
		Set("disable-blink-features", "AutomationControlled")

	launchURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("stealth page: %w", err)
	}

	if ua := cfg.Browser.UserAgent; ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			logger.Warn("failed to set user agent", "error", err)
		}
	}

	return &session{
		browser: browser,
		page:    page,
		cfg:     cfg,
		logger:  logger.With("component", "browser_session"),
	}, nil
}

// close releases the page and the browser. Safe on partially
// initialized sessions.
func (s *session) close() {
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
}

// navigate loads the target URL and gives dynamic content an initial
// settle window.
func (s *session) navigate(ctx context.Context, rawURL string) error {
	page := s.page.Context(ctx)
	if err := page.Timeout(s.cfg.Browser.NavTimeout).Navigate(rawURL); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	if err := page.Timeout(s.cfg.Browser.NavTimeout).WaitLoad(); err != nil {
		s.logger.Warn("page load wait timed out, continuing", "url", rawURL, "error", err)
	}
	sleepCtx(ctx, s.cfg.Browser.InitialWait)
	return nil
}

// scrollToEnd drives incremental-scroll pagination. There is no event
// that signals "no more results"; the only pollable signal is the page
// height, so the loop stops after MaxScrolls attempts or after
// NoGrowthLimit consecutive scrolls without height growth.
func (s *session) scrollToEnd(ctx context.Context) error {
	page := s.page.Context(ctx)

	lastHeight, err := s.pageHeight(page)
	if err != nil {
		return fmt.Errorf("read page height: %w", err)
	}

	noGrowth := 0
	for i := 0; i < s.cfg.Collector.MaxScrolls; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			s.logger.Warn("scroll eval failed", "error", err)
		}
		sleepCtx(ctx, s.cfg.Collector.ScrollPause)

		height, err := s.pageHeight(page)
		if err != nil {
			return fmt.Errorf("read page height: %w", err)
		}

		if height == lastHeight {
			noGrowth++
			if noGrowth >= s.cfg.Collector.NoGrowthLimit {
				s.logger.Debug("page height stabilized", "scrolls", i+1, "height", height)
				break
			}
		} else {
			noGrowth = 0
		}
		lastHeight = height
	}
	return nil
}

// clickLoadMore clicks up to LoadMoreClicks "더보기" affordances.
// Best-effort: every failure is ignored.
func (s *session) clickLoadMore(ctx context.Context) {
	page := s.page.Context(ctx)

	elements, err := page.ElementsX(`//*[contains(text(), '더보기')]`)
	if err != nil {
		return
	}
	for i, el := range elements {
		if i >= s.cfg.Collector.LoadMoreClicks {
			break
		}
		if _, err := el.Eval(`() => this.click()`); err != nil {
			continue
		}
		sleepCtx(ctx, s.cfg.Collector.ScrollPause)
	}
}

// html snapshots the fully rendered document.
func (s *session) html(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

func (s *session) pageHeight(page *rod.Page) (int, error) {
	obj, err := page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return obj.Value.Int(), nil
}

// sleepCtx blocks for d or until ctx is done, whichever first.
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
