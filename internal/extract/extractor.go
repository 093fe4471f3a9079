// Package extract turns one candidate container node into a normalized
// article record, walking each field's selector chain until a usable
// value appears. Selector misses are expected, non-fatal, and never
// propagate: every lookup is a (value, ok) pair and a failed chain
// simply moves the field to its fallback behavior.
package extract

import (
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"

	"newslens/internal/dates"
	"newslens/internal/profile"
	"newslens/internal/types"
)

// Titles that mark a mis-selected node rather than a headline. The
// resolved press name is appended at extraction time.
var invalidTitles = []string{"네이버뉴스", "네이버 뉴스", "NAVER"}

// Boilerplate fragments that identify UI explanatory blocks mixed in
// with the result cards.
var noiseFragments = []string{
	"이 정보가 표시된 이유",
	"정보가 표시된 이유",
	"표시된 이유",
}

// Extractor applies a layout profile to container nodes.
type Extractor struct {
	logger *slog.Logger
	now    func() time.Time
}

// New creates an Extractor. now anchors relative-date resolution and
// defaults to time.Now.
func New(logger *slog.Logger, now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{
		logger: logger.With("component", "extractor"),
		now:    now,
	}
}

// Extract builds an ArticleRecord from one container selection.
// It returns (nil, false) for non-article noise: unresolvable titles,
// non-http links, nodes without a resolvable date, and boilerplate.
func (e *Extractor) Extract(sel *goquery.Selection, p *profile.Profile) (*types.ArticleRecord, bool) {
	// Press first: the title validation below needs it.
	press := types.PressUnknown
	if v, ok := lookupChain(sel, p.Press, func(s string) bool { return len([]rune(s)) > 1 }); ok {
		press = v
	}

	title, ok := lookupChain(sel, p.Title, func(s string) bool {
		if len([]rune(s)) <= 3 {
			return false
		}
		if s == press {
			return false
		}
		for _, bad := range invalidTitles {
			if s == bad {
				return false
			}
		}
		return true
	})
	if !ok {
		return nil, false
	}

	link, ok := lookupChain(sel, p.Link, func(s string) bool {
		return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
	})
	if !ok {
		return nil, false
	}

	// Date is a hard requirement, unlike press: a raw fragment must
	// surface somewhere in the chain and resolve to a calendar date.
	date := ""
	for _, s := range p.Date {
		raw, ok := lookup(sel, s)
		if !ok || raw == "" {
			continue
		}
		if resolved, ok := dates.Resolve(raw, e.now()); ok {
			date = resolved
			break
		}
	}
	if date == "" {
		return nil, false
	}

	for _, fragment := range noiseFragments {
		if strings.Contains(title, fragment) {
			return nil, false
		}
	}

	return &types.ArticleRecord{
		Title: title,
		Link:  link,
		Press: press,
		Date:  date,
	}, true
}

// lookupChain walks a selector chain and returns the first candidate
// value the accept predicate admits.
func lookupChain(sel *goquery.Selection, chain profile.Chain, accept func(string) bool) (string, bool) {
	for _, s := range chain {
		v, ok := lookup(sel, s)
		if ok && v != "" && accept(v) {
			return v, true
		}
	}
	return "", false
}

// lookup evaluates a single typed selector against the node, returning
// ok=false on any miss or evaluation error.
func lookup(sel *goquery.Selection, s profile.Selector) (string, bool) {
	switch s.Type {
	case profile.SelectorXPath:
		return lookupXPath(sel, s)
	default:
		found := sel.Find(s.Query).First()
		if found.Length() == 0 {
			return "", false
		}
		if s.Attr == "" {
			return strings.TrimSpace(found.Text()), true
		}
		v, exists := found.Attr(s.Attr)
		if !exists {
			return "", false
		}
		return strings.TrimSpace(v), true
	}
}

func lookupXPath(sel *goquery.Selection, s profile.Selector) (string, bool) {
	if len(sel.Nodes) == 0 {
		return "", false
	}
	node, err := htmlquery.Query(sel.Nodes[0], s.Query)
	if err != nil || node == nil {
		return "", false
	}
	if s.Attr == "" {
		return strings.TrimSpace(htmlquery.InnerText(node)), true
	}
	v := htmlquery.SelectAttr(node, s.Attr)
	if v == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}
