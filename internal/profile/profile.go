// Package profile maps a search-results URL onto the selector chains
// that fit its layout. Each field is extracted through an ordered chain
// of typed selectors: the first selector that yields a usable value
// wins, and exhausting the chain is an expected, non-fatal outcome.
package profile

import (
	"net/url"
	"strings"
)

// SiteType identifies a detected page layout.
type SiteType string

const (
	SiteNaverNews       SiteType = "naver_news"
	SiteNaverSearchNews SiteType = "naver_search_news"
	SiteGoogleNews      SiteType = "google_news"
	SiteDaumNews        SiteType = "daum_news"
	SiteGeneric         SiteType = "general_news"
)

// SelectorType distinguishes how a selector query is evaluated.
type SelectorType string

const (
	SelectorCSS   SelectorType = "css"
	SelectorXPath SelectorType = "xpath"
)

// Selector is one typed descriptor in a fallback chain.
type Selector struct {
	Type  SelectorType
	Query string
	// Attr names the attribute to read; empty means element text.
	Attr string
}

// Chain is an ordered list of selectors tried in sequence.
type Chain []Selector

// CSS builds a chain of text-extracting CSS selectors.
func CSS(queries ...string) Chain {
	chain := make(Chain, len(queries))
	for i, q := range queries {
		chain[i] = Selector{Type: SelectorCSS, Query: q}
	}
	return chain
}

// CSSAttr builds a chain of CSS selectors that read one attribute.
func CSSAttr(attr string, queries ...string) Chain {
	chain := make(Chain, len(queries))
	for i, q := range queries {
		chain[i] = Selector{Type: SelectorCSS, Query: q, Attr: attr}
	}
	return chain
}

// XPath builds a chain of text-extracting XPath selectors. Queries are
// evaluated relative to the container node, so they should start with
// ".//" rather than "//".
func XPath(queries ...string) Chain {
	chain := make(Chain, len(queries))
	for i, q := range queries {
		chain[i] = Selector{Type: SelectorXPath, Query: q}
	}
	return chain
}

// XPathAttr builds a chain of XPath selectors that read one attribute.
func XPathAttr(attr string, queries ...string) Chain {
	chain := make(Chain, len(queries))
	for i, q := range queries {
		chain[i] = Selector{Type: SelectorXPath, Query: q, Attr: attr}
	}
	return chain
}

// Profile is the full selector set for one detected layout.
type Profile struct {
	Site SiteType

	// Containers are additive: a page may mix container shapes, so
	// candidate nodes are collected from every selector in the chain,
	// not just the first that matches.
	Containers Chain

	Title Chain
	Link  Chain
	Press Chain
	Date  Chain
}

// Table is an ordered URL-matching table; the first matching rule wins
// and no match falls through to the generic profile.
type Table struct {
	rules    []rule
	profiles map[SiteType]*Profile
}

type rule struct {
	site  SiteType
	match func(u *url.URL, raw string) bool
}

// Detect returns the profile applicable to rawURL. Unparseable URLs get
// the generic profile.
func (t *Table) Detect(rawURL string) *Profile {
	u, err := url.Parse(rawURL)
	if err == nil {
		for _, r := range t.rules {
			if r.match(u, rawURL) {
				return t.profiles[r.site]
			}
		}
	}
	return t.profiles[SiteGeneric]
}

// Profile returns the profile registered for a site type, falling back
// to the generic profile.
func (t *Table) Profile(site SiteType) *Profile {
	if p, ok := t.profiles[site]; ok {
		return p
	}
	return t.profiles[SiteGeneric]
}

// DefaultTable returns the built-in layout table: Naver's news portal,
// Naver's news-tab search results, Google News, Daum News, and a broad
// generic fallback that trades precision for coverage of unknown
// markup.
func DefaultTable() *Table {
	hostContains := func(fragment string) func(u *url.URL, raw string) bool {
		return func(u *url.URL, raw string) bool {
			return strings.Contains(strings.ToLower(u.Hostname()), fragment)
		}
	}

	return &Table{
		rules: []rule{
			{SiteNaverNews, hostContains("news.naver.com")},
			{SiteNaverSearchNews, func(u *url.URL, raw string) bool {
				return strings.Contains(strings.ToLower(u.Hostname()), "search.naver.com") &&
					(strings.Contains(raw, "where=news") || strings.Contains(raw, "ssc=tab.news"))
			}},
			{SiteGoogleNews, hostContains("news.google.com")},
			{SiteDaumNews, hostContains("news.daum.net")},
		},
		profiles: map[SiteType]*Profile{
			SiteNaverNews: {
				Site:       SiteNaverNews,
				Containers: CSS("div.main_component.droppable"),
				Title:      CSS("a.news_tit"),
				Link:       CSSAttr("href", "a.news_tit"),
				Press:      CSS("a.press"),
				Date:       CSS("span.info"),
			},
			SiteNaverSearchNews: {
				Site: SiteNaverSearchNews,
				Containers: CSS(
					"div.sds-comps-vertical-layout.sds-comps-full-layout",
					`div[class*="sds-comps-vertical-layout"]`,
					`li[class*="bx"]`,
					"div.news_wrap", "div.news_area", "div.news_box",
					`div[class*="news"]`, `li[class*="news"]`,
					`div[class*="article"]`, `li[class*="article"]`,
				),
				Title: CSS(
					"span.sds-comps-text.sds-comps-text-ellipsis-1.sds-comps-text-type-headline1",
					"a.news_tit",
					`span[class*="headline"]`, `span[class*="title"]`,
					`a[class*="headline"]`, `a[class*="title"]`,
					"strong", "h3", "h4",
					`a[class*="tit"]`,
				),
				// The headline anchor carries no stable class of its own;
				// the only reliable route is the parent step from the
				// headline span back up to its enclosing anchor.
				Link: append(
					XPathAttr("href",
						`.//span[contains(@class, "sds-comps-text-type-headline1")]/ancestor::a[1]`),
					CSSAttr("href",
						`a:has(span[class*="headline"])`,
						"a.news_tit",
						`a[href*="news"]`, `a[href*="article"]`,
						`a[href*="view"]`, `a[href*="read"]`,
						`a[class*="link"]`, `a[class*="tit"]`,
					)...),
				Press: CSS(
					"div.sds-comps-profile-info span.sds-comps-text-type-body2.sds-comps-text-weight-sm",
					"span.sds-comps-profile-info-title-text",
					"a.press",
					`span[class*="press"]`, `span[class*="source"]`,
					`span[class*="media"]`, `span[class*="agency"]`,
				),
				Date: CSS(
					"div.sds-comps-profile-info span.sds-comps-text-type-body2:not(.sds-comps-profile-info-title-text)",
					"span.sds-comps-profile-info-subtext",
					"span.info",
					`span[class*="date"]`, `span[class*="time"]`,
					"time",
					`em[class*="date"]`, `em[class*="time"]`,
				),
			},
			SiteGoogleNews: {
				Site:       SiteGoogleNews,
				Containers: CSS("article", "div[data-n-tid]"),
				Title:      CSS("h3", "h4", "a[data-n-tid]"),
				Link:       CSSAttr("href", `a[href*="news"]`, `a[href*="article"]`),
				Press:      CSS(`span[class*="source"]`, `a[class*="source"]`),
				Date:       CSS("time", `span[class*="date"]`, `span[class*="time"]`),
			},
			SiteDaumNews: {
				Site:       SiteDaumNews,
				Containers: CSS("li.news_item", "div.news_item"),
				Title:      CSS("a.link_txt", "strong.tit_txt"),
				Link:       CSSAttr("href", "a.link_txt"),
				Press:      CSS("span.info_news", "span.txt_copyright"),
				Date:       CSS("span.info_time", "span.txt_time"),
			},
			SiteGeneric: {
				Site:       SiteGeneric,
				Containers: CSS("article", "div.news-item", "div.article", "li.news-item"),
				Title: CSS("h1", "h2", "h3", "h4",
					`a[class*="title"]`, `a[class*="headline"]`),
				Link: CSSAttr("href",
					`a[href*="news"]`, `a[href*="article"]`, `a[href*="story"]`),
				Press: CSS(`span[class*="author"]`, `span[class*="source"]`,
					`span[class*="byline"]`, `a[class*="author"]`),
				Date: CSS("time", `span[class*="date"]`, `span[class*="time"]`,
					`span[class*="published"]`),
			},
		},
	}
}
