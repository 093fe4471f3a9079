package collect

import (
	"log/slog"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"newslens/internal/config"
	"newslens/internal/profile"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestCollector() *Collector {
	return New(config.DefaultConfig(), profile.DefaultTable(), testLogger)
}

var genericProfile = profile.DefaultTable().Profile(profile.SiteGeneric)

func parseDoc(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func articleNode(link, title, date string) string {
	return `<article>
		<h3>` + title + `</h3>
		<a href="` + link + `">기사 보기</a>
		<span class="author">테스트신문</span>
		<time>` + date + `</time>
	</article>`
}

func TestExtractArticlesDedupByLink(t *testing.T) {
	c := newTestCollector()

	doc := parseDoc(t,
		articleNode("https://example.com/news/1", "첫 번째로 등장한 제목", "2025-06-05")+
			articleNode("https://example.com/news/1", "같은 링크의 두 번째 노드", "2025-06-06")+
			articleNode("https://example.com/news/2", "다른 링크를 가진 기사", "2025-06-05"))

	articles := c.ExtractArticles(doc, genericProfile, "", "")
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	// First occurrence wins, and document order is preserved.
	if articles[0].Title != "첫 번째로 등장한 제목" {
		t.Errorf("dedup kept %q, want the first-encountered node", articles[0].Title)
	}
	if articles[1].Link != "https://example.com/news/2" {
		t.Errorf("second article link = %q", articles[1].Link)
	}
}

func TestExtractArticlesDateFilter(t *testing.T) {
	c := newTestCollector()

	doc := parseDoc(t,
		articleNode("https://example.com/news/1", "기간 안에 있는 기사", "2025-06-05")+
			articleNode("https://example.com/news/2", "기간보다 이른 기사", "2025-05-20")+
			articleNode("https://example.com/news/3", "기간보다 늦은 기사", "2025-06-20")+
			articleNode("https://example.com/news/4", "경계일에 걸친 기사", "2025-06-10"))

	articles := c.ExtractArticles(doc, genericProfile, "2025-06-01", "2025-06-10")
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2 (in-range and boundary)", len(articles))
	}
	for _, a := range articles {
		if a.Date != "2025-06-05" && a.Date != "2025-06-10" {
			t.Errorf("unexpected article in range: %+v", a)
		}
	}
}

// A range the filter cannot parse must keep records, not drop them:
// losing real articles to a malformed bound is worse than letting an
// outlier in.
func TestExtractArticlesDateFilterFailsOpen(t *testing.T) {
	c := newTestCollector()

	doc := parseDoc(t,
		articleNode("https://example.com/news/1", "경계값이 망가진 수집", "2025-06-20"))

	articles := c.ExtractArticles(doc, genericProfile, "시작일 미상", "2025-06-10")
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1 (fail-open)", len(articles))
	}
}

// Unpadded absolute dates normalize during extraction, so the range
// filter applies to them like any other record.
func TestExtractArticlesFilterAppliesToUnpaddedDates(t *testing.T) {
	c := newTestCollector()

	doc := parseDoc(t,
		articleNode("https://example.com/news/1", "기간 밖의 점 구분 날짜", "2025.6.20")+
			articleNode("https://example.com/news/2", "기간 안의 점 구분 날짜", "2025.6.7"))

	articles := c.ExtractArticles(doc, genericProfile, "2025-06-05", "2025-06-10")
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if articles[0].Date != "2025-06-07" {
		t.Errorf("date = %q, want normalized 2025-06-07", articles[0].Date)
	}
}

func TestExtractArticlesNoFilterWithoutRange(t *testing.T) {
	c := newTestCollector()

	doc := parseDoc(t,
		articleNode("https://example.com/news/1", "날짜 필터가 없는 수집", "2020-01-01"))

	if articles := c.ExtractArticles(doc, genericProfile, "", ""); len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
}

func TestBuildSearchURL(t *testing.T) {
	raw := BuildSearchURL("RSV 바이러스", "2025-06-01", "2025-06-10")

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("built URL does not parse: %v", err)
	}
	if u.Hostname() != "search.naver.com" {
		t.Errorf("host = %q", u.Hostname())
	}

	q := u.Query()
	if got := q.Get("query"); got != "RSV & 바이러스" {
		t.Errorf("query = %q, want AND-joined keyword", got)
	}
	if got := q.Get("nso"); got != "so:r,p:from20250601to20250610,a:all" {
		t.Errorf("nso = %q", got)
	}
	if q.Get("ds") != "2025.06.01" || q.Get("de") != "2025.06.10" {
		t.Errorf("ds/de = %q/%q", q.Get("ds"), q.Get("de"))
	}
	if q.Get("where") != "news" {
		t.Errorf("where = %q", q.Get("where"))
	}
}

func TestBuildSearchURLSingleKeyword(t *testing.T) {
	u, err := url.Parse(BuildSearchURL("반도체", "2025-06-01", "2025-06-10"))
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Query().Get("query"); got != "반도체" {
		t.Errorf("query = %q, want keyword unchanged", got)
	}
}

func TestWithinRange(t *testing.T) {
	cases := []struct {
		date, start, end string
		want             bool
	}{
		{"2025-06-05", "2025-06-01", "2025-06-10", true},
		{"2025-06-01", "2025-06-01", "2025-06-10", true},
		{"2025-06-10", "2025-06-01", "2025-06-10", true},
		{"2025-05-31", "2025-06-01", "2025-06-10", false},
		{"2025-06-11", "2025-06-01", "2025-06-10", false},
		{"not-a-date", "2025-06-01", "2025-06-10", true},
		{"2025-06-05", "garbage", "2025-06-10", true},
	}
	for _, tc := range cases {
		if got := withinRange(tc.date, tc.start, tc.end); got != tc.want {
			t.Errorf("withinRange(%q, %q, %q) = %v, want %v", tc.date, tc.start, tc.end, got, tc.want)
		}
	}
}
