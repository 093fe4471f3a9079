package profile

import "testing"

func TestDetect(t *testing.T) {
	table := DefaultTable()

	cases := []struct {
		url  string
		want SiteType
	}{
		{"https://news.naver.com/section/100", SiteNaverNews},
		{"https://search.naver.com/search.naver?where=news&query=foo", SiteNaverSearchNews},
		{"https://search.naver.com/search.naver?ssc=tab.news.all&query=foo", SiteNaverSearchNews},
		// news tab markers absent: not the news-search layout
		{"https://search.naver.com/search.naver?query=foo", SiteGeneric},
		{"https://news.google.com/home", SiteGoogleNews},
		{"https://news.daum.net/", SiteDaumNews},
		{"https://example.com/news", SiteGeneric},
		{"://not a url", SiteGeneric},
	}

	for _, tc := range cases {
		p := table.Detect(tc.url)
		if p == nil {
			t.Fatalf("Detect(%q) returned nil", tc.url)
		}
		if p.Site != tc.want {
			t.Errorf("Detect(%q) = %s, want %s", tc.url, p.Site, tc.want)
		}
	}
}

func TestDetectOrderFirstMatchWins(t *testing.T) {
	table := DefaultTable()
	// news.naver.com must resolve to the portal profile even though a
	// naver host also appears later in the table.
	p := table.Detect("https://news.naver.com/main?where=news")
	if p.Site != SiteNaverNews {
		t.Errorf("got %s, want %s", p.Site, SiteNaverNews)
	}
}

func TestProfileFallback(t *testing.T) {
	table := DefaultTable()
	if p := table.Profile(SiteType("nonexistent")); p.Site != SiteGeneric {
		t.Errorf("unknown site type resolved to %s, want generic", p.Site)
	}
}

func TestEveryProfileHasAllChains(t *testing.T) {
	table := DefaultTable()
	for site, p := range table.profiles {
		for name, chain := range map[string]Chain{
			"containers": p.Containers,
			"title":      p.Title,
			"link":       p.Link,
			"press":      p.Press,
			"date":       p.Date,
		} {
			if len(chain) == 0 {
				t.Errorf("%s: empty %s chain", site, name)
			}
		}
		for _, sel := range p.Link {
			if sel.Attr != "href" {
				t.Errorf("%s: link selector %q reads %q, want href", site, sel.Query, sel.Attr)
			}
		}
	}
}
