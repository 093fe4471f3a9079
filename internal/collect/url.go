package collect

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildSearchURL constructs the news-tab search URL for a keyword and
// an inclusive date range. Multi-word keywords become an AND-query
// using the site's boolean operator, and the nso parameter carries the
// accuracy sort (so:r) plus the period filter.
func BuildSearchURL(keyword, startDate, endDate string) string {
	search := keyword
	if strings.Contains(keyword, " ") {
		search = strings.ReplaceAll(keyword, " ", " & ")
	}

	compactStart := strings.ReplaceAll(startDate, "-", "")
	compactEnd := strings.ReplaceAll(endDate, "-", "")
	nso := fmt.Sprintf("so:r,p:from%sto%s,a:all", compactStart, compactEnd)

	q := url.Values{}
	q.Set("ssc", "tab.news.all")
	q.Set("where", "news")
	q.Set("query", search)
	q.Set("sm", "tab_dgs")
	q.Set("sort", "0")
	q.Set("pd", "3")
	q.Set("ds", strings.ReplaceAll(startDate, "-", "."))
	q.Set("de", strings.ReplaceAll(endDate, "-", "."))
	q.Set("nso", nso)
	q.Set("qdt", "1")

	return "https://search.naver.com/search.naver?" + q.Encode()
}
