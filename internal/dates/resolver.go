// Package dates resolves the free-text date fragments found in
// search-result markup ("3시간 전", "어제", "2025.6.1") into canonical
// YYYY-MM-DD strings.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NoDate is the sentinel some layouts render when an article carries no
// date at all. It resolves to nothing, like any unrecognized fragment.
const NoDate = "날짜 없음"

// Numeric relative patterns. These run before the named-token checks:
// "3일 전" must resolve as three days ago, not fall through to a
// substring match on a broader token.
var (
	minutesAgo = regexp.MustCompile(`(\d+)분\s*전`)
	hoursAgo   = regexp.MustCompile(`(\d+)시간\s*전`)
	daysAgo    = regexp.MustCompile(`(\d+)일\s*전`)
	weeksAgo   = regexp.MustCompile(`(\d+)주\s*전`)

	absoluteDotted = regexp.MustCompile(`^(\d{4})\.(\d{1,2})\.(\d{1,2})`)
	absoluteDashed = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})`)
)

// Resolve converts a scraped date fragment into a YYYY-MM-DD string
// relative to now. It returns ok=false when no pattern matches; the
// caller must discard the record rather than substitute a guess.
func Resolve(fragment string, now time.Time) (string, bool) {
	text := strings.TrimSpace(fragment)
	if text == "" || text == NoDate {
		return "", false
	}

	if m := minutesAgo.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return format(now.Add(-time.Duration(n) * time.Minute)), true
	}
	if m := hoursAgo.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return format(now.Add(-time.Duration(n) * time.Hour)), true
	}
	if m := daysAgo.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return format(now.AddDate(0, 0, -n)), true
	}
	if m := weeksAgo.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return format(now.AddDate(0, 0, -7*n)), true
	}

	switch text {
	case "방금 전", "조금 전", "금방":
		return format(now), true
	}

	switch {
	case strings.Contains(text, "오늘"):
		return format(now), true
	case strings.Contains(text, "어제"):
		return format(now.AddDate(0, 0, -1)), true
	case strings.Contains(text, "그제"):
		return format(now.AddDate(0, 0, -2)), true
	case strings.Contains(text, "이번 주"):
		return format(mondayOf(now)), true
	case strings.Contains(text, "지난 주"):
		return format(mondayOf(now).AddDate(0, 0, -7)), true
	case strings.Contains(text, "이번 달"):
		return format(firstOfMonth(now)), true
	case strings.Contains(text, "지난 달"):
		return format(firstOfMonth(now).AddDate(0, -1, 0)), true
	case strings.Contains(text, "올해"):
		return fmt.Sprintf("%04d-01-01", now.Year()), true
	case strings.Contains(text, "작년"):
		return fmt.Sprintf("%04d-01-01", now.Year()-1), true
	}

	if m := absoluteDotted.FindStringSubmatch(text); m != nil {
		return canonical(m[1], m[2], m[3]), true
	}
	if m := absoluteDashed.FindStringSubmatch(text); m != nil {
		return canonical(m[1], m[2], m[3]), true
	}

	return "", false
}

// canonical zero-pads parsed components; sites render absolute dates
// both padded ("2025.06.01.") and unpadded ("2025.6.1").
func canonical(year, month, day string) string {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

func format(t time.Time) string {
	return t.Format("2006-01-02")
}

// mondayOf truncates to the Monday of t's week.
func mondayOf(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -daysSinceMonday)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
