// Package searchad looks up keyword search volumes through the Naver
// SearchAd API and blog-post totals through the Naver Open API. Both
// are read-only supplements to a report; failures here never block an
// analysis run.
package searchad

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"newslens/internal/config"
)

// KeywordVolume is one keyword's monthly search-volume breakdown.
type KeywordVolume struct {
	Keyword string `json:"keyword"`
	PC      int    `json:"pc"`
	Mobile  int    `json:"mobile"`
	Total   int    `json:"total"`
}

// Client signs and issues SearchAd requests.
type Client struct {
	cfg    config.SearchAdConfig
	creds  config.Credentials
	client *http.Client
	logger *slog.Logger

	// now is swappable so signature tests are deterministic.
	now func() time.Time
}

// NewClient builds a client with injected credentials.
func NewClient(cfg config.SearchAdConfig, creds config.Credentials, logger *slog.Logger) *Client {
	return &Client{
		cfg:   cfg,
		creds: creds,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				// Decompression is handled here, brotli included.
				DisableCompression: true,
			},
		},
		logger: logger.With("component", "searchad"),
		now:    time.Now,
	}
}

// KeywordStats returns the monthly PC/mobile search volume for keyword.
func (c *Client) KeywordStats(ctx context.Context, keyword string) (*KeywordVolume, error) {
	// The keyword tool rejects spaces in hint keywords.
	hint := strings.ReplaceAll(keyword, " ", "")

	uri := "/keywordstool"
	q := url.Values{}
	q.Set("hintKeywords", hint)
	q.Set("showDetail", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", c.cfg.BaseURL+uri+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("X-Timestamp", timestamp)
	req.Header.Set("X-API-KEY", c.creds.AdAPIKey)
	req.Header.Set("X-Customer", c.creds.AdCustomerID)
	req.Header.Set("X-Signature", sign(timestamp, "GET", uri, c.creds.AdSecretKey))
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("keyword stats for %q: %w", keyword, err)
	}

	var result struct {
		KeywordList []struct {
			RelKeyword         string `json:"relKeyword"`
			MonthlyPcQcCnt     any    `json:"monthlyPcQcCnt"`
			MonthlyMobileQcCnt any    `json:"monthlyMobileQcCnt"`
		} `json:"keywordList"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode keyword stats: %w", err)
	}
	if len(result.KeywordList) == 0 {
		return nil, fmt.Errorf("no stats returned for %q", keyword)
	}

	entry := result.KeywordList[0]
	pc := safeCount(entry.MonthlyPcQcCnt)
	mobile := safeCount(entry.MonthlyMobileQcCnt)
	return &KeywordVolume{
		Keyword: keyword,
		PC:      pc,
		Mobile:  mobile,
		Total:   pc + mobile,
	}, nil
}

// BlogTotalCount returns how many blog posts mention keyword.
func (c *Client) BlogTotalCount(ctx context.Context, keyword string) (int, error) {
	q := url.Values{}
	q.Set("query", keyword)
	q.Set("display", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", c.cfg.OpenAPIURL+"/v1/search/blog.json?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-Naver-Client-Id", c.creds.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.creds.ClientSecret)
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	body, err := c.do(req)
	if err != nil {
		return 0, fmt.Errorf("blog total for %q: %w", keyword, err)
	}

	var result struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("decode blog total: %w", err)
	}
	return result.Total, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	reader, err := decompressReader(resp, resp.Body)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(string(body), 512))
	}
	return body, nil
}

// sign produces the SearchAd request signature:
// base64(HMAC-SHA256("{timestamp}.{method}.{uri}", secret)).
func sign(timestamp, method, uri, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s.%s.%s", timestamp, method, uri)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// safeCount coerces the keyword tool's count shapes to an integer. Low
// volumes arrive as the literal string "< 10", counted as 5.
func safeCount(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		s := strings.TrimSpace(n)
		if strings.HasPrefix(s, "<") {
			return 5
		}
		s = strings.ReplaceAll(s, ",", "")
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
	}
	return 0
}

// decompressReader wraps a response body with the decompressor its
// Content-Encoding names.
func decompressReader(resp *http.Response, reader io.Reader) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
