package searchad

import (
	"compress/gzip"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"newslens/internal/config"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func testCreds() config.Credentials {
	return config.Credentials{
		AdAPIKey:     "api-key",
		AdSecretKey:  "secret-key",
		AdCustomerID: "12345",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}
}

func newTestClient(cfg config.SearchAdConfig) *Client {
	c := NewClient(cfg, testCreds(), testLogger)
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return c
}

func TestSign(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("secret-key"))
	mac.Write([]byte("1700000000000.GET./keywordstool"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if got := sign("1700000000000", "GET", "/keywordstool", "secret-key"); got != want {
		t.Errorf("sign = %q, want %q", got, want)
	}
}

func TestSafeCount(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{float64(1200), 1200},
		{"1,200", 1200},
		{"< 10", 5},
		{"<10", 5},
		{"garbage", 0},
		{nil, 0},
	}
	for _, tc := range cases {
		if got := safeCount(tc.in); got != tc.want {
			t.Errorf("safeCount(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestKeywordStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("hintKeywords"); got != "RSV바이러스" {
			t.Errorf("hintKeywords = %q, want spaces stripped", got)
		}
		for _, h := range []string{"X-Timestamp", "X-API-KEY", "X-Customer", "X-Signature"} {
			if r.Header.Get(h) == "" {
				t.Errorf("missing header %s", h)
			}
		}
		wantSig := sign(r.Header.Get("X-Timestamp"), "GET", "/keywordstool", "secret-key")
		if got := r.Header.Get("X-Signature"); got != wantSig {
			t.Errorf("signature = %q, want %q", got, wantSig)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"keywordList":[{"relKeyword":"RSV바이러스","monthlyPcQcCnt":320,"monthlyMobileQcCnt":"< 10"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(config.SearchAdConfig{BaseURL: srv.URL})
	vol, err := c.KeywordStats(context.Background(), "RSV 바이러스")
	if err != nil {
		t.Fatalf("KeywordStats: %v", err)
	}
	if vol.PC != 320 || vol.Mobile != 5 || vol.Total != 325 {
		t.Errorf("volume = %+v", vol)
	}
}

func TestBlogTotalCountGzipResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Naver-Client-Id") != "client-id" {
			t.Errorf("client id header = %q", r.Header.Get("X-Naver-Client-Id"))
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(`{"total": 4821}`))
		gz.Close()
	}))
	defer srv.Close()

	c := newTestClient(config.SearchAdConfig{OpenAPIURL: srv.URL})
	total, err := c.BlogTotalCount(context.Background(), "RSV")
	if err != nil {
		t.Fatalf("BlogTotalCount: %v", err)
	}
	if total != 4821 {
		t.Errorf("total = %d, want 4821", total)
	}
}

func TestKeywordStatsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(config.SearchAdConfig{BaseURL: srv.URL})
	if _, err := c.KeywordStats(context.Background(), "RSV"); err == nil {
		t.Fatal("expected error on HTTP 401")
	}
}
