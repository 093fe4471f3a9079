package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"newslens/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), testLogger)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return store
}

func sampleReport(keyword string) *types.StoredReport {
	return &types.StoredReport{
		Keyword:      keyword,
		Period:       "2025-06-01 ~ 2025-06-10",
		SummaryStats: types.SentimentCounts{Positive: 3, Negative: 1, Neutral: 6},
		Report: &types.Report{
			Conclusion: "보도량이 안정세를 유지했다.",
		},
		Articles: []types.ArticleRecord{{
			Title:     "테스트 기사",
			Link:      "https://example.com/news/1",
			Press:     "테스트신문",
			Date:      "2025-06-05",
			Sentiment: types.SentimentNeutral,
		}},
		UpdatedAt: "2025-06-10 14:30:00",
	}
}

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := sampleReport("RSV")
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "RSV")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Keyword != want.Keyword || got.Period != want.Period || got.UpdatedAt != want.UpdatedAt {
		t.Errorf("envelope mismatch: got %+v", got)
	}
	if !reflect.DeepEqual(got.SummaryStats, want.SummaryStats) {
		t.Errorf("summary stats = %+v, want %+v", got.SummaryStats, want.SummaryStats)
	}
	if len(got.Articles) != 1 || got.Articles[0].Link != want.Articles[0].Link {
		t.Errorf("articles = %+v", got.Articles)
	}
}

func TestFileStoreSaveReplacesWholesale(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sampleReport("RSV")
	if err := store.Save(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := sampleReport("RSV")
	second.Articles = nil
	second.UpdatedAt = "2025-06-11 09:00:00"
	if err := store.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load(ctx, "RSV")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Articles) != 0 {
		t.Errorf("old articles survived replacement: %+v", got.Articles)
	}
	if got.UpdatedAt != second.UpdatedAt {
		t.Errorf("updated_at = %q", got.UpdatedAt)
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background(), "없는키워드")
	if !errors.Is(err, types.ErrReportNotFound) {
		t.Errorf("err = %v, want ErrReportNotFound in chain", err)
	}
}

func TestFileStoreList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, kw := range []string{"차차", "나나", "가가"} {
		if err := store.Save(ctx, sampleReport(kw)); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"가가", "나나", "차차"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List = %v, want %v (sorted)", got, want)
	}
}

func TestFileStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleReport("RSV")); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "RSV"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, "RSV"); !errors.Is(err, types.ErrReportNotFound) {
		t.Errorf("Load after delete = %v", err)
	}
	if err := store.Delete(ctx, "RSV"); !errors.Is(err, types.ErrReportNotFound) {
		t.Errorf("second Delete = %v", err)
	}
}

func TestFileStoreKeywordCannotEscapeDataDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, testLogger)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, sampleReport("../escape")); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, ".._escape.json")); err != nil {
		t.Errorf("flattened file not found: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.json")); err == nil {
		t.Error("keyword escaped the data directory")
	}
}
