package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"newslens/internal/types"
)

// ReportGenerator turns a classified article set into a structured
// analysis document. Generation failure is not an error return: the
// failure is packaged into a report-shaped object so the rendering
// layer can show a diagnostic state instead of a report.
type ReportGenerator struct {
	gen    Generator
	logger *slog.Logger
}

// NewReportGenerator wires a generator over any model backend.
func NewReportGenerator(gen Generator, logger *slog.Logger) *ReportGenerator {
	return &ReportGenerator{gen: gen, logger: logger.With("component", "report")}
}

// Generate produces the period report for keyword over the classified
// articles. The caller is expected to run the numeric repair pass on
// the result before persisting it.
func (g *ReportGenerator) Generate(ctx context.Context, keyword, startDate, endDate string, articles []types.ArticleRecord, counts types.SentimentCounts) *types.Report {
	prompt := reportPrompt(keyword, startDate, endDate, articles, counts)

	raw, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		g.logger.Error("report generation failed", "keyword", keyword, "error", err)
		return &types.Report{
			Error:     err.Error(),
			ErrorKind: string(KindOf(err)),
		}
	}

	var report types.Report
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &report); err != nil {
		g.logger.Error("report response is not valid JSON", "keyword", keyword, "error", err)
		return &types.Report{
			Error:     fmt.Sprintf("parse report JSON: %v", err),
			ErrorKind: string(KindOther),
			RawText:   truncate(raw, 4000),
		}
	}
	return &report
}

// reportPrompt lays out the article evidence, the ground-truth daily
// volumes, and the exact JSON shape the model must answer with.
func reportPrompt(keyword, startDate, endDate string, articles []types.ArticleRecord, counts types.SentimentCounts) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "'%s' 키워드로 %s ~ %s 기간에 수집된 네이버 뉴스 %d건을 분석해 주세요.\n\n",
		keyword, startDate, endDate, len(articles))
	fmt.Fprintf(&sb, "감성 분포: 긍정 %d건, 부정 %d건, 중립 %d건\n\n",
		counts.Positive, counts.Negative, counts.Neutral)

	sb.WriteString("일자별 기사 수 (daily_trends의 volume은 반드시 이 수치를 그대로 사용):\n")
	for _, dv := range dailyVolumes(articles) {
		fmt.Fprintf(&sb, "- %s: %d건\n", dv.date, dv.count)
	}

	sb.WriteString("\n기사 목록:\n")
	for _, a := range articles {
		fmt.Fprintf(&sb, "- [%s] %s (%s, %s)\n", a.Date, a.Title, a.Press, a.Sentiment)
	}

	sb.WriteString(`
다음 JSON 스키마로만 답하세요. 설명 문장이나 코드 블록 없이 JSON 객체 하나만 출력합니다.
{
  "executive_summary": {"total_articles": 숫자, "tone_analysis": "전체 논조 분석", "key_takeaways": ["핵심 시사점"]},
  "daily_trends": [{
    "date": "YYYY-MM-DD", "volume": 숫자,
    "one_line_summary": "한 줄 요약", "narrative_summary": "서술형 요약",
    "sub_topics": [{"name": "주제명", "count": 숫자, "percent": 숫자, "description": "설명", "examples": "대표 기사 제목"}],
    "key_findings": {"article_analysis": ["기사 분석"], "media_focus": ["언론 포커스"], "dynamics": ["여론 역학"]},
    "daily_themes": [{"name": "테마명", "stats": "수치", "core_message": "핵심 메시지", "details": ["세부 내용"]}],
    "issue_short": "이슈 요약", "sentiment_stat": "감성 통계", "key_people": "주요 인물"
  }],
  "peak_analysis": [{"order": 순위, "date": "YYYY-MM-DD", "volume": 숫자, "reason": "급증 원인"}],
  "keyword_analysis": {
    "people": [{"rank": 순위, "keyword": "인물명", "count": 숫자, "context": "맥락"}],
    "topics": [{"rank": 순위, "keyword": "토픽", "count": 숫자, "context": "맥락"}],
    "brands_companies": [{"rank": 순위, "keyword": "브랜드/기업", "count": 숫자, "context": "맥락"}]
  },
  "detailed_topic_analysis": {
    "hot_topics": [{"title": "제목", "content": "내용"}],
    "controversy_analysis": [{"title": "제목", "content": "내용"}],
    "brand_collabs": {"overview": "개요", "cases": [{"brand_name": "브랜드", "collaborator": "협업 대상", "campaign_detail": "캠페인", "marketing_action": "마케팅 활동"}]}
  },
  "time_series_flow": {
    "early": {"period": "초반 기간", "major_reports": "주요 보도", "public_reaction": "반응"},
    "middle": {"period": "중반 기간", "major_reports": "주요 보도", "public_reaction": "반응"},
    "late": {"period": "후반 기간", "major_reports": "주요 보도", "public_reaction": "반응"}
  },
  "conclusion": "종합 결론"
}
`)
	return sb.String()
}

type dailyVolume struct {
	date  string
	count int
}

func dailyVolumes(articles []types.ArticleRecord) []dailyVolume {
	byDate := make(map[string]int)
	for _, a := range articles {
		byDate[a.Date]++
	}
	out := make([]dailyVolume, 0, len(byDate))
	for d, n := range byDate {
		out = append(out, dailyVolume{date: d, count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].date < out[j].date })
	return out
}

// CleanJSON strips a code-fence wrapper and, when loose prose surrounds
// the payload, falls back to the outermost brace pair.
func CleanJSON(s string) string {
	text := StripFences(s)
	if json.Valid([]byte(text)) {
		return text
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
