package types

// Report is the structured analysis document produced by the
// report-generation collaborator. Numeric fields that originate from
// free-form model output (volume, sub-topic counts) are declared as
// `any` because the model intermittently emits them as strings; the
// repair pass coerces them to integers before the report is final.
type Report struct {
	ExecutiveSummary ExecutiveSummary `json:"executive_summary" bson:"executive_summary"`
	DailyTrends      []DailyTrend     `json:"daily_trends" bson:"daily_trends"`
	PeakAnalysis     []PeakEntry      `json:"peak_analysis,omitempty" bson:"peak_analysis,omitempty"`
	KeywordAnalysis  KeywordAnalysis  `json:"keyword_analysis" bson:"keyword_analysis"`
	TopicAnalysis    TopicAnalysis    `json:"detailed_topic_analysis" bson:"detailed_topic_analysis"`
	TimeSeriesFlow   TimeSeriesFlow   `json:"time_series_flow" bson:"time_series_flow"`
	Conclusion       string           `json:"conclusion" bson:"conclusion"`

	// Error is set instead of the fields above when generation failed.
	// Its presence is what distinguishes an error-shaped report from a
	// real one.
	Error     string `json:"error,omitempty" bson:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty" bson:"error_kind,omitempty"`
	RawText   string `json:"raw_response,omitempty" bson:"raw_response,omitempty"`
}

// IsError reports whether this is an error-shaped report.
func (r *Report) IsError() bool { return r.Error != "" }

// ExecutiveSummary opens the report.
type ExecutiveSummary struct {
	TotalArticles int      `json:"total_articles" bson:"total_articles"`
	ToneAnalysis  string   `json:"tone_analysis" bson:"tone_analysis"`
	KeyTakeaways  []string `json:"key_takeaways" bson:"key_takeaways"`
}

// DailyTrend is the per-calendar-day summary. Invariant after repair:
// the sub-topic counts sum exactly to Volume for every day whose
// volume coerces to a non-negative integer.
type DailyTrend struct {
	Date             string      `json:"date" bson:"date"`
	Volume           any         `json:"volume" bson:"volume"`
	OneLineSummary   string      `json:"one_line_summary,omitempty" bson:"one_line_summary,omitempty"`
	NarrativeSummary string      `json:"narrative_summary,omitempty" bson:"narrative_summary,omitempty"`
	SubTopics        []SubTopic  `json:"sub_topics" bson:"sub_topics"`
	KeyFindings      KeyFindings `json:"key_findings,omitempty" bson:"key_findings,omitempty"`
	DailyThemes      []Theme     `json:"daily_themes,omitempty" bson:"daily_themes,omitempty"`
	IssueShort       string      `json:"issue_short,omitempty" bson:"issue_short,omitempty"`
	SentimentStat    string      `json:"sentiment_stat,omitempty" bson:"sentiment_stat,omitempty"`
	KeyPeople        string      `json:"key_people,omitempty" bson:"key_people,omitempty"`
}

// SubTopic is one slice of a day's topic breakdown.
type SubTopic struct {
	Name        string  `json:"name" bson:"name"`
	Count       any     `json:"count" bson:"count"`
	Percent     float64 `json:"percent" bson:"percent"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Examples    string  `json:"examples,omitempty" bson:"examples,omitempty"`
}

// KeyFindings holds a day's analytical bullet points.
type KeyFindings struct {
	ArticleAnalysis []string `json:"article_analysis,omitempty" bson:"article_analysis,omitempty"`
	MediaFocus      []string `json:"media_focus,omitempty" bson:"media_focus,omitempty"`
	Dynamics        []string `json:"dynamics,omitempty" bson:"dynamics,omitempty"`
}

// Theme is one named daily theme.
type Theme struct {
	Name           string   `json:"name" bson:"name"`
	Stats          string   `json:"stats,omitempty" bson:"stats,omitempty"`
	CoreMessage    string   `json:"core_message,omitempty" bson:"core_message,omitempty"`
	Details        []string `json:"details,omitempty" bson:"details,omitempty"`
	ReporterTraits string   `json:"reporter_traits,omitempty" bson:"reporter_traits,omitempty"`
	SocialImpact   string   `json:"social_impact,omitempty" bson:"social_impact,omitempty"`
}

// PeakEntry annotates one of the highest-volume dates.
type PeakEntry struct {
	Order  int    `json:"order" bson:"order"`
	Date   string `json:"date" bson:"date"`
	Volume any    `json:"volume" bson:"volume"`
	Reason string `json:"reason" bson:"reason"`
}

// KeywordAnalysis ranks people, topics, and brands across the period.
type KeywordAnalysis struct {
	People          []KeywordRank `json:"people,omitempty" bson:"people,omitempty"`
	Topics          []KeywordRank `json:"topics,omitempty" bson:"topics,omitempty"`
	BrandsCompanies []KeywordRank `json:"brands_companies,omitempty" bson:"brands_companies,omitempty"`
}

// KeywordRank is one ranked keyword with its context.
type KeywordRank struct {
	Rank    int    `json:"rank" bson:"rank"`
	Keyword string `json:"keyword" bson:"keyword"`
	Count   any    `json:"count,omitempty" bson:"count,omitempty"`
	Context string `json:"context,omitempty" bson:"context,omitempty"`
}

// TopicAnalysis is the long-form topic section.
type TopicAnalysis struct {
	HotTopics           []TitledContent `json:"hot_topics,omitempty" bson:"hot_topics,omitempty"`
	ControversyAnalysis []TitledContent `json:"controversy_analysis,omitempty" bson:"controversy_analysis,omitempty"`
	BrandCollabs        BrandCollabs    `json:"brand_collabs,omitempty" bson:"brand_collabs,omitempty"`
}

// TitledContent is a title/body pair.
type TitledContent struct {
	Title   string `json:"title" bson:"title"`
	Content string `json:"content" bson:"content"`
}

// BrandCollabs summarizes brand collaboration cases.
type BrandCollabs struct {
	Overview string        `json:"overview,omitempty" bson:"overview,omitempty"`
	Cases    []CollabsCase `json:"cases,omitempty" bson:"cases,omitempty"`
}

// CollabsCase is one brand collaboration instance.
type CollabsCase struct {
	BrandName       string `json:"brand_name" bson:"brand_name"`
	Collaborator    string `json:"collaborator,omitempty" bson:"collaborator,omitempty"`
	CampaignDetail  string `json:"campaign_detail,omitempty" bson:"campaign_detail,omitempty"`
	MarketingAction string `json:"marketing_action,omitempty" bson:"marketing_action,omitempty"`
}

// TimeSeriesFlow narrates the period in three phases.
type TimeSeriesFlow struct {
	Early  TimePhase `json:"early,omitempty" bson:"early,omitempty"`
	Middle TimePhase `json:"middle,omitempty" bson:"middle,omitempty"`
	Late   TimePhase `json:"late,omitempty" bson:"late,omitempty"`
}

// TimePhase is one narrative phase.
type TimePhase struct {
	Period         string `json:"period,omitempty" bson:"period,omitempty"`
	MajorReports   string `json:"major_reports,omitempty" bson:"major_reports,omitempty"`
	PublicReaction string `json:"public_reaction,omitempty" bson:"public_reaction,omitempty"`
}

// StoredReport is the persisted envelope for one keyword's analysis,
// replaced wholesale on every re-analysis.
type StoredReport struct {
	Keyword      string          `json:"keyword" bson:"keyword"`
	Period       string          `json:"period" bson:"period"`
	SummaryStats SentimentCounts `json:"summary_stats" bson:"summary_stats"`
	Report       *Report         `json:"report" bson:"report"`
	Articles     []ArticleRecord `json:"articles" bson:"articles"`
	UpdatedAt    string          `json:"updated_at" bson:"updated_at"`
}
