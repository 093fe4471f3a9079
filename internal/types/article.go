package types

// Sentiment labels assigned by the classification collaborator.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// PressUnknown is the sentinel press label used when no selector in the
// press chain yields a usable value.
const PressUnknown = "매체명 없음"

// ArticleRecord is one normalized news item extracted from a
// search-results page. Link is the identity key for deduplication.
type ArticleRecord struct {
	// Title is the article headline. Non-empty, validated against
	// known placeholder strings during extraction.
	Title string `json:"title" bson:"title"`

	// Link is the absolute article URL (http/https only).
	Link string `json:"link" bson:"link"`

	// Press is the publisher label, or PressUnknown when unresolved.
	Press string `json:"press" bson:"press"`

	// Date is the canonical YYYY-MM-DD publication date. Records
	// without a resolvable date are discarded before they exist.
	Date string `json:"date" bson:"date"`

	// Sentiment is Positive/Negative/Neutral, empty before
	// classification.
	Sentiment string `json:"sentiment,omitempty" bson:"sentiment,omitempty"`
}

// SentimentCounts aggregates classified labels for a run.
type SentimentCounts struct {
	Positive int `json:"positive" bson:"positive"`
	Negative int `json:"negative" bson:"negative"`
	Neutral  int `json:"neutral" bson:"neutral"`
}

// CountSentiments tallies the sentiment column of an article list.
// Unclassified records count as neutral.
func CountSentiments(articles []ArticleRecord) SentimentCounts {
	var c SentimentCounts
	for _, a := range articles {
		switch a.Sentiment {
		case SentimentPositive:
			c.Positive++
		case SentimentNegative:
			c.Negative++
		default:
			c.Neutral++
		}
	}
	return c
}
