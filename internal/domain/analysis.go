package domain

// Sentinel values used when the model output cannot be trusted. Downstream
// consumers always get a structurally complete record.
const (
	SentimentUnknown   = "unknown"
	SpecificityUnknown = "unknown"
	CategoryUnknown    = "Unknown"
	RecommendUnknown   = "Unknown"
	DefaultScore       = 5
	DefaultReviewer    = "Anonymous"
)

// ReviewAnalysis is the classification of a single review. It is a view,
// produced fresh each run, and always carries the original review text so the
// derived fields can be audited against their source.
type ReviewAnalysis struct {
	Reviewer          string `json:"reviewer"`
	Sentiment         string `json:"sentiment"`
	Specificity       string `json:"specificity"`
	AuthenticityScore int    `json:"authenticity_score"`
	Category          string `json:"category"`
	Recommendation    string `json:"recommendation"`
	Summary           string `json:"summary"`
	OriginalReview    string `json:"original_review"`

	// RawOutput holds the unparsed model text when parsing failed.
	RawOutput string `json:"raw_output,omitempty"`
}

// PlaceSummary is the subset of PlaceDetails echoed at the top of a report.
type PlaceSummary struct {
	PlaceName    string   `json:"place_name,omitempty"`
	Address      string   `json:"address,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	TotalReviews *int     `json:"total_reviews,omitempty"`
}

// AnalysisReport is the sole externally visible output artifact.
type AnalysisReport struct {
	PlaceDetails    PlaceSummary     `json:"place_details"`
	ReviewsAnalysis []ReviewAnalysis `json:"reviews_analysis"`
	Success         bool             `json:"success"`
	Message         string           `json:"message"`
}
