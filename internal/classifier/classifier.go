package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"maptruth/internal/adapters/observability"
	"maptruth/internal/domain"
)

const promptTemplate = `You are a review analysis expert.
Analyze the following map review and determine:

1. sentiment -> one of: "positive", "negative", or "neutral"
2. specificity -> one of: "high", "medium", or "low"
3. authenticity_score -> integer from 1 to 5, where 1 is highly suspicious and 5 is very authentic
4. category -> exactly one of: "Fake" or "Not Fake"
5. recommendation -> exactly one of: "Go" or "Avoid"
6. summary -> a short one-sentence reason for your decision

Base your analysis on linguistic patterns, specificity of details, and sentiment coherence.

Reviewer: %q
Review: %q

Rules:
- Output must be valid JSON only.
- Do not include extra commentary, explanations, or text outside JSON.
- Always pick exactly one category ("Fake" or "Not Fake").
- Always pick exactly one recommendation ("Go" or "Avoid").

Expected JSON format:
{
    "reviewer": %q,
    "sentiment": "positive|negative|neutral",
    "specificity": "high|medium|low",
    "authenticity_score": 1-5,
    "category": "Fake" or "Not Fake",
    "recommendation": "Go" or "Avoid",
    "summary": "brief explanation"
}`

// Classifier turns one review into a ReviewAnalysis. The model boundary is
// "produces text, parse defensively": Classify never returns an error, only a
// sentinel-filled record when the output cannot be used.
type Classifier struct {
	gen domain.TextGenerator
}

func New(gen domain.TextGenerator) *Classifier {
	return &Classifier{gen: gen}
}

func (c *Classifier) Classify(ctx context.Context, reviewer, text string) domain.ReviewAnalysis {
	if strings.TrimSpace(reviewer) == "" {
		reviewer = domain.DefaultReviewer
	}

	prompt := fmt.Sprintf(promptTemplate, reviewer, text, reviewer)
	raw, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Str("reviewer", reviewer).Msg("model call failed")
		observability.ObserveClassification("sentinel")
		return sentinel(reviewer, text, "model error: "+err.Error())
	}

	a, ok := parse(reviewer, raw)
	if !ok {
		observability.ObserveClassification("sentinel")
		return sentinel(reviewer, text, raw)
	}
	observability.ObserveClassification("parsed")
	a.OriginalReview = text
	return a
}

// modelOutput is the shape we ask the model for. Score is a float because
// models occasionally emit "4.0".
type modelOutput struct {
	Reviewer          string  `json:"reviewer"`
	Sentiment         string  `json:"sentiment"`
	Specificity       string  `json:"specificity"`
	AuthenticityScore float64 `json:"authenticity_score"`
	Category          string  `json:"category"`
	Recommendation    string  `json:"recommendation"`
	Summary           string  `json:"summary"`
}

func parse(reviewer, raw string) (domain.ReviewAnalysis, bool) {
	var m modelOutput
	if err := json.Unmarshal([]byte(extractJSON(raw)), &m); err != nil {
		return domain.ReviewAnalysis{}, false
	}

	a := domain.ReviewAnalysis{
		Reviewer:          orDefault(m.Reviewer, reviewer),
		Sentiment:         orDefault(m.Sentiment, domain.SentimentUnknown),
		Specificity:       orDefault(m.Specificity, domain.SpecificityUnknown),
		AuthenticityScore: int(m.AuthenticityScore),
		Category:          orDefault(m.Category, domain.CategoryUnknown),
		Recommendation:    orDefault(m.Recommendation, domain.RecommendUnknown),
		Summary:           orDefault(m.Summary, "No analysis available"),
	}
	if a.AuthenticityScore == 0 {
		a.AuthenticityScore = domain.DefaultScore
	}
	return a, true
}

func sentinel(reviewer, text, raw string) domain.ReviewAnalysis {
	return domain.ReviewAnalysis{
		Reviewer:          reviewer,
		Sentiment:         domain.SentimentUnknown,
		Specificity:       domain.SpecificityUnknown,
		AuthenticityScore: domain.DefaultScore,
		Category:          domain.CategoryUnknown,
		Recommendation:    domain.RecommendUnknown,
		Summary:           "Analysis failed",
		OriginalReview:    text,
		RawOutput:         raw,
	}
}

// extractJSON strips markdown code fences and surrounding chatter. Local
// models often wrap the object in ```json fences despite instructions.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			return s[i : j+1]
		}
	}
	return s
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
