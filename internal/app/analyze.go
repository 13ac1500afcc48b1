package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"maptruth/internal/domain"
)

// AnalyzeService sequences the pipeline: resolve the URL, fetch place details
// (cache-aside), classify each review, assemble the report. It holds no
// per-request state.
type AnalyzeService struct {
	resolver   domain.URLResolver
	places     domain.PlacesClient
	classifier domain.ReviewClassifier
	cache      domain.Cache // optional; nil disables caching
	cacheTTL   time.Duration
	workers    int64
}

func NewAnalyzeService(
	res domain.URLResolver,
	places domain.PlacesClient,
	cls domain.ReviewClassifier,
	cache domain.Cache,
	ttl time.Duration,
	workers int,
) *AnalyzeService {
	if workers <= 0 {
		workers = 1
	}
	return &AnalyzeService{
		resolver:   res,
		places:     places,
		classifier: cls,
		cache:      cache,
		cacheTTL:   ttl,
		workers:    int64(workers),
	}
}

// Analyze runs the full pipeline for one shared map URL. Resolution and fetch
// failures are returned to the caller; classification failures never are —
// they surface as sentinel-filled entries inside the report.
func (s *AnalyzeService) Analyze(ctx context.Context, rawURL string) (domain.AnalysisReport, error) {
	placeID, err := s.resolver.Resolve(ctx, rawURL)
	if err != nil {
		return domain.AnalysisReport{}, err
	}
	log.Info().Str("place_id", placeID).Msg("place id resolved")

	details, err := s.fetchDetails(ctx, placeID)
	if err != nil {
		return domain.AnalysisReport{}, err
	}

	report := domain.AnalysisReport{
		PlaceDetails: domain.PlaceSummary{
			PlaceName:    details.Name,
			Address:      details.FormattedAddress,
			Rating:       details.Rating,
			TotalReviews: details.UserRatingsTotal,
		},
	}

	report.ReviewsAnalysis = s.classifyAll(ctx, details.Reviews)
	report.Success = true
	report.Message = fmt.Sprintf("Successfully analyzed %d reviews", len(report.ReviewsAnalysis))
	return report, nil
}

// AnalyzeText runs only the classifier on caller-supplied text.
func (s *AnalyzeService) AnalyzeText(ctx context.Context, reviewer, text string) domain.ReviewAnalysis {
	return s.classifier.Classify(ctx, reviewer, text)
}

func (s *AnalyzeService) fetchDetails(ctx context.Context, placeID string) (domain.PlaceDetails, error) {
	key := "place:" + placeID
	var details domain.PlaceDetails
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &details); ok {
			return details, nil
		}
	}
	details, err := s.places.PlaceDetails(ctx, placeID)
	if err != nil {
		return domain.PlaceDetails{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, details, int(s.cacheTTL.Seconds()))
	}
	return details, nil
}

// classifyAll classifies every non-blank review with a bounded fan-out.
// Output order matches the upstream review order.
func (s *AnalyzeService) classifyAll(ctx context.Context, reviews []domain.Review) []domain.ReviewAnalysis {
	kept := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return []domain.ReviewAnalysis{}
	}

	out := make([]domain.ReviewAnalysis, len(kept))
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup

	for i, r := range kept {
		if err := sem.Acquire(ctx, 1); err != nil {
			// context gone: fill the rest with sentinels so the report
			// stays structurally complete
			for j := i; j < len(kept); j++ {
				out[j] = s.classifier.Classify(ctx, kept[j].AuthorName, kept[j].Text)
			}
			break
		}
		wg.Add(1)
		go func(idx int, rev domain.Review) {
			defer wg.Done()
			defer sem.Release(1)
			out[idx] = s.classifier.Classify(ctx, rev.AuthorName, rev.Text)
		}(i, r)
	}

	wg.Wait()
	return out
}
