package domain

import "context"

// PlacesClient is the outbound Places API surface the pipeline consumes.
// Place ids are opaque tokens minted by the upstream API; we never construct
// one locally.
type PlacesClient interface {
	// FindPlaceFromText resolves a free-text place name to a place id.
	FindPlaceFromText(ctx context.Context, query string) (string, error)
	// PlaceDetails fetches the projected details record for a place id.
	PlaceDetails(ctx context.Context, placeID string) (PlaceDetails, error)
	// ReverseGeocode resolves coordinates to the nearest place id.
	ReverseGeocode(ctx context.Context, lat, lng string) (string, error)
}

// TextGenerator is a synchronous prompt -> completion boundary. Output is
// untyped text; callers must parse defensively.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// URLResolver derives a place id from a shared map URL.
type URLResolver interface {
	Resolve(ctx context.Context, rawURL string) (string, error)
}

// ReviewClassifier never fails: on any internal problem it yields a
// sentinel-filled ReviewAnalysis instead of an error.
type ReviewClassifier interface {
	Classify(ctx context.Context, reviewer, text string) ReviewAnalysis
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
