package resolver

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"maptruth/internal/domain"
)

// shortHosts are shortening domains whose links redirect to the canonical URL.
var shortHosts = []string{"goo.gl", "maps.app.goo.gl"}

var (
	placeIDParam = regexp.MustCompile(`place_id=([^&]+)`)
	placeNameSeg = regexp.MustCompile(`/place/([^/@]+)`)
	coordsSeg    = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	// Heuristic of last resort: any long id-shaped token. Documented as
	// best-effort; it can false-positive on unrelated path segments.
	longToken = regexp.MustCompile(`([A-Za-z0-9_-]{20,})`)
)

// Resolver turns a shared map URL into a place id. Branches are tried in
// confidence order; only the name-search and geocode branches touch the
// Places API.
type Resolver struct {
	places domain.PlacesClient
	hc     *http.Client
}

func New(places domain.PlacesClient, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resolver{
		places: places,
		hc:     &http.Client{Timeout: timeout},
	}
}

func (r *Resolver) Resolve(ctx context.Context, rawURL string) (string, error) {
	u := strings.TrimSpace(rawURL)

	if isShortLink(u) {
		expanded, err := r.expand(ctx, u)
		if err != nil {
			// Not fatal: pattern extraction still runs on the original URL.
			// Only the branches that need the canonical form are lost.
			log.Warn().Err(err).Str("url", u).Msg("short link expansion failed")
		} else {
			log.Debug().Str("url", expanded).Msg("short link expanded")
			u = expanded
		}
	}

	// Explicit place_id parameter wins; no network needed.
	if m := placeIDParam.FindStringSubmatch(u); m != nil {
		return m[1], nil
	}

	// Embedded place name -> text search.
	if m := placeNameSeg.FindStringSubmatch(u); m != nil {
		if id, err := r.places.FindPlaceFromText(ctx, placeName(m[1])); err == nil && id != "" {
			return id, nil
		} else if err != nil {
			log.Warn().Err(err).Msg("find place from text failed")
		}
	}

	// Embedded coordinates -> reverse geocode.
	if m := coordsSeg.FindStringSubmatch(u); m != nil {
		if id, err := r.places.ReverseGeocode(ctx, m[1], m[2]); err == nil && id != "" {
			return id, nil
		} else if err != nil {
			log.Warn().Err(err).Msg("reverse geocode failed")
		}
	}

	if m := longToken.FindStringSubmatch(u); m != nil {
		log.Debug().Str("token", m[1]).Msg("using long-token heuristic")
		return m[1], nil
	}

	return "", domain.ErrNoPlaceID
}

// expand follows redirects with a single GET and returns the final location.
func (r *Resolver) expand(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", &domain.RedirectError{URL: u, Err: err}
	}
	resp, err := r.hc.Do(req)
	if err != nil {
		return "", &domain.RedirectError{URL: u, Err: err}
	}
	defer resp.Body.Close()
	return resp.Request.URL.String(), nil
}

func isShortLink(u string) bool {
	for _, h := range shortHosts {
		if strings.Contains(u, h) {
			return true
		}
	}
	return false
}

// placeName decodes a /place/ path segment into a search query.
func placeName(seg string) string {
	s := strings.ReplaceAll(seg, "+", " ")
	if dec, err := url.QueryUnescape(s); err == nil {
		s = dec
	}
	return s
}
