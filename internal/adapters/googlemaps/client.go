package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"maptruth/internal/adapters/observability"
	"maptruth/internal/domain"
)

// detailsFields is the fixed projection requested from the details endpoint.
var detailsFields = strings.Join([]string{
	"name", "formatted_address", "rating", "user_ratings_total",
	"price_level", "opening_hours", "website", "formatted_phone_number",
	"photo", "reviews",
}, ",")

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int, timeout time.Duration) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (c *Client) FindPlaceFromText(ctx context.Context, query string) (string, error) {
	q := url.Values{}
	q.Set("input", query)
	q.Set("inputtype", "textquery")
	q.Set("fields", "place_id")

	var out struct {
		Status     string `json:"status"`
		Candidates []struct {
			PlaceID string `json:"place_id"`
		} `json:"candidates"`
	}
	if err := c.get(ctx, "place/findplacefromtext/json", q, &out); err != nil {
		return "", err
	}
	if out.Status != "OK" || len(out.Candidates) == 0 {
		return "", &domain.FetchError{Endpoint: "findplacefromtext", APIStatus: out.Status}
	}
	return out.Candidates[0].PlaceID, nil
}

func (c *Client) PlaceDetails(ctx context.Context, placeID string) (domain.PlaceDetails, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailsFields)

	var out struct {
		Status       string              `json:"status"`
		ErrorMessage string              `json:"error_message"`
		Result       domain.PlaceDetails `json:"result"`
	}
	if err := c.get(ctx, "place/details/json", q, &out); err != nil {
		return domain.PlaceDetails{}, err
	}
	if out.Status != "OK" {
		return domain.PlaceDetails{}, &domain.FetchError{Endpoint: "details", APIStatus: out.Status}
	}
	return out.Result, nil
}

func (c *Client) ReverseGeocode(ctx context.Context, lat, lng string) (string, error) {
	q := url.Values{}
	q.Set("latlng", lat+","+lng)

	var out struct {
		Status  string `json:"status"`
		Results []struct {
			PlaceID string `json:"place_id"`
		} `json:"results"`
	}
	if err := c.get(ctx, "geocode/json", q, &out); err != nil {
		return "", err
	}
	if out.Status != "OK" || len(out.Results) == 0 {
		return "", &domain.FetchError{Endpoint: "geocode", APIStatus: out.Status}
	}
	return out.Results[0].PlaceID, nil
}

// get performs one GET with client-side rate limiting and JSON decode into out.
// No retries: a failed attempt is terminal for that stage.
func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	q.Set("key", c.key)
	u := c.base + "/" + endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "maptruth/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("maps", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &domain.FetchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("maps", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.FetchError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.FetchError{Endpoint: endpoint, Err: err}
	}
	return nil
}
