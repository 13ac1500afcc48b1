package googlemaps_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"maptruth/internal/adapters/googlemaps"
	"maptruth/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*googlemaps.Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	cl, err := googlemaps.New(ts.URL, "test-key", 100, 2*time.Second) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl, ts
}

func TestPlaceDetails_OK_RoundTrip(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("place_id"); got != "ABC123" {
			t.Errorf("place_id = %q", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"result": {
				"name": "Cafe X",
				"formatted_address": "1 Main St",
				"rating": 4.5,
				"user_ratings_total": 12,
				"reviews": [{"text": "Great coffee", "author_name": "Jo", "rating": 5}]
			}
		}`))
	})

	d, err := cl.PlaceDetails(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Name != "Cafe X" || d.FormattedAddress != "1 Main St" {
		t.Fatalf("unexpected details: %+v", d)
	}
	if d.Rating == nil || *d.Rating != 4.5 {
		t.Fatalf("rating not round-tripped: %+v", d.Rating)
	}
	if d.UserRatingsTotal == nil || *d.UserRatingsTotal != 12 {
		t.Fatalf("user_ratings_total not round-tripped: %+v", d.UserRatingsTotal)
	}
	if len(d.Reviews) != 1 || d.Reviews[0].Text != "Great coffee" || d.Reviews[0].AuthorName != "Jo" {
		t.Fatalf("unexpected reviews: %+v", d.Reviews)
	}
}

func TestPlaceDetails_NonOKStatus(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "bad key"}`))
	})

	_, err := cl.PlaceDetails(context.Background(), "ABC123")
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.APIStatus != "REQUEST_DENIED" {
		t.Fatalf("APIStatus = %q", fe.APIStatus)
	}
}

func TestPlaceDetails_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close() // force a connection error

	cl, err := googlemaps.New(ts.URL, "test-key", 100, time.Second)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err = cl.PlaceDetails(context.Background(), "ABC123")
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.APIStatus != "" {
		t.Fatalf("transport failure should not carry an API status: %q", fe.APIStatus)
	}
}

func TestFindPlaceFromText(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("input"); got != "Cafe X" {
			t.Errorf("input = %q", got)
		}
		if got := r.URL.Query().Get("inputtype"); got != "textquery" {
			t.Errorf("inputtype = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "OK", "candidates": [{"place_id": "XYZ789"}]}`))
	})

	id, err := cl.FindPlaceFromText(context.Background(), "Cafe X")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id != "XYZ789" {
		t.Fatalf("place id = %q", id)
	}
}

func TestFindPlaceFromText_NoCandidates(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "candidates": []}`))
	})

	if _, err := cl.FindPlaceFromText(context.Background(), "nowhere"); err == nil {
		t.Fatal("expected error for zero candidates")
	}
}

func TestReverseGeocode(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("latlng"); got != "48.85,2.29" {
			t.Errorf("latlng = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "OK", "results": [{"place_id": "GEO42"}]}`))
	})

	id, err := cl.ReverseGeocode(context.Background(), "48.85", "2.29")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id != "GEO42" {
		t.Fatalf("place id = %q", id)
	}
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := googlemaps.New("https://example.com", "", 5, time.Second); err == nil {
		t.Fatal("expected error for empty key")
	}
}
