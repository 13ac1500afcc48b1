package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "maptruth/internal/adapters/redis"
	"maptruth/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	rating := 4.5
	in := domain.PlaceDetails{
		Name:   "Cafe X",
		Rating: &rating,
		Reviews: []domain.Review{
			{AuthorName: "Jo", Text: "Great coffee"},
		},
	}

	if err := cache.Set(ctx, "place:ABC123", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out domain.PlaceDetails
	ok, err := cache.Get(ctx, "place:ABC123", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if out.Name != "Cafe X" || out.Rating == nil || *out.Rating != 4.5 {
		t.Fatalf("unexpected value: %+v", out)
	}
	if len(out.Reviews) != 1 || out.Reviews[0].Text != "Great coffee" {
		t.Fatalf("reviews not round-tripped: %+v", out.Reviews)
	}
}

func TestCache_MissAndDel(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var out domain.PlaceDetails
	ok, err := cache.Get(ctx, "place:missing", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}

	if err := cache.Set(ctx, "place:gone", domain.PlaceDetails{Name: "X"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := cache.Del(ctx, "place:gone"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = cache.Get(ctx, "place:gone", &out)
	if ok {
		t.Fatal("expected miss after delete")
	}
}
