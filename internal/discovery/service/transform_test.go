package service

import (
	"testing"

	"machikado_backend/internal/places/client"
)

func TestTransformUsesPlaceholderWithoutPhotos(t *testing.T) {
	svc := newTestService(&fakeGateway{})

	restaurants := svc.transformPlaces([]client.Place{
		{ID: "p1", DisplayName: &client.DisplayName{Text: "すし匠"}, PrimaryType: "sushi_restaurant"},
	})

	if len(restaurants) != 1 {
		t.Fatalf("expected 1 restaurant, got %d", len(restaurants))
	}
	if restaurants[0].PhotoURL != placeholderPhotoURL {
		t.Fatalf("expected placeholder photo, got %q", restaurants[0].PhotoURL)
	}
	if restaurants[0].RestaurantName != "すし匠" {
		t.Fatalf("unexpected name %q", restaurants[0].RestaurantName)
	}
}

func TestTransformResolvesFirstPhoto(t *testing.T) {
	svc := newTestService(&fakeGateway{})

	restaurants := svc.transformPlaces([]client.Place{
		{ID: "p1", Photos: []client.Photo{{Name: "places/p1/photos/a"}, {Name: "places/p1/photos/b"}}},
	})

	if restaurants[0].PhotoURL != "https://photos.test/places/p1/photos/a" {
		t.Fatalf("expected first photo to be resolved, got %q", restaurants[0].PhotoURL)
	}
}

func TestTransformToleratesMissingOptionals(t *testing.T) {
	svc := newTestService(&fakeGateway{})

	restaurants := svc.transformPlaces([]client.Place{{ID: "p1"}})

	if restaurants[0].RestaurantName != "" {
		t.Fatalf("missing display name must stay empty, got %q", restaurants[0].RestaurantName)
	}
	if restaurants[0].PrimaryType != "" {
		t.Fatalf("missing primary type must stay empty, got %q", restaurants[0].PrimaryType)
	}
	if restaurants[0].PhotoURL != placeholderPhotoURL {
		t.Fatalf("expected placeholder, got %q", restaurants[0].PhotoURL)
	}
}

func TestTransformPreservesInputOrder(t *testing.T) {
	svc := newTestService(&fakeGateway{})

	restaurants := svc.transformPlaces([]client.Place{{ID: "b"}, {ID: "a"}, {ID: "c"}})

	got := []string{restaurants[0].ID, restaurants[1].ID, restaurants[2].ID}
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order not preserved: got %v", got)
		}
	}
}
