package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"machikado_backend/platform/cache"
	"machikado_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type testPlacesConfig struct {
	baseURL string
}

func (c testPlacesConfig) GetPlacesAPIKey() string   { return "test-key" }
func (c testPlacesConfig) GetPlacesBaseURL() string  { return c.baseURL }
func (c testPlacesConfig) GetPlacesLanguage() string { return "ja" }
func (c testPlacesConfig) GetPlacesRegion() string   { return "JP" }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cl := New(testPlacesConfig{baseURL: srv.URL}, nil, logger.New("development"))
	return cl, srv
}

func TestSearchNearbySendsFieldMaskAndParsesPlaces(t *testing.T) {
	var gotMask, gotKey string
	var gotBody nearbySearchBody

	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMask = r.Header.Get("X-Goog-FieldMask")
		gotKey = r.Header.Get("X-Goog-Api-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		_ = json.NewEncoder(w).Encode(searchResponse{Places: []Place{
			{ID: "p1", DisplayName: &DisplayName{Text: "一蘭 渋谷店"}, PrimaryType: "ramen_restaurant"},
			{ID: "p2"},
		}})
	})

	places, err := cl.SearchNearby(context.Background(), NearbyRequest{
		IncludedTypes: []string{"ramen_restaurant", "sushi_restaurant"},
		MaxResults:    10,
		Center:        Coordinate{Latitude: 35.6669248, Longitude: 139.6514163},
		RadiusMeters:  500,
	})
	if err != nil {
		t.Fatalf("SearchNearby failed: %v", err)
	}

	if gotMask != searchFieldMask {
		t.Fatalf("unexpected field mask %q", gotMask)
	}
	if gotKey != "test-key" {
		t.Fatalf("unexpected api key header %q", gotKey)
	}
	if gotBody.LocationRestriction.Circle.Radius != 500 {
		t.Fatalf("expected 500m restriction, got %v", gotBody.LocationRestriction.Circle.Radius)
	}
	if gotBody.LanguageCode != "ja" {
		t.Fatalf("expected languageCode ja, got %q", gotBody.LanguageCode)
	}
	if gotBody.RankPreference != "" {
		t.Fatalf("rank preference should be unset without RankByDistance, got %q", gotBody.RankPreference)
	}

	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(places))
	}
	if places[0].DisplayName.Text != "一蘭 渋谷店" {
		t.Fatalf("unexpected display name %q", places[0].DisplayName.Text)
	}
	if places[1].DisplayName != nil || places[1].PrimaryType != "" {
		t.Fatal("missing optional fields should stay absent")
	}
}

func TestSearchNearbyRanksByDistanceWhenRequested(t *testing.T) {
	var gotBody nearbySearchBody

	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(searchResponse{})
	})

	_, err := cl.SearchNearby(context.Background(), NearbyRequest{
		IncludedPrimaryTypes: []string{"ramen_restaurant"},
		MaxResults:           10,
		RadiusMeters:         1000,
		RankByDistance:       true,
	})
	if err != nil {
		t.Fatalf("SearchNearby failed: %v", err)
	}

	if gotBody.RankPreference != "DISTANCE" {
		t.Fatalf("expected DISTANCE rank preference, got %q", gotBody.RankPreference)
	}
	if len(gotBody.IncludedPrimaryTypes) != 1 || gotBody.IncludedPrimaryTypes[0] != "ramen_restaurant" {
		t.Fatalf("unexpected includedPrimaryTypes %v", gotBody.IncludedPrimaryTypes)
	}
}

func TestUpstreamErrorCarriesStatusCode(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusInternalServerError)
	})

	_, err := cl.SearchText(context.Background(), TextRequest{Query: "ラーメン", PageSize: 10})
	if err == nil {
		t.Fatal("expected error")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *UpstreamError, got %T", err)
	}
	if upstream.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", upstream.StatusCode)
	}
}

func TestAutocompleteRestaurantsOnlyShapesBody(t *testing.T) {
	var gotBody autocompleteBody

	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(autocompleteResponse{Suggestions: []Suggestion{
			{PlacePrediction: &PlacePrediction{
				PlaceID:          "abc",
				StructuredFormat: &StructuredFormat{MainText: &FormattedText{Text: "ラーメン二郎"}},
			}},
			{QueryPrediction: &QueryPrediction{Text: &FormattedText{Text: "ラーメン屋"}}},
		}})
	})

	suggestions, err := cl.Autocomplete(context.Background(), AutocompleteRequest{
		Input:           "ラーメン",
		SessionToken:    "session-1",
		RadiusMeters:    500,
		RestaurantsOnly: true,
	})
	if err != nil {
		t.Fatalf("Autocomplete failed: %v", err)
	}

	if !gotBody.IncludeQueryPredictions {
		t.Fatal("expected includeQueryPredictions for restaurant autocomplete")
	}
	if len(gotBody.IncludedPrimaryTypes) != 1 || gotBody.IncludedPrimaryTypes[0] != "restaurant" {
		t.Fatalf("unexpected includedPrimaryTypes %v", gotBody.IncludedPrimaryTypes)
	}
	if gotBody.SessionToken != "session-1" {
		t.Fatalf("session token not forwarded, got %q", gotBody.SessionToken)
	}
	if gotBody.RegionCode != "JP" {
		t.Fatalf("expected regionCode JP, got %q", gotBody.RegionCode)
	}

	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].PlacePrediction == nil || suggestions[1].QueryPrediction == nil {
		t.Fatal("prediction variants not preserved")
	}
}

func TestAutocompleteAddressModeOmitsRestaurantRestriction(t *testing.T) {
	var gotBody autocompleteBody

	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(autocompleteResponse{})
	})

	_, err := cl.Autocomplete(context.Background(), AutocompleteRequest{
		Input:        "渋谷区",
		SessionToken: "session-2",
		RadiusMeters: 1000,
	})
	if err != nil {
		t.Fatalf("Autocomplete failed: %v", err)
	}

	if gotBody.IncludeQueryPredictions {
		t.Fatal("address autocomplete must not request query predictions")
	}
	if len(gotBody.IncludedPrimaryTypes) != 0 {
		t.Fatalf("address autocomplete must not restrict types, got %v", gotBody.IncludedPrimaryTypes)
	}
}

func TestGetDetailsForwardsSessionTokenAndFieldMask(t *testing.T) {
	var gotMask, gotToken, gotLang string

	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMask = r.Header.Get("X-Goog-FieldMask")
		gotToken = r.URL.Query().Get("sessionToken")
		gotLang = r.URL.Query().Get("languageCode")

		lat, lng := 35.6669248, 139.6514163
		_ = json.NewEncoder(w).Encode(PlaceDetails{Location: &LatLng{Latitude: &lat, Longitude: &lng}})
	})

	details, err := cl.GetDetails(context.Background(), "place-1", []string{"location"}, "session-3")
	if err != nil {
		t.Fatalf("GetDetails failed: %v", err)
	}

	if gotMask != "location" {
		t.Fatalf("unexpected field mask %q", gotMask)
	}
	if gotToken != "session-3" {
		t.Fatalf("session token not forwarded, got %q", gotToken)
	}
	if gotLang != "ja" {
		t.Fatalf("expected languageCode ja, got %q", gotLang)
	}

	if details.Location == nil || details.Location.Latitude == nil {
		t.Fatal("expected location in details")
	}
	if *details.Location.Latitude != 35.6669248 {
		t.Fatalf("unexpected latitude %v", *details.Location.Latitude)
	}
}

func TestGetDetailsToleratesAbsentRequestedFields(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	details, err := cl.GetDetails(context.Background(), "place-2", []string{"location"}, "")
	if err != nil {
		t.Fatalf("GetDetails failed: %v", err)
	}
	if details.Location != nil {
		t.Fatal("absent field must decode as nil, not error")
	}
}

func TestPhotoURLIsDeterministic(t *testing.T) {
	cl := New(testPlacesConfig{baseURL: "https://places.googleapis.com"}, nil, logger.New("development"))

	first := cl.PhotoURL("places/p1/photos/ph1", 400)
	second := cl.PhotoURL("places/p1/photos/ph1", 400)
	if first != second {
		t.Fatalf("PhotoURL not deterministic: %q vs %q", first, second)
	}

	want := "https://places.googleapis.com/v1/places/p1/photos/ph1/media?key=test-key&maxWidthPx=400"
	if first != want {
		t.Fatalf("unexpected photo URL %q", first)
	}

	if cl.PhotoURL("places/p1/photos/ph1", 0) != want {
		t.Fatal("zero width should fall back to the 400px default")
	}
}

func TestRepeatedSearchIsServedFromCache(t *testing.T) {
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(searchResponse{Places: []Place{{ID: "p1"}}})
	}))
	t.Cleanup(srv.Close)

	redisSrv := miniredis.RunT(t)
	respCache := cache.NewWithClient(redis.NewClient(&redis.Options{Addr: redisSrv.Addr()}), 24*time.Hour)

	cl := New(testPlacesConfig{baseURL: srv.URL}, respCache, logger.New("development"))
	req := NearbyRequest{IncludedPrimaryTypes: []string{"ramen_restaurant"}, MaxResults: 10, RadiusMeters: 1000}

	for i := 0; i < 3; i++ {
		places, err := cl.SearchNearby(context.Background(), req)
		if err != nil {
			t.Fatalf("SearchNearby call %d failed: %v", i, err)
		}
		if len(places) != 1 || places[0].ID != "p1" {
			t.Fatalf("call %d returned unexpected places %v", i, places)
		}
	}

	if calls != 1 {
		t.Fatalf("expected a single upstream call, got %d", calls)
	}

	// A different parameter set misses the cache.
	req.RadiusMeters = 500
	if _, err := cl.SearchNearby(context.Background(), req); err != nil {
		t.Fatalf("SearchNearby failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected a second upstream call for new params, got %d", calls)
	}
}
