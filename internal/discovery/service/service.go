package service

import (
	"context"
	"errors"

	"machikado_backend/internal/discovery/transport"
	"machikado_backend/internal/places/client"
	"machikado_backend/platform/apperr"
	"machikado_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const (
	nearbyRadiusMeters    = 500
	specialtyRadiusMeters = 1000
	keywordRadiusMeters   = 1000
	autocompleteRadius    = 500

	maxResults = 10

	specialtyType = "ramen_restaurant"
)

// desiredTypes is the broad cuisine set shown on the landing page. The
// upstream nearby search restricts by these server-side, but is known to
// over-return adjacent types, so results are re-filtered client-side.
var desiredTypes = []string{
	"japanese_restaurant",
	"cafe",
	"cafeteria",
	"coffee_shop",
	"chinese_restaurant",
	"fast_food_restaurant",
	"hamburger_restaurant",
	"french_restaurant",
	"italian_restaurant",
	"pizza_restaurant",
	"ramen_restaurant",
	"sushi_restaurant",
	"korean_restaurant",
	"indian_restaurant",
}

// Gateway is the slice of the place-search client the orchestrator needs.
type Gateway interface {
	SearchNearby(ctx context.Context, req client.NearbyRequest) ([]client.Place, error)
	SearchText(ctx context.Context, req client.TextRequest) ([]client.Place, error)
	Autocomplete(ctx context.Context, req client.AutocompleteRequest) ([]client.Suggestion, error)
	PhotoURL(photoName string, maxWidthPx int) string
}

// Service orchestrates the page-level discovery use cases, composing the
// place-search gateway with result transformation.
type Service struct {
	gateway Gateway
	log     *logger.Logger
}

// New creates the discovery service.
func New(gateway Gateway, log *logger.Logger) *Service {
	return &Service{gateway: gateway, log: log}
}

// NearbyRestaurants returns restaurants of the broad cuisine set within 500m
// of center. Results whose reported primary type falls outside the requested
// set are dropped.
func (s *Service) NearbyRestaurants(ctx context.Context, center client.Coordinate) ([]transport.Restaurant, error) {
	places, err := s.gateway.SearchNearby(ctx, client.NearbyRequest{
		IncludedTypes: desiredTypes,
		MaxResults:    maxResults,
		Center:        center,
		RadiusMeters:  nearbyRadiusMeters,
	})
	if err != nil {
		return nil, s.upstreamError("discovery.NearbyRestaurants", err)
	}

	matching := filterByPrimaryType(places, desiredTypes)
	return s.transformPlaces(matching), nil
}

// NearbySpecialty returns ramen restaurants within 1000m of center, ranked
// by distance. The wider radius reflects that specialty shops are sparser
// than the broad set.
func (s *Service) NearbySpecialty(ctx context.Context, center client.Coordinate) ([]transport.Restaurant, error) {
	places, err := s.gateway.SearchNearby(ctx, client.NearbyRequest{
		IncludedPrimaryTypes: []string{specialtyType},
		MaxResults:           maxResults,
		Center:               center,
		RadiusMeters:         specialtyRadiusMeters,
		RankByDistance:       true,
	})
	if err != nil {
		return nil, s.upstreamError("discovery.NearbySpecialty", err)
	}

	return s.transformPlaces(places), nil
}

// Home fetches the nearby and specialty sections concurrently. Both fetches
// are independent, and both must finish before the view is returned; a
// failure in either fails the whole view rather than serving partial data.
func (s *Service) Home(ctx context.Context, center client.Coordinate) (transport.HomeView, error) {
	var view transport.HomeView

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		restaurants, err := s.NearbyRestaurants(groupCtx, center)
		if err != nil {
			return err
		}
		view.Restaurants = restaurants
		return nil
	})
	group.Go(func() error {
		specialty, err := s.NearbySpecialty(groupCtx, center)
		if err != nil {
			return err
		}
		view.Specialty = specialty
		return nil
	})

	if err := group.Wait(); err != nil {
		return transport.HomeView{}, err
	}
	return view, nil
}

// ByKeyword searches restaurants by free text, biased toward center and
// ranked by distance.
func (s *Service) ByKeyword(ctx context.Context, query string, center client.Coordinate) ([]transport.Restaurant, error) {
	places, err := s.gateway.SearchText(ctx, client.TextRequest{
		Query:        query,
		PageSize:     maxResults,
		Center:       center,
		RadiusMeters: keywordRadiusMeters,
	})
	if err != nil {
		return nil, s.upstreamError("discovery.ByKeyword", err)
	}

	return s.transformPlaces(places), nil
}

// ByCategory returns restaurants of a single primary type within 500m of
// center.
func (s *Service) ByCategory(ctx context.Context, category string, center client.Coordinate) ([]transport.Restaurant, error) {
	places, err := s.gateway.SearchNearby(ctx, client.NearbyRequest{
		IncludedPrimaryTypes: []string{category},
		MaxResults:           maxResults,
		Center:               center,
		RadiusMeters:         nearbyRadiusMeters,
	})
	if err != nil {
		return nil, s.upstreamError("discovery.ByCategory", err)
	}

	return s.transformPlaces(places), nil
}

// Autocomplete returns restaurant-restricted predictions for the input.
// Malformed suggestions from upstream are skipped, not surfaced as errors.
func (s *Service) Autocomplete(ctx context.Context, input, sessionToken string, center client.Coordinate) ([]transport.RestaurantSuggestion, error) {
	suggestions, err := s.gateway.Autocomplete(ctx, client.AutocompleteRequest{
		Input:           input,
		SessionToken:    sessionToken,
		Center:          center,
		RadiusMeters:    autocompleteRadius,
		RestaurantsOnly: true,
	})
	if err != nil {
		return nil, s.upstreamError("discovery.Autocomplete", err)
	}

	results := make([]transport.RestaurantSuggestion, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if place := suggestion.PlacePrediction; place != nil {
			if place.PlaceID == "" || place.StructuredFormat == nil || place.StructuredFormat.MainText == nil {
				continue
			}
			results = append(results, transport.RestaurantSuggestion{
				Type:      "placePrediction",
				PlaceID:   place.PlaceID,
				PlaceName: place.StructuredFormat.MainText.Text,
			})
			continue
		}
		if query := suggestion.QueryPrediction; query != nil && query.Text != nil && query.Text.Text != "" {
			results = append(results, transport.RestaurantSuggestion{
				Type:      "queryPrediction",
				PlaceName: query.Text.Text,
			})
		}
	}

	return results, nil
}

func filterByPrimaryType(places []client.Place, allowed []string) []client.Place {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, t := range allowed {
		allowedSet[t] = struct{}{}
	}

	matching := make([]client.Place, 0, len(places))
	for _, place := range places {
		if place.PrimaryType == "" {
			continue
		}
		if _, ok := allowedSet[place.PrimaryType]; ok {
			matching = append(matching, place)
		}
	}
	return matching
}

// upstreamError converts gateway failures into the generic caller-visible
// error. Status failures and transport failures get the same treatment; the
// distinction only matters for the log line.
func (s *Service) upstreamError(op string, err error) error {
	var upstream *client.UpstreamError
	if errors.As(err, &upstream) {
		s.log.UpstreamError(op, upstream.StatusCode, err)
	} else {
		s.log.Error("place gateway failure", "operation", op, "error", err)
	}
	return apperr.Upstream("restaurant search failed", err).WithOp(op)
}
