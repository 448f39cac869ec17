package service

import (
	"machikado_backend/internal/discovery/transport"
	"machikado_backend/internal/places/client"
)

// placeholderPhotoURL is served when a place carries no photo reference.
const placeholderPhotoURL = "/images/restaurant-placeholder.png"

// transformPlaces maps raw place records into the normalized restaurant
// shape. Pure mapping: input order is preserved, nothing is filtered, and
// missing optional fields never produce an error.
func (s *Service) transformPlaces(places []client.Place) []transport.Restaurant {
	restaurants := make([]transport.Restaurant, 0, len(places))
	for _, place := range places {
		restaurant := transport.Restaurant{
			ID:          place.ID,
			PrimaryType: place.PrimaryType,
			PhotoURL:    placeholderPhotoURL,
		}
		if place.DisplayName != nil {
			restaurant.RestaurantName = place.DisplayName.Text
		}
		if len(place.Photos) > 0 && place.Photos[0].Name != "" {
			restaurant.PhotoURL = s.gateway.PhotoURL(place.Photos[0].Name, 0)
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants
}
