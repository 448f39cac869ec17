package transport

// Restaurant is the normalized domain shape for a place returned by the
// discovery endpoints. Name and primary type are optional upstream and stay
// optional here; the photo URL always resolves to something renderable.
type Restaurant struct {
	ID             string `json:"id"`
	RestaurantName string `json:"restaurantName,omitempty"`
	PrimaryType    string `json:"primaryType,omitempty"`
	PhotoURL       string `json:"photoUrl"`
}

// HomeView composes the landing-page restaurant sections.
type HomeView struct {
	Restaurants []Restaurant `json:"restaurants"`
	Specialty   []Restaurant `json:"specialty"`
}

// RestaurantSuggestion is a normalized autocomplete prediction. Type is
// either "placePrediction" (a specific restaurant, PlaceID set) or
// "queryPrediction" (a free-text query, PlaceID empty).
type RestaurantSuggestion struct {
	Type      string `json:"type"`
	PlaceID   string `json:"placeId,omitempty"`
	PlaceName string `json:"placeName"`
}

// KeywordQuery is the query string for keyword search.
type KeywordQuery struct {
	Query string `form:"q" validate:"required,min=1,max=100"`
}

// AutocompleteQuery is the query string for restaurant autocomplete.
type AutocompleteQuery struct {
	Input        string `form:"input" validate:"required,min=1,max=100"`
	SessionToken string `form:"sessionToken" validate:"required"`
}
