package client

// Coordinate is a WGS84 point.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// circle is the circular area used for location bias and restriction.
type circle struct {
	Center Coordinate `json:"center"`
	Radius float64    `json:"radius"`
}

type circleArea struct {
	Circle circle `json:"circle"`
}

// DisplayName is the localized display name of a place.
type DisplayName struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

// Photo references a photo resource attached to a place.
type Photo struct {
	Name string `json:"name"`
}

// Place mirrors the subset of the upstream place payload selected by the
// search field mask. Every field except ID is optional upstream; consumers
// must treat absence as valid.
type Place struct {
	ID          string       `json:"id"`
	DisplayName *DisplayName `json:"displayName,omitempty"`
	PrimaryType string       `json:"primaryType,omitempty"`
	Photos      []Photo      `json:"photos,omitempty"`
}

// NearbyRequest describes a nearby search. Exactly one of IncludedTypes or
// IncludedPrimaryTypes should be set; results are restricted (not biased) to
// the circle around Center.
type NearbyRequest struct {
	IncludedTypes        []string
	IncludedPrimaryTypes []string
	MaxResults           int
	Center               Coordinate
	RadiusMeters         float64
	RankByDistance       bool
}

// TextRequest describes a free-text search biased toward the circle around
// Center. Text search ranks by distance from the bias center.
type TextRequest struct {
	Query        string
	PageSize     int
	Center       Coordinate
	RadiusMeters float64
}

// AutocompleteRequest describes a prediction request. When RestaurantsOnly is
// set, predictions are restricted to the restaurant category and free-text
// query predictions are included; otherwise only specific-place predictions
// are requested.
type AutocompleteRequest struct {
	Input           string
	SessionToken    string
	Center          Coordinate
	RadiusMeters    float64
	RestaurantsOnly bool
}

// FormattedText is a text fragment inside a prediction.
type FormattedText struct {
	Text string `json:"text"`
}

// StructuredFormat splits a place prediction into main and secondary text.
type StructuredFormat struct {
	MainText      *FormattedText `json:"mainText,omitempty"`
	SecondaryText *FormattedText `json:"secondaryText,omitempty"`
}

// PlacePrediction is a prediction for a specific place.
type PlacePrediction struct {
	PlaceID          string            `json:"placeId"`
	StructuredFormat *StructuredFormat `json:"structuredFormat,omitempty"`
}

// QueryPrediction is a prediction for a search query rather than a place.
type QueryPrediction struct {
	Text *FormattedText `json:"text,omitempty"`
}

// Suggestion carries exactly one prediction variant.
type Suggestion struct {
	PlacePrediction *PlacePrediction `json:"placePrediction,omitempty"`
	QueryPrediction *QueryPrediction `json:"queryPrediction,omitempty"`
}

// LatLng is an optional-studded coordinate from the details endpoint.
type LatLng struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// PlaceDetails holds the subset of detail fields this application requests.
// Absence of a requested field in the upstream payload is not an error.
type PlaceDetails struct {
	Location    *LatLng      `json:"location,omitempty"`
	DisplayName *DisplayName `json:"displayName,omitempty"`
	PrimaryType string       `json:"primaryType,omitempty"`
	Photos      []Photo      `json:"photos,omitempty"`
}

// Wire shapes for request bodies and response envelopes.

type nearbySearchBody struct {
	IncludedTypes        []string    `json:"includedTypes,omitempty"`
	IncludedPrimaryTypes []string    `json:"includedPrimaryTypes,omitempty"`
	MaxResultCount       int         `json:"maxResultCount"`
	LocationRestriction  circleArea  `json:"locationRestriction"`
	LanguageCode         string      `json:"languageCode"`
	RankPreference       string      `json:"rankPreference,omitempty"`
}

type textSearchBody struct {
	TextQuery      string     `json:"textQuery"`
	PageSize       int        `json:"pageSize"`
	LocationBias   circleArea `json:"locationBias"`
	LanguageCode   string     `json:"languageCode"`
	RankPreference string     `json:"rankPreference,omitempty"`
}

type autocompleteBody struct {
	Input                   string     `json:"input"`
	SessionToken            string     `json:"sessionToken"`
	IncludeQueryPredictions bool       `json:"includeQueryPredictions,omitempty"`
	IncludedPrimaryTypes    []string   `json:"includedPrimaryTypes,omitempty"`
	LocationBias            circleArea `json:"locationBias"`
	LanguageCode            string     `json:"languageCode"`
	RegionCode              string     `json:"regionCode"`
}

type searchResponse struct {
	Places []Place `json:"places"`
}

type autocompleteResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}
