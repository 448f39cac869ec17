package transport

// Address is a saved delivery address as served to clients. The snake_case
// address_text key is part of the public contract.
type Address struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	AddressText string  `json:"address_text"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// ListResponse is the address book payload: all saved addresses plus the
// currently selected one, null when nothing is selected.
type ListResponse struct {
	AddressList     []Address `json:"addressList"`
	SelectedAddress *Address  `json:"selectedAddress"`
}

// AddressSuggestion is one autocomplete hit for a specific place. Entries
// that resolve without all three fields are dropped before they reach the
// client.
type AddressSuggestion struct {
	PlaceID     string `json:"placeId"`
	PlaceName   string `json:"placeName"`
	AddressText string `json:"address_text"`
}

// AutocompleteQuery carries the address autocomplete parameters. Lat and Lng
// are optional; absent values fall back to the configured default center.
type AutocompleteQuery struct {
	Input        string   `form:"input" validate:"required"`
	SessionToken string   `form:"sessionToken" validate:"required"`
	Lat          *float64 `form:"lat"`
	Lng          *float64 `form:"lng"`
}

// CreateRequest saves a picked autocomplete suggestion as a new address.
// The session token must be the one the autocomplete session used so the
// follow-up details call stays within the same billing session.
type CreateRequest struct {
	PlaceID      string `json:"placeId" validate:"required"`
	PlaceName    string `json:"placeName" validate:"required"`
	AddressText  string `json:"address_text" validate:"required"`
	SessionToken string `json:"sessionToken" validate:"required"`
}
