// Package service implements the address book: saved delivery addresses,
// place autocomplete for adding new ones, and resolution of the search
// center every discovery operation is anchored on.
package service

import (
	"context"

	"github.com/google/uuid"

	"machikado_backend/internal/addresses/repository"
	"machikado_backend/internal/addresses/transport"
	"machikado_backend/internal/places/client"
	"machikado_backend/platform/apperr"
	"machikado_backend/platform/config"
	"machikado_backend/platform/logger"
)

const autocompleteRadiusMeters = 1000

// Gateway is the slice of the place-search client the address book needs.
type Gateway interface {
	Autocomplete(ctx context.Context, req client.AutocompleteRequest) ([]client.Suggestion, error)
	GetDetails(ctx context.Context, placeID string, fields []string, sessionToken string) (client.PlaceDetails, error)
}

// Service manages saved addresses and the user's selected search center.
type Service struct {
	repo    repository.Repository
	gateway Gateway
	cfg     config.LocationConfig
	log     *logger.Logger
}

// New creates the addresses service.
func New(repo repository.Repository, gateway Gateway, cfg config.LocationConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, gateway: gateway, cfg: cfg, log: log}
}

// List returns the user's saved addresses together with the current
// selection. No selection is a normal state, not an error.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (transport.ListResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.DatabaseError("addresses.list", err)
		return transport.ListResponse{}, apperr.Persistence("failed to load addresses", err).WithOp("addresses.List")
	}

	selected, err := s.repo.GetSelected(ctx, userID)
	if err != nil {
		s.log.DatabaseError("addresses.get_selected", err)
		return transport.ListResponse{}, apperr.Persistence("failed to load selected address", err).WithOp("addresses.List")
	}

	resp := transport.ListResponse{AddressList: make([]transport.Address, 0, len(rows))}
	for _, row := range rows {
		resp.AddressList = append(resp.AddressList, toAddress(row))
	}
	if selected != nil {
		addr := toAddress(*selected)
		resp.SelectedAddress = &addr
	}
	return resp, nil
}

// Autocomplete suggests specific places matching the input, biased around
// the given coordinate or the configured default center. Only predictions
// that carry a place id, a name and an address survive.
func (s *Service) Autocomplete(ctx context.Context, q transport.AutocompleteQuery) ([]transport.AddressSuggestion, error) {
	center := s.defaultCenter()
	if q.Lat != nil && q.Lng != nil {
		center = client.Coordinate{Latitude: *q.Lat, Longitude: *q.Lng}
	}

	suggestions, err := s.gateway.Autocomplete(ctx, client.AutocompleteRequest{
		Input:        q.Input,
		SessionToken: q.SessionToken,
		Center:       center,
		RadiusMeters: autocompleteRadiusMeters,
	})
	if err != nil {
		s.log.Error("address autocomplete failed", "error", err)
		return nil, apperr.Upstream("address autocomplete failed", err).WithOp("addresses.Autocomplete")
	}

	results := make([]transport.AddressSuggestion, 0, len(suggestions))
	for _, sg := range suggestions {
		pp := sg.PlacePrediction
		if pp == nil || pp.PlaceID == "" || pp.StructuredFormat == nil {
			continue
		}
		if pp.StructuredFormat.MainText == nil || pp.StructuredFormat.SecondaryText == nil {
			continue
		}
		name := pp.StructuredFormat.MainText.Text
		addr := pp.StructuredFormat.SecondaryText.Text
		if name == "" || addr == "" {
			continue
		}
		results = append(results, transport.AddressSuggestion{
			PlaceID:     pp.PlaceID,
			PlaceName:   name,
			AddressText: addr,
		})
	}
	return results, nil
}

// Create resolves the picked suggestion's coordinate through the place
// details endpoint, saves the address and makes it the current selection.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req transport.CreateRequest) (transport.Address, error) {
	details, err := s.gateway.GetDetails(ctx, req.PlaceID, []string{"location"}, req.SessionToken)
	if err != nil {
		s.log.Error("place details lookup failed", "placeId", req.PlaceID, "error", err)
		return transport.Address{}, apperr.Upstream("failed to resolve address location", err).WithOp("addresses.Create")
	}
	loc := details.Location
	if loc == nil || loc.Latitude == nil || loc.Longitude == nil {
		return transport.Address{}, apperr.Upstream("failed to resolve address location", nil).WithOp("addresses.Create")
	}

	row, err := s.repo.Insert(ctx, repository.InsertParams{
		UserID:      userID,
		Name:        req.PlaceName,
		AddressText: req.AddressText,
		Latitude:    *loc.Latitude,
		Longitude:   *loc.Longitude,
	})
	if err != nil {
		s.log.DatabaseError("addresses.insert", err)
		return transport.Address{}, apperr.Persistence("failed to save address", err).WithOp("addresses.Create")
	}

	if err := s.repo.SetSelected(ctx, userID, row.ID); err != nil {
		s.log.DatabaseError("addresses.set_selected", err)
		return transport.Address{}, apperr.Persistence("failed to select address", err).WithOp("addresses.Create")
	}

	return toAddress(row), nil
}

// Select makes an existing address the user's current selection.
func (s *Service) Select(ctx context.Context, userID uuid.UUID, addressID int64) error {
	if err := s.repo.SetSelected(ctx, userID, addressID); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		s.log.DatabaseError("addresses.set_selected", err)
		return apperr.Persistence("failed to select address", err).WithOp("addresses.Select")
	}
	return nil
}

// Delete removes the user's address. When the deleted address was the
// selection, the schema clears the selection and discovery falls back to
// the default center.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, addressID int64) error {
	if err := s.repo.Delete(ctx, userID, addressID); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		s.log.DatabaseError("addresses.delete", err)
		return apperr.Persistence("failed to delete address", err).WithOp("addresses.Delete")
	}
	return nil
}

// ResolveSearchCenter returns the coordinate of the user's selected address,
// or the configured default center when nothing is selected. A persistence
// failure is fatal for the calling operation.
func (s *Service) ResolveSearchCenter(ctx context.Context, userID uuid.UUID) (client.Coordinate, error) {
	selected, err := s.repo.GetSelected(ctx, userID)
	if err != nil {
		s.log.DatabaseError("addresses.get_selected", err)
		return client.Coordinate{}, apperr.Persistence("failed to load selected address", err).WithOp("addresses.ResolveSearchCenter")
	}
	if selected == nil {
		return s.defaultCenter(), nil
	}
	return client.Coordinate{Latitude: selected.Latitude, Longitude: selected.Longitude}, nil
}

func (s *Service) defaultCenter() client.Coordinate {
	return client.Coordinate{
		Latitude:  s.cfg.GetDefaultLatitude(),
		Longitude: s.cfg.GetDefaultLongitude(),
	}
}

func toAddress(row repository.AddressRow) transport.Address {
	return transport.Address{
		ID:          row.ID,
		Name:        row.Name,
		AddressText: row.AddressText,
		Latitude:    row.Latitude,
		Longitude:   row.Longitude,
	}
}
