package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"machikado_backend/internal/addresses/repository"
	"machikado_backend/internal/addresses/transport"
	"machikado_backend/internal/places/client"
	"machikado_backend/platform/apperr"
	"machikado_backend/platform/logger"
)

type fakeRepo struct {
	addresses   []repository.AddressRow
	selected    *repository.AddressRow
	selectedErr error
	insertErr   error

	inserted     []repository.InsertParams
	selectedIDs  []int64
	deletedIDs   []int64
	nextInsertID int64
}

func (f *fakeRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]repository.AddressRow, error) {
	return f.addresses, nil
}

func (f *fakeRepo) Insert(_ context.Context, params repository.InsertParams) (repository.AddressRow, error) {
	if f.insertErr != nil {
		return repository.AddressRow{}, f.insertErr
	}
	f.inserted = append(f.inserted, params)
	f.nextInsertID++
	return repository.AddressRow{
		ID:          f.nextInsertID,
		Name:        params.Name,
		AddressText: params.AddressText,
		Latitude:    params.Latitude,
		Longitude:   params.Longitude,
		UserID:      params.UserID,
	}, nil
}

func (f *fakeRepo) Delete(_ context.Context, _ uuid.UUID, addressID int64) error {
	f.deletedIDs = append(f.deletedIDs, addressID)
	return nil
}

func (f *fakeRepo) SetSelected(_ context.Context, _ uuid.UUID, addressID int64) error {
	f.selectedIDs = append(f.selectedIDs, addressID)
	return nil
}

func (f *fakeRepo) GetSelected(_ context.Context, _ uuid.UUID) (*repository.AddressRow, error) {
	return f.selected, f.selectedErr
}

type fakeGateway struct {
	suggestions []client.Suggestion
	details     client.PlaceDetails
	err         error

	lastAuto    client.AutocompleteRequest
	lastPlaceID string
	lastFields  []string
	lastToken   string
	detailCalls int
}

func (g *fakeGateway) Autocomplete(_ context.Context, req client.AutocompleteRequest) ([]client.Suggestion, error) {
	g.lastAuto = req
	return g.suggestions, g.err
}

func (g *fakeGateway) GetDetails(_ context.Context, placeID string, fields []string, sessionToken string) (client.PlaceDetails, error) {
	g.detailCalls++
	g.lastPlaceID = placeID
	g.lastFields = fields
	g.lastToken = sessionToken
	return g.details, g.err
}

type stubLocation struct{}

func (stubLocation) GetDefaultLatitude() float64  { return 35.6669248 }
func (stubLocation) GetDefaultLongitude() float64 { return 139.6990609 }

func newService(repo *fakeRepo, gateway *fakeGateway) *Service {
	return New(repo, gateway, stubLocation{}, logger.New("development"))
}

func ptr(v float64) *float64 { return &v }

func placePrediction(id, name, addr string) client.Suggestion {
	return client.Suggestion{PlacePrediction: &client.PlacePrediction{
		PlaceID: id,
		StructuredFormat: &client.StructuredFormat{
			MainText:      &client.FormattedText{Text: name},
			SecondaryText: &client.FormattedText{Text: addr},
		},
	}}
}

func TestResolveSearchCenterUsesSelectedAddress(t *testing.T) {
	repo := &fakeRepo{selected: &repository.AddressRow{ID: 3, Latitude: 35.70, Longitude: 139.70}}
	svc := newService(repo, &fakeGateway{})

	center, err := svc.ResolveSearchCenter(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if center.Latitude != 35.70 || center.Longitude != 139.70 {
		t.Fatalf("unexpected center: %+v", center)
	}
}

func TestResolveSearchCenterFallsBackToDefault(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeGateway{})

	center, err := svc.ResolveSearchCenter(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("no selection must not be an error, got %v", err)
	}
	if center.Latitude != 35.6669248 || center.Longitude != 139.6990609 {
		t.Fatalf("expected default center, got %+v", center)
	}
}

func TestResolveSearchCenterPersistenceFailureIsFatal(t *testing.T) {
	repo := &fakeRepo{selectedErr: errors.New("connection refused")}
	svc := newService(repo, &fakeGateway{})

	_, err := svc.ResolveSearchCenter(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestAutocompleteDefaultsCenterAndBiasRadius(t *testing.T) {
	gateway := &fakeGateway{}
	svc := newService(&fakeRepo{}, gateway)

	_, err := svc.Autocomplete(context.Background(), transport.AutocompleteQuery{
		Input:        "渋谷",
		SessionToken: "s1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := gateway.lastAuto
	if req.Center.Latitude != 35.6669248 || req.Center.Longitude != 139.6990609 {
		t.Fatalf("expected default center, got %+v", req.Center)
	}
	if req.RadiusMeters != 1000 {
		t.Fatalf("expected 1000m bias radius, got %v", req.RadiusMeters)
	}
	if req.RestaurantsOnly {
		t.Fatal("address autocomplete must not restrict to restaurants")
	}
	if req.SessionToken != "s1" {
		t.Fatalf("session token not forwarded: %q", req.SessionToken)
	}
}

func TestAutocompleteUsesProvidedCenter(t *testing.T) {
	gateway := &fakeGateway{}
	svc := newService(&fakeRepo{}, gateway)

	_, err := svc.Autocomplete(context.Background(), transport.AutocompleteQuery{
		Input:        "ramen",
		SessionToken: "s1",
		Lat:          ptr(35.71),
		Lng:          ptr(139.73),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gateway.lastAuto.Center.Latitude != 35.71 || gateway.lastAuto.Center.Longitude != 139.73 {
		t.Fatalf("expected provided center, got %+v", gateway.lastAuto.Center)
	}
}

func TestAutocompleteDropsIncompletePredictions(t *testing.T) {
	gateway := &fakeGateway{suggestions: []client.Suggestion{
		placePrediction("p1", "ラーメン荘", "東京都世田谷区1-2-3"),
		{PlacePrediction: &client.PlacePrediction{PlaceID: "p2"}},
		{QueryPrediction: &client.QueryPrediction{Text: &client.FormattedText{Text: "ramen"}}},
		placePrediction("p3", "", "東京都渋谷区"),
		placePrediction("p4", "カフェ", ""),
	}}
	svc := newService(&fakeRepo{}, gateway)

	results, err := svc.Autocomplete(context.Background(), transport.AutocompleteQuery{
		Input:        "r",
		SessionToken: "s1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected only the complete prediction, got %d", len(results))
	}
	got := results[0]
	if got.PlaceID != "p1" || got.PlaceName != "ラーメン荘" || got.AddressText != "東京都世田谷区1-2-3" {
		t.Fatalf("unexpected suggestion: %+v", got)
	}
}

func TestAutocompleteUpstreamFailure(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("status 500")}
	svc := newService(&fakeRepo{}, gateway)

	_, err := svc.Autocomplete(context.Background(), transport.AutocompleteQuery{
		Input:        "r",
		SessionToken: "s1",
	})
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestCreateResolvesLocationSavesAndSelects(t *testing.T) {
	repo := &fakeRepo{}
	gateway := &fakeGateway{details: client.PlaceDetails{
		Location: &client.LatLng{Latitude: ptr(35.66), Longitude: ptr(139.70)},
	}}
	svc := newService(repo, gateway)
	userID := uuid.New()

	address, err := svc.Create(context.Background(), userID, transport.CreateRequest{
		PlaceID:      "place-1",
		PlaceName:    "自宅",
		AddressText:  "東京都渋谷区1-1",
		SessionToken: "s1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gateway.lastPlaceID != "place-1" || gateway.lastToken != "s1" {
		t.Fatalf("details call used %q/%q", gateway.lastPlaceID, gateway.lastToken)
	}
	if len(gateway.lastFields) != 1 || gateway.lastFields[0] != "location" {
		t.Fatalf("expected only the location field, got %v", gateway.lastFields)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(repo.inserted))
	}
	ins := repo.inserted[0]
	if ins.UserID != userID || ins.Latitude != 35.66 || ins.Longitude != 139.70 {
		t.Fatalf("unexpected insert params: %+v", ins)
	}

	if len(repo.selectedIDs) != 1 || repo.selectedIDs[0] != address.ID {
		t.Fatalf("new address must become the selection, got %v", repo.selectedIDs)
	}
	if address.Name != "自宅" || address.AddressText != "東京都渋谷区1-1" {
		t.Fatalf("unexpected address: %+v", address)
	}
}

func TestCreateFailsWithoutResolvedLocation(t *testing.T) {
	repo := &fakeRepo{}
	gateway := &fakeGateway{details: client.PlaceDetails{}}
	svc := newService(repo, gateway)

	_, err := svc.Create(context.Background(), uuid.New(), transport.CreateRequest{
		PlaceID:      "place-1",
		PlaceName:    "自宅",
		AddressText:  "東京都渋谷区1-1",
		SessionToken: "s1",
	})
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatal("nothing may be saved without a resolved location")
	}
}

func TestListComposesAddressesAndSelection(t *testing.T) {
	repo := &fakeRepo{
		addresses: []repository.AddressRow{
			{ID: 1, Name: "自宅", AddressText: "渋谷区1-1", Latitude: 35.66, Longitude: 139.70},
			{ID: 2, Name: "職場", AddressText: "新宿区2-2", Latitude: 35.69, Longitude: 139.70},
		},
		selected: &repository.AddressRow{ID: 2, Name: "職場", AddressText: "新宿区2-2", Latitude: 35.69, Longitude: 139.70},
	}
	svc := newService(repo, &fakeGateway{})

	resp, err := svc.List(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.AddressList) != 2 {
		t.Fatalf("expected 2 addresses, got %d", len(resp.AddressList))
	}
	if resp.SelectedAddress == nil || resp.SelectedAddress.ID != 2 {
		t.Fatalf("unexpected selection: %+v", resp.SelectedAddress)
	}
}

func TestListWithoutSelectionReturnsNull(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeGateway{})

	resp, err := svc.List(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SelectedAddress != nil {
		t.Fatalf("expected no selection, got %+v", resp.SelectedAddress)
	}
	if resp.AddressList == nil {
		t.Fatal("address list must be an empty array, not null")
	}
}

func TestDeleteDelegatesToRepository(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeGateway{})

	if err := svc.Delete(context.Background(), uuid.New(), 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deletedIDs) != 1 || repo.deletedIDs[0] != 9 {
		t.Fatalf("unexpected deletes: %v", repo.deletedIDs)
	}
}
