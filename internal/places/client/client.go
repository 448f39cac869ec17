// Package client provides the HTTP client for the Google Places API (v1).
// All search, autocomplete, and details calls flow through a fixed-TTL
// response cache keyed by the exact request parameters; duplicate concurrent
// calls for the same key may both reach upstream, which is acceptable because
// the calls are idempotent.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"machikado_backend/platform/cache"
	"machikado_backend/platform/config"
	"machikado_backend/platform/logger"
)

const (
	searchFieldMask = "places.id,places.displayName,places.primaryType,places.photos"

	defaultPhotoMaxWidthPx = 400
)

// UpstreamError reports a non-success status from the place-search service.
type UpstreamError struct {
	Operation  string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("places %s: upstream status %d", e.Operation, e.StatusCode)
}

// Client is the HTTP client for the place-search service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	region     string
	cache      *cache.ResponseCache
	log        *logger.Logger
}

// New creates a place-search client. respCache may be nil, in which case
// every call goes straight to the upstream service.
func New(cfg config.PlacesConfig, respCache *cache.ResponseCache, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(cfg.GetPlacesBaseURL(), "/"),
		apiKey:     cfg.GetPlacesAPIKey(),
		language:   cfg.GetPlacesLanguage(),
		region:     cfg.GetPlacesRegion(),
		cache:      respCache,
		log:        log,
	}
}

// SearchNearby runs a nearby search restricted to the request circle.
// The upstream restricts by included types server-side; callers that need a
// strict type guarantee still re-filter, since the service is known to
// over-return adjacent types.
func (c *Client) SearchNearby(ctx context.Context, req NearbyRequest) ([]Place, error) {
	body := nearbySearchBody{
		IncludedTypes:        req.IncludedTypes,
		IncludedPrimaryTypes: req.IncludedPrimaryTypes,
		MaxResultCount:       req.MaxResults,
		LocationRestriction:  circleArea{Circle: circle{Center: req.Center, Radius: req.RadiusMeters}},
		LanguageCode:         c.language,
	}
	if req.RankByDistance {
		body.RankPreference = "DISTANCE"
	}

	var resp searchResponse
	if err := c.doPost(ctx, "searchNearby", "/v1/places:searchNearby", searchFieldMask, body, &resp); err != nil {
		return nil, err
	}
	return resp.Places, nil
}

// SearchText runs a free-text search biased toward the request circle and
// ranked by distance from its center.
func (c *Client) SearchText(ctx context.Context, req TextRequest) ([]Place, error) {
	body := textSearchBody{
		TextQuery:      req.Query,
		PageSize:       req.PageSize,
		LocationBias:   circleArea{Circle: circle{Center: req.Center, Radius: req.RadiusMeters}},
		LanguageCode:   c.language,
		RankPreference: "DISTANCE",
	}

	var resp searchResponse
	if err := c.doPost(ctx, "searchText", "/v1/places:searchText", searchFieldMask, body, &resp); err != nil {
		return nil, err
	}
	return resp.Places, nil
}

// Autocomplete returns raw place and query predictions for the input.
func (c *Client) Autocomplete(ctx context.Context, req AutocompleteRequest) ([]Suggestion, error) {
	body := autocompleteBody{
		Input:        req.Input,
		SessionToken: req.SessionToken,
		LocationBias: circleArea{Circle: circle{Center: req.Center, Radius: req.RadiusMeters}},
		LanguageCode: c.language,
		RegionCode:   c.region,
	}
	if req.RestaurantsOnly {
		body.IncludedPrimaryTypes = []string{"restaurant"}
		body.IncludeQueryPredictions = true
	}

	var resp autocompleteResponse
	if err := c.doPost(ctx, "autocomplete", "/v1/places:autocomplete", "", body, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// GetDetails fetches the requested detail fields for a place. Every field in
// the result is optional; the caller decides what absence means. The session
// token, when present, ties the call to a preceding autocomplete sequence.
func (c *Client) GetDetails(ctx context.Context, placeID string, fields []string, sessionToken string) (PlaceDetails, error) {
	params := url.Values{}
	params.Set("languageCode", c.language)
	if sessionToken != "" {
		params.Set("sessionToken", sessionToken)
	}

	reqURL := fmt.Sprintf("%s/v1/places/%s?%s", c.baseURL, url.PathEscape(placeID), params.Encode())
	fieldMask := strings.Join(fields, ",")

	var details PlaceDetails
	cacheKey := cache.Key("details", []byte(reqURL+"|"+fieldMask))
	if c.fromCache(ctx, cacheKey, &details) {
		return details, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return PlaceDetails{}, fmt.Errorf("create details request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	raw, err := c.execute(req, "details")
	if err != nil {
		return PlaceDetails{}, err
	}

	if err := json.Unmarshal(raw, &details); err != nil {
		return PlaceDetails{}, fmt.Errorf("decode details response: %w", err)
	}

	c.toCache(ctx, cacheKey, raw)
	return details, nil
}

// PhotoURL constructs the public media URL for a photo resource name.
// Pure string construction: no network call, deterministic given its inputs.
func (c *Client) PhotoURL(photoName string, maxWidthPx int) string {
	if maxWidthPx <= 0 {
		maxWidthPx = defaultPhotoMaxWidthPx
	}
	return fmt.Sprintf("%s/v1/%s/media?key=%s&maxWidthPx=%d", c.baseURL, photoName, c.apiKey, maxWidthPx)
}

func (c *Client) doPost(ctx context.Context, operation, path, fieldMask string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", operation, err)
	}

	cacheKey := cache.Key(operation, payload)
	if c.fromCache(ctx, cacheKey, out) {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(payload)))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	if fieldMask != "" {
		req.Header.Set("X-Goog-FieldMask", fieldMask)
	}

	raw, err := c.execute(req, operation)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}

	c.toCache(ctx, cacheKey, raw)
	return nil
}

func (c *Client) execute(req *http.Request, operation string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("places request failed", "operation", operation, "error", err)
		return nil, fmt.Errorf("places %s: %w", operation, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.UpstreamError(operation, resp.StatusCode, nil)
		return nil, &UpstreamError{Operation: operation, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", operation, err)
	}

	return raw, nil
}

// fromCache attempts to satisfy the call from the response cache.
// Any cache failure degrades to a miss; the cache never fails a request.
func (c *Client) fromCache(ctx context.Context, key string, out interface{}) bool {
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			c.log.CacheError("get", err)
		}
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.log.CacheError("decode", err)
		return false
	}
	return true
}

func (c *Client) toCache(ctx context.Context, key string, raw []byte) {
	if err := c.cache.Set(ctx, key, raw); err != nil {
		c.log.CacheError("set", err)
	}
}
