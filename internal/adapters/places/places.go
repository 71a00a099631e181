// Package places implements the Places Adapter (§4.2/§9): a text-search
// lookup followed by a details call against the Google Places API, used
// only by the supplemented contact-enrichment task (cmd/enrich-contacts),
// never by the periodic condition-collection run.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jimmysun0815/snow-api/internal/adapters"
	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/types"
)

const (
	textSearchEndpoint = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	detailsEndpoint    = "https://maps.googleapis.com/maps/api/place/details/json"
)

// Adapter is stateless and safe for concurrent use across resorts.
type Adapter struct {
	fetcher *httpclient.Fetcher
	apiKey  string

	textSearchEndpoint string
	detailsEndpoint    string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithEndpoints overrides both endpoint base URLs, for tests.
func WithEndpoints(textSearch, details string) Option {
	return func(a *Adapter) {
		a.textSearchEndpoint = textSearch
		a.detailsEndpoint = details
	}
}

func New(fetcher *httpclient.Fetcher, apiKey string, opts ...Option) *Adapter {
	a := &Adapter{
		fetcher:            fetcher,
		apiKey:             apiKey,
		textSearchEndpoint: textSearchEndpoint,
		detailsEndpoint:    detailsEndpoint,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID string `json:"place_id"`
	} `json:"results"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		FormattedAddress    string `json:"formatted_address"`
		FormattedPhoneNumber string `json:"formatted_phone_number"`
		Website             string `json:"website"`
		AddressComponents   []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"result"`
}

// Collect looks up a resort by name+location, then fetches contact
// details for the first match (§9's supplemented enrichment task).
func (a *Adapter) Collect(ctx context.Context, resort types.ResortDescriptor) (*adapters.ContactResult, error) {
	placeID, err := a.findPlaceID(ctx, resort)
	if err != nil {
		return nil, err
	}
	return a.fetchDetails(ctx, placeID)
}

func (a *Adapter) findPlaceID(ctx context.Context, resort types.ResortDescriptor) (string, error) {
	v := url.Values{}
	v.Set("query", fmt.Sprintf("%s ski resort %s", resort.Name, resort.Location))
	v.Set("key", a.apiKey)
	reqURL := a.textSearchEndpoint + "?" + v.Encode()

	resp, err := a.fetcher.Do(ctx, http.MethodGet, reqURL, nil, 30*time.Second, 3)
	if err != nil {
		return "", err
	}

	var payload textSearchResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return "", httpclient.NewTypedError(httpclient.ErrJSON, reqURL, err)
	}
	if len(payload.Results) == 0 {
		return "", httpclient.NewTypedError(httpclient.ErrNoData, reqURL, errors.New("no place match for resort"))
	}
	return payload.Results[0].PlaceID, nil
}

func (a *Adapter) fetchDetails(ctx context.Context, placeID string) (*adapters.ContactResult, error) {
	v := url.Values{}
	v.Set("place_id", placeID)
	v.Set("fields", "formatted_address,formatted_phone_number,website,address_component")
	v.Set("key", a.apiKey)
	reqURL := a.detailsEndpoint + "?" + v.Encode()

	resp, err := a.fetcher.Do(ctx, http.MethodGet, reqURL, nil, 30*time.Second, 3)
	if err != nil {
		return nil, err
	}

	var payload detailsResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, httpclient.NewTypedError(httpclient.ErrJSON, reqURL, err)
	}

	result := &adapters.ContactResult{
		Address: payload.Result.FormattedAddress,
		Phone:   payload.Result.FormattedPhoneNumber,
		Website: payload.Result.Website,
	}
	for _, c := range payload.Result.AddressComponents {
		for _, t := range c.Types {
			switch t {
			case "locality", "postal_town":
				result.City = c.LongName
			case "postal_code":
				result.ZipCode = c.LongName
			}
		}
	}
	return result, nil
}
