// Package mtnpowder implements the "Provider A" Source Adapter (§4.2): a
// JSON feed keyed by the resort's source_id. Shape grounded on the
// teacher's controllers/aerisweather.go HTTP-GET-then-JSON-decode pattern.
package mtnpowder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jimmysun0815/snow-api/internal/adapters"
	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/types"
)

const feedURLTemplate = "https://feeds.mtnpowder.example.com/feed?resortId=%s"

// feedPayload mirrors the upstream JSON shape from spec §8 scenario 1.
type feedPayload struct {
	OperatingStatus string `json:"OperatingStatus"`
	SnowReport      struct {
		TotalOpenLifts  *int    `json:"TotalOpenLifts"`
		TotalLifts      *int    `json:"TotalLifts"`
		TotalOpenTrails *int                    `json:"TotalOpenTrails"`
		TotalTrails     *int                    `json:"TotalTrails"`
		StormTotalCM    adapters.FlexString     `json:"StormTotalCM"`
		BaseDepthCM     adapters.FlexString     `json:"BaseDepthCM"`
		SummitDepthCM   adapters.FlexString     `json:"SummitDepthCM"`
		OpeningDate     string                  `json:"OpeningDate"`
		ClosingDate     string                  `json:"ClosingDate"`
	} `json:"SnowReport"`
	CurrentConditions struct {
		Base struct {
			TemperatureC adapters.FlexString `json:"TemperatureC"`
		} `json:"Base"`
	} `json:"CurrentConditions"`
}

// Adapter is stateless and safe for concurrent use across resorts; it
// holds only a reference to the shared Fetcher.
type Adapter struct {
	fetcher *httpclient.Fetcher
}

func New(fetcher *httpclient.Fetcher) *Adapter {
	return &Adapter{fetcher: fetcher}
}

// Collect fetches and decodes the feed for one resort (§4.2).
func (a *Adapter) Collect(ctx context.Context, resort types.ResortDescriptor) (*adapters.PrimaryResult, error) {
	url := fmt.Sprintf(feedURLTemplate, resort.SourceID)

	resp, err := a.fetcher.Do(ctx, http.MethodGet, url, nil, 30*time.Second, 3)
	if err != nil {
		return nil, err
	}

	var payload feedPayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, httpclient.NewTypedError(httpclient.ErrJSON, url, err)
	}

	return &adapters.PrimaryResult{
		SourceKind:       types.SourceMtnPowder,
		OperatingStatus:  payload.OperatingStatus,
		LiftsOpen:        payload.SnowReport.TotalOpenLifts,
		LiftsTotal:       payload.SnowReport.TotalLifts,
		TrailsOpen:       payload.SnowReport.TotalOpenTrails,
		TrailsTotal:      payload.SnowReport.TotalTrails,
		NewSnowCM:        string(payload.SnowReport.StormTotalCM),
		BaseDepthCM:      string(payload.SnowReport.BaseDepthCM),
		SummitDepthCM:    string(payload.SnowReport.SummitDepthCM),
		BaseTemperatureC: string(payload.CurrentConditions.Base.TemperatureC),
		OpeningDate:      payload.SnowReport.OpeningDate,
		ClosingDate:      payload.SnowReport.ClosingDate,
	}, nil
}
