// Package overpass implements the Map-data Adapter (§4.2/§9): a resort
// boundary polygon plus piste ways pulled from OpenStreetMap via the
// Overpass API (piste relations are not queried), used only by the
// supplemented geometry-collection task
// (cmd/collect-geometry), not by the periodic condition-collection run.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jimmysun0815/snow-api/internal/adapters"
	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/types"
	"github.com/jimmysun0815/snow-api/pkg/geo"
)

const (
	defaultEndpoint = "https://overpass-api.de/api/interpreter"
	queryTimeout    = 180 * time.Second
	bboxRadiusDeg   = 0.045 // ~5km at mid-latitudes
)

// Adapter is stateless and safe for concurrent use across resorts.
type Adapter struct {
	fetcher  *httpclient.Fetcher
	endpoint string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithEndpoint overrides the Overpass interpreter URL, for tests.
func WithEndpoint(url string) Option {
	return func(a *Adapter) { a.endpoint = url }
}

func New(fetcher *httpclient.Fetcher, opts ...Option) *Adapter {
	a := &Adapter{fetcher: fetcher, endpoint: defaultEndpoint}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type overpassElement struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Tags map[string]string `json:"tags"`
	Geometry []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"geometry"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// Collect runs the boundary query and the piste query for one resort and
// returns the combined geometry (§9's supplemented map-geometry task).
func (a *Adapter) Collect(ctx context.Context, resort types.ResortDescriptor) (*adapters.MapResult, error) {
	boundary, err := a.collectBoundary(ctx, resort)
	if err != nil {
		return nil, err
	}
	trails, err := a.collectTrails(ctx, resort)
	if err != nil {
		return nil, err
	}
	return &adapters.MapResult{Boundary: boundary, Trails: trails}, nil
}

func (a *Adapter) collectBoundary(ctx context.Context, resort types.ResortDescriptor) ([]types.LonLat, error) {
	query := fmt.Sprintf(`
[out:json][timeout:180];
(
  relation["landuse"="winter_sports"](around:5000,%s,%s);
  way["landuse"="winter_sports"](around:5000,%s,%s);
);
out geom;
`, lat(resort), lon(resort), lat(resort), lon(resort))

	resp, err := a.query(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, el := range resp.Elements {
		if len(el.Geometry) == 0 {
			continue
		}
		points := make([]types.LonLat, 0, len(el.Geometry))
		for _, pt := range el.Geometry {
			points = append(points, types.LonLat{pt.Lon, pt.Lat})
		}
		return points, nil
	}
	return nil, httpclient.NewTypedError(httpclient.ErrNoData, a.endpoint, fmt.Errorf("no winter_sports boundary found near resort %d", resort.ID))
}

func (a *Adapter) collectTrails(ctx context.Context, resort types.ResortDescriptor) ([]types.Trail, error) {
	minLat, minLon, maxLat, maxLon := bbox(resort)
	query := fmt.Sprintf(`
[out:json][timeout:180];
(
  way["piste:type"](%s,%s,%s,%s);
);
out geom;
`, fmtCoord(minLat), fmtCoord(minLon), fmtCoord(maxLat), fmtCoord(maxLon))

	resp, err := a.query(ctx, query)
	if err != nil {
		return nil, err
	}

	trails := make([]types.Trail, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		geometry := make([]types.LonLat, 0, len(el.Geometry))
		for _, pt := range el.Geometry {
			geometry = append(geometry, types.LonLat{pt.Lon, pt.Lat})
		}
		trails = append(trails, types.Trail{
			ResortID:     resort.ID,
			OSMID:        strconv.FormatInt(el.ID, 10),
			OSMType:      el.Type,
			Name:         el.Tags["name"],
			Difficulty:   difficultyFromPisteTag(el.Tags["piste:difficulty"]),
			PisteType:    el.Tags["piste:type"],
			Geometry:     geometry,
			LengthMeters: polylineLengthMeters(geometry),
			Lit:          el.Tags["lit"] == "yes",
			Grooming:     el.Tags["piste:grooming"],
			Width:        el.Tags["width"],
			Ref:          el.Tags["ref"],
		})
	}
	return trails, nil
}

func (a *Adapter) query(ctx context.Context, query string) (*overpassResponse, error) {
	body := []byte("data=" + url.QueryEscape(query))
	resp, err := a.fetcher.Do(ctx, http.MethodPost, a.endpoint, body, queryTimeout, 3)
	if err != nil {
		return nil, err
	}
	var out overpassResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, httpclient.NewTypedError(httpclient.ErrJSON, a.endpoint, err)
	}
	return &out, nil
}

func difficultyFromPisteTag(tag string) types.Difficulty {
	switch tag {
	case "novice":
		return types.DifficultyNovice
	case "easy":
		return types.DifficultyEasy
	case "intermediate":
		return types.DifficultyIntermediate
	case "advanced":
		return types.DifficultyAdvanced
	case "expert":
		return types.DifficultyExpert
	case "freeride":
		return types.DifficultyFreeride
	default:
		return types.DifficultyUnknown
	}
}

// polylineLengthMeters sums Haversine segment distances along a trail's
// geometry, using the same great-circle formula the Read API uses for
// nearby-search.
func polylineLengthMeters(points []types.LonLat) float64 {
	if len(points) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += geo.HaversineMeters(points[i-1][1], points[i-1][0], points[i][1], points[i][0])
	}
	return total
}

func lat(r types.ResortDescriptor) string { return fmtCoord(r.Lat) }
func lon(r types.ResortDescriptor) string { return fmtCoord(r.Lon) }

func fmtCoord(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func bbox(r types.ResortDescriptor) (minLat, minLon, maxLat, maxLon float64) {
	return r.Lat - bboxRadiusDeg, r.Lon - bboxRadiusDeg, r.Lat + bboxRadiusDeg, r.Lon + bboxRadiusDeg
}
