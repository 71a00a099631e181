// Package onthesnow implements "Provider B" (§4.2): an HTML page with a
// JSON island embedded in <script id="__NEXT_DATA__">…</script>. Used as
// the primary adapter for resorts routed that way, and always as the
// supplementary adapter (webcams, lift/trail backfill) otherwise.
package onthesnow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jimmysun0815/snow-api/internal/adapters"
	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/types"
)

const (
	islandOpenTag  = `<script id="__NEXT_DATA__"`
	scriptCloseTag = `</script>`
)

// nextData mirrors the shape of the embedded JSON island this adapter
// needs: resort status, snow report counts, and webcams.
type nextData struct {
	Props struct {
		PageProps struct {
			Resort struct {
				OpenFlag    *int                `json:"openFlag"`
				LiftsOpen   *int                `json:"liftsOpen"`
				LiftsTotal  *int                `json:"liftsTotal"`
				TrailsOpen  *int                `json:"trailsOpen"`
				TrailsTotal *int                `json:"trailsTotal"`
				NewSnow     adapters.FlexString `json:"newSnow"`
				BaseDepth   adapters.FlexString `json:"baseDepth"`
				Webcams     []struct {
					UUID         string `json:"uuid"`
					Title        string `json:"title"`
					ImageURL     string `json:"imageUrl"`
					ThumbnailURL string `json:"thumbnailUrl"`
					VideoURL     string `json:"videoUrl"`
					IsVideo      bool   `json:"isVideo"`
					Featured     bool   `json:"featured"`
				} `json:"webcams"`
			} `json:"resort"`
		} `json:"pageProps"`
	} `json:"props"`
}

// Adapter is stateless and safe for concurrent use across resorts.
type Adapter struct {
	fetcher *httpclient.Fetcher
}

func New(fetcher *httpclient.Fetcher) *Adapter {
	return &Adapter{fetcher: fetcher}
}

func (a *Adapter) fetchIsland(ctx context.Context, resort types.ResortDescriptor) (*nextData, string, error) {
	url := resort.SourceURL
	if url == "" {
		url = resort.OnTheSnowURL
	}

	resp, err := a.fetcher.Do(ctx, http.MethodGet, url, nil, 30*time.Second, 3)
	if err != nil {
		return nil, url, err
	}

	island, ok := extractIsland(string(resp.Body))
	if !ok {
		return nil, url, httpclient.NewTypedError(httpclient.ErrNoData, url, errors.New("missing __NEXT_DATA__ island"))
	}

	var nd nextData
	if err := json.Unmarshal([]byte(island), &nd); err != nil {
		return nil, url, httpclient.NewTypedError(httpclient.ErrJSON, url, err)
	}
	return &nd, url, nil
}

// extractIsland locates the JSON text inside <script id="__NEXT_DATA__">.
func extractIsland(html string) (string, bool) {
	start := strings.Index(html, islandOpenTag)
	if start == -1 {
		return "", false
	}
	tagEnd := strings.Index(html[start:], ">")
	if tagEnd == -1 {
		return "", false
	}
	contentStart := start + tagEnd + 1

	closeIdx := strings.Index(html[contentStart:], scriptCloseTag)
	if closeIdx == -1 {
		return "", false
	}

	return strings.TrimSpace(html[contentStart : contentStart+closeIdx]), true
}

// CollectPrimary implements §4.2's Provider B primary path.
func (a *Adapter) CollectPrimary(ctx context.Context, resort types.ResortDescriptor) (*adapters.PrimaryResult, error) {
	nd, _, err := a.fetchIsland(ctx, resort)
	if err != nil {
		return nil, err
	}
	r := nd.Props.PageProps.Resort

	return &adapters.PrimaryResult{
		SourceKind:  types.SourceOnTheSnow,
		OpenFlag:    r.OpenFlag,
		LiftsOpen:   r.LiftsOpen,
		LiftsTotal:  r.LiftsTotal,
		TrailsOpen:  r.TrailsOpen,
		TrailsTotal: r.TrailsTotal,
		NewSnowCM:   string(r.NewSnow),
		BaseDepthCM: string(r.BaseDepth),
	}, nil
}

// CollectSupplementary implements §4.2's "used only to extract webcams and
// backfill counts" path.
func (a *Adapter) CollectSupplementary(ctx context.Context, resort types.ResortDescriptor) (*adapters.SupplementaryResult, error) {
	nd, _, err := a.fetchIsland(ctx, resort)
	if err != nil {
		return nil, err
	}
	r := nd.Props.PageProps.Resort

	webcams := make([]types.Webcam, 0, len(r.Webcams))
	for _, w := range r.Webcams {
		webcams = append(webcams, types.Webcam{
			WebcamUUID:     w.UUID,
			Title:          w.Title,
			ImageURL:       w.ImageURL,
			ThumbnailURL:   w.ThumbnailURL,
			VideoStreamURL: w.VideoURL,
			IsVideo:        w.IsVideo,
			Featured:       w.Featured,
			Source:         "onthesnow",
		})
	}

	return &adapters.SupplementaryResult{
		Webcams:     webcams,
		TrailsOpen:  r.TrailsOpen,
		TrailsTotal: r.TrailsTotal,
	}, nil
}

