// collect-geometry is the supplemented map-geometry task (§9): for every
// enabled resort, pull its boundary polygon and piste ways from OpenStreetMap
// via the Overpass adapter and replace the resort's trail set wholesale
// through internal/database.Repository.SaveTrails.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jimmysun0815/snow-api/internal/adapters/overpass"
	"github.com/jimmysun0815/snow-api/internal/config"
	"github.com/jimmysun0815/snow-api/internal/database"
	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/log"
)

func main() {
	registryPath := flag.String("registry", "registry.json", "Path to the resort registry JSON file")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	settings, err := config.LoadSettingsFromEnv()
	if err != nil {
		log.Errorf("loading settings: %v", err)
		os.Exit(1)
	}

	registry, err := config.LoadRegistry(*registryPath)
	if err != nil {
		log.Errorf("loading registry: %v", err)
		os.Exit(1)
	}

	db, err := database.Connect(settings.DatabaseDSN, settings.PoolSize)
	if err != nil {
		log.Errorf("connecting to database: %v", err)
		os.Exit(1)
	}
	repository := database.NewRepository(db, nil)

	fetcher := httpclient.New(log.GetSugaredLogger())
	adapter := overpass.New(fetcher)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Minute)
	defer cancel()

	var ok, failed int
	for _, resort := range registry.Enabled() {
		result, err := adapter.Collect(ctx, resort)
		if err != nil {
			log.Warnw("geometry collection failed", "resort_id", resort.ID, "slug", resort.Slug, "error", err)
			failed++
			continue
		}
		if err := repository.SaveTrails(ctx, resort.ID, resort.Slug, result.Boundary, result.Trails); err != nil {
			log.Warnw("saving trails failed", "resort_id", resort.ID, "error", err)
			failed++
			continue
		}
		ok++
	}

	log.Infow("map-geometry collection complete", "ok", ok, "failed", failed)
}
