// enrich-contacts is the supplemented contact-enrichment task (§9): for
// every enabled resort, look up address/phone/website via the Places
// adapter and write them directly, bypassing the collection run's upsert
// (which never touches these columns, see internal/database.Repository).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jimmysun0815/snow-api/internal/adapters/places"
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
	if settings.GoogleMapsAPIKey == "" {
		log.Errorf("GOOGLE_MAPS_API_KEY must be set to run contact enrichment")
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

	fetcher := httpclient.New(log.GetSugaredLogger())
	adapter := places.New(fetcher, settings.GoogleMapsAPIKey)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var ok, failed int
	for _, resort := range registry.Enabled() {
		contact, err := adapter.Collect(ctx, resort)
		if err != nil {
			log.Warnw("contact lookup failed", "resort_id", resort.ID, "slug", resort.Slug, "error", err)
			failed++
			continue
		}

		if err := db.Exec(
			`UPDATE resorts SET address = ?, city = ?, zip_code = ?, phone = ?, website = ? WHERE id = ?`,
			contact.Address, contact.City, contact.ZipCode, contact.Phone, contact.Website, resort.ID,
		).Error; err != nil {
			log.Warnw("writing contact info failed", "resort_id", resort.ID, "error", err)
			failed++
			continue
		}
		ok++
	}

	log.Infow("contact enrichment complete", "ok", ok, "failed", failed)
}
