// collect-data runs one pass of the Collection Orchestrator (§4.6): load the
// registry, fan out a bounded worker pool across enabled resorts, persist
// every successfully normalized record, and report the run summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jimmysun0815/snow-api/internal/adapters"
	"github.com/jimmysun0815/snow-api/internal/adapters/mtnpowder"
	"github.com/jimmysun0815/snow-api/internal/adapters/onthesnow"
	"github.com/jimmysun0815/snow-api/internal/adapters/openmeteo"
	"github.com/jimmysun0815/snow-api/internal/cache"
	"github.com/jimmysun0815/snow-api/internal/config"
	"github.com/jimmysun0815/snow-api/internal/database"
	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/log"
	"github.com/jimmysun0815/snow-api/internal/orchestrator"
	"github.com/jimmysun0815/snow-api/internal/types"
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
	if err := database.Migrate(db); err != nil {
		log.Errorf("migrating schema: %v", err)
		os.Exit(1)
	}

	var repoCache database.CacheInvalidator
	if settings.RedisURL != "" {
		redisCache, err := cache.New(settings.RedisURL)
		if err != nil {
			log.Errorf("connecting to redis: %v", err)
			os.Exit(1)
		}
		defer redisCache.Close()
		repoCache = redisCache
	}
	repository := database.NewRepository(db, repoCache)

	fetcher := httpclient.New(log.GetSugaredLogger())
	mtnpowderAdapter := mtnpowder.New(fetcher)
	onTheSnowAdapter := onthesnow.New(fetcher)
	weatherAdapter := openmeteo.New(fetcher, settings.OpenMeteoAPIKey)

	sourcesFor := func(resort types.ResortDescriptor) orchestrator.Sources {
		switch resort.DataSource {
		case types.SourceMtnPowder:
			return orchestrator.Sources{
				Primary:       mtnpowderAdapter,
				Supplementary: onTheSnowSupplementary{onTheSnowAdapter},
				Weather:       weatherAdapter,
			}
		default:
			return orchestrator.Sources{
				Primary: onTheSnowPrimary{onTheSnowAdapter},
				Weather: weatherAdapter,
			}
		}
	}

	orch := orchestrator.New(sourcesFor, repository, settings.MaxWorkers)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	summary := orch.CollectAll(ctx, registry.Enabled())
	log.Infow("collection run complete",
		"total", summary.Total,
		"success", summary.Success,
		"failed", summary.Failed,
		"duration", summary.Duration,
	)
	for _, f := range summary.Failures {
		log.Warnw("resort collection failed", "resort_id", f.ResortID, "resort_name", f.ResortName, "error_type", f.ErrorType, "message", f.ErrorMessage)
	}

	if summary.Failed > 0 && summary.Success == 0 {
		os.Exit(1)
	}
}

// onTheSnowPrimary adapts onthesnow.Adapter's CollectPrimary method to the
// orchestrator's PrimaryCollector interface, used when a registry entry
// routes onthesnow as its primary source (§4.2).
type onTheSnowPrimary struct{ *onthesnow.Adapter }

func (a onTheSnowPrimary) Collect(ctx context.Context, resort types.ResortDescriptor) (*adapters.PrimaryResult, error) {
	return a.CollectPrimary(ctx, resort)
}

// onTheSnowSupplementary is a thin named wrapper so sourcesFor can pass the
// shared *onthesnow.Adapter instance as an orchestrator.SupplementaryCollector.
type onTheSnowSupplementary struct{ *onthesnow.Adapter }
