// api-server runs the Read API (§4.7): an HTTP service over the persisted
// resort data, with graceful shutdown on SIGINT/SIGTERM following the same
// signal-handling lifecycle the teacher's application runner uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jimmysun0815/snow-api/internal/cache"
	"github.com/jimmysun0815/snow-api/internal/config"
	"github.com/jimmysun0815/snow-api/internal/database"
	"github.com/jimmysun0815/snow-api/internal/log"
	"github.com/jimmysun0815/snow-api/internal/restapi"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
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

	db, err := database.Connect(settings.DatabaseDSN, settings.PoolSize)
	if err != nil {
		log.Errorf("connecting to database: %v", err)
		os.Exit(1)
	}

	var readCache cache.Cache
	var cacheInvalidator database.CacheInvalidator
	var redisCache *cache.RedisCache
	if settings.RedisURL != "" {
		redisCache, err = cache.New(settings.RedisURL)
		if err != nil {
			log.Errorf("connecting to redis: %v", err)
			os.Exit(1)
		}
		readCache = redisCache
		cacheInvalidator = redisCache
	}

	repository := database.NewRepository(db, cacheInvalidator)
	server := restapi.New(repository, readCache, settings.AdminAPIKey, log.GetSugaredLogger())

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Infof("api-server listening on %s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("http server error: %v", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down api-server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
	if redisCache != nil {
		_ = redisCache.Close()
	}
}
