package config

import (
	"fmt"
	"os"
	"strconv"
)

// Settings is process-wide runtime configuration sourced from the
// environment (§6), distinct from the Registry.
type Settings struct {
	DatabaseDSN      string
	RedisURL         string
	OpenMeteoAPIKey  string // optional; presence selects the paid endpoint
	AdminAPIKey      string
	GoogleMapsAPIKey string // only required by the contact-enrichment task

	MaxWorkers int // default 10-20, see §4.6
	PoolSize   int // connection pool size, default max_workers + overflow
}

// LoadSettingsFromEnv reads the recognized environment variables (§6).
func LoadSettingsFromEnv() (*Settings, error) {
	s := &Settings{
		RedisURL:         os.Getenv("REDIS_URL"),
		OpenMeteoAPIKey:  os.Getenv("OPENMETEO_API_KEY"),
		AdminAPIKey:      os.Getenv("ADMIN_API_KEY"),
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		MaxWorkers:       envInt("MAX_WORKERS", 20),
	}
	s.PoolSize = envInt("DB_POOL_SIZE", s.MaxWorkers+10)

	dsn, err := buildDSN()
	if err != nil {
		return nil, err
	}
	s.DatabaseDSN = dsn

	return s, nil
}

// buildDSN assembles a single Postgres connection string, preferring
// DATABASE_URL whole-cloth and otherwise composing the discrete
// POSTGRES_* variables — the same two-path assembly as the teacher's
// TimescaleDBData.GetConnectionString.
func buildDSN() (string, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}

	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	db := os.Getenv("POSTGRES_DB")

	if host == "" || user == "" || db == "" {
		return "", fmt.Errorf("database not configured: set DATABASE_URL or POSTGRES_HOST/POSTGRES_USER/POSTGRES_DB")
	}
	if port == "" {
		port = "5432"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, db), nil
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
