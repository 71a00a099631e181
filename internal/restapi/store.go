package restapi

import (
	"context"

	"gorm.io/gorm"

	"github.com/jimmysun0815/snow-api/internal/cache"
	"github.com/jimmysun0815/snow-api/internal/database"
	"github.com/jimmysun0815/snow-api/internal/types"
)

// Store is the narrow slice of internal/database.Repository the Read API
// needs. Declaring it here (instead of depending on *database.Repository
// directly) lets handler tests run against a fake, with no real Postgres.
type Store interface {
	ListEnabledResorts(ctx context.Context) ([]types.Resort, error)
	GetResortByID(ctx context.Context, id int) (*types.Resort, error)
	GetResortBySlug(ctx context.Context, slug string) (*types.Resort, error)
	Detail(ctx context.Context, resort types.Resort) (*database.ResortDetail, error)
	Trails(ctx context.Context, resortID int, pisteType, difficulty string) ([]types.Trail, error)
	SearchResorts(ctx context.Context, name, location string) ([]types.Resort, error)
	SaveQualityReport(ctx context.Context, resortID int, status string, score float64, fields map[string]string) error
	QualityReport(ctx context.Context, resortID int) (*database.QualityReportModel, error)
	DisableResort(ctx context.Context, id int) error
	EnableResort(ctx context.Context, id int) error
	DB() *gorm.DB
}

var _ Store = (*database.Repository)(nil)

// Cache is the subset of internal/cache.Cache the Read API uses for the
// resort-summary endpoint's 10-minute cache (§4.7).
type Cache = cache.Cache
