package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/types"
)

// upsertResortClause implements "insert on new id; touch updated_at on
// existing" (§4.5 item 1): identity columns are refreshed on conflict so a
// resort's registry-sourced identity stays current with each run, and
// GORM's autoUpdateTime hook bumps updated_at. Three groups of columns are
// deliberately excluded because a collection run's Normalizer output never
// carries them and an unconditional refresh would clobber another write
// path's data with zeros/empties: "enabled" (admin soft-delete via
// disable_resort/EnableResort), "boundary" (owned by the map-geometry
// collection task's trail write path), and the contact columns "address",
// "city", "zip_code", "phone", "website", "opening_hours" (owned by the
// contact-enrichment task).
func upsertResortClause() clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"slug", "name", "location", "lat", "lon", "elevation_min", "elevation_max",
			"data_source", "source_url", "source_id", "updated_at",
		}),
	}
}

// CacheInvalidator is the narrow slice of internal/cache.Cache the
// Persistence Layer needs: deleting keys on commit (§4.5 item 6). Declared
// here, not imported from internal/cache, so database has no dependency on
// the cache package's Redis client.
type CacheInvalidator interface {
	Delete(ctx context.Context, keys ...string) error
}

// Repository is the Persistence Layer (§4.5): every write goes through a
// single connection-scoped transaction, and every commit invalidates the
// read cache keys that transaction made stale.
type Repository struct {
	db    *gorm.DB
	cache CacheInvalidator
}

// NewRepository builds a Repository. cache may be nil (e.g. in tests that
// don't exercise invalidation) — nil is treated as a no-op invalidator.
func NewRepository(db *gorm.DB, cache CacheInvalidator) *Repository {
	return &Repository{db: db, cache: cache}
}

func (r *Repository) invalidate(ctx context.Context, keys ...string) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, keys...)
}

// SaveCollectionResult performs the §4.5 write contract for one resort's
// collection result: upsert identity, insert condition (+ weather if
// present, + any new webcams), commit as one transaction, then invalidate
// the affected cache keys. On any failure the transaction rolls back and
// the error is surfaced as DATABASE_SAVE_FAILED.
func (r *Repository) SaveCollectionResult(ctx context.Context, rec types.CanonicalRecord) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resortModel := resortToModel(rec.Resort)
		if err := tx.Clauses(upsertResortClause()).Create(&resortModel).Error; err != nil {
			return fmt.Errorf("upserting resort: %w", err)
		}

		conditionModel := conditionToModel(rec.Condition)
		if err := tx.Create(&conditionModel).Error; err != nil {
			return fmt.Errorf("inserting condition snapshot: %w", err)
		}

		if rec.Weather != nil {
			weatherModel := weatherToModel(*rec.Weather)
			if err := tx.Create(&weatherModel).Error; err != nil {
				return fmt.Errorf("inserting weather snapshot: %w", err)
			}
		}

		for _, w := range rec.Webcams {
			m := webcamToModel(w)
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("inserting webcam: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return httpclient.NewTypedError(httpclient.ErrDatabaseSaveFail, "", err)
	}

	r.invalidate(ctx,
		fmt.Sprintf("resort:%d", rec.Resort.ID),
		fmt.Sprintf("resort:%s", rec.Resort.Slug),
		"resorts:all",
		"resorts:summary",
	)
	return nil
}

// SaveTrails is the separate transactional path for geometry collection
// (§4.5): set boundary if provided, delete-then-bulk-insert trails.
func (r *Repository) SaveTrails(ctx context.Context, resortID int, slug string, boundary []types.LonLat, trails []types.Trail) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if boundary != nil {
			if err := tx.Model(&ResortModel{}).Where("id = ?", resortID).
				Update("boundary", JSONColumn[[]types.LonLat]{Data: boundary}).Error; err != nil {
				return fmt.Errorf("updating boundary: %w", err)
			}
		}

		if err := tx.Where("resort_id = ?", resortID).Delete(&TrailModel{}).Error; err != nil {
			return fmt.Errorf("deleting existing trails: %w", err)
		}

		if len(trails) > 0 {
			models := make([]TrailModel, len(trails))
			for i, t := range trails {
				models[i] = trailToModel(resortID, t)
			}
			if err := tx.CreateInBatches(models, 200).Error; err != nil {
				return fmt.Errorf("inserting trails: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return httpclient.NewTypedError(httpclient.ErrDatabaseSaveFail, "", err)
	}

	r.invalidate(ctx, fmt.Sprintf("trails:%d", resortID), fmt.Sprintf("trails:%s", slug))
	return nil
}

// DisableResort is the soft-delete operation (§4.5): the row persists,
// enabled flips to false, and every cache key for the resort is invalidated.
// It is reversible by flipping enabled back (§8 testable property).
func (r *Repository) DisableResort(ctx context.Context, id int) error {
	var m ResortModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(&ResortModel{}).Where("id = ?", id).Update("enabled", false).Error; err != nil {
		return err
	}
	r.invalidate(ctx,
		fmt.Sprintf("resort:%d", id),
		fmt.Sprintf("resort:%s", m.Slug),
		fmt.Sprintf("trails:%d", id),
		fmt.Sprintf("trails:%s", m.Slug),
		"resorts:all",
		"resorts:summary",
	)
	return nil
}

// EnableResort reverses DisableResort (§9 supplemented admin flip).
func (r *Repository) EnableResort(ctx context.Context, id int) error {
	var m ResortModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(&ResortModel{}).Where("id = ?", id).Update("enabled", true).Error; err != nil {
		return err
	}
	r.invalidate(ctx, fmt.Sprintf("resort:%d", id), fmt.Sprintf("resort:%s", m.Slug), "resorts:all", "resorts:summary")
	return nil
}

func (r *Repository) DB() *gorm.DB { return r.db }
