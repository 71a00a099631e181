package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jimmysun0815/snow-api/internal/types"
)

// ResortDetail bundles a resort with its most recent condition and
// weather snapshots and webcams — the shape §4.7's per-resort endpoints
// serve.
type ResortDetail struct {
	Resort    types.Resort
	Condition *types.ConditionSnapshot
	Weather   *types.WeatherSnapshot
	Webcams   []types.Webcam
}

// ListEnabledResorts returns every enabled resort's identity row.
func (r *Repository) ListEnabledResorts(ctx context.Context) ([]types.Resort, error) {
	var models []ResortModel
	if err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]types.Resort, len(models))
	for i, m := range models {
		out[i] = modelToResort(m)
	}
	return out, nil
}

// GetResortByID returns a resort by id, or gorm.ErrRecordNotFound.
func (r *Repository) GetResortByID(ctx context.Context, id int) (*types.Resort, error) {
	var m ResortModel
	if err := r.db.WithContext(ctx).Where("id = ? AND enabled = ?", id, true).First(&m).Error; err != nil {
		return nil, err
	}
	res := modelToResort(m)
	return &res, nil
}

// GetResortBySlug returns a resort by slug, or gorm.ErrRecordNotFound.
func (r *Repository) GetResortBySlug(ctx context.Context, slug string) (*types.Resort, error) {
	var m ResortModel
	if err := r.db.WithContext(ctx).Where("slug = ? AND enabled = ?", slug, true).First(&m).Error; err != nil {
		return nil, err
	}
	res := modelToResort(m)
	return &res, nil
}

// LatestCondition returns the most recent Condition Snapshot for a resort,
// or nil if none exists (§8: "matches the row with the maximum timestamp").
func (r *Repository) LatestCondition(ctx context.Context, resortID int) (*types.ConditionSnapshot, error) {
	var m ConditionModel
	err := r.db.WithContext(ctx).Where("resort_id = ?", resortID).Order("timestamp DESC").First(&m).Error
	if err != nil {
		return nil, err
	}
	c := modelToCondition(m)
	return &c, nil
}

// LatestWeather returns the most recent Weather Snapshot for a resort.
func (r *Repository) LatestWeather(ctx context.Context, resortID int) (*types.WeatherSnapshot, error) {
	var m WeatherModel
	err := r.db.WithContext(ctx).Where("resort_id = ?", resortID).Order("timestamp DESC").First(&m).Error
	if err != nil {
		return nil, err
	}
	w := modelToWeather(m)
	return &w, nil
}

// LatestWebcams returns the single most recent row per webcam_uuid
// (§3: "the read API returns the single most recent row per webcam_uuid").
func (r *Repository) LatestWebcams(ctx context.Context, resortID int) ([]types.Webcam, error) {
	var models []WebcamModel
	err := r.db.WithContext(ctx).
		Distinct("ON (webcam_uuid) *").
		Where("resort_id = ?", resortID).
		Order("webcam_uuid, last_updated DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]types.Webcam, len(models))
	for i, m := range models {
		out[i] = modelToWebcam(m)
	}
	return out, nil
}

// Detail assembles the full per-resort detail view used by
// /api/resorts/{id} and friends.
func (r *Repository) Detail(ctx context.Context, resort types.Resort) (*ResortDetail, error) {
	d := &ResortDetail{Resort: resort}

	cond, err := r.LatestCondition(ctx, resort.ID)
	if err == nil {
		d.Condition = cond
	}
	weather, err := r.LatestWeather(ctx, resort.ID)
	if err == nil {
		d.Weather = weather
	}
	webcams, err := r.LatestWebcams(ctx, resort.ID)
	if err == nil {
		d.Webcams = webcams
	}
	return d, nil
}

// Trails returns the current trail set for a resort, optionally filtered
// by piste type and/or difficulty (§4.7).
func (r *Repository) Trails(ctx context.Context, resortID int, pisteType, difficulty string) ([]types.Trail, error) {
	q := r.db.WithContext(ctx).Where("resort_id = ?", resortID)
	if pisteType != "" {
		q = q.Where("piste_type = ?", pisteType)
	}
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}
	var models []TrailModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]types.Trail, len(models))
	for i, m := range models {
		out[i] = modelToTrail(m)
	}
	return out, nil
}

// SearchResorts performs a case-insensitive substring match on name and/or
// location, OR-ed together when both are given (§4.7).
func (r *Repository) SearchResorts(ctx context.Context, name, location string) ([]types.Resort, error) {
	q := r.db.WithContext(ctx).Where("enabled = ?", true)

	switch {
	case name != "" && location != "":
		q = q.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?",
			"%"+strings.ToLower(name)+"%", "%"+strings.ToLower(location)+"%")
	case name != "":
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	case location != "":
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}

	var models []ResortModel
	if err := q.Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]types.Resort, len(models))
	for i, m := range models {
		out[i] = modelToResort(m)
	}
	return out, nil
}

// SaveQualityReport upserts the latest Quality Monitor report for a resort.
func (r *Repository) SaveQualityReport(ctx context.Context, resortID int, status string, score float64, fields map[string]string) error {
	m := QualityReportModel{
		ResortID: resortID,
		Status:   status,
		Score:    score,
		Fields:   JSONColumn[map[string]string]{Data: fields},
	}
	return r.db.WithContext(ctx).Save(&m).Error
}

// QualityReport returns the last persisted report for a resort.
func (r *Repository) QualityReport(ctx context.Context, resortID int) (*QualityReportModel, error) {
	var m QualityReportModel
	if err := r.db.WithContext(ctx).Where("resort_id = ?", resortID).First(&m).Error; err != nil {
		return nil, fmt.Errorf("loading quality report: %w", err)
	}
	return &m, nil
}
