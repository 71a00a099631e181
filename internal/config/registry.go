// Package config loads the two external inputs this service needs at
// startup: the resort registry (§6, a JSON file) and process-wide runtime
// Settings sourced from the environment. Neither is hot-reloaded — each
// batch command loads its configuration once at startup.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jimmysun0815/snow-api/internal/types"
)

// registryFile is the on-disk shape of the registry (§6): a top-level
// object wrapping the resort descriptor list.
type registryFile struct {
	Resorts []types.ResortDescriptor `json:"resorts"`
}

// Registry is the loaded, validated set of resort descriptors.
type Registry struct {
	Resorts []types.ResortDescriptor
}

// ValidationError describes one malformed registry entry.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %s)", ve.Field, ve.Message, ve.Value)
}

var validDataSources = map[types.DataSource]bool{
	types.SourceMtnPowder: true,
	types.SourceOnTheSnow: true,
}

// LoadRegistry reads and validates the registry file at path. An unknown
// data_source, a duplicate id, or a duplicate slug fails the entire load —
// the registry is a closed, validated set, not a best-effort parse.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry file: %w", err)
	}

	var rf registryFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing registry file: %w", err)
	}

	if errs := ValidateDescriptors(rf.Resorts); len(errs) > 0 {
		return nil, fmt.Errorf("registry validation failed: %v", errs)
	}

	return &Registry{Resorts: rf.Resorts}, nil
}

// ValidateDescriptors checks every invariant the registry format requires.
func ValidateDescriptors(resorts []types.ResortDescriptor) []ValidationError {
	var errs []ValidationError

	seenIDs := make(map[int]bool)
	seenSlugs := make(map[string]bool)

	for i, r := range resorts {
		field := func(name string) string { return fmt.Sprintf("resorts[%d].%s", i, name) }

		if r.ID == 0 {
			errs = append(errs, ValidationError{Field: field("id"), Message: "id is required and must be non-zero"})
		} else if seenIDs[r.ID] {
			errs = append(errs, ValidationError{Field: field("id"), Value: fmt.Sprintf("%d", r.ID), Message: "duplicate id"})
		}
		seenIDs[r.ID] = true

		if r.Slug == "" {
			errs = append(errs, ValidationError{Field: field("slug"), Message: "slug is required"})
		} else if seenSlugs[r.Slug] {
			errs = append(errs, ValidationError{Field: field("slug"), Value: r.Slug, Message: "duplicate slug"})
		}
		seenSlugs[r.Slug] = true

		if r.Name == "" {
			errs = append(errs, ValidationError{Field: field("name"), Message: "name is required"})
		}

		if !validDataSources[r.DataSource] {
			errs = append(errs, ValidationError{Field: field("data_source"), Value: string(r.DataSource), Message: "unrecognized data_source"})
		}
		if r.DataSource == types.SourceMtnPowder && r.SourceID == "" {
			errs = append(errs, ValidationError{Field: field("source_id"), Message: "mtnpowder resorts require source_id"})
		}
		if r.DataSource == types.SourceOnTheSnow && r.SourceURL == "" {
			errs = append(errs, ValidationError{Field: field("source_url"), Message: "onthesnow resorts require source_url"})
		}

		if r.Lat < -90 || r.Lat > 90 {
			errs = append(errs, ValidationError{Field: field("lat"), Value: fmt.Sprintf("%.6f", r.Lat), Message: "latitude must be between -90 and 90 degrees"})
		}
		if r.Lon < -180 || r.Lon > 180 {
			errs = append(errs, ValidationError{Field: field("lon"), Value: fmt.Sprintf("%.6f", r.Lon), Message: "longitude must be between -180 and 180 degrees"})
		}
	}

	return errs
}

// Enabled returns only the descriptors with Enabled set — the Collection
// Orchestrator's default source of truth for "which resorts" (§4.6).
func (r *Registry) Enabled() []types.ResortDescriptor {
	out := make([]types.ResortDescriptor, 0, len(r.Resorts))
	for _, d := range r.Resorts {
		if d.Enabled {
			out = append(out, d)
		}
	}
	return out
}
