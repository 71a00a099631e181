// Package normalize implements the Merging Rule (§4.3) and the Normalizer
// (§4.4): turning the raw per-provider adapter results into one
// CanonicalRecord ready for the Persistence Layer.
package normalize

import "strconv"

// coerceCount implements §4.4's count coercion: "--"/empty/non-numeric
// become 0, negative counts clamp to 0.
func coerceCount(raw string) int {
	n, ok := parseFloat(raw)
	if !ok {
		return 0
	}
	v := int(n)
	if v < 0 {
		return 0
	}
	return v
}

// coerceCountPtr is coerceCount wrapped to return *int, for fields the
// domain model keeps nullable (lifts/trails already arrive as *int from
// providers that type them natively; this handles the raw-string path).
func coerceCountPtr(raw string) *int {
	v := coerceCount(raw)
	return &v
}

// coerceDepth implements §4.4's depth coercion: "--"/empty/non-numeric
// become NULL (nil), not 0. Negative depths clamp to 0.
func coerceDepth(raw string) *float64 {
	n, ok := parseFloat(raw)
	if !ok {
		return nil
	}
	if n < 0 {
		n = 0
	}
	return &n
}

// coerceTemperature implements §4.4's temperature coercion: "--"/empty/
// non-numeric become 0, same as counts. Unlike counts/depths, negative
// values are valid (sub-zero readings) and are not clamped.
func coerceTemperature(raw string) *float64 {
	n, ok := parseFloat(raw)
	if !ok {
		n = 0
	}
	return &n
}

func parseFloat(raw string) (float64, bool) {
	if raw == "" || raw == "--" {
		return 0, false
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// intPtrOrZero reads an already-typed *int, coercing nil to 0 and clamping
// negative values to 0 — the "missing becomes zero" rule for
// provider-native integer fields.
func intPtrOrZero(p *int) int {
	if p == nil {
		return 0
	}
	if *p < 0 {
		return 0
	}
	return *p
}
