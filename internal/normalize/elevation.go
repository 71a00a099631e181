package normalize

import "gonum.org/v1/gonum/interp"

// pressureLevelAltitudes is the fixed level→altitude table from §4.4, in
// ascending altitude order (matching descending pressure).
var pressureLevelAltitudes = []float64{110, 750, 1500, 3000, 5500}

const (
	plausibleTempMin = -50.0
	plausibleTempMax = 50.0
)

// elevationBands holds the three altitudes the Normalizer queries
// pressure-level-interpolated temperature at.
type elevationBands struct {
	Base, Mid, Summit float64
}

// bandsFromElevation computes base/mid/summit per §4.4: base=elevation_min,
// mid=mean(min,max), summit=elevation_max.
func bandsFromElevation(elevationMin, elevationMax *float64) (elevationBands, bool) {
	if elevationMin == nil || elevationMax == nil {
		return elevationBands{}, false
	}
	return elevationBands{
		Base:   *elevationMin,
		Mid:    (*elevationMin + *elevationMax) / 2,
		Summit: *elevationMax,
	}, true
}

// interpolateTemperatures fits a piecewise-linear curve over the fixed
// level→altitude table against whichever pressure-level temperatures are
// present, then samples it at base/mid/summit altitude. Requires at least
// two non-nil levels; fewer yields all-nil results (§4.4).
func interpolateTemperatures(levels [5]*float64, bands elevationBands) (base, mid, summit *float64) {
	xs := make([]float64, 0, 5)
	ys := make([]float64, 0, 5)
	for i, v := range levels {
		if v == nil {
			continue
		}
		xs = append(xs, pressureLevelAltitudes[i])
		ys = append(ys, *v)
	}
	if len(xs) < 2 {
		return nil, nil, nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, nil, nil
	}

	sample := func(altitude float64) *float64 {
		var v float64
		switch {
		case altitude < xs[0]:
			v = extrapolate(xs[0], ys[0], xs[1], ys[1], altitude)
		case altitude > xs[len(xs)-1]:
			v = extrapolate(xs[len(xs)-2], ys[len(xs)-2], xs[len(xs)-1], ys[len(xs)-1], altitude)
		default:
			v = pl.Predict(altitude)
		}
		if v < plausibleTempMin || v > plausibleTempMax {
			return nil
		}
		return &v
	}

	return sample(bands.Base), sample(bands.Mid), sample(bands.Summit)
}

// extrapolate continues the line through (x1,y1)-(x2,y2) out to x, for
// targets outside the fitted table's range (§4.4).
func extrapolate(x1, y1, x2, y2, x float64) float64 {
	slope := (y2 - y1) / (x2 - x1)
	return y1 + slope*(x-x1)
}
