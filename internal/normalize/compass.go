package normalize

import "math"

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// windCompass maps a wind direction in degrees to an 8-point compass label
// per §4.4: idx = round(deg/45) mod 8. deg is first reduced into [0, 360),
// so negative and >360 degree values give the same label as their
// equivalent in that range (math.Round rounds halves away from zero, which
// would otherwise put a negative half-sector one point off).
func windCompass(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Round(deg/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassPoints[idx]
}
