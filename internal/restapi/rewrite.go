// Package restapi implements the Read API (§4.7): a stateless HTTP service
// over the persistence layer, using gorilla/mux + gorilla/handlers, the
// same router shape as the teacher's REST controller.
package restapi

import (
	"math"
	"time"

	"github.com/jimmysun0815/snow-api/internal/types"
)

var openingDateLayouts = []string{"2006-01-02", "2006/01/02", time.RFC3339}

const recentlyOpenedDays = 50

// rewriteStatusFromOpeningDate implements §4.7's status-from-opening-date
// rewrite: independent of what the primary adapter reported, a resort that
// opened within the last 50 days is forced open, one whose opening date is
// in the future is forced closed; otherwise the reported status stands.
// It is idempotent — applying it twice to the same inputs yields the same
// status, since it is a pure function of (status, opening_date, now).
func rewriteStatusFromOpeningDate(status types.Status, openingDate string, now time.Time) types.Status {
	if openingDate == "" {
		return status
	}
	opened, ok := parseOpeningDate(openingDate)
	if !ok {
		return status
	}

	deltaDays := int(math.Floor(now.Sub(opened).Hours() / 24))
	switch {
	case deltaDays < 0:
		return types.StatusClosed
	case deltaDays <= recentlyOpenedDays:
		return types.StatusOpen
	default:
		return status
	}
}

func parseOpeningDate(raw string) (time.Time, bool) {
	for _, layout := range openingDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
