package restapi

import (
	"testing"
	"time"

	"github.com/jimmysun0815/snow-api/internal/types"
)

func TestRewriteStatusFromOpeningDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		status      types.Status
		openingDate string
		want        types.Status
	}{
		{"no opening date leaves status", types.StatusClosed, "", types.StatusClosed},
		{"opened 10 days ago forces open", types.StatusClosed, "2026-02-19", types.StatusOpen},
		{"opened exactly 50 days ago forces open", types.StatusClosed, "2026-01-10", types.StatusOpen},
		{"opened 51 days ago leaves status", types.StatusClosed, "2026-01-09", types.StatusClosed},
		{"future opening forces closed", types.StatusOpen, "2026-04-01", types.StatusClosed},
		{"unparseable date leaves status", types.StatusPartial, "not-a-date", types.StatusPartial},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rewriteStatusFromOpeningDate(tc.status, tc.openingDate, now)
			if got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRewriteStatusFromOpeningDate_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	once := rewriteStatusFromOpeningDate(types.StatusClosed, "2026-02-19", now)
	twice := rewriteStatusFromOpeningDate(once, "2026-02-19", now)
	if once != twice {
		t.Errorf("expected idempotent rewrite, got %s then %s", once, twice)
	}
}
