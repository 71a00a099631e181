package normalize

import (
	"strings"

	"github.com/jimmysun0815/snow-api/internal/types"
)

// deriveStatus implements §4.4's per-provider status rule.
func deriveStatus(m MergedInput) types.Status {
	switch m.SourceKind {
	case types.SourceMtnPowder:
		if !strings.Contains(m.OperatingStatus, "Open") {
			return types.StatusClosed
		}
		if m.LiftsOpen != nil && *m.LiftsOpen > 0 {
			return types.StatusOpen
		}
		return types.StatusPartial
	case types.SourceOnTheSnow:
		if m.OpenFlag == nil {
			return types.StatusClosed
		}
		switch *m.OpenFlag {
		case 0:
			return types.StatusOpen
		case 1:
			return types.StatusPartial
		default:
			return types.StatusClosed
		}
	default:
		return types.StatusClosed
	}
}
