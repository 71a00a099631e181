package restapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/jimmysun0815/snow-api/internal/cache"
	"github.com/jimmysun0815/snow-api/internal/database"
	"github.com/jimmysun0815/snow-api/internal/log"
	"github.com/jimmysun0815/snow-api/internal/types"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) detailFor(ctx context.Context, resort types.Resort) (*database.ResortDetail, error) {
	return s.store.Detail(ctx, resort)
}

// handleListResorts is GET /api/resorts: every enabled resort's full detail.
func (s *Server) handleListResorts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resorts, err := s.store.ListEnabledResorts(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing resorts")
		return
	}
	out := make([]resortDetailResponse, 0, len(resorts))
	for _, resort := range resorts {
		detail, err := s.detailFor(ctx, resort)
		if err != nil {
			continue
		}
		out = append(out, toDetailResponse(detail, s.now()))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleResortsSummary is GET /api/resorts/summary: the cached, forecast-free
// listing (§4.7's 10-minute "resorts:summary" cache key).
func (s *Server) handleResortsSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	const key = "resorts:summary"

	var cached []resortSummary
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	resorts, err := s.store.ListEnabledResorts(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing resorts")
		return
	}
	out := make([]resortSummary, 0, len(resorts))
	for _, resort := range resorts {
		detail, err := s.detailFor(ctx, resort)
		if err != nil {
			continue
		}
		out = append(out, toSummary(detail, s.now()))
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, cache.TTLSummary)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleOpenResorts is GET /api/resorts/open: summary view filtered to
// resorts whose rewritten status is open or partial.
func (s *Server) handleOpenResorts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resorts, err := s.store.ListEnabledResorts(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing resorts")
		return
	}
	out := make([]resortSummary, 0, len(resorts))
	for _, resort := range resorts {
		detail, err := s.detailFor(ctx, resort)
		if err != nil {
			continue
		}
		summary := toSummary(detail, s.now())
		if summary.Status == types.StatusOpen || summary.Status == types.StatusPartial {
			out = append(out, summary)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleSearchResorts is GET /api/resorts/search?name=&location= (OR
// semantics when both are given, §4.7).
func (s *Server) handleSearchResorts(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	location := r.URL.Query().Get("location")
	resorts, err := s.store.SearchResorts(r.Context(), name, location)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "searching resorts")
		return
	}
	writeJSON(w, http.StatusOK, resorts)
}

const defaultNearbyRadiusKm = 50.0

// handleNearbyResorts is GET /api/resorts/nearby?lat=&lon=&radius=: Haversine
// distance filter, sorted ascending (§4.7).
func (s *Server) handleNearbyResorts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lon must be a number")
		return
	}
	radius := defaultNearbyRadiusKm
	if raw := r.URL.Query().Get("radius"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			radius = parsed
		}
	}

	resorts, err := s.store.ListEnabledResorts(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing resorts")
		return
	}

	out := make([]nearbyResult, 0)
	for _, resort := range resorts {
		dist := distanceKm(lat, lon, resort.Lat, resort.Lon)
		if dist > radius {
			continue
		}
		detail, err := s.detailFor(ctx, resort)
		if err != nil {
			continue
		}
		out = append(out, nearbyResult{resortSummary: toSummary(detail, s.now()), DistanceKm: dist})
	}
	nearestFirst(out)
	writeJSON(w, http.StatusOK, out)
}

// handleResortByID is GET /api/resorts/{id}.
func (s *Server) handleResortByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	resort, err := s.store.GetResortByID(r.Context(), id)
	if err != nil {
		s.respondNotFoundOrError(w, err, "resort")
		return
	}
	detail, err := s.detailFor(r.Context(), *resort)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading resort detail")
		return
	}
	writeJSON(w, http.StatusOK, toDetailResponse(detail, s.now()))
}

// handleResortBySlug is GET /api/resorts/slug/{slug}.
func (s *Server) handleResortBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	resort, err := s.store.GetResortBySlug(r.Context(), slug)
	if err != nil {
		s.respondNotFoundOrError(w, err, "resort")
		return
	}
	detail, err := s.detailFor(r.Context(), *resort)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading resort detail")
		return
	}
	writeJSON(w, http.StatusOK, toDetailResponse(detail, s.now()))
}

// handleTrailsByID is GET /api/resorts/{id}/trails?type=&difficulty=.
func (s *Server) handleTrailsByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	s.writeTrails(w, r, id)
}

// handleTrailsBySlug is GET /api/resorts/slug/{slug}/trails?type=&difficulty=.
func (s *Server) handleTrailsBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	resort, err := s.store.GetResortBySlug(r.Context(), slug)
	if err != nil {
		s.respondNotFoundOrError(w, err, "resort")
		return
	}
	s.writeTrails(w, r, resort.ID)
}

func (s *Server) writeTrails(w http.ResponseWriter, r *http.Request, resortID int) {
	pisteType := r.URL.Query().Get("type")
	difficulty := r.URL.Query().Get("difficulty")
	trails, err := s.store.Trails(r.Context(), resortID, pisteType, difficulty)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading trails")
		return
	}
	writeJSON(w, http.StatusOK, buildTrailsResponse(trails))
}

// handleQuality is GET /api/resorts/{id}/quality (§9 supplemented endpoint).
func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	report, err := s.store.QualityReport(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "no quality report for resort")
		return
	}
	writeJSON(w, http.StatusOK, qualityResponse{
		ResortID:  report.ResortID,
		Status:    report.Status,
		Score:     report.Score,
		Fields:    report.Fields.Data,
		UpdatedAt: report.UpdatedAt,
	})
}

// handleStatus is GET /api/status: liveness plus a DB reachability check.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{OK: true}

	gormDB := s.store.DB()
	if gormDB == nil {
		resp.Error = "database not configured"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		resp.Error = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp.DatabaseUp = true

	resorts, err := s.store.ListEnabledResorts(r.Context())
	if err == nil {
		resp.EnabledResorts = len(resorts)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAdminDisable is DELETE /api/admin/resorts/{id}: soft-delete gated on
// the X-Admin-API-Key header (§4.7).
func (s *Server) handleAdminDisable(w http.ResponseWriter, r *http.Request) {
	if !s.checkAdminKey(w, r) {
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DisableResort(r.Context(), id); err != nil {
		s.respondNotFoundOrError(w, err, "resort")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminEnable is POST /api/admin/resorts/{id}/enable (§9 supplemented
// reversal of the admin disable).
func (s *Server) handleAdminEnable(w http.ResponseWriter, r *http.Request) {
	if !s.checkAdminKey(w, r) {
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.EnableResort(r.Context(), id); err != nil {
		s.respondNotFoundOrError(w, err, "resort")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminLogs is GET /api/admin/logs: the last in-memory buffered log
// entries, gated behind the same admin key as the other admin routes. Backs
// quick incident triage without a separate log aggregator.
func (s *Server) handleAdminLogs(w http.ResponseWriter, r *http.Request) {
	if !s.checkAdminKey(w, r) {
		return
	}
	buf := log.GetLogBuffer()
	if buf == nil {
		writeJSON(w, http.StatusOK, []log.LogEntry{})
		return
	}
	writeJSON(w, http.StatusOK, buf.GetLogs(false))
}

// handleAdminHTTPLogs is GET /api/admin/http-logs: the buffered request/
// response history written by httpLogMiddleware, separate from the
// application log buffer served at /api/admin/logs.
func (s *Server) handleAdminHTTPLogs(w http.ResponseWriter, r *http.Request) {
	if !s.checkAdminKey(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, log.GetHTTPLogBuffer().GetLogs(false))
}

// checkAdminKey implements §4.7's admin auth: 404 if the header is absent
// (don't reveal the route exists), 401 on a present-but-wrong key, compared
// in constant time to avoid a timing side channel on the key itself.
func (s *Server) checkAdminKey(w http.ResponseWriter, r *http.Request) bool {
	supplied := r.Header.Get("X-Admin-API-Key")
	if supplied == "" {
		writeError(w, http.StatusNotFound, "not found")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(s.adminKey)) != 1 {
		writeError(w, http.StatusUnauthorized, "invalid admin key")
		return false
	}
	return true
}

func (s *Server) respondNotFoundOrError(w http.ResponseWriter, err error, noun string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, noun+" not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "loading "+noun)
}
