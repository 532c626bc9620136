// Package handlers contains HTTP request handlers for the REST API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/api/response"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/stats"
)

// RaidHandler handles raid data and statistics requests.
type RaidHandler struct {
	store *raids.Store
}

// NewRaidHandler creates a new raid handler.
func NewRaidHandler(store *raids.Store) *RaidHandler {
	return &RaidHandler{store: store}
}

// collection returns the current snapshot or writes a 503 when no data
// has been loaded yet.
func (h *RaidHandler) collection(w http.ResponseWriter) (*raids.Collection, bool) {
	c := h.store.Collection()
	if c == nil || c.Len() == 0 {
		response.Error(w, http.StatusServiceUnavailable, errors.New("no raid data loaded"))
		return nil, false
	}
	return c, true
}

// writeStatsError maps statistics errors onto HTTP status codes.
func writeStatsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, raids.ErrRaidNotFound):
		response.NotFound(w, err)
	case errors.Is(err, raids.ErrEmptyTable):
		response.UnprocessableEntity(w, err)
	default:
		response.InternalError(w, err)
	}
}

// ListRaids handles GET /api/v1/raids
func (h *RaidHandler) ListRaids(w http.ResponseWriter, _ *http.Request) {
	c, ok := h.collection(w)
	if !ok {
		return
	}

	loadErrs := h.store.LoadErrors()
	errMsgs := make([]string, 0, len(loadErrs))
	for _, err := range loadErrs {
		errMsgs = append(errMsgs, err.Error())
	}

	names := c.Names()
	response.Success(w, map[string]interface{}{
		"raids":       names,
		"latest":      names[len(names)-1],
		"load_errors": errMsgs,
	})
}

// GetRaid handles GET /api/v1/raids/{raid}
func (h *RaidHandler) GetRaid(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w)
	if !ok {
		return
	}

	t, err := c.Table(chi.URLParam(r, "raid"))
	if err != nil {
		writeStatsError(w, err)
		return
	}

	rows, totals, err := stats.Percentages(t)
	if err != nil {
		writeStatsError(w, fmt.Errorf("raid %q: %w", t.Name, err))
		return
	}

	response.Success(w, map[string]interface{}{
		"raid":         t.Name,
		"total_parses": t.TotalParses(),
		"specs":        rows,
		"classes":      totals,
	})
}

// GetTopSpecs handles GET /api/v1/raids/{raid}/top?n=10
func (h *RaidHandler) GetTopSpecs(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w)
	if !ok {
		return
	}

	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(w, fmt.Errorf("invalid n parameter: %q", raw))
			return
		}
		n = parsed
	}

	t, err := c.Table(chi.URLParam(r, "raid"))
	if err != nil {
		writeStatsError(w, err)
		return
	}

	rows, _, err := stats.Percentages(t)
	if err != nil {
		writeStatsError(w, fmt.Errorf("raid %q: %w", t.Name, err))
		return
	}

	response.Success(w, map[string]interface{}{
		"raid":  t.Name,
		"specs": stats.TopSpecs(rows, n),
	})
}

// CompareRequest selects the two raids of a pairwise comparison.
type CompareRequest struct {
	RaidA string `json:"raid_a"`
	RaidB string `json:"raid_b"`
}

// Compare handles POST /api/v1/raids/compare
func (h *RaidHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.RaidA == "" || req.RaidB == "" {
		response.BadRequest(w, errors.New("raid_a and raid_b are required"))
		return
	}

	c, ok := h.collection(w)
	if !ok {
		return
	}

	a, err := c.Table(req.RaidA)
	if err != nil {
		writeStatsError(w, err)
		return
	}
	b, err := c.Table(req.RaidB)
	if err != nil {
		writeStatsError(w, err)
		return
	}

	rows, err := stats.Compare(a, b)
	if err != nil {
		writeStatsError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"raid_a":  a.Name,
		"raid_b":  b.Name,
		"changes": rows,
		"dropped": stats.ComparisonDropped(a, b),
	})
}

// TrendsRequest selects a trend mode and an optional exclusion filter.
type TrendsRequest struct {
	Mode    string   `json:"mode"` // "class" or "spec"
	Class   string   `json:"class,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// Trends handles POST /api/v1/raids/trends
func (h *RaidHandler) Trends(w http.ResponseWriter, r *http.Request) {
	req := TrendsRequest{Mode: "class"}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}

	c, ok := h.collection(w)
	if !ok {
		return
	}

	var (
		rows []stats.TrendRow
		err  error
	)
	switch req.Mode {
	case "class", "":
		rows, err = stats.ClassTrends(c, req.Exclude)
	case "spec":
		rows, err = stats.SpecTrends(c, req.Exclude)
	default:
		response.BadRequest(w, fmt.Errorf("unknown trend mode: %q", req.Mode))
		return
	}
	if err != nil {
		writeStatsError(w, err)
		return
	}

	if req.Class != "" {
		rows = stats.FilterTrendsByClass(rows, req.Class)
	}

	response.Success(w, map[string]interface{}{
		"mode":   req.Mode,
		"trends": rows,
	})
}

// ClassChangesRequest selects the class for an adjacent-raid change series.
type ClassChangesRequest struct {
	Class   string   `json:"class"`
	Exclude []string `json:"exclude,omitempty"`
}

// ClassChanges handles POST /api/v1/raids/class-changes
func (h *RaidHandler) ClassChanges(w http.ResponseWriter, r *http.Request) {
	var req ClassChangesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Class == "" {
		response.BadRequest(w, errors.New("class is required"))
		return
	}

	c, ok := h.collection(w)
	if !ok {
		return
	}

	series, err := stats.ClassChangeSeries(c, req.Class, req.Exclude)
	if err != nil {
		writeStatsError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"class":   req.Class,
		"changes": series,
	})
}
