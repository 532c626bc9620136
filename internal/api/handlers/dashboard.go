package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/api/response"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/charts"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/dashboard"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/mythic"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

// DashboardHandler serves rendered dashboard pages as HTML.
type DashboardHandler struct {
	store    *raids.Store
	mythic   *mythic.SeasonData
	chartCfg charts.ChartConfig
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(store *raids.Store, data *mythic.SeasonData, chartCfg charts.ChartConfig) *DashboardHandler {
	return &DashboardHandler{store: store, mythic: data, chartCfg: chartCfg}
}

// splitList parses a comma-separated query value into its entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Render handles GET /dashboard/{view}
//
// Query parameters vary by view: overview takes exclude, class takes
// class (required), exclude and status_raid, raid takes raid (required)
// and compare_with, mythic takes none.
func (h *DashboardHandler) Render(w http.ResponseWriter, r *http.Request) {
	view, err := dashboard.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		response.NotFound(w, err)
		return
	}

	if view == dashboard.ViewMythic {
		if h.mythic == nil {
			response.NotFound(w, errors.New("no mythic+ scaling data loaded"))
			return
		}
		h.writeHTML(w, func(w http.ResponseWriter) error {
			return dashboard.RenderMythic(w, h.mythic, h.chartCfg)
		})
		return
	}

	c := h.store.Collection()
	if c == nil || c.Len() == 0 {
		response.Error(w, http.StatusServiceUnavailable, errors.New("no raid data loaded"))
		return
	}

	q := r.URL.Query()
	exclude := splitList(q.Get("exclude"))

	switch view {
	case dashboard.ViewOverview:
		h.writeHTML(w, func(w http.ResponseWriter) error {
			return dashboard.RenderOverview(w, c, exclude, h.chartCfg)
		})
	case dashboard.ViewClass:
		class := q.Get("class")
		if class == "" {
			response.BadRequest(w, errors.New("class query parameter is required"))
			return
		}
		h.writeHTML(w, func(w http.ResponseWriter) error {
			return dashboard.RenderClassAnalysis(w, c, class, exclude, q.Get("status_raid"), h.chartCfg)
		})
	case dashboard.ViewRaid:
		raid := q.Get("raid")
		if raid == "" {
			latest, err := c.Latest()
			if err != nil {
				writeStatsError(w, err)
				return
			}
			raid = latest.Name
		}
		h.renderRaid(w, c, raid, q.Get("compare_with"))
	}
}

func (h *DashboardHandler) renderRaid(w http.ResponseWriter, c *raids.Collection, raid, compareWith string) {
	// Validate before committing to an HTML response so a bad raid name
	// still gets a JSON error.
	if _, err := c.Table(raid); err != nil {
		writeStatsError(w, err)
		return
	}
	if compareWith != "" {
		if _, err := c.Table(compareWith); err != nil {
			writeStatsError(w, err)
			return
		}
	}
	h.writeHTML(w, func(w http.ResponseWriter) error {
		return dashboard.RenderRaid(w, c, raid, compareWith, h.chartCfg)
	})
}

// writeHTML runs a page renderer against the response. Render errors
// after the first byte cannot change the status code anymore, so the
// renderers validate their inputs before writing.
func (h *DashboardHandler) writeHTML(w http.ResponseWriter, render func(http.ResponseWriter) error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render(w); err != nil {
		writeStatsError(w, fmt.Errorf("render dashboard: %w", err))
	}
}
