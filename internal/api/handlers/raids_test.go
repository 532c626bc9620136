package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

func testStore() *raids.Store {
	tables := map[string]*raids.Table{
		"Raid A": {Name: "Raid A", Rows: []raids.Row{
			{Class: "Warrior", Spec: "Arms", Parses: 250},
			{Class: "Warrior", Spec: "Fury", Parses: 250},
			{Class: "Mage", Spec: "Fire", Parses: 500},
		}},
		"Raid B": {Name: "Raid B", Rows: []raids.Row{
			{Class: "Warrior", Spec: "Arms", Parses: 100},
			{Class: "Mage", Spec: "Fire", Parses: 900},
		}},
		"Empty Raid": {Name: "Empty Raid"},
	}
	c := raids.NewCollection([]string{"Raid A", "Raid B", "Empty Raid"}, tables)
	return raids.NewStore(c, nil)
}

func testRouter(store *raids.Store) http.Handler {
	h := NewRaidHandler(store)
	r := chi.NewRouter()
	r.Route("/api/v1/raids", func(r chi.Router) {
		r.Get("/", h.ListRaids)
		r.Post("/compare", h.Compare)
		r.Post("/trends", h.Trends)
		r.Post("/class-changes", h.ClassChanges)
		r.Get("/{raid}", h.GetRaid)
		r.Get("/{raid}/top", h.GetTopSpecs)
	})
	return r
}

func decodeData(t *testing.T, body *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestListRaids(t *testing.T) {
	router := testRouter(testStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/raids", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data := decodeData(t, rec.Body)
	names, ok := data["raids"].([]interface{})
	if !ok || len(names) != 3 {
		t.Fatalf("raids = %v, want 3 names", data["raids"])
	}
	if names[0] != "Raid A" || names[2] != "Empty Raid" {
		t.Errorf("raids = %v, want chronological order", names)
	}
	if data["latest"] != "Empty Raid" {
		t.Errorf("latest = %v, want Empty Raid", data["latest"])
	}
}

func TestGetRaid(t *testing.T) {
	router := testRouter(testStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/raids/Raid%20A", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec.Body)
	if data["raid"] != "Raid A" {
		t.Errorf("raid = %v, want Raid A", data["raid"])
	}
	if got := data["total_parses"].(float64); got != 1000 {
		t.Errorf("total_parses = %v, want 1000", got)
	}
	specs := data["specs"].([]interface{})
	first := specs[0].(map[string]interface{})
	if first["percentage"].(float64) != 25.0 {
		t.Errorf("first spec percentage = %v, want 25", first["percentage"])
	}
}

func TestGetRaidNotFound(t *testing.T) {
	router := testRouter(testStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/raids/Nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetRaidEmptyTable(t *testing.T) {
	router := testRouter(testStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/raids/Empty%20Raid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
}

func TestGetTopSpecs(t *testing.T) {
	router := testRouter(testStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/raids/Raid%20A/top?n=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec.Body)
	specs := data["specs"].([]interface{})
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}
	top := specs[0].(map[string]interface{})
	if top["spec"] != "Fire" {
		t.Errorf("top spec = %v, want Fire", top["spec"])
	}
}

func TestGetTopSpecsBadN(t *testing.T) {
	router := testRouter(testStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/raids/Raid%20A/top?n=zero", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCompareHandler(t *testing.T) {
	router := testRouter(testStore())

	body := strings.NewReader(`{"raid_a": "Raid A", "raid_b": "Raid B"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/raids/compare", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec.Body)
	changes := data["changes"].([]interface{})
	// Warrior/Fury exists only in Raid A, so the inner join drops it.
	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(changes))
	}
	dropped := data["dropped"].([]interface{})
	if len(dropped) != 1 || dropped[0] != "Warrior/Fury" {
		t.Errorf("dropped = %v, want [Warrior/Fury]", dropped)
	}
}

func TestCompareHandlerMissingRaid(t *testing.T) {
	router := testRouter(testStore())

	body := strings.NewReader(`{"raid_a": "Raid A"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/raids/compare", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTrendsHandler(t *testing.T) {
	router := testRouter(testStore())

	body := strings.NewReader(`{"mode": "class", "exclude": ["Empty Raid"], "class": "Warrior"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/raids/trends", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec.Body)
	trends := data["trends"].([]interface{})
	// Warrior appears once per non-excluded raid.
	if len(trends) != 2 {
		t.Fatalf("got %d trend rows, want 2", len(trends))
	}
	for _, raw := range trends {
		row := raw.(map[string]interface{})
		if row["class"] != "Warrior" {
			t.Errorf("trend row class = %v, want Warrior", row["class"])
		}
	}
}

func TestTrendsHandlerEmptyRaidSurfaces(t *testing.T) {
	router := testRouter(testStore())

	body := strings.NewReader(`{"mode": "spec"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/raids/trends", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
}

func TestTrendsHandlerUnknownMode(t *testing.T) {
	router := testRouter(testStore())

	body := strings.NewReader(`{"mode": "role"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/raids/trends", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestClassChangesHandler(t *testing.T) {
	router := testRouter(testStore())

	body := strings.NewReader(`{"class": "Mage", "exclude": ["Empty Raid"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/raids/class-changes", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec.Body)
	changes := data["changes"].([]interface{})
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	step := changes[0].(map[string]interface{})
	if step["from_raid"] != "Raid A" || step["to_raid"] != "Raid B" {
		t.Errorf("step = %v, want Raid A to Raid B", step)
	}
	// Mage goes from 50% to 90%.
	if step["change"].(float64) != 40.0 {
		t.Errorf("change = %v, want 40", step["change"])
	}
}

func TestHandlersWithoutData(t *testing.T) {
	router := testRouter(raids.NewStore(nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/raids", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
