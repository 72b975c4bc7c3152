package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"torque-lite-pro/internal/config"
	"torque-lite-pro/internal/routing"
	"torque-lite-pro/internal/session"
	"torque-lite-pro/internal/vehicle"
)

func newTestHandler(t *testing.T) (*Handler, *routing.Router, *vehicle.Manager, *session.Cache) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	router := routing.NewRouter()
	manager := vehicle.NewManager(vehicle.NewRegistry(), nil, logger)
	cache := session.NewCache(time.Hour, 100)
	handler, err := NewHandler(router, manager, cache, nil, logger)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler, router, manager, cache
}

func TestHandler_TenantUpsertAndList(t *testing.T) {
	handler, router, _, _ := newTestHandler(t)

	body := bytes.NewBufferString(`{"id":"tenant-a","email":"a@example.com","language":"fr"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("upsert status = %d", resp.Code)
	}
	if !router.Active() {
		t.Fatal("router must be active after tenant upsert")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/tenants", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("list status = %d", resp.Code)
	}
	var tenants []tenantResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &tenants); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tenants) != 1 || tenants[0].ID != "tenant-a" || tenants[0].Email != "a@example.com" {
		t.Fatalf("tenants = %+v", tenants)
	}
}

func TestHandler_TenantUpsertRejectsBadEmail(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	body := bytes.NewBufferString(`{"id":"tenant-a","email":"not-an-email"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestHandler_TenantRemove(t *testing.T) {
	handler, router, _, _ := newTestHandler(t)

	body := bytes.NewBufferString(`{"id":"tenant-a","email":"a@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants", body)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/tenants/tenant-a", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.Code)
	}
	if router.Active() {
		t.Fatal("router must go inactive after last tenant removal")
	}
}

func TestHandler_ListSessions(t *testing.T) {
	handler, _, _, cache := newTestHandler(t)
	cache.UpsertAndTouch(&session.Session{ID: "s1", LastSeen: time.Now().UTC(), Values: map[string]any{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var sessions []session.Session
	if err := json.Unmarshal(resp.Body.Bytes(), &sessions); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "s1" {
		t.Fatalf("sessions = %+v", sessions)
	}
}

func TestHandler_SettingsAdjustBoundsAtRuntime(t *testing.T) {
	handler, _, _, cache := newTestHandler(t)
	for i := 0; i < 15; i++ {
		cache.UpsertAndTouch(&session.Session{
			ID:       string(rune('a' + i)),
			LastSeen: time.Now().UTC(),
			Values:   map[string]any{},
		})
	}

	body := bytes.NewBufferString(`{"session_ttl_seconds":120,"max_sessions":10}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}

	var settings settingsPayload
	if err := json.Unmarshal(resp.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if settings.SessionTTLSeconds != 120 || settings.MaxSessions != 10 {
		t.Fatalf("settings = %+v", settings)
	}
	if cache.Len() != 10 {
		t.Fatalf("cache len = %d, want trimmed to new cap", cache.Len())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if err := json.Unmarshal(resp.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if settings.SessionTTLSeconds != 120 || settings.MaxSessions != 10 {
		t.Fatalf("read back settings = %+v", settings)
	}
}

func TestHandler_SettingsClampedToConfigBounds(t *testing.T) {
	handler, _, _, cache := newTestHandler(t)

	body := bytes.NewBufferString(`{"session_ttl_seconds":5,"max_sessions":99999}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}

	ttl, max := cache.Bounds()
	if int(ttl.Seconds()) != config.MinSessionTTLSeconds {
		t.Fatalf("ttl = %s, want clamped to minimum", ttl)
	}
	if max != config.MaxMaxSessions {
		t.Fatalf("max = %d, want clamped to maximum", max)
	}
}

func TestHandler_SettingsZeroFieldLeavesBoundAlone(t *testing.T) {
	handler, _, _, cache := newTestHandler(t)

	body := bytes.NewBufferString(`{"max_sessions":50}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}

	ttl, max := cache.Bounds()
	if ttl != time.Hour {
		t.Fatalf("ttl = %s, want untouched", ttl)
	}
	if max != 50 {
		t.Fatalf("max = %d, want 50", max)
	}
}

func TestHandler_VehicleForget(t *testing.T) {
	handler, _, manager, _ := newTestHandler(t)
	consumer, err := manager.ConsumerFor("tenant-a")
	if err != nil {
		t.Fatalf("consumer: %v", err)
	}
	sess := &session.Session{ID: "s1", Profile: session.Profile{ID: "veh-1", Name: "Car"}, Values: map[string]any{}}
	if err := consumer.Notify(context.Background(), sess); err != nil {
		t.Fatalf("notify: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/vehicles/veh-1", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("status = %d", resp.Code)
	}
	if _, ok := manager.Snapshots()["tenant-a"]["veh-1"]; ok {
		t.Fatal("vehicle must be forgotten")
	}
}

func TestHandler_DiagnosticsRedacts(t *testing.T) {
	handler, router, _, _ := newTestHandler(t)
	router.UpsertRoute("tenant-a", "a@example.com", nil, false, "en")

	last := &session.Session{
		ID:      "secret-session",
		Profile: session.Profile{Name: "Car", Email: "a@example.com"},
		Values:  map[string]any{"gpslat": 48.85, "speed": 42.0},
	}
	handler.last = func() *session.Session { return last }

	req := httptest.NewRequest(http.MethodGet, "/api/v1/diagnostics", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}

	var diag Diagnostics
	if err := json.Unmarshal(resp.Body.Bytes(), &diag); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !diag.Active || diag.MaxSessions != 100 {
		t.Fatalf("runtime view wrong: active=%v max=%d", diag.Active, diag.MaxSessions)
	}
	if len(diag.Routes) != 1 || diag.Routes[0].Email != redactedPlaceholder {
		t.Fatalf("route email not redacted: %+v", diag.Routes)
	}
	if diag.LastSession == nil {
		t.Fatal("expected last session in diagnostics")
	}
	if diag.LastSession.ID != redactedPlaceholder {
		t.Fatalf("session id not redacted: %q", diag.LastSession.ID)
	}
	if diag.LastSession.Values["gpslat"] != redactedPlaceholder {
		t.Fatalf("gps value not redacted: %v", diag.LastSession.Values["gpslat"])
	}
	if diag.LastSession.Values["speed"] != 42.0 {
		t.Fatalf("plain value mangled: %v", diag.LastSession.Values["speed"])
	}
	if strings.Contains(resp.Body.String(), "a@example.com") {
		t.Fatal("email leaked into diagnostics")
	}
}

func TestBuildSessionsXLSX(t *testing.T) {
	sessions := []*session.Session{{
		ID:       "s1",
		LastSeen: time.Now().UTC(),
		Profile:  session.Profile{Name: "Car", Email: "a@example.com"},
		Values:   map[string]any{"speed": 42.0},
		Meta:     map[string]session.Meta{"speed": {Name: "Speed (OBD)", Unit: "km/h"}},
	}}
	data, err := BuildSessionsXLSX(sessions)
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty xlsx output")
	}
}

func TestBuildVehicleReportPDF(t *testing.T) {
	sess := &session.Session{
		ID:       "s1",
		LastSeen: time.Now().UTC(),
		Profile:  session.Profile{Name: "Car"},
		Values:   map[string]any{"speed": 42.0},
		Meta:     map[string]session.Meta{"speed": {Name: "Speed (OBD)", Unit: "km/h"}},
	}
	data, err := BuildVehicleReportPDF("veh-1", sess)
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output does not look like a PDF")
	}
}
