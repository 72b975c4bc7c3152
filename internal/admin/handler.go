package admin

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"torque-lite-pro/internal/auth"
	"torque-lite-pro/internal/config"
	"torque-lite-pro/internal/observability/metrics"
	"torque-lite-pro/internal/routing"
	"torque-lite-pro/internal/session"
	"torque-lite-pro/internal/vehicle"
)

// Handler provides the authenticated admin API: tenant route management,
// cached-session and vehicle inspection, diagnostics and exports.
type Handler struct {
	router  *routing.Router
	manager *vehicle.Manager
	cache   *session.Cache
	last    func() *session.Session
	logger  *log.Logger
}

// NewHandler constructs the admin handler. last reports the most recently
// accepted session and may be nil.
func NewHandler(router *routing.Router, manager *vehicle.Manager, cache *session.Cache, last func() *session.Session, logger *log.Logger) (*Handler, error) {
	if router == nil {
		return nil, errors.New("admin handler: nil router")
	}
	if manager == nil {
		return nil, errors.New("admin handler: nil manager")
	}
	if cache == nil {
		return nil, errors.New("admin handler: nil cache")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{router: router, manager: manager, cache: cache, last: last, logger: logger}, nil
}

// ServeHTTP routes the admin API paths.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/api/v1/tenants":
		switch r.Method {
		case http.MethodGet:
			h.handleListTenants(w, r)
		case http.MethodPost:
			h.handleUpsertTenant(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case strings.HasPrefix(path, "/api/v1/tenants/"):
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleRemoveTenant(w, r, strings.TrimPrefix(path, "/api/v1/tenants/"))
	case path == "/api/v1/settings":
		h.handleSettings(w, r)
	case path == "/api/v1/sessions":
		h.handleListSessions(w, r)
	case path == "/api/v1/vehicles":
		h.handleListVehicles(w, r)
	case strings.HasPrefix(path, "/api/v1/vehicles/"):
		h.handleVehicle(w, r, strings.TrimPrefix(path, "/api/v1/vehicles/"))
	case path == "/api/v1/exports/sessions.xlsx":
		h.handleExportSessions(w, r)
	case path == "/api/v1/diagnostics":
		h.handleDiagnostics(w, r)
	default:
		http.NotFound(w, r)
	}
}

type tenantRequest struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Language string `json:"language"`
	Imperial bool   `json:"imperial"`
}

type tenantResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Language string `json:"language"`
	Imperial bool   `json:"imperial"`
}

func (h *Handler) handleListTenants(w http.ResponseWriter, r *http.Request) {
	routes := h.router.Routes()
	sort.Slice(routes, func(i, j int) bool { return routes[i].TenantID < routes[j].TenantID })
	out := make([]tenantResponse, 0, len(routes))
	for _, route := range routes {
		out = append(out, tenantResponse{
			ID:       route.TenantID,
			Email:    route.Email,
			Language: route.Language,
			Imperial: route.Imperial,
		})
	}
	writeJSON(w, out)
}

func (h *Handler) handleUpsertTenant(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body error", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req tenantRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}
	if req.Email != "" && !config.ValidEmail(req.Email) {
		http.Error(w, "invalid email", http.StatusBadRequest)
		return
	}

	consumer, err := h.manager.ConsumerFor(req.ID)
	if err != nil {
		h.logger.Printf("admin: consumer for tenant %s: %v", req.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.router.UpsertRoute(req.ID, req.Email, consumer, req.Imperial, req.Language)
	h.logger.Printf("admin: tenant %s upserted (email=%q) by %s", req.ID, req.Email, actor(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveTenant(w http.ResponseWriter, r *http.Request, tenantID string) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}
	h.router.RemoveRoute(tenantID)
	h.manager.Remove(tenantID)
	h.logger.Printf("admin: tenant %s removed by %s", tenantID, actor(r))
	w.WriteHeader(http.StatusNoContent)
}

type settingsPayload struct {
	SessionTTLSeconds int `json:"session_ttl_seconds"`
	MaxSessions       int `json:"max_sessions"`
}

// handleSettings reads or adjusts the cache bounds at runtime. A zero field
// in the update leaves that bound unchanged; values are clamped to the same
// range the config loader enforces.
func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ttl, max := h.cache.Bounds()
		writeJSON(w, settingsPayload{SessionTTLSeconds: int(ttl.Seconds()), MaxSessions: max})
	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "read body error", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		var req settingsPayload
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.SessionTTLSeconds < 0 || req.MaxSessions < 0 {
			http.Error(w, "bounds must be positive", http.StatusBadRequest)
			return
		}
		if req.SessionTTLSeconds > 0 {
			req.SessionTTLSeconds = config.ClampSessionTTLSeconds(req.SessionTTLSeconds)
		}
		if req.MaxSessions > 0 {
			req.MaxSessions = config.ClampMaxSessions(req.MaxSessions)
		}
		h.cache.SetBounds(time.Duration(req.SessionTTLSeconds)*time.Second, req.MaxSessions)
		h.cache.Cleanup()
		metrics.SetSessionsCached(h.cache.Len())

		ttl, max := h.cache.Bounds()
		h.logger.Printf("admin: cache bounds set to ttl=%s max=%d by %s", ttl, max, actor(r))
		writeJSON(w, settingsPayload{SessionTTLSeconds: int(ttl.Seconds()), MaxSessions: max})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.cache.Cleanup()
	metrics.SetSessionsCached(h.cache.Len())
	writeJSON(w, h.cache.List())
}

func (h *Handler) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.manager.Snapshots())
}

func (h *Handler) handleVehicle(w http.ResponseWriter, r *http.Request, rest string) {
	if vehicleID, ok := strings.CutSuffix(rest, "/report.pdf"); ok {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleVehicleReport(w, vehicleID)
		return
	}
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	vehicleID := strings.TrimSpace(rest)
	if vehicleID == "" {
		http.Error(w, "vehicle id required", http.StatusBadRequest)
		return
	}
	h.manager.Forget(vehicleID)
	h.logger.Printf("admin: vehicle %s forgotten by %s", vehicleID, actor(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleExportSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.cache.Cleanup()
	data, err := BuildSessionsXLSX(h.cache.List())
	if err != nil {
		metrics.ObserveExport("xlsx", "error")
		h.logger.Printf("admin: sessions export failed: %v", err)
		http.Error(w, "export error", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport("xlsx", "success")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="sessions.xlsx"`)
	_, _ = w.Write(data)
}

func (h *Handler) handleVehicleReport(w http.ResponseWriter, vehicleID string) {
	sess := h.findVehicle(vehicleID)
	if sess == nil {
		http.Error(w, "unknown vehicle", http.StatusNotFound)
		return
	}
	data, err := BuildVehicleReportPDF(vehicleID, sess)
	if err != nil {
		metrics.ObserveExport("pdf", "error")
		h.logger.Printf("admin: vehicle report failed for %s: %v", vehicleID, err)
		http.Error(w, "export error", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport("pdf", "success")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+vehicleID+`-report.pdf"`)
	_, _ = w.Write(data)
}

func (h *Handler) findVehicle(vehicleID string) *session.Session {
	for _, snapshots := range h.manager.Snapshots() {
		if sess, ok := snapshots[vehicleID]; ok {
			return sess
		}
	}
	return nil
}

func (h *Handler) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var last *session.Session
	if h.last != nil {
		last = h.last()
	}
	writeJSON(w, BuildDiagnostics(h.router, h.cache, last))
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func actor(r *http.Request) string {
	if subject := auth.SubjectFromContext(r.Context()); subject != "" {
		return subject
	}
	return "unknown"
}
