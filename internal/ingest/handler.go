package ingest

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"torque-lite-pro/internal/observability/metrics"
	"torque-lite-pro/internal/routing"
	"torque-lite-pro/internal/session"
)

// Response bodies the uploading app understands. The app treats anything but
// a 200 as a hard failure, so an unroutable or unparsable payload is still
// acknowledged as IGNORED.
const (
	respAccepted = "OK!"
	respIgnored  = "IGNORED"
	respNotFound = "Not Found"
	respError    = "Error"
)

// Handler is the upload endpoint: it validates endpoint liveness, routes the
// sender to a tenant, parses the payload, caches the session and dispatches
// it to the tenant's consumer.
type Handler struct {
	router *routing.Router
	parser *session.Parser
	cache  *session.Cache
	logger *log.Logger

	mu   sync.Mutex
	last *session.Session
}

// NewHandler constructs the upload handler.
func NewHandler(router *routing.Router, parser *session.Parser, cache *session.Cache, logger *log.Logger) (*Handler, error) {
	if router == nil {
		return nil, errors.New("ingest handler: nil router")
	}
	if parser == nil {
		return nil, errors.New("ingest handler: nil parser")
	}
	if cache == nil {
		return nil, errors.New("ingest handler: nil cache")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{router: router, parser: parser, cache: cache, logger: logger}, nil
}

// ServeHTTP handles GET/POST uploads and HEAD liveness probes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		if recovered := recover(); recovered != nil {
			h.logger.Printf("ingest: panic handling %s %s: %v", r.Method, r.URL.Path, recovered)
			metrics.ObserveIngest("error", time.Since(start).Seconds())
			http.Error(w, respError, http.StatusInternalServerError)
		}
	}()

	switch r.Method {
	case http.MethodHead:
		// Liveness probe; never touches cache or routing state.
		w.WriteHeader(http.StatusOK)
	case http.MethodGet, http.MethodPost:
		result := h.handleUpload(w, r)
		metrics.ObserveIngest(result, time.Since(start).Seconds())
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) string {
	if !h.router.Active() {
		h.logger.Printf("ingest: endpoint inactive (no tenants registered)")
		http.Error(w, respNotFound, http.StatusNotFound)
		return "inactive"
	}

	h.cache.Cleanup()
	metrics.SetSessionsCached(h.cache.Len())

	fields := requestFields(r)

	email := strings.TrimSpace(firstOf(fields, "eml", "email"))
	route, ok := h.router.Resolve(email)
	if !ok {
		// Expected steady state for a misconfigured sender; keep it quiet.
		h.logger.Printf("ingest: no matching route for email=%q; ignoring", email)
		respond(w, respIgnored)
		return "ignored"
	}

	lang := firstOf(fields, "lang", "language")
	if lang == "" {
		lang = route.Language
	}

	sess := h.parser.Parse(fields, lang, route.Imperial)
	if sess == nil {
		respond(w, respIgnored)
		return "ignored"
	}

	h.cache.UpsertAndTouch(sess)
	metrics.SetSessionsCached(h.cache.Len())
	h.setLast(sess)

	h.dispatch(r, route, sess)
	respond(w, respAccepted)
	return "accepted"
}

// dispatch forwards the session to the tenant's consumer. Failures are
// logged and never change the HTTP outcome: once parsed, the upload is
// acknowledged regardless of downstream health.
func (h *Handler) dispatch(r *http.Request, route routing.Route, sess *session.Session) {
	if route.Consumer == nil {
		h.logger.Printf("ingest: no consumer for tenant %s; session not forwarded", route.TenantID)
		return
	}
	if err := route.Consumer.Notify(r.Context(), sess); err != nil {
		metrics.AddDispatchFailure()
		h.logger.Printf("ingest: consumer dispatch failed for tenant %s: %v", route.TenantID, err)
	}
}

// LastSession returns the most recently accepted session, for diagnostics.
func (h *Handler) LastSession() *session.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *Handler) setLast(sess *session.Session) {
	h.mu.Lock()
	h.last = sess
	h.mu.Unlock()
}

// requestFields flattens query parameters (GET) or form fields (POST) into
// the parser's input map; the first value wins for repeated keys.
func requestFields(r *http.Request) map[string]string {
	fields := make(map[string]string)
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			return fields
		}
		for key, values := range r.PostForm {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
		return fields
	}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields
}

func firstOf(fields map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(fields[key]); value != "" {
			return value
		}
	}
	return ""
}

func respond(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
