package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/activities/internal/config"
	"github.com/gyaneshwarpardhi/activities/internal/metrics"
	"github.com/gyaneshwarpardhi/activities/internal/registry"
	"github.com/gyaneshwarpardhi/activities/internal/web"
)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	reg    *registry.Registry
	loader *config.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes. loader may be nil,
// in which case catalog reload is unavailable. When set, every successful
// reload (file watch or endpoint) refreshes the registry's metadata.
func New(reg *registry.Registry, loader *config.Loader, staticDir string) http.Handler {
	h := &Handler{reg: reg, loader: loader, mux: http.NewServeMux()}

	if loader != nil {
		loader.OnChange(h.applyCatalog)
	}

	h.mux.HandleFunc("GET /{$}", h.root)
	h.mux.Handle("GET /static/", web.Handler(staticDir))
	h.mux.HandleFunc("GET /activities", h.listActivities)
	h.mux.HandleFunc("POST /activities/{name}/signup", h.signup)
	h.mux.HandleFunc("DELETE /activities/{name}/unregister", h.unregister)
	h.mux.HandleFunc("POST /v1/catalog/reload", h.reloadCatalog)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// GET /: redirect to the UI.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, web.IndexPath, http.StatusTemporaryRedirect)
}

// GET /activities: full catalog with current rosters.
func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reg.ListActivities())
}

// POST /activities/{name}/signup?email=
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusUnprocessableEntity, "email query parameter is required")
		return
	}

	err := h.reg.Enroll(name, email)
	h.observe("enroll", name, err)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrActivityNotFound):
			writeError(w, http.StatusNotFound, "Activity not found")
		case errors.Is(err, registry.ErrAlreadyEnrolled):
			writeError(w, http.StatusBadRequest, "Student is already signed up for this activity")
		case errors.Is(err, registry.ErrActivityFull):
			writeError(w, http.StatusBadRequest, "Activity is full")
		case errors.Is(err, registry.ErrInvalidParticipant):
			writeError(w, http.StatusUnprocessableEntity, "email query parameter is required")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeMessage(w, fmt.Sprintf("Signed up %s for %s", email, name))
}

// DELETE /activities/{name}/unregister?email=
//
// Unknown activities answer 400, the same as a participant who is not enrolled.
func (h *Handler) unregister(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusUnprocessableEntity, "email query parameter is required")
		return
	}

	err := h.reg.Withdraw(name, email)
	h.observe("withdraw", name, err)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrActivityNotFound):
			writeError(w, http.StatusBadRequest, "Activity not found")
		case errors.Is(err, registry.ErrNotEnrolled):
			writeError(w, http.StatusBadRequest, "Student is not signed up for this activity")
		case errors.Is(err, registry.ErrInvalidParticipant):
			writeError(w, http.StatusUnprocessableEntity, "email query parameter is required")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeMessage(w, fmt.Sprintf("Unregistered %s from %s", email, name))
}

// POST /v1/catalog/reload: re-read the catalog file and refresh metadata.
func (h *Handler) reloadCatalog(w http.ResponseWriter, r *http.Request) {
	if h.loader == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog reload is not configured")
		return
	}
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ignored := h.reg.Unmatched(cfg)
	if ignored == nil {
		ignored = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded":         true,
		"activities":       h.reg.Len(),
		"enforce_capacity": h.reg.EnforcesCapacity(),
		"ignored":          ignored,
	})
}

// GET /healthz: always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz: 503 until the catalog has at least one activity.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	n := h.reg.Len()
	if n == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":     "empty catalog",
			"activities": n,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ready",
		"activities": n,
	})
}

func (h *Handler) applyCatalog(cfg *config.CatalogConfig) {
	ignored := h.reg.Refresh(cfg)
	if len(ignored) > 0 {
		slog.Warn("catalog reload: activities cannot be added or removed at runtime", "ignored", ignored)
	}
	slog.Info("catalog reloaded", "activities", h.reg.Len(), "enforce_capacity", cfg.Registry.EnforceCapacity)
}

// observe records a roster operation outcome. Unknown activity names are
// collapsed into one label value to keep cardinality bounded.
func (h *Handler) observe(op, activity string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(registry.KindOf(err))
	}
	if errors.Is(err, registry.ErrActivityNotFound) {
		activity = "unknown"
	}
	metrics.RosterOperations.WithLabelValues(op, activity, outcome).Inc()
}
