// Package api serves the dashboard, legacy and task operations over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/grindstone/internal/contract"
	"github.com/alexanderramin/grindstone/internal/engine"
	"github.com/alexanderramin/grindstone/internal/metrics"
	"github.com/alexanderramin/grindstone/internal/repository"
	"github.com/alexanderramin/grindstone/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services are the use cases the API exposes.
type Services struct {
	Dashboard service.DashboardService
	Legacy    service.LegacyService
	History   service.HistoryService
	Settings  service.SettingsService
	Tasks     service.TaskService
	Sessions  service.SessionService
	Domains   service.DomainService
}

type Server struct {
	svc            Services
	logger         *slog.Logger
	metricsEnabled bool
	historyLimit   int
}

func NewServer(svc Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{svc: svc, logger: logger, historyLimit: service.DefaultHistoryLimit}
}

// EnableMetrics mounts the Prometheus /metrics endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHistoryLimit sets the default number of days /api/history returns.
func (s *Server) SetHistoryLimit(n int) {
	if n > 0 {
		s.historyLimit = n
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.requestMetrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/legacy", s.handleLegacy)
		r.Get("/history", s.handleHistory)
		r.Get("/domains", s.handleDomains)

		r.Post("/tasks", s.handleAddTask)
		r.Delete("/tasks/{id}", s.handleDeleteTask)
		r.Post("/tasks/{id}/toggle", s.handleToggleTask)
		r.Post("/tasks/{id}/session", s.handleCompleteSession)

		r.Post("/lock/toggle", s.handleToggleLock)
		r.Post("/wallet/reset", s.handleResetWallet)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Dashboard.Today(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.FromDashboard(view))
}

func (s *Server) handleLegacy(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Legacy.Overview(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.FromLegacy(view))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := s.historyLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 366 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 366")
			return
		}
		limit = n
	}
	days, err := s.svc.History.Recent(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.FromHistory(days))
}

func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("all") == "true"
	domains, err := s.svc.Domains.List(r.Context(), includeInactive)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.FromDomains(domains))
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req contract.AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	task, err := s.svc.Tasks.AddFromPhrase(r.Context(), req.Text)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := contract.FromTask(task)
	writeJSON(w, http.StatusCreated, contract.AddTaskResponse{Result: contract.Result{Success: true}, Task: &out})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Tasks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.Result{Success: true})
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.Tasks.ToggleCompletion(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.FromToggle(out))
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	var req contract.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	out, err := s.svc.Sessions.Complete(r.Context(), chi.URLParam(r, "id"), req.Input())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.FromSession(out))
}

func (s *Server) handleToggleLock(w http.ResponseWriter, r *http.Request) {
	status, err := s.svc.Settings.ToggleLock(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.FromLock(status))
}

func (s *Server) handleResetWallet(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Settings.ResetWallet(r.Context()); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.Result{Success: true})
}

// writeServiceError maps domain errors onto status codes. A locked day is a
// refused mutation, not a failure, and keeps the {success,message} shape.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case engine.IsLocked(err):
		writeJSON(w, http.StatusLocked, contract.Result{Success: false, Message: engine.LockedMessage})
	case engine.IsValidation(err), errors.Is(err, engine.ErrNoActiveDomain):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// unmatchedRoute labels requests no route pattern matched.
const unmatchedRoute = "unmatched"

// requestMetrics counts requests by route pattern once routing has resolved.
func (s *Server) requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, contract.ErrorResponse{Error: msg})
}
