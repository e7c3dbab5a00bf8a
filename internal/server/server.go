// Package server exposes the advance computation over HTTP and serves the
// embedded form front-end.
package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/advancehq/salary-advance/internal/advance"
	"github.com/advancehq/salary-advance/internal/config"
	"github.com/advancehq/salary-advance/internal/ledger"
	coreadvance "github.com/advancehq/salary-advance/pkg/advance"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// Handler holds the dependencies for all HTTP endpoints.
type Handler struct {
	logger       *zap.Logger
	orchestrator *advance.Orchestrator
	ledger       *ledger.Ledger
	version      string
}

// NewHandler constructs the endpoint handler. A nil logger is replaced with
// a no-op; an empty version reports as "dev".
func NewHandler(logger *zap.Logger, orchestrator *advance.Orchestrator, ldg *ledger.Ledger, version string) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	trimmed := strings.TrimSpace(version)
	if trimmed == "" {
		trimmed = "dev"
	}
	return &Handler{
		logger:       logger,
		orchestrator: orchestrator,
		ledger:       ldg,
		version:      trimmed,
	}
}

// NewRouter wires all routes and middleware.
func NewRouter(h *Handler, rateLimit config.RateLimitConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	calculate := http.Handler(http.HandlerFunc(h.handleCalculateAdvance))
	if rateLimit.Enabled {
		limiter := NewRateLimiter(rateLimit.RequestsPerMinute, time.Minute)
		calculate = RateLimitMiddleware(limiter, calculate)
	}
	r.Method(http.MethodPost, "/calculate_advance", calculate)

	r.Get("/loan/{loan_id}", h.handleGetLoan)
	r.Get("/health", h.handleHealth)
	r.Get("/api/version", h.handleVersion)

	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

// calculateRequest is the request body; export_csv may arrive either as a
// body field or as the export_csv query parameter, with an explicit query
// value taking precedence.
type calculateRequest struct {
	advance.Request
	ExportCSV bool `json:"export_csv,omitempty"`
}

func (h *Handler) handleCalculateAdvance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", "server.handleCalculateAdvance")
		return
	}

	if reason := validateRequest(req.Request); reason != "" {
		h.respondError(w, http.StatusBadRequest, reason, "server.handleCalculateAdvance")
		return
	}

	exportCSV := req.ExportCSV
	if raw := r.URL.Query().Get("export_csv"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "export_csv must be a boolean", "server.handleCalculateAdvance")
			return
		}
		// An explicit query value overrides the body field.
		exportCSV = parsed
	}

	decision, export, err := h.orchestrator.Decide(r.Context(), req.Request, advance.Options{ExportCSV: exportCSV})
	if err != nil {
		if coreadvance.IsClientError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleCalculateAdvance")
			return
		}
		h.logger.Error("advance computation failed",
			zap.String("op", "server.handleCalculateAdvance"),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "Internal server error", "server.handleCalculateAdvance")
		return
	}

	h.logger.Info("advance request served",
		zap.String("op", "server.handleCalculateAdvance"),
		zap.Bool("export_csv", exportCSV),
		zap.Duration("duration", time.Since(start)),
	)

	if export != nil {
		h.writeJSON(w, http.StatusOK, export)
		return
	}
	h.writeJSON(w, http.StatusOK, decision)
}

func (h *Handler) handleGetLoan(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loan_id")

	record, err := h.ledger.Get(r.Context(), loanID)
	if err != nil {
		if ledger.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Loan not found", "server.handleGetLoan")
			return
		}
		h.logger.Error("loan lookup failed",
			zap.String("op", "server.handleGetLoan"),
			zap.String("loan_id", loanID),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "Internal server error", "server.handleGetLoan")
		return
	}

	h.writeJSON(w, http.StatusOK, record)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// validateRequest rejects values the calculators assume were screened out.
func validateRequest(req advance.Request) string {
	if req.GrossSalary <= 0 {
		return "gross_salary must be positive"
	}
	if req.AdvanceAmount < 0 {
		return "advance_amount must not be negative"
	}
	if req.LoanAmount != nil && *req.LoanAmount < 0 {
		return "loan_amount must not be negative"
	}
	if req.InterestRate != nil && *req.InterestRate < 0 {
		return "interest_rate must not be negative"
	}
	return ""
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg, op string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	} else {
		h.logger.Warn("request rejected",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}
	h.writeJSON(w, status, map[string]string{"detail": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
