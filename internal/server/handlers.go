package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/phantomsec/phantomscan/internal/archive"
	"github.com/phantomsec/phantomscan/internal/breach"
	"github.com/phantomsec/phantomscan/internal/model"
	"github.com/phantomsec/phantomscan/internal/password"
)

// requestSource labels archive rows created from API requests. The API
// never learns file names, so all request rows share this label.
const requestSource = "request"

// errorResponse is the uniform error body. Error messages are
// content-free: they never echo submitted content or passwords.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// analyzeRequest is the body of POST /api/analyze.
type analyzeRequest struct {
	Content string `json:"content"`
}

// analyzeResponse is the body of a successful analyze call. The original
// content is deliberately absent.
type analyzeResponse struct {
	Success         bool                   `json:"success"`
	RedactedContent string                 `json:"redacted_content"`
	SafeData        string                 `json:"safe_data"`
	Summary         model.RedactionSummary `json:"redaction_summary"`
	RiskTier        model.RiskTier         `json:"risk_tier"`
	Alert           bool                   `json:"alert"`
}

// handleAnalyze audits submitted content and returns the masked text with
// redaction counts.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Content == "" {
		s.writeError(w, http.StatusBadRequest, "no content provided")
		return
	}

	result := s.analyzer.Analyze(req.Content)

	s.archiveRun(r.Context(), result.Summary)

	s.logger.Info("document analyzed",
		"total_redactions", result.Summary.TotalRedactions,
		"risk_tier", result.RiskTier.String(),
		"alert", result.Alert,
	)

	s.writeJSON(w, http.StatusOK, analyzeResponse{
		Success:         true,
		RedactedContent: result.MaskedText,
		SafeData:        result.MaskedText,
		Summary:         result.Summary,
		RiskTier:        result.RiskTier,
		Alert:           result.Alert,
	})
}

// archiveRun stores a request audit summary. Failures are logged and
// swallowed: archival is best effort and must not fail the request.
func (s *Server) archiveRun(ctx context.Context, summary model.RedactionSummary) {
	if s.store == nil {
		return
	}
	record := archive.NewRecord(requestSource, summary)
	if err := s.store.Insert(ctx, record); err != nil {
		s.logger.Warn("failed to archive audit run", "error", err)
	}
}

// checkBreachRequest is the body of POST /api/check-breach.
type checkBreachRequest struct {
	Password string `json:"password"`
}

// checkBreachResponse is the body of a successful breach check. It carries
// counts, scores, and generated alternatives; never the submitted password
// or its digest.
type checkBreachResponse struct {
	Success         bool                   `json:"success"`
	Breached        bool                   `json:"breached"`
	OccurrenceCount int                    `json:"occurrence_count"`
	RiskLevel       string                 `json:"risk_level"`
	Recommendation  string                 `json:"recommendation"`
	Strength        password.Strength      `json:"strength_analysis"`
	Suggestions     []string               `json:"suggestions"`
	Alternatives    []password.Alternative `json:"alternative_passwords,omitempty"`
}

// handleCheckBreach performs a k-anonymity breach lookup and a local
// strength analysis for one password.
func (s *Server) handleCheckBreach(w http.ResponseWriter, r *http.Request) {
	var req checkBreachRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "no password provided")
		return
	}

	result, err := s.checker.Check(r.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, breach.ErrNetwork):
			s.writeError(w, http.StatusBadGateway, "breach service unreachable")
		case errors.Is(err, breach.ErrUpstream):
			s.writeError(w, http.StatusBadGateway, "breach service returned an error")
		default:
			s.writeError(w, http.StatusInternalServerError, "breach check failed")
		}
		return
	}

	rec, err := password.Recommend(req.Password)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "strength analysis failed")
		return
	}

	s.logger.Info("breach check complete",
		"breached", result.Breached,
		"risk_level", result.RiskLevel(),
	)

	s.writeJSON(w, http.StatusOK, checkBreachResponse{
		Success:         true,
		Breached:        result.Breached,
		OccurrenceCount: result.OccurrenceCount,
		RiskLevel:       result.RiskLevel(),
		Recommendation:  result.Recommendation(),
		Strength:        rec.Strength,
		Suggestions:     rec.Suggestions,
		Alternatives:    rec.Alternatives,
	})
}

// historyResponse is the body of GET /api/history.
type historyResponse struct {
	Success    bool              `json:"success"`
	Runs       []*archive.Record `json:"runs"`
	Statistics *archive.Stats    `json:"statistics"`
}

// handleHistory returns recent archived audit runs and archive statistics.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	// Without an archive the history is simply empty.
	if s.store == nil {
		s.writeJSON(w, http.StatusOK, historyResponse{
			Success:    true,
			Runs:       []*archive.Record{},
			Statistics: &archive.Stats{},
		})
		return
	}

	runs, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to read archive", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to read archive")
		return
	}
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.logger.Error("failed to aggregate archive", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to read archive")
		return
	}

	s.writeJSON(w, http.StatusOK, historyResponse{
		Success:    true,
		Runs:       runs,
		Statistics: stats,
	})
}

// healthResponse is the body of GET /api/health.
type healthResponse struct {
	Status  string          `json:"status"`
	Service string          `json:"service"`
	Modules map[string]bool `json:"modules"`
}

// handleHealth reports liveness and which optional modules are wired.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: "phantomscan",
		Modules: map[string]bool{
			"analyzer":       true,
			"breach_checker": true,
			"archive":        s.store != nil,
		},
	})
}

// decodeJSON reads a size-limited JSON body into dst. On failure it writes
// a content-free error response and returns false.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxRequestBody)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeJSON writes a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes a uniform JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Success: false, Error: msg})
}
