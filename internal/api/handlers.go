package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/baxromumarov/seo-auditor/internal/audit"
	"github.com/baxromumarov/seo-auditor/internal/core"
	"github.com/baxromumarov/seo-auditor/internal/observability"
	"github.com/baxromumarov/seo-auditor/internal/report"
	"github.com/baxromumarov/seo-auditor/internal/store"
)

const maxBodyBytes = 1 << 20

type AuditRequest struct {
	URL string `json:"url"`
}

type BatchRequest struct {
	URLs []string `json:"urls"`
}

type BriefRequest struct {
	Topic string `json:"topic"`
	URL   string `json:"url"`
}

type ContentAnalysisRequest struct {
	Content      string `json:"content"`
	FocusKeyword string `json:"focus_keyword"`
}

type KeywordResearchRequest struct {
	Keyword string `json:"keyword"`
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	s.respondAudit(w, r, r.URL.Query().Get("url"))
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	var req AuditRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.respondAudit(w, r, req.URL)
}

func (s *Server) respondAudit(w http.ResponseWriter, r *http.Request, rawURL string) {
	rep, ok := s.runAudit(w, r, rawURL)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// runAudit writes the error response itself and reports false when the
// caller has nothing left to do.
func (s *Server) runAudit(w http.ResponseWriter, r *http.Request, rawURL string) (core.Report, bool) {
	if strings.TrimSpace(rawURL) == "" {
		respondError(w, http.StatusBadRequest, "URL is required")
		return core.Report{}, false
	}

	rep, err := s.audits.Audit(r.Context(), rawURL)
	if err != nil {
		respondAuditError(w, err)
		return core.Report{}, false
	}
	return rep, true
}

func respondAuditError(w http.ResponseWriter, err error) {
	var auditErr *core.AuditError
	switch {
	case errors.As(err, &auditErr):
		// Fetch failures are an answer, not a server error.
		respondJSON(w, http.StatusOK, auditErr.Failure())
	case errors.Is(err, core.ErrMissingInput), errors.Is(err, core.ErrBatchTooLarge):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("audit request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Audit failed")
	}
}

func (s *Server) handleAuditBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items, err := s.audits.AuditBatch(r.Context(), req.URLs)
	if err != nil {
		respondAuditError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	var req AuditRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rep, ok := s.runAudit(w, r, req.URL)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, strings.TrimSpace(req.URL), rep.Result); err != nil {
		slog.Error("pdf export failed", "url", req.URL, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to render PDF")
		return
	}
	s.audits.RecordExport(observability.EventPDFExported, req.URL)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=audit.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleExportMarkdown(w http.ResponseWriter, r *http.Request) {
	var req AuditRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rep, ok := s.runAudit(w, r, req.URL)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteMarkdown(&buf, strings.TrimSpace(req.URL), rep.Result); err != nil {
		slog.Error("markdown export failed", "url", req.URL, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to render Markdown")
		return
	}
	s.audits.RecordExport(observability.EventMarkdownExported, req.URL)

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=audit.md")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleBrief(w http.ResponseWriter, r *http.Request) {
	var req BriefRequest
	if r.Method == http.MethodPost {
		if !decodeJSON(w, r, &req) {
			return
		}
	} else {
		q := r.URL.Query()
		req.Topic = q.Get("topic")
		req.URL = q.Get("url")
	}

	if strings.TrimSpace(req.Topic) == "" && strings.TrimSpace(req.URL) == "" {
		respondError(w, http.StatusBadRequest, "Provide a topic or a url")
		return
	}

	brief, err := s.audits.Brief(r.Context(), req.Topic, req.URL)
	if err != nil {
		respondAuditError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, brief)
}

func (s *Server) handleContentAnalysis(w http.ResponseWriter, r *http.Request) {
	var req ContentAnalysisRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "Content is required")
		return
	}
	respondJSON(w, http.StatusOK, audit.AnalyzeContent(req.Content, req.FocusKeyword))
}

func (s *Server) handleKeywordResearch(w http.ResponseWriter, r *http.Request) {
	var req KeywordResearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Keyword) == "" {
		respondError(w, http.StatusBadRequest, "Keyword is required")
		return
	}
	respondJSON(w, http.StatusOK, audit.ResearchKeyword(req.Keyword))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.audits.Stats().Snapshot())
}

func (s *Server) handleAnalyticsStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.audits.Analytics().Stats()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read analytics: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListAudits(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, http.StatusNotFound, "Audit history is disabled (no database configured)")
		return
	}
	limit, offset := parsePagination(r, 20)

	audits, err := s.history.ListAudits(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch audits: "+err.Error())
		return
	}
	if audits == nil {
		audits = []store.AuditRecord{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":  audits,
		"limit":  limit,
		"offset": offset,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func parsePagination(r *http.Request, defaultLimit int) (int, int) {
	q := r.URL.Query()
	limit := defaultLimit
	offset := 0

	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
