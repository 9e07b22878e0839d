package httpapi

import (
	"net/http"
	"time"

	"github.com/aalopez23/county-hr-dashboard/internal/audit"
	"github.com/aalopez23/county-hr-dashboard/internal/report"
)

func (a *API) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if !a.requireAdmin(w, r) {
		return
	}
	actor, ok := a.actor(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "session expired")
		return
	}

	// Admin "all" is the entire collection, unscoped.
	requests, err := a.requests.List(r.Context(), actor, "all")
	if err != nil {
		a.handleStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.Build(requests))
}

func (a *API) handleReportExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if !a.requireAdmin(w, r) {
		return
	}
	actor, ok := a.actor(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "session expired")
		return
	}

	requests, err := a.requests.List(r.Context(), actor, "all")
	if err != nil {
		a.handleStorageError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "report.exported", map[string]any{
		"rows": len(requests),
	})

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.CSV(requests))
}
