package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aalopez23/county-hr-dashboard/internal/audit"
	"github.com/aalopez23/county-hr-dashboard/internal/obs"
	"github.com/aalopez23/county-hr-dashboard/internal/timeoff"
)

func (a *API) handleRequestsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listRequests(w, r)
	case http.MethodPost:
		a.submitRequest(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleRequestResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/requests/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "request not found")
		return
	}

	if id, ok := strings.CutSuffix(path, "/approve"); ok {
		a.reviewRequest(w, r, id, true)
		return
	}
	if id, ok := strings.CutSuffix(path, "/deny"); ok {
		a.reviewRequest(w, r, id, false)
		return
	}
	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		a.editRequest(w, r, path)
	case http.MethodDelete:
		a.deleteRequest(w, r, path)
	default:
		methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "session expired")
		return
	}
	filter := r.URL.Query().Get("status")
	items, err := a.requests.List(r.Context(), actor, filter)
	if err != nil {
		a.handleStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (a *API) submitRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "session expired")
		return
	}
	var in timeoff.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req, err := a.requests.Submit(r.Context(), actor, in)
	if err != nil {
		a.handleTimeoffError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "timeoff.submitted", map[string]any{
		"request_id": req.ID,
		"type":       req.Type,
		"days":       req.Days,
	})
	writeJSON(w, http.StatusCreated, req)
}

func (a *API) editRequest(w http.ResponseWriter, r *http.Request, id string) {
	actor, ok := a.actor(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "session expired")
		return
	}
	var in timeoff.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req, err := a.requests.Edit(r.Context(), actor, id, in)
	if err != nil {
		a.handleTimeoffError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "timeoff.edited", map[string]any{
		"request_id": req.ID,
	})
	writeJSON(w, http.StatusOK, req)
}

func (a *API) deleteRequest(w http.ResponseWriter, r *http.Request, id string) {
	actor, ok := a.actor(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "session expired")
		return
	}
	if err := a.requests.Delete(r.Context(), actor, id); err != nil {
		a.handleTimeoffError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "timeoff.deleted", map[string]any{
		"request_id": id,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) reviewRequest(w http.ResponseWriter, r *http.Request, id string, approve bool) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
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

	var req timeoff.Request
	var err error
	event := "timeoff.denied"
	if approve {
		event = "timeoff.approved"
		req, err = a.requests.Approve(r.Context(), actor, id)
	} else {
		req, err = a.requests.Deny(r.Context(), actor, id)
	}
	if err != nil {
		a.handleTimeoffError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), event, map[string]any{
		"request_id":  req.ID,
		"employee_id": req.EmployeeID,
	})
	a.sendReviewNotice(r, req)

	writeJSON(w, http.StatusOK, req)
}

// sendReviewNotice emails the employee about the outcome, best-effort. The
// address is resolved live through the directory; unknown employee ids just
// skip the notice.
func (a *API) sendReviewNotice(r *http.Request, req timeoff.Request) {
	if a.mailer == nil {
		return
	}
	employees, err := a.directory.All(r.Context())
	if err != nil {
		return
	}
	for _, emp := range employees {
		if emp.ID != req.EmployeeID {
			continue
		}
		if err := a.mailer.ReviewNotice(emp.Email, req); err != nil {
			obs.LogRequest(map[string]any{
				"level":      "warn",
				"msg":        "review notice failed",
				"request_id": RequestIDFromContext(r.Context()),
				"error":      err.Error(),
			})
		}
		return
	}
}

func (a *API) handleTimeoffError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, timeoff.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "request not found")
	case errors.Is(err, timeoff.ErrNotOwner):
		writeError(w, r, http.StatusForbidden, "not your request")
	case errors.Is(err, timeoff.ErrNotPending):
		writeError(w, r, http.StatusConflict, "request is no longer pending")
	case errors.Is(err, timeoff.ErrAdminOnly):
		adminOnly(w, r)
	default:
		a.handleStorageError(w, r, err)
	}
}
