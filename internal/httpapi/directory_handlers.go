package httpapi

import "net/http"

func (a *API) handleDirectory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	q := r.URL.Query()
	items, err := a.directory.Search(r.Context(), q.Get("q"), q.Get("sort"), q.Get("dir"))
	if err != nil {
		a.handleStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
