package api

import (
	"net/http"

	"github.com/erazemk/sledilnik/internal/docstore"
	"github.com/erazemk/sledilnik/internal/store"
)

// StatusHandler reports service liveness and store diagnostics.
type StatusHandler struct {
	Store           docstore.Store
	DatabaseURLSet  bool
	DatabaseNameSet bool
}

// Root handles GET /.
func (h *StatusHandler) Root(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, r, http.StatusOK, map[string]string{"message": "Tracking API running"})
}

// Test handles GET /test.
func (h *StatusHandler) Test(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, r, http.StatusOK, store.Diagnose(r.Context(), h.Store, h.DatabaseURLSet, h.DatabaseNameSet))
}
