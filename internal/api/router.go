package api

import (
	"net/http"

	"github.com/erazemk/sledilnik/internal/docstore"
)

// Options configures the router beyond its store.
type Options struct {
	DatabaseURLSet  bool
	DatabaseNameSet bool
	// CORSOrigins enables CORS for the listed origins when non-empty.
	CORSOrigins []string
}

// NewRouter creates the router with all endpoints registered.
func NewRouter(ds docstore.Store, opts Options) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Store: ds}
	statusHandler := &StatusHandler{
		Store:           ds,
		DatabaseURLSet:  opts.DatabaseURLSet,
		DatabaseNameSet: opts.DatabaseNameSet,
	}

	mux.HandleFunc("GET /{$}", statusHandler.Root)
	mux.HandleFunc("GET /test", statusHandler.Test)

	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("PATCH /api/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)
	mux.HandleFunc("GET /api/items/{id}/activity", itemsHandler.GetActivity)

	var handler http.Handler = mux
	if len(opts.CORSOrigins) > 0 {
		handler = CORSMiddleware(opts.CORSOrigins)(handler)
	}
	return LoggingMiddleware(handler)
}
