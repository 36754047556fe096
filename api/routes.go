package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"glyph-recents/catalog"
	"glyph-recents/recent"
)

// RegisterRoutes wires the picker-facing endpoints for one recent store.
// The store's changes are pushed to every connected feed client.
func RegisterRoutes(store *recent.Store, cat *catalog.Catalog, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := &handler{
		store:   store,
		catalog: cat,
		feed:    newFeed(logger),
		logger:  logger,
	}
	store.Subscribe(h.feed.broadcast)

	// Recents API
	r.Get("/api/recents", h.getRecents)
	r.Post("/api/recents", h.pushRecent)
	r.Delete("/api/recents/{code}", h.removeRecent)
	r.Put("/api/recents/page", h.setPage)
	r.Post("/api/recents/save", h.saveRecents)

	// WebSocket
	r.Get("/api/recents/ws", h.handleFeed)

	// Catalog API
	r.Get("/api/catalog", h.listCategories)
	r.Get("/api/catalog/{category}", h.getCategory)

	return r
}

type handler struct {
	store   *recent.Store
	catalog *catalog.Catalog
	feed    *feed
	logger  *zap.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
