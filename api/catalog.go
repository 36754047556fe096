package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"glyph-recents/catalog"
	"glyph-recents/recent"
)

type categoryInfo struct {
	Name   string         `json:"name"`
	Page   int            `json:"page"`
	Glyphs []recent.Glyph `json:"glyphs,omitempty"`
}

func (h *handler) listCategories(w http.ResponseWriter, r *http.Request) {
	names := h.catalog.Categories()
	out := make([]categoryInfo, 0, len(names))
	for _, name := range names {
		page, _ := h.catalog.Page(name)
		out = append(out, categoryInfo{Name: name, Page: page})
	}
	writeJSON(w, http.StatusOK, map[string][]categoryInfo{"categories": out})
}

func (h *handler) getCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "category")
	glyphs, err := h.catalog.Category(name)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownCategory) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load category", http.StatusInternalServerError)
		return
	}
	page, _ := h.catalog.Page(name)
	writeJSON(w, http.StatusOK, categoryInfo{Name: name, Page: page, Glyphs: glyphs})
}
