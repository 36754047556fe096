package api

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"glyph-recents/recent"
)

// firstCategoryPage is where a picker opens when the recent grid is empty.
const firstCategoryPage = 1

type recentsResponse struct {
	Items     []recent.Glyph `json:"items"`
	Page      int            `json:"page"`
	StartPage int            `json:"startPage"`
}

func (h *handler) recents() recentsResponse {
	snap := h.store.Snapshot()
	return recentsResponse{
		Items:     snap.Items,
		Page:      snap.Page,
		StartPage: h.store.StartPage(firstCategoryPage),
	}
}

func (h *handler) getRecents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.recents())
}

func (h *handler) pushRecent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// An empty code is ignored by the store; the caller still gets the list.
	g := recent.Glyph{Code: req.Code}
	if known, ok := h.catalog.Lookup(req.Code); ok {
		g = known
	}
	if err := h.store.Push(g); err != nil {
		h.logger.Error("push failed", zap.String("code", g.Code), zap.Error(err))
		http.Error(w, "failed to save recents", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.recents())
}

func (h *handler) removeRecent(w http.ResponseWriter, r *http.Request) {
	code, err := pathParam(r, "code")
	if err != nil {
		http.Error(w, "invalid code", http.StatusBadRequest)
		return
	}
	if known, ok := h.catalog.Lookup(code); ok {
		code = known.Code
	}

	removed, err := h.store.Remove(code)
	if err != nil {
		h.logger.Error("remove failed", zap.String("code", code), zap.Error(err))
		http.Error(w, "failed to save recents", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "code not in recents", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathParam returns a decoded URL parameter. chi matches against
// r.URL.RawPath when it is set, leaving the parameter escaped.
func pathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

func (h *handler) setPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page *int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Page == nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.store.SetPage(*req.Page); err != nil {
		h.logger.Error("set page failed", zap.Int("page", *req.Page), zap.Error(err))
		http.Error(w, "failed to save page", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.recents())
}

// saveRecents is called by the picker when it is dismissed.
func (h *handler) saveRecents(w http.ResponseWriter, r *http.Request) {
	if err := h.store.SaveAll(); err != nil {
		h.logger.Error("flush failed", zap.Error(err))
		http.Error(w, "failed to save recents", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
