package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"glyph-recents/api"
	"glyph-recents/catalog"
	"glyph-recents/prefs"
	"glyph-recents/recent"
)

type recentsBody struct {
	Items     []recent.Glyph `json:"items"`
	Page      int            `json:"page"`
	StartPage int            `json:"startPage"`
}

// newTestStore creates a recent store backed by a temp settings file.
func newTestStore(t *testing.T, path string) *recent.Store {
	t.Helper()
	p, err := prefs.Open(path)
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	return recent.Open(p, recent.WithResolver(catalog.Default()))
}

func newTestServer(t *testing.T) (*httptest.Server, *recent.Store) {
	t.Helper()
	store := newTestStore(t, filepath.Join(t.TempDir(), recent.Namespace+".json"))
	srv := httptest.NewServer(api.RegisterRoutes(store, catalog.Default(), zap.NewNop()))
	return srv, store
}

func push(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/recents", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/recents: %v", err)
	}
	return resp
}

func decodeRecents(t *testing.T, resp *http.Response) recentsBody {
	t.Helper()
	defer resp.Body.Close()
	var body recentsBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestGetRecentsEmpty(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/recents")
	if err != nil {
		t.Fatalf("GET /api/recents: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeRecents(t, resp)
	if len(body.Items) != 0 {
		t.Fatalf("expected no items, got %+v", body.Items)
	}
	if body.Page != 0 || body.StartPage != 1 {
		t.Fatalf("expected page 0, start page 1, got %d/%d", body.Page, body.StartPage)
	}
}

func TestPushRecent(t *testing.T) {
	srv, store := newTestServer(t)
	defer srv.Close()

	push(t, srv, `{"code":"😀"}`).Body.Close()
	resp := push(t, srv, `{"code":"🦊"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeRecents(t, resp)
	if len(body.Items) != 2 || body.Items[0].Code != "🦊" || body.Items[1].Code != "😀" {
		t.Fatalf("unexpected items %+v", body.Items)
	}
	if body.Items[0].Name != "fox" {
		t.Fatalf("expected catalog metadata, got %+v", body.Items[0])
	}
	if body.StartPage != 0 {
		t.Fatalf("expected start page 0 with recents, got %d", body.StartPage)
	}
	if store.Size() != 2 {
		t.Fatalf("store size %d", store.Size())
	}
}

func TestPushRecentEmptyCode(t *testing.T) {
	srv, store := newTestServer(t)
	defer srv.Close()

	resp := push(t, srv, `{"code":""}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
	if store.Size() != 0 {
		t.Fatalf("empty code should be ignored, got %v", store.Codes())
	}
}

func TestPushRecentBadJSON(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp := push(t, srv, "not-json")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPushRecentSaveFailure(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, filepath.Join(dir, "sub", recent.Namespace+".json"))
	// Block the settings directory with a regular file so commits fail.
	if err := os.WriteFile(filepath.Join(dir, "sub"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(api.RegisterRoutes(store, catalog.Default(), zap.NewNop()))
	defer srv.Close()

	resp := push(t, srv, `{"code":"😀"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if store.Size() != 1 {
		t.Fatal("in-memory list should keep the push")
	}
}

func TestRemoveRecent(t *testing.T) {
	srv, store := newTestServer(t)
	defer srv.Close()

	push(t, srv, `{"code":"😀"}`).Body.Close()
	push(t, srv, `{"code":"😁"}`).Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/recents/"+url.PathEscape("😀"), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if codes := store.Codes(); len(codes) != 1 || codes[0] != "😁" {
		t.Fatalf("unexpected codes %v", codes)
	}
}

func deleteRecent(t *testing.T, srv *httptest.Server, escaped string) int {
	t.Helper()
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/recents/"+escaped, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestRemoveRecentPercentEncoded(t *testing.T) {
	srv, store := newTestServer(t)
	defer srv.Close()

	store.Push(recent.Glyph{Code: "a,b"})
	store.Push(recent.Glyph{Code: "50%"})
	store.Push(recent.Glyph{Code: "😀"})

	// encodeURIComponent style: every reserved byte escaped
	if status := deleteRecent(t, srv, "a%2Cb"); status != http.StatusNoContent {
		t.Fatalf("expected 204 for a%%2Cb, got %d", status)
	}
	if status := deleteRecent(t, srv, "50%25"); status != http.StatusNoContent {
		t.Fatalf("expected 204 for 50%%25, got %d", status)
	}
	if codes := store.Codes(); len(codes) != 1 || codes[0] != "😀" {
		t.Fatalf("unexpected codes %q", codes)
	}
}

func TestRemoveRecentNormalisesCode(t *testing.T) {
	srv, store := newTestServer(t)
	defer srv.Close()

	push(t, srv, `{"code":"\u212B"}`).Body.Close()
	if codes := store.Codes(); len(codes) != 1 || codes[0] != "\u00C5" {
		t.Fatalf("expected catalog spelling, got %q", codes)
	}
	if status := deleteRecent(t, srv, url.PathEscape("A\u030A")); status != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", status)
	}
	if store.Size() != 0 {
		t.Fatalf("expected empty store, got %q", store.Codes())
	}
}

func TestRemoveRecentNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	if status := deleteRecent(t, srv, url.PathEscape("🦄")); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestSetPage(t *testing.T) {
	srv, store := newTestServer(t)
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/recents/page", strings.NewReader(`{"page":3}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /api/recents/page: %v", err)
	}
	body := decodeRecents(t, resp)
	if body.Page != 3 || body.StartPage != 3 {
		t.Fatalf("expected page 3, got %+v", body)
	}
	if store.Page() != 3 {
		t.Fatalf("store page %d", store.Page())
	}
}

func TestSetPageMissingField(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/recents/page", strings.NewReader(`{}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSaveRecents(t *testing.T) {
	path := filepath.Join(t.TempDir(), recent.Namespace+".json")
	store := newTestStore(t, path)
	srv := httptest.NewServer(api.RegisterRoutes(store, catalog.Default(), zap.NewNop()))
	defer srv.Close()

	push(t, srv, `{"code":"😀"}`).Body.Close()

	resp, err := http.Post(srv.URL+"/api/recents/save", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/recents/save: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	reloaded := newTestStore(t, path)
	if codes := reloaded.Codes(); len(codes) != 1 || codes[0] != "😀" {
		t.Fatalf("unexpected persisted codes %v", codes)
	}
}
