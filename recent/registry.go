package recent

import (
	"errors"
	"path/filepath"
	"sync"

	"glyph-recents/prefs"
)

var ErrNoScope = errors.New("scope must not be empty")

// Registry hands out one Store per scope directory, building each at most
// once. A scope whose construction failed is retried on the next Get.
type Registry struct {
	mu    sync.Mutex
	cells map[string]*cell
	opts  []Option
}

type cell struct {
	once  sync.Once
	store *Store
	err   error
}

// NewRegistry returns an empty registry; opts are applied to every store
// it builds.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{cells: make(map[string]*cell), opts: opts}
}

// Get returns the store for scope, loading it from
// <scope>/emojicon.json on first use. Concurrent first calls all receive
// the same store.
func (r *Registry) Get(scope string) (*Store, error) {
	if scope == "" {
		return nil, ErrNoScope
	}
	key, err := filepath.Abs(scope)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	c, ok := r.cells[key]
	if !ok {
		c = &cell{}
		r.cells[key] = c
	}
	r.mu.Unlock()

	c.once.Do(func() {
		kv, err := prefs.Open(filepath.Join(key, Namespace+".json"))
		if err != nil {
			c.err = err
			return
		}
		c.store = Open(kv, r.opts...)
	})

	if c.err != nil {
		r.mu.Lock()
		if r.cells[key] == c {
			delete(r.cells, key)
		}
		r.mu.Unlock()
		return nil, c.err
	}
	return c.store, nil
}

var defaultRegistry = NewRegistry()

// GetInstance returns the process-wide store for scope.
func GetInstance(scope string) (*Store, error) {
	return defaultRegistry.Get(scope)
}
