package recent

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Namespace names the settings file a scope's store persists into.
const Namespace = "emojicon"

// Persisted keys.
const (
	KeyRecents = "recent_emojis"
	KeyPage    = "recent_page"
)

// KeyValue is the settings store a Store reads at construction and writes
// through on every mutation. *prefs.Prefs satisfies it.
type KeyValue interface {
	String(key, def string) string
	Int(key string, def int) int
	PutAll(values map[string]any) error
}

// Store is the recent-glyph list for one scope. All methods are safe for
// concurrent use.
type Store struct {
	mu sync.Mutex
	// notifyMu is taken before mu is released, so watchers see snapshots
	// in mutation order.
	notifyMu sync.Mutex
	kv       KeyValue
	items    list
	page     int
	resolver Resolver
	logger   *zap.Logger
	watchers []func(Snapshot)
}

type Option func(*Store)

// WithResolver restores display metadata for codes read from storage.
func WithResolver(r Resolver) Option {
	return func(s *Store) { s.resolver = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open builds a store over kv and loads its persisted state. Missing keys
// mean an empty list on page 0; malformed entries are skipped.
func Open(kv KeyValue, opts ...Option) *Store {
	s := &Store{kv: kv, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	codes, skipped := decode(s.kv.String(KeyRecents, ""))
	limit := Capacity()
	for _, code := range codes {
		s.items.appendBack(s.resolve(code), limit)
	}
	s.page = s.kv.Int(KeyPage, 0)

	s.logger.Debug("loaded recents",
		zap.Int("items", s.items.len()),
		zap.Int("skipped", skipped),
		zap.Int("page", s.page))
}

func (s *Store) resolve(code string) Glyph {
	if s.resolver != nil {
		if g, ok := s.resolver.Lookup(code); ok {
			// keep the persisted spelling as the identity
			g.Code = code
			return g
		}
	}
	return Glyph{Code: code}
}

// Push records g as the most recent glyph. An earlier occurrence is moved
// rather than duplicated, the oldest entries beyond Capacity are evicted,
// and the result is saved before Push returns. A glyph with an empty code
// or a code that is not valid UTF-8 is ignored; the latter could not be
// read back.
func (s *Store) Push(g Glyph) error {
	if g.Code == "" || !utf8.ValidString(g.Code) {
		return nil
	}
	return s.mutate(func() bool {
		s.items.pushFront(g, Capacity())
		return true
	})
}

// Remove drops the glyph with the given code, saving only if it was
// present. removed reports whether it was.
func (s *Store) Remove(code string) (removed bool, err error) {
	err = s.mutate(func() bool {
		removed = s.items.remove(code)
		return removed
	})
	return removed, err
}

// Clear empties the list and saves.
func (s *Store) Clear() error {
	return s.mutate(func() bool {
		s.items.reset()
		return true
	})
}

// SetPage remembers the last selected picker page. The value is stored
// verbatim.
func (s *Store) SetPage(page int) error {
	return s.mutate(func() bool {
		s.page = page
		return true
	})
}

// SaveAll writes the current state even if nothing changed.
func (s *Store) SaveAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.len()
}

func (s *Store) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// StartPage is the page a picker should open on: the remembered page,
// unless that is the recent page (0) and there is nothing to show, in
// which case fallback.
func (s *Store) StartPage(fallback int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == 0 && s.items.len() == 0 {
		return fallback
	}
	return s.page
}

// Items returns a copy of the list, most recent first.
func (s *Store) Items() []Glyph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.snapshot()
}

func (s *Store) Codes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.codes()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Items: s.items.snapshot(), Page: s.page}
}

// Subscribe registers fn to receive a snapshot after every mutation, in
// mutation order. fn runs on the mutating goroutine, outside the store's
// lock, and must not mutate the store.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// mutate applies fn under the lock and, if fn reports a change, saves and
// notifies watchers. A failed save still leaves the in-memory change in
// place; the next mutation writes it again.
func (s *Store) mutate(fn func() bool) error {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return nil
	}
	err := s.saveLocked()
	snap := Snapshot{Items: s.items.snapshot(), Page: s.page}
	watchers := s.watchers
	s.notifyMu.Lock()
	s.mu.Unlock()

	for _, w := range watchers {
		w(snap)
	}
	s.notifyMu.Unlock()
	return err
}

// saveLocked writes items and page in one commit. Caller must hold s.mu.
func (s *Store) saveLocked() error {
	err := s.kv.PutAll(map[string]any{
		KeyRecents: encode(s.items.codes()),
		KeyPage:    s.page,
	})
	if err != nil {
		s.logger.Warn("failed to save recents", zap.Int("items", s.items.len()), zap.Error(err))
		return fmt.Errorf("save recents: %w", err)
	}
	return nil
}
