package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var ErrUnsupportedValue = errors.New("unsupported preference value type")

// Prefs is a small persistent settings store: string and int values keyed
// by name, held in memory and written as one JSON object per file.
type Prefs struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]any
}

// Open loads the store at filePath, or returns an empty store if the file
// does not exist. Returns an error only on unexpected I/O failures or a
// file that is not a JSON object.
func Open(filePath string) (*Prefs, error) {
	p := &Prefs{filePath: filePath, values: map[string]any{}}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	for k, v := range raw {
		switch v := v.(type) {
		case string:
			p.values[k] = v
		case json.Number:
			// Only integral numbers are ever written; anything else is dropped.
			if n, err := v.Int64(); err == nil {
				p.values[k] = int(n)
			}
		}
	}
	return p, nil
}

// Path returns the file backing the store.
func (p *Prefs) Path() string {
	return p.filePath
}

// String returns the string stored under key, or def if the key is absent
// or holds another type.
func (p *Prefs) String(key, def string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if s, ok := p.values[key].(string); ok {
		return s
	}
	return def
}

// Int returns the int stored under key, or def if the key is absent or
// holds another type.
func (p *Prefs) Int(key string, def int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if n, ok := p.values[key].(int); ok {
		return n
	}
	return def
}

func (p *Prefs) Contains(key string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.values[key]
	return ok
}

// PutAll stores every value in one commit. Values must be string or int.
func (p *Prefs) PutAll(values map[string]any) error {
	e := p.Edit()
	for k, v := range values {
		switch v := v.(type) {
		case string:
			e.PutString(k, v)
		case int:
			e.PutInt(k, v)
		default:
			return fmt.Errorf("%w: %s is %T", ErrUnsupportedValue, k, v)
		}
	}
	return e.Commit()
}

// Edit starts a batch of changes that become visible on Commit.
func (p *Prefs) Edit() *Editor {
	return &Editor{p: p, puts: map[string]any{}, removals: map[string]bool{}}
}

// Editor stages changes to a Prefs.
type Editor struct {
	p        *Prefs
	puts     map[string]any
	removals map[string]bool
}

func (e *Editor) PutString(key, value string) *Editor {
	delete(e.removals, key)
	e.puts[key] = value
	return e
}

func (e *Editor) PutInt(key string, value int) *Editor {
	delete(e.removals, key)
	e.puts[key] = value
	return e
}

func (e *Editor) Remove(key string) *Editor {
	delete(e.puts, key)
	e.removals[key] = true
	return e
}

// Commit atomically writes the staged changes to disk, then updates the
// in-memory values. On a write failure memory is left untouched.
func (e *Editor) Commit() error {
	p := e.p
	p.mu.Lock()
	defer p.mu.Unlock()

	next := make(map[string]any, len(p.values)+len(e.puts))
	for k, v := range p.values {
		if !e.removals[k] {
			next[k] = v
		}
	}
	for k, v := range e.puts {
		next[k] = v
	}

	if err := p.writeAtomic(next); err != nil {
		return err
	}
	p.values = next
	return nil
}

// writeAtomic writes to a temp file then renames it over filePath.
// Caller must hold p.mu.
func (p *Prefs) writeAtomic(values map[string]any) error {
	dir := filepath.Dir(p.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := p.filePath + ".tmp"
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, p.filePath)
}
