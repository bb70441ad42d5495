package liquid

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Loader resolves template names to source text.
type Loader interface {
	Load(name string) (string, error)
}

// ErrTemplateNotFound reports a name the loader cannot resolve.
type ErrTemplateNotFound struct {
	Name string
}

func (e ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("template %q not found", e.Name)
}

// MemoryLoader serves templates from an in-memory map, keyed by name.
type MemoryLoader map[string]string

func (l MemoryLoader) Load(name string) (string, error) {
	src, ok := l[name]
	if !ok {
		return "", ErrTemplateNotFound{Name: name}
	}
	return src, nil
}

// DirLoader serves templates from files under a root directory. Names use
// slash separators regardless of platform.
type DirLoader struct {
	Root string
}

func (l DirLoader) Load(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.Root, filepath.FromSlash(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrTemplateNotFound{Name: name}
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Repository parses templates from a loader once and caches the result. It
// is safe for concurrent use.
type Repository struct {
	loader Loader

	mu    sync.Mutex
	cache map[string]*Template
}

func NewRepository(loader Loader) *Repository {
	return &Repository{loader: loader, cache: make(map[string]*Template)}
}

// Get returns the parsed template for a name, loading and parsing on first
// use.
func (r *Repository) Get(name string) (*Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.cache[name]; ok {
		return t, nil
	}
	src, err := r.loader.Load(name)
	if err != nil {
		return nil, err
	}
	t, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	r.cache[name] = t
	return t, nil
}
