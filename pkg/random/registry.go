package random

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps command line keywords to random source kinds
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Kind
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Kind),
	}
}

// Register adds a keyword to the registry
func (r *Registry) Register(keyword string, kind Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[keyword]; exists {
		return fmt.Errorf("random source %s already registered", keyword)
	}

	r.sources[keyword] = kind
	return nil
}

// Lookup returns the kind registered under keyword
func (r *Registry) Lookup(keyword string) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kind, exists := r.sources[keyword]
	if !exists {
		return 0, fmt.Errorf("random source %s not found", keyword)
	}

	return kind, nil
}

// Keywords returns all registered keywords in sorted order
func (r *Registry) Keywords() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keywords := make([]string, 0, len(r.sources))
	for keyword := range r.sources {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	return keywords
}

// DefaultRegistry holds the sources selectable with -r
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, kind := range []Kind{C, GFSR, GFSRReset} {
		_ = r.Register(kind.String(), kind)
	}
	return r
}
