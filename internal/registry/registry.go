package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/footprintgen/internal/manifest"
)

// ErrGeneratorNotFound is returned by Lookup for an unknown generator.
var ErrGeneratorNotFound = errors.New("generator not found")

// Module is the interface every compiled-in generator module implements.
type Module interface {
	Register(r *Registry)
}

// Generator is a manifest joined with the Go handler it names.
type Generator struct {
	Manifest *manifest.Manifest
	Handler  *RegisteredGenerator
}

// Registry holds the registered handlers and the loaded manifests of a
// single application instance.
type Registry struct {
	HandlerRegistry  map[string]*RegisteredGenerator
	ManifestRegistry map[string]*manifest.Manifest
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		HandlerRegistry:  make(map[string]*RegisteredGenerator),
		ManifestRegistry: make(map[string]*manifest.Manifest),
	}
}

// AddManifest stores m under its ID. A second manifest with the same ID is
// an error.
func (r *Registry) AddManifest(m *manifest.Manifest) error {
	if prev, exists := r.ManifestRegistry[m.ID]; exists {
		return fmt.Errorf("generator '%s' is declared by both %s and %s", m.ID, prev.Path, m.Path)
	}
	r.ManifestRegistry[m.ID] = m
	return nil
}

// Lookup resolves a definition's generator reference. The reference is the
// manifest path relative to the generators directory; a trailing .hcl is
// optional.
func (r *Registry) Lookup(ref string) (*Generator, error) {
	id := manifest.IDFromPath(strings.TrimSpace(ref))
	m, ok := r.ManifestRegistry[id]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' (known: %s)", ErrGeneratorNotFound, ref, strings.Join(r.IDs(), ", "))
	}
	h, ok := r.HandlerRegistry[m.Handler]
	if !ok {
		return nil, fmt.Errorf("%w: generator '%s' names handler '%s' which is not registered", ErrGeneratorNotFound, id, m.Handler)
	}
	return &Generator{Manifest: m, Handler: h}, nil
}

// IDs returns the loaded generator IDs, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.ManifestRegistry))
	for id := range r.ManifestRegistry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
