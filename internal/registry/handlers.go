package registry

import (
	"context"
	"fmt"
	"log/slog"
)

// GenerateFunc writes the artifacts for one resolved parameter set into
// outputDir. params is the pointer returned by NewParams, populated by Bind.
type GenerateFunc func(ctx context.Context, outputDir string, params any) error

// RegisteredGenerator holds the compiled Go parts of a generator.
type RegisteredGenerator struct {
	// NewParams returns a pointer to a fresh Params struct whose cty-tagged
	// fields mirror the manifest parameters.
	NewParams func() any
	Fn        GenerateFunc
}

// RegisterGenerator registers a Go handler under name. Registering the same
// name twice is a programming error and panics.
func (r *Registry) RegisterGenerator(name string, handler *RegisteredGenerator) {
	if _, exists := r.HandlerRegistry[name]; exists {
		panic(fmt.Sprintf("generator handler with name '%s' already registered", name))
	}
	if handler == nil || handler.NewParams == nil || handler.Fn == nil {
		panic(fmt.Sprintf("generator handler '%s' must set NewParams and Fn", name))
	}
	slog.Debug("Registering generator handler.", "name", name)
	r.HandlerRegistry[name] = handler
}
