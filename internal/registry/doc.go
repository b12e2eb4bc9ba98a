// Package registry is the lookup table between generator manifests and the
// compiled Go handlers that implement them.
//
// Modules register their handlers at startup; manifests are then loaded from
// the generators directory and ValidateRegistry checks that every manifest's
// parameters match the Go Params struct of its handler, by name and by type.
// Definition documents find their generator through Lookup.
package registry
