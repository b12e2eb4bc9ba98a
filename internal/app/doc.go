// Package app wires the footprint generator together: configuration,
// logging, the generator registry and the driver run, decoupled from any
// specific entrypoint like the CLI.
package app
