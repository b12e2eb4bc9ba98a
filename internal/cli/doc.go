// Package cli is responsible for parsing command-line arguments, merging
// them with environment variables and an optional config file, and
// mapping failures to process exit codes. It translates CLI flags into the
// application's configuration.
package cli
