// Package cli implements the command-line interface adapter. Commands
// delegate to core services injected at startup via SetServices.
package cli
