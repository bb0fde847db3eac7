// Package file provides a TOML-backed implementation of the
// configuration store port.
package file
