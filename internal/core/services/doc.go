// Package services implements the core application logic: document
// loading, local metadata derivation and the preparation pipeline.
package services
