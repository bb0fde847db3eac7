// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): text extractors, the metadata enrichment
// service and configuration storage.
package driven
