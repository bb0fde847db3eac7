// Package domain contains the core business entities for document
// preparation: documents, chunks, metadata layers and batch outcomes.
// It has no dependencies on adapters or infrastructure.
package domain
