// Package extractors provides per-format text extraction
// implementations and the extension-based dispatch registry.
package extractors
