// Package html provides the Normaliser implementation for HTML email
// bodies. It extracts readable text content, stripping tags, scripts,
// styles, and decoding entities for clean indexable content.
package html
