// Package sqlite provides SQLite-backed document and vector storage.
//
// Each fetched mailbox day lives in its own database file, so switching the
// active day is just opening a different path. Documents and their embedding
// vectors share one database; vectors are stored as little-endian float32
// blobs and searched by brute-force cosine similarity, which is more than
// fast enough at one-day-of-inbox scale.
package sqlite
