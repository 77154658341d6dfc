// Package file provides the TOML-backed configuration store. Settings such
// as the OpenAI API key, Graph application ID and index directory live in
// ~/.inboxqa/config.toml with dot-notation key access.
package file
