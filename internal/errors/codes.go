// Package errors provides the structured error kinds the engine raises,
// matching the error handling design: IO, Parse, StoreIntegrity,
// InvalidQuery, NotFound, External.
package errors

// Kind classifies an engine error for dispatch and formatting.
type Kind string

const (
	// KindIO covers filesystem or network failure during walk, hash, read,
	// or embedder call.
	KindIO Kind = "IO"
	// KindParse covers tree-sitter parse failure. Never fatal on its own;
	// the chunker demotes these to a raw fallback chunk.
	KindParse Kind = "PARSE"
	// KindStoreIntegrity covers the store reporting a constraint or
	// corruption error. Fatal to the current operation.
	KindStoreIntegrity Kind = "STORE_INTEGRITY"
	// KindInvalidQuery covers regex compile failure or malformed query.
	KindInvalidQuery Kind = "INVALID_QUERY"
	// KindNotFound covers reads against a missing index or unknown
	// registered project name.
	KindNotFound Kind = "NOT_FOUND"
	// KindExternal covers embedder HTTP errors and non-zero VCS exits.
	KindExternal Kind = "EXTERNAL"
)

// retryable reports whether an error kind is worth retrying with backoff.
// Only transient external calls are retried; store and query errors are not.
func (k Kind) retryable() bool {
	return k == KindIO || k == KindExternal
}
