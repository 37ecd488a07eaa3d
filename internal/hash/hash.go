// Package hash computes content digests for the indexer's change detection
// (C1). A file whose digest is unchanged since the last index run is skipped
// without re-chunking.
package hash

import (
	"bufio"
	"encoding/hex"
	"io"
	"os"

	"lukechampine.com/blake3"
)

// streamBufferSize bounds memory use when hashing large files: content is
// never loaded whole.
const streamBufferSize = 64 * 1024

// File streams path through a BLAKE3 hasher and returns its hex digest.
// Open/read errors propagate to the caller, which treats them as a skip.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New(32, nil)
	r := bufio.NewReaderSize(f, streamBufferSize)
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Bytes hashes an in-memory buffer directly.
func Bytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
