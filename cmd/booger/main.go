// Command booger is the local code-intelligence CLI: index a project, query
// it by keyword, semantic, or hybrid search, inspect its structure, diff
// branches, and annotate it for an agent's working session.
package main

import (
	"os"

	"github.com/CryptArtificer/booger/cmd/booger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
