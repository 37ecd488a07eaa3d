package search

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/CryptArtificer/booger/internal/config"
	boogererrors "github.com/CryptArtificer/booger/internal/errors"
	"github.com/CryptArtificer/booger/internal/store"
)

// ListSymbols returns every non-raw chunk under pathPrefix/kind, ordered by
// file path then start line — spec §4.9's list_symbols.
func ListSymbols(root string, cfg config.Config, pathPrefix, kind string) ([]store.Chunk, error) {
	st, err := openExisting(root, cfg)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, nil
	}
	defer st.Close()
	return st.ListSymbols(pathPrefix, kind)
}

// GrepMatch is one line hit plus its optional surrounding context.
type GrepMatch struct {
	FilePath    string
	Line        int
	Text        string
	ContextPre  []string
	ContextPost []string
}

// GrepResult is grep's full outcome: the matches (capped at maxResults) and
// the number of distinct files among those matches.
type GrepResult struct {
	Matches       []GrepMatch
	MatchingFiles int
}

// Grep compiles pattern as a regular expression and scans every chunk's
// content line by line under pathPrefix/kind, collecting up to maxResults
// matches with contextLines of surrounding context — spec §4.9's grep. An
// invalid regex is a structured KindInvalidQuery error.
func Grep(root string, cfg config.Config, pattern, pathPrefix, kind string, maxResults, contextLines int) (GrepResult, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return GrepResult{}, boogererrors.InvalidQuery(fmt.Sprintf("invalid grep pattern %q", pattern), err)
	}

	st, err := openExisting(root, cfg)
	if err != nil {
		return GrepResult{}, err
	}
	if st == nil {
		return GrepResult{}, nil
	}
	defer st.Close()

	chunks, err := st.AllChunks(pathPrefix, kind)
	if err != nil {
		return GrepResult{}, err
	}

	var result GrepResult
	matchingFiles := make(map[string]bool)
	for _, c := range chunks {
		if maxResults > 0 && len(result.Matches) >= maxResults {
			break
		}
		lines := splitLines(c.Content)
		for i, line := range lines {
			if maxResults > 0 && len(result.Matches) >= maxResults {
				break
			}
			if !re.MatchString(line) {
				continue
			}
			m := GrepMatch{
				FilePath: c.FilePath,
				Line:     c.StartLine + i,
				Text:     line,
			}
			if contextLines > 0 {
				m.ContextPre = contextSlice(lines, i-contextLines, i)
				m.ContextPost = contextSlice(lines, i+1, i+1+contextLines)
			}
			result.Matches = append(result.Matches, m)
			matchingFiles[c.FilePath] = true
		}
	}
	result.MatchingFiles = len(matchingFiles)
	return result, nil
}

func splitLines(content string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

func contextSlice(lines []string, from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to > len(lines) {
		to = len(lines)
	}
	if from >= to {
		return nil
	}
	return append([]string(nil), lines[from:to]...)
}

// ReferenceKind classifies one reference hit.
type ReferenceKind string

const (
	ReferenceDefinition ReferenceKind = "definition"
	ReferenceImport     ReferenceKind = "import"
	ReferenceCall       ReferenceKind = "call"
	ReferenceType       ReferenceKind = "type"
	ReferenceGeneric    ReferenceKind = "reference"
)

// Reference is one hit for a symbol, grouped and sorted by file then line.
type Reference struct {
	FilePath string
	Line     int
	Kind     ReferenceKind
	Text     string
}

// References finds every definition and usage of symbol under pathPrefix —
// spec §4.9's references. A chunk whose name equals symbol is a
// definition; otherwise each line matching \b<symbol>\b is classified
// heuristically.
func References(root string, cfg config.Config, symbol, pathPrefix string) ([]Reference, error) {
	st, err := openExisting(root, cfg)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, nil
	}
	defer st.Close()

	chunks, err := st.AllChunks(pathPrefix, "")
	if err != nil {
		return nil, err
	}

	wordBoundary, err := regexp.Compile(`\b` + regexp.QuoteMeta(symbol) + `\b`)
	if err != nil {
		return nil, boogererrors.InvalidQuery(fmt.Sprintf("invalid symbol %q", symbol), err)
	}

	var out []Reference
	for _, c := range chunks {
		if c.Name == symbol {
			out = append(out, Reference{FilePath: c.FilePath, Line: c.StartLine, Kind: ReferenceDefinition, Text: c.Signature})
			continue
		}
		lines := splitLines(c.Content)
		for i, line := range lines {
			if !wordBoundary.MatchString(line) {
				continue
			}
			out = append(out, Reference{
				FilePath: c.FilePath,
				Line:     c.StartLine + i,
				Kind:     classifyReference(line, symbol, c.Kind),
				Text:     line,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FilePath != out[j].FilePath {
			return out[i].FilePath < out[j].FilePath
		}
		return out[i].Line < out[j].Line
	})
	return out, nil
}

func classifyReference(line, symbol, chunkKind string) ReferenceKind {
	if chunkKind == "import" {
		return ReferenceImport
	}
	if strings.Contains(line, symbol+"(") || strings.Contains(line, symbol+"!(") {
		return ReferenceCall
	}
	if strings.Contains(line, "<"+symbol) || strings.Contains(line, ": "+symbol) || strings.Contains(line, "-> "+symbol) {
		return ReferenceType
	}
	return ReferenceGeneric
}

func openExisting(root string, cfg config.Config) (*store.Store, error) {
	storageDir, err := resolveStorageDir(root, cfg)
	if err != nil {
		return nil, err
	}
	return store.OpenIfExists(storageDir)
}
