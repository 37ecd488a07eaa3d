package git

import (
	"fmt"
	"strings"
)

// DraftCommitMessage generates a concise commit message from a structural
// diff: a summary line naming the primary verb and notable symbols,
// followed by a per-file breakdown, grounded on
// original_source/src/git/format.rs's draft_commit_message.
func DraftCommitMessage(diff *BranchDiff) string {
	if len(diff.Files) == 0 {
		return "No changes to commit"
	}

	out := commitSummaryLine(diff)
	if details := commitDetails(diff); details != "" {
		out += "\n\n" + details
	}
	return out
}

func commitSummaryLine(diff *BranchDiff) string {
	s := diff.Summary

	var verbs []string
	if s.SymbolsAdded > 0 || s.FilesAdded > 0 {
		verbs = append(verbs, "add")
	}
	if s.SymbolsModified > 0 {
		verbs = append(verbs, "update")
	}
	if s.SymbolsRemoved > 0 || s.FilesDeleted > 0 {
		verbs = append(verbs, "remove")
	}
	if len(verbs) == 0 {
		verbs = append(verbs, "update")
	}
	primaryVerb := strings.ToUpper(verbs[0][:1]) + verbs[0][1:]

	var notable []string
	for _, f := range diff.Files {
		for _, sym := range f.Added {
			if sym.Kind != "import" && sym.Name != "" {
				notable = append(notable, sym.Name)
			}
		}
	}
	if len(notable) == 0 {
		for _, f := range diff.Files {
			for _, sym := range f.Modified {
				if sym.Kind != "import" && sym.Name != "" {
					notable = append(notable, sym.Name)
				}
			}
		}
	}
	if len(notable) > 3 {
		notable = notable[:3]
	}

	scope := topLevelScope(diff.Files)

	if len(notable) > 0 {
		names := strings.Join(notable, ", ")
		if scope != "" {
			return fmt.Sprintf("%s %s in %s", primaryVerb, names, scope)
		}
		return fmt.Sprintf("%s %s", primaryVerb, names)
	}

	fileCount := len(diff.Files)
	if scope != "" {
		return fmt.Sprintf("%s %d file(s) in %s", primaryVerb, fileCount, scope)
	}
	return fmt.Sprintf("%s %d file(s)", primaryVerb, fileCount)
}

// topLevelScope finds the common path prefix shared by every changed file,
// or the single file's own path when there's only one.
func topLevelScope(files []FileDiff) string {
	if len(files) == 0 {
		return ""
	}
	if len(files) == 1 {
		return files[0].Path
	}

	parts := make([][]string, len(files))
	for i, f := range files {
		parts[i] = strings.Split(f.Path, "/")
	}

	var common []string
	for i, seg := range parts[0] {
		matches := true
		for _, p := range parts {
			if i >= len(p) || p[i] != seg {
				matches = false
				break
			}
		}
		if !matches {
			break
		}
		common = append(common, seg)
	}

	return strings.Join(common, "/")
}

func commitDetails(diff *BranchDiff) string {
	var lines []string

	for _, f := range diff.Files {
		statusPrefix := "~"
		switch f.Status {
		case FileAdded:
			statusPrefix = "+"
		case FileDeleted:
			statusPrefix = "-"
		}

		if len(f.Added) == 0 && len(f.Modified) == 0 && len(f.Removed) == 0 {
			continue
		}

		lines = append(lines, fmt.Sprintf("[%s] %s", statusPrefix, f.Path))
		for _, s := range f.Added {
			lines = append(lines, fmt.Sprintf("  + %s %s", s.Kind, s.Name))
		}
		for _, s := range f.Modified {
			lines = append(lines, fmt.Sprintf("  ~ %s %s", s.Kind, s.Name))
		}
		for _, s := range f.Removed {
			lines = append(lines, fmt.Sprintf("  - %s %s", s.Kind, s.Name))
		}
	}

	return strings.Join(lines, "\n")
}

// symbolRef pairs a symbol change with the file it belongs to, for the
// flattened added/modified/removed/import groupings in Changelog.
type symbolRef struct {
	file *FileDiff
	sym  SymbolChange
}

// Changelog generates a markdown changelog from a structural diff, grouped
// into Added/Modified/Removed/Dependency changes/New files/Deleted files
// sections, grounded on original_source/src/git/format.rs's changelog.
func Changelog(diff *BranchDiff) string {
	if len(diff.Files) == 0 {
		return fmt.Sprintf("No structural changes vs `%s`.\n", diff.BaseRef)
	}

	var out strings.Builder
	fmt.Fprintf(&out, "## Changes vs `%s`\n\n", diff.BaseRef)
	fmt.Fprintf(&out, "**%d** file(s) changed — **+%d** symbols added, **~%d** modified, **-%d** removed\n\n",
		len(diff.Files), diff.Summary.SymbolsAdded, diff.Summary.SymbolsModified, diff.Summary.SymbolsRemoved)

	var added, modified, removed, imports []symbolRef
	for i := range diff.Files {
		f := &diff.Files[i]
		for _, s := range f.Added {
			if s.Kind == "import" {
				imports = append(imports, symbolRef{f, s})
			} else {
				added = append(added, symbolRef{f, s})
			}
		}
		for _, s := range f.Modified {
			if s.Kind == "import" {
				imports = append(imports, symbolRef{f, s})
			} else {
				modified = append(modified, symbolRef{f, s})
			}
		}
		for _, s := range f.Removed {
			if s.Kind == "import" {
				imports = append(imports, symbolRef{f, s})
			} else {
				removed = append(removed, symbolRef{f, s})
			}
		}
	}

	writeSymbolSection(&out, "Added", added)
	writeSymbolSection(&out, "Modified", modified)
	writeSymbolSection(&out, "Removed", removed)

	if len(imports) > 0 {
		out.WriteString("### Dependency changes\n\n")
		for _, r := range imports {
			fmt.Fprintf(&out, "- `%s` in `%s`\n", r.sym.Name, r.file.Path)
		}
		out.WriteString("\n")
	}

	writeFileSection(&out, "New files", diff.Files, FileAdded)
	writeFileSection(&out, "Deleted files", diff.Files, FileDeleted)

	return out.String()
}

func writeSymbolSection(out *strings.Builder, title string, refs []symbolRef) {
	if len(refs) == 0 {
		return
	}
	fmt.Fprintf(out, "### %s\n\n", title)
	for _, r := range refs {
		fmt.Fprintf(out, "- `%s` %s in `%s`\n", r.sym.Name, r.sym.Kind, r.file.Path)
	}
	out.WriteString("\n")
}

func writeFileSection(out *strings.Builder, title string, files []FileDiff, status FileStatus) {
	var matching []FileDiff
	for _, f := range files {
		if f.Status == status {
			matching = append(matching, f)
		}
	}
	if len(matching) == 0 {
		return
	}
	fmt.Fprintf(out, "### %s\n\n", title)
	for _, f := range matching {
		fmt.Fprintf(out, "- `%s`\n", f.Path)
	}
	out.WriteString("\n")
}
