package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/CryptArtificer/booger/internal/gitignore"
)

// gitignoreCacheSize bounds the per-directory matcher cache so long-running
// daemon indexing doesn't grow it unbounded.
const gitignoreCacheSize = 1000

// Scanner discovers indexable files in a project directory (C2).
type Scanner struct {
	gitignoreCache *lru.Cache[string, *gitignore.Matcher]
	cacheMu        sync.RWMutex
}

// New creates a Scanner.
func New() (*Scanner, error) {
	cache, err := lru.New[string, *gitignore.Matcher](gitignoreCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitignore cache: %w", err)
	}
	return &Scanner{gitignoreCache: cache}, nil
}

// Walk produces the set of candidate files under opts.RootDir. Honors
// standard ignore rules and the configured size cap. Internally uses
// bounded parallelism across the root's top-level entries, but the
// returned slice is a single deterministic sequence sorted by path.
func (s *Scanner) Walk(ctx context.Context, opts ScanOptions) ([]FileInfo, error) {
	rootDir := opts.RootDir
	if rootDir == "" {
		rootDir = "."
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory: %s", absRoot)
	}

	maxFileSize := opts.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	maxThreads := opts.MaxThreads
	if maxThreads <= 0 {
		maxThreads = runtime.NumCPU()
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read root directory: %w", err)
	}

	var (
		mu    sync.Mutex
		files []FileInfo
	)
	collect := func(fi FileInfo) {
		mu.Lock()
		files = append(files, fi)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxThreads)

	for _, entry := range entries {
		entry := entry
		relTop := entry.Name()
		if entry.IsDir() {
			if s.shouldExcludeDir(relTop, &opts) {
				continue
			}
			subroot := filepath.Join(absRoot, relTop)
			g.Go(func() error {
				return s.walkSubtree(gctx, absRoot, subroot, &opts, maxFileSize, collect)
			})
			continue
		}
		g.Go(func() error {
			return s.visitFile(gctx, absRoot, filepath.Join(absRoot, relTop), entry, &opts, maxFileSize, collect)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// walkSubtree enumerates one top-level subdirectory, honoring the same
// exclusion and size rules as the root walk.
func (s *Scanner) walkSubtree(ctx context.Context, absRoot, subroot string, opts *ScanOptions, maxFileSize int64, collect func(FileInfo)) error {
	return filepath.WalkDir(subroot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil {
			return nil
		}

		relPath, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if s.shouldExcludeDir(relPath, opts) {
				return filepath.SkipDir
			}
			return nil
		}

		return s.visitFile(ctx, absRoot, path, d, opts, maxFileSize, collect)
	})
}

// visitFile applies the exclusion, size, and binary filters to a single
// file and, if it passes, records it via collect.
func (s *Scanner) visitFile(ctx context.Context, absRoot, path string, d fs.DirEntry, opts *ScanOptions, maxFileSize int64, collect func(FileInfo)) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	relPath, err := filepath.Rel(absRoot, path)
	if err != nil {
		return nil
	}

	if d.Type()&fs.ModeSymlink != 0 && !opts.FollowSymlinks {
		return nil
	}
	if s.shouldExcludeFile(relPath, absRoot, opts) {
		return nil
	}

	info, err := d.Info()
	if err != nil {
		return nil
	}
	if info.Size() > maxFileSize {
		return nil
	}
	if IsBinary(path) {
		return nil
	}
	if len(opts.IncludePatterns) > 0 && !s.matchesAnyPattern(relPath, opts.IncludePatterns) {
		return nil
	}

	language := DetectLanguage(relPath)
	contentType := DetectContentType(language)

	collect(FileInfo{
		Path:        filepath.ToSlash(relPath),
		AbsPath:     path,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: contentType,
		Language:    language,
		IsGenerated: s.isGeneratedFile(path),
	})
	return nil
}

// shouldExcludeDir checks if a directory should be excluded.
func (s *Scanner) shouldExcludeDir(relPath string, opts *ScanOptions) bool {
	if isHidden(filepath.Base(relPath)) {
		return true
	}
	for _, pattern := range defaultExcludeDirs {
		if matchDirPattern(relPath, pattern) {
			return true
		}
	}
	for _, pattern := range opts.ExcludePatterns {
		if matchDirPattern(relPath, pattern) {
			return true
		}
	}
	return false
}

// isHidden reports whether base is a dot-prefixed entry name, mirroring the
// ignore crate's standard_filters(true)/hidden(true) default: hidden files
// and directories are excluded independent of .gitignore content.
func isHidden(base string) bool {
	return len(base) > 1 && base[0] == '.'
}

// shouldExcludeFile checks if a file should be excluded.
func (s *Scanner) shouldExcludeFile(relPath, absRoot string, opts *ScanOptions) bool {
	base := filepath.Base(relPath)

	if isHidden(base) {
		return true
	}
	for _, pattern := range sensitiveFilePatterns {
		if matchFilePattern(base, relPath, pattern) {
			return true
		}
	}
	for _, pattern := range defaultExcludeFiles {
		if matchFilePattern(base, relPath, pattern) {
			return true
		}
	}
	for _, pattern := range opts.ExcludePatterns {
		if matchFilePattern(base, relPath, pattern) {
			return true
		}
	}
	if opts.RespectGitignore && s.isGitignored(relPath, absRoot) {
		return true
	}
	return false
}

// matchDirPattern checks if a directory path matches a pattern.
func matchDirPattern(relPath, pattern string) bool {
	if strings.HasPrefix(pattern, "**/") {
		suffix := strings.TrimPrefix(pattern, "**/")
		suffix = strings.TrimSuffix(suffix, "/**")
		for _, part := range strings.Split(relPath, string(filepath.Separator)) {
			if part == suffix {
				return true
			}
		}
		return false
	}
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		return relPath == prefix || strings.HasPrefix(relPath, prefix+string(filepath.Separator))
	}
	return relPath == pattern || strings.HasPrefix(relPath, pattern+string(filepath.Separator))
}

// matchFilePattern checks if a file matches a pattern.
func matchFilePattern(baseName, relPath, pattern string) bool {
	if strings.HasSuffix(pattern, "/**") && !strings.HasPrefix(pattern, "**/") {
		prefix := strings.TrimSuffix(pattern, "/**")
		return strings.HasPrefix(relPath, prefix+string(filepath.Separator))
	}
	if strings.Contains(pattern, string(filepath.Separator)) && strings.Contains(pattern, "*") && !strings.HasPrefix(pattern, "**/") {
		dir := filepath.Dir(pattern)
		filePattern := filepath.Base(pattern)
		if filepath.Dir(relPath) == dir {
			if matched, err := filepath.Match(filePattern, baseName); err == nil && matched {
				return true
			}
		}
		return false
	}
	if strings.HasPrefix(pattern, "**/") {
		suffix := strings.TrimPrefix(pattern, "**/")
		if strings.HasPrefix(suffix, "*.") {
			return strings.HasSuffix(baseName, strings.TrimPrefix(suffix, "*"))
		}
		parts := strings.Split(relPath, string(filepath.Separator))
		for i, part := range parts {
			if part == suffix || (i < len(parts)-1 && matchDirPattern(strings.Join(parts[:i+1], string(filepath.Separator)), pattern)) {
				return true
			}
		}
		return false
	}
	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") && len(pattern) > 1 {
		middle := strings.TrimSuffix(strings.TrimPrefix(pattern, "*"), "*")
		return strings.Contains(strings.ToLower(baseName), strings.ToLower(middle))
	}
	if strings.HasSuffix(pattern, "*") && strings.HasPrefix(pattern, ".") {
		return strings.HasPrefix(baseName, strings.TrimSuffix(pattern, "*"))
	}
	if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(baseName, strings.TrimPrefix(pattern, "*"))
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(baseName, strings.TrimSuffix(pattern, "*"))
	}
	return baseName == pattern
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (s *Scanner) matchesAnyPattern(relPath string, patterns []string) bool {
	base := filepath.Base(relPath)
	for _, pattern := range patterns {
		if matchFilePattern(base, relPath, pattern) {
			return true
		}
	}
	return false
}

// isGeneratedFile checks if a file opens with a recognized generated-code
// marker, read from its first 1KB.
func (s *Scanner) isGeneratedFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 1024)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return false
	}
	content := string(buf[:n])

	markers := []string{
		"// Code generated",
		"// DO NOT EDIT",
		"/* DO NOT EDIT",
		"# Generated by",
		"<!-- AUTO-GENERATED -->",
		"// Generated by",
		"/* Generated by",
	}
	for _, marker := range markers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}

// isGitignored checks if a file is ignored by any applicable .gitignore,
// walking from the repo root down to the file's containing directory.
func (s *Scanner) isGitignored(relPath, absRoot string) bool {
	if matcher := s.getGitignoreMatcher(absRoot, ""); matcher != nil && matcher.Match(relPath, false) {
		return true
	}

	currentDir := absRoot
	currentBase := ""
	for _, part := range strings.Split(filepath.Dir(relPath), string(filepath.Separator)) {
		if part == "." {
			continue
		}
		currentDir = filepath.Join(currentDir, part)
		if currentBase == "" {
			currentBase = part
		} else {
			currentBase = filepath.Join(currentBase, part)
		}
		if matcher := s.getGitignoreMatcher(currentDir, currentBase); matcher != nil && matcher.Match(relPath, false) {
			return true
		}
	}
	return false
}

// getGitignoreMatcher gets or creates a gitignore matcher for a directory.
func (s *Scanner) getGitignoreMatcher(dir, base string) *gitignore.Matcher {
	s.cacheMu.RLock()
	matcher, ok := s.gitignoreCache.Get(dir)
	s.cacheMu.RUnlock()
	if ok {
		return matcher
	}

	gitignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitignorePath); os.IsNotExist(err) {
		return nil
	}

	matcher = gitignore.New()
	if err := matcher.AddFromFile(gitignorePath, base); err != nil {
		return nil
	}

	s.cacheMu.Lock()
	s.gitignoreCache.Add(dir, matcher)
	s.cacheMu.Unlock()

	return matcher
}

// InvalidateGitignoreCache clears the gitignore matcher cache. Call this
// when .gitignore files change mid-session.
func (s *Scanner) InvalidateGitignoreCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.gitignoreCache.Purge()
}

var defaultExcludeDirs = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/vendor/**",
	"**/__pycache__/**",
	"**/dist/**",
	"**/build/**",
	"**/.aws/**",
	"**/.gcp/**",
	"**/.azure/**",
	"**/.ssh/**",
}

var defaultExcludeFiles = []string{
	"**/*.min.js",
	"**/*.min.css",
	"**/package-lock.json",
	"**/yarn.lock",
	"**/pnpm-lock.yaml",
	"**/go.sum",
}

// sensitiveFilePatterns are never indexed regardless of other settings.
var sensitiveFilePatterns = []string{
	".env",
	".env.*",
	"*.pem",
	"*.key",
	"*.p12",
	"*.pfx",
	"*credentials*",
	"*secrets*",
	"*password*",
	".netrc",
	".npmrc",
	".pypirc",
	"id_rsa",
	"id_dsa",
	"id_ecdsa",
	"id_ed25519",
}
