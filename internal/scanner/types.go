package scanner

import "time"

// ContentType classifies a file for downstream chunking: code goes through
// the structural chunker, everything else is indexed as a single raw chunk.
type ContentType string

const (
	ContentTypeCode     ContentType = "code"
	ContentTypeMarkdown ContentType = "markdown"
	ContentTypeText     ContentType = "text"
	ContentTypeConfig   ContentType = "config"
)

// FileInfo describes one candidate file surfaced by a walk.
type FileInfo struct {
	Path        string // relative to the scan root, slash-separated
	AbsPath     string
	Size        int64
	ModTime     time.Time
	ContentType ContentType
	Language    string // "" when unrecognized; signals the chunker to emit raw
	IsGenerated bool
}

// ScanOptions configures one walk.
type ScanOptions struct {
	RootDir          string
	IncludePatterns  []string
	ExcludePatterns  []string
	RespectGitignore bool
	MaxThreads       int   // bounds walker parallelism; <=0 uses runtime.NumCPU()
	MaxFileSize      int64 // bytes; <=0 uses DefaultMaxFileSize
	FollowSymlinks   bool
}

// DefaultMaxFileSize is the walker's default size cap: files above this are
// dropped before they ever reach the hasher or chunker.
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

// binaryExtensions is the closed set IsBinary consults. Extensions are
// lowercase, without the leading dot. Grounded on
// original_source/src/index/walker.rs's BINARY_EXTENSIONS.
var binaryExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "bmp": true, "ico": true, "webp": true, "svg": true,
	"mp3": true, "mp4": true, "wav": true, "avi": true, "mov": true, "mkv": true, "flac": true,
	"zip": true, "tar": true, "gz": true, "bz2": true, "xz": true, "7z": true, "rar": true,
	"pdf": true, "doc": true, "docx": true, "xls": true, "xlsx": true, "ppt": true, "pptx": true,
	"exe": true, "dll": true, "so": true, "dylib": true, "o": true, "a": true, "lib": true,
	"wasm": true, "pyc": true, "class": true, "jar": true,
	"ttf": true, "otf": true, "woff": true, "woff2": true, "eot": true,
	"sqlite": true, "db": true, "db3": true,
}

// IsBinary reports whether path's extension is in the closed binary set.
// Pure function of the extension; never opens the file.
func IsBinary(path string) bool {
	ext := extension(path)
	if ext == "" {
		return baseName(path) == ".DS_Store"
	}
	return binaryExtensions[ext]
}

// languageMap is the ~40-tag extension-to-language map. Grounded on
// original_source/src/index/walker.rs's detect_language match arms, with
// exact-basename entries (Dockerfile, Makefile) folded in from the teacher's
// broader table.
var languageMap = map[string]string{
	"rs": "rust",
	"py": "python",
	"js": "javascript", "mjs": "javascript", "cjs": "javascript",
	"ts": "typescript", "mts": "typescript", "cts": "typescript",
	"tsx": "tsx",
	"jsx": "jsx",
	"go":  "go",
	"c":   "c", "h": "c",
	"cpp": "cpp", "cc": "cpp", "cxx": "cpp", "hpp": "cpp", "hxx": "cpp",
	"java": "java",
	"rb":   "ruby",
	"php":  "php",
	"swift": "swift",
	"kt":  "kotlin", "kts": "kotlin",
	"scala": "scala",
	"zig":   "zig",
	"lua":   "lua",
	"sh":    "shell", "bash": "shell", "zsh": "shell",
	"sql":  "sql",
	"html": "html", "htm": "html",
	"css":  "css",
	"scss": "scss", "sass": "scss",
	"json": "json",
	"yaml": "yaml", "yml": "yaml",
	"toml": "toml",
	"xml":  "xml",
	"md":   "markdown", "markdown": "markdown",
	"txt":     "text",
	"proto":   "protobuf",
	"graphql": "graphql", "gql": "graphql",
	"cmake": "cmake",
	"nix":   "nix",
	"tf":    "hcl", "hcl": "hcl",
	"el": "lisp", "lisp": "lisp", "cl": "lisp",
	"clj": "clojure", "cljs": "clojure", "cljc": "clojure",
	"ex": "elixir", "exs": "elixir",
	"erl": "erlang", "hrl": "erlang",
	"hs":     "haskell",
	"ml":     "ocaml", "mli": "ocaml",
	"r":      "r",
	"dart":   "dart",
	"vue":    "vue",
	"svelte": "svelte",
}

// exactBaseNames maps whole filenames to a language when the extension
// alone can't decide it.
var exactBaseNames = map[string]string{
	"Dockerfile":  "dockerfile",
	"dockerfile":  "dockerfile",
	"Makefile":    "makefile",
	"makefile":    "makefile",
	"GNUmakefile": "makefile",
}

// contentTypeMap assigns each language a ContentType; languages absent from
// this map default to ContentTypeCode.
var contentTypeMap = map[string]ContentType{
	"markdown": ContentTypeMarkdown,
	"text":     ContentTypeText,
	"json":     ContentTypeConfig,
	"yaml":     ContentTypeConfig,
	"toml":     ContentTypeConfig,
	"xml":      ContentTypeConfig,
}

// DetectLanguage guesses a file's language from its basename/extension.
// Returns "" for unrecognized files, signaling the chunker to emit a raw
// chunk instead of attempting structural parsing.
func DetectLanguage(path string) string {
	base := baseName(path)
	if lang, ok := exactBaseNames[base]; ok {
		return lang
	}
	ext := extension(path)
	if ext == "" {
		return ""
	}
	return languageMap[ext]
}

// DetectContentType maps a detected language to its content type.
func DetectContentType(language string) ContentType {
	if ct, ok := contentTypeMap[language]; ok {
		return ct
	}
	if language == "" {
		return ContentTypeText
	}
	return ContentTypeCode
}
