// Package chunk implements the structural chunker (C3): it parses a file's
// content into an ordered sequence of named chunks via tree-sitter language
// grammars, falling back to a single raw chunk when the language is
// unrecognized or parsing yields nothing.
package chunk

// Kind is the closed set of chunk classifications. Every chunk carries
// exactly one of these.
type Kind string

const (
	KindFunction  Kind = "function"
	KindStruct    Kind = "struct"
	KindEnum      Kind = "enum"
	KindImpl      Kind = "impl"
	KindTrait     Kind = "trait"
	KindModule    Kind = "module"
	KindClass     Kind = "class"
	KindMethod    Kind = "method"
	KindInterface Kind = "interface"
	KindTypeAlias Kind = "type_alias"
	KindConstant  Kind = "constant"
	KindMacro     Kind = "macro"
	KindImport    Kind = "import"
	KindType      Kind = "type"
	KindRaw       Kind = "raw"
)

// isContainer reports whether a chunk of this kind encloses other
// symbol-bearing nodes. Container chunks record only their head lines;
// everything nested in them is walked and emitted as sibling chunks.
func (k Kind) isContainer() bool {
	switch k {
	case KindImpl, KindClass, KindTrait, KindModule, KindInterface:
		return true
	default:
		return false
	}
}

// maxContainerLines bounds how much of a container node's head is recorded
// as its own content.
const maxContainerLines = 3

// Insert is the chunker's output record: everything the persistent store
// needs to insert one row into the chunks table.
type Insert struct {
	Kind      Kind
	Name      string // optional; empty when the production has no identifier
	Content   string
	Signature string
	StartLine int // 1-based, inclusive
	EndLine   int // 1-based, inclusive
	StartByte int // 0-based, half-open range start
	EndByte   int // 0-based, half-open range end
}
