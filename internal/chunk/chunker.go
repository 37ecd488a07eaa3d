package chunk

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// bodyLikeTypes lists the child node types findBodyLikeChild treats as a
// node's body when the grammar exposes no "body" field. The signature is
// the node's text up to the start of that body.
var bodyLikeTypes = map[string]bool{
	"block":              true,
	"statement_block":    true,
	"compound_statement": true,
	"class_body":         true,
	"declaration_list":   true,
}

// ChunkFile parses content with the grammar registered for language and
// returns its ordered chunk sequence. Unrecognized languages, and languages
// that parse to zero chunks, produce a single raw chunk spanning the file.
// Two calls with byte-identical content and language are guaranteed to
// return byte-identical chunk sequences: the walk is pre-order, deterministic,
// and holds no state across calls.
func ChunkFile(content []byte, language string) []Insert {
	if len(content) == 0 {
		return nil
	}

	spec, ok := specFor(language)
	if !ok {
		return []Insert{rawChunk(content)}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(spec.tsLanguage)
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil || tree == nil {
		return []Insert{rawChunk(content)}
	}
	defer tree.Close()

	var chunks []Insert
	walk(tree.RootNode(), spec, content, &chunks)

	if len(chunks) == 0 {
		return []Insert{rawChunk(content)}
	}
	return chunks
}

// walk implements the classification-precedence rule from the structural
// chunker design: a node that matches a symbol rule is recorded and, only
// if its kind is a container kind, walked into; a non-matching node is
// always walked into so chunks nested under anonymous wrapper productions
// (source_file, export_statement, decorated_definition, ...) are still found.
func walk(n *sitter.Node, spec languageSpec, source []byte, out *[]Insert) {
	if kind, name, ok := classify(spec, n, source); ok {
		*out = append(*out, buildChunk(n, kind, name, source))
		if kind.isContainer() {
			walkChildren(n, spec, source, out)
		}
		return
	}
	walkChildren(n, spec, source, out)
}

func walkChildren(n *sitter.Node, spec languageSpec, source []byte, out *[]Insert) {
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), spec, source, out)
	}
}

func buildChunk(n *sitter.Node, kind Kind, name string, source []byte) Insert {
	if kind.isContainer() {
		return buildContainerChunk(n, kind, name, source)
	}
	return Insert{
		Kind:      kind,
		Name:      name,
		Content:   n.Content(source),
		Signature: extractSignature(n, source),
		StartLine: int(n.StartPoint().Row) + 1,
		EndLine:   int(n.EndPoint().Row) + 1,
		StartByte: int(n.StartByte()),
		EndByte:   int(n.EndByte()),
	}
}

// buildContainerChunk records only the node's head, up to maxContainerLines,
// so nested definitions remain separately searchable (Testable Property 5).
func buildContainerChunk(n *sitter.Node, kind Kind, name string, source []byte) Insert {
	startLine := int(n.StartPoint().Row)
	endLine := startLine + maxContainerLines - 1
	if nodeEnd := int(n.EndPoint().Row); endLine > nodeEnd {
		endLine = nodeEnd
	}

	startByte := int(n.StartByte())
	endByte := int(n.EndByte())
	headEndByte := endByte
	if body := findBodyLikeChild(n); body != nil {
		headEndByte = int(body.StartByte())
	} else {
		// No recognizable body child: cap the head at the computed line
		// range by scanning forward to the end of endLine within source.
		headEndByte = byteOffsetAtLineEnd(source, startByte, endLine)
	}
	if headEndByte > endByte || headEndByte < startByte {
		headEndByte = endByte
	}

	content := strings.TrimRight(string(source[startByte:headEndByte]), " \t\r\n")

	return Insert{
		Kind:      kind,
		Name:      name,
		Content:   content,
		Signature: content,
		StartLine: startLine + 1,
		EndLine:   endLine + 1,
		StartByte: startByte,
		EndByte:   headEndByte,
	}
}

// byteOffsetAtLineEnd returns the byte offset of the end of the given
// 0-based line, scanning forward from start.
func byteOffsetAtLineEnd(source []byte, start, targetLine int) int {
	line := 0
	for i := start; i < len(source); i++ {
		if line == targetLine {
			// advance to the newline terminating this line, or EOF
			for i < len(source) && source[i] != '\n' {
				i++
			}
			return i
		}
		if source[i] == '\n' {
			line++
		}
	}
	return len(source)
}

func findBodyLikeChild(n *sitter.Node) *sitter.Node {
	if body := n.ChildByFieldName("body"); body != nil {
		return body
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if bodyLikeTypes[child.Type()] {
			return child
		}
	}
	return nil
}

// extractSignature returns the node's text from its start to the start of
// its body field (or nearest body-like child), trimmed of trailing
// whitespace. Nodes with no body-like child (constants, type aliases,
// imports) use their full text as the signature.
func extractSignature(n *sitter.Node, source []byte) string {
	body := findBodyLikeChild(n)
	if body == nil {
		return strings.TrimRight(n.Content(source), " \t\r\n")
	}
	start := int(n.StartByte())
	end := int(body.StartByte())
	if end < start || end > len(source) {
		return strings.TrimRight(n.Content(source), " \t\r\n")
	}
	return strings.TrimRight(string(source[start:end]), " \t\r\n")
}

// rawChunk is the fallback for unrecognized languages or failed/empty
// parses: one chunk spanning the whole file.
func rawChunk(content []byte) Insert {
	lines := strings.Count(string(content), "\n")
	if len(content) > 0 && content[len(content)-1] != '\n' {
		lines++
	}
	return Insert{
		Kind:      KindRaw,
		Content:   string(content),
		StartLine: 1,
		EndLine:   max(lines, 1),
		StartByte: 0,
		EndByte:   len(content),
	}
}
