package chunk

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// nameFunc extracts a chunk's optional symbol name from its AST node. It
// returns "" when the production carries no identifier worth recording.
type nameFunc func(n *sitter.Node, source []byte) string

// rule classifies one grammar node type into a chunk kind plus how to pull
// its name, mirroring original_source's per-language classify_* dispatch
// tables and the teacher's per-language node-type lists.
type rule struct {
	nodeType string
	kind     Kind
	name     nameFunc
}

// languageSpec is the full grammar wiring for one recognized language tag.
type languageSpec struct {
	tsLanguage *sitter.Language
	rules      []rule
}

func fieldName(field string) nameFunc {
	return func(n *sitter.Node, source []byte) string {
		c := n.ChildByFieldName(field)
		if c == nil {
			return ""
		}
		return c.Content(source)
	}
}

func noName(*sitter.Node, []byte) string { return "" }

// nestedTypeSpecName handles Go's `type_declaration`, whose identifier lives
// on a nested `type_spec` (or `type_alias`) child rather than on the
// declaration node itself.
func nestedTypeSpecName(n *sitter.Node, source []byte) string {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "type_spec" || child.Type() == "type_alias" {
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				return nameNode.Content(source)
			}
		}
	}
	return ""
}

// cFunctionName descends through C's pointer/array declarator wrappers to
// find the function name, which sits on a `function_declarator`'s
// "declarator" field rather than directly on the function_definition node.
func cFunctionName(n *sitter.Node, source []byte) string {
	declarator := n.ChildByFieldName("declarator")
	for declarator != nil {
		if declarator.Type() == "function_declarator" {
			if inner := declarator.ChildByFieldName("declarator"); inner != nil {
				return inner.Content(source)
			}
			return ""
		}
		declarator = declarator.ChildByFieldName("declarator")
	}
	return ""
}

// jsDeclarationIsFunction reports whether a JS/TS lexical_declaration or
// variable_declaration's initializer looks like a function value
// (`const f = () => ...` / `const f = function ...`), matching
// original_source's text-contains heuristic.
func jsDeclarationIsFunction(n *sitter.Node, source []byte) bool {
	text := n.Content(source)
	return strings.Contains(text, "=>") || strings.Contains(text, "function")
}

func jsDeclarationName(n *sitter.Node, source []byte) string {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "variable_declarator" {
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				return nameNode.Content(source)
			}
		}
	}
	return ""
}

var goSpec = languageSpec{
	tsLanguage: golang.GetLanguage(),
	rules: []rule{
		{"function_declaration", KindFunction, fieldName("name")},
		{"method_declaration", KindMethod, fieldName("name")},
		{"type_declaration", KindType, nestedTypeSpecName},
		{"const_declaration", KindConstant, noName},
		{"import_declaration", KindImport, noName},
	},
}

var pythonSpec = languageSpec{
	tsLanguage: python.GetLanguage(),
	rules: []rule{
		{"function_definition", KindFunction, fieldName("name")},
		{"class_definition", KindClass, fieldName("name")},
		{"import_statement", KindImport, noName},
		{"import_from_statement", KindImport, noName},
	},
}

func jsRules() []rule {
	return []rule{
		{"function_declaration", KindFunction, fieldName("name")},
		{"class_declaration", KindClass, fieldName("name")},
		{"method_definition", KindMethod, fieldName("name")},
		{"import_statement", KindImport, noName},
	}
}

var javascriptSpec = languageSpec{
	tsLanguage: javascript.GetLanguage(),
	rules:      jsRules(),
}

var jsxSpec = javascriptSpec

func tsRules() []rule {
	r := jsRules()
	r = append(r,
		rule{"interface_declaration", KindInterface, fieldName("name")},
		rule{"type_alias_declaration", KindTypeAlias, fieldName("name")},
		rule{"enum_declaration", KindEnum, fieldName("name")},
	)
	return r
}

var typescriptSpec = languageSpec{
	tsLanguage: typescript.GetLanguage(),
	rules:      tsRules(),
}

var tsxSpec = languageSpec{
	tsLanguage: tsx.GetLanguage(),
	rules:      tsRules(),
}

var cSpec = languageSpec{
	tsLanguage: c.GetLanguage(),
	rules: []rule{
		{"function_definition", KindFunction, cFunctionName},
		{"struct_specifier", KindStruct, fieldName("name")},
		{"enum_specifier", KindEnum, fieldName("name")},
		{"type_definition", KindTypeAlias, noName},
		{"preproc_include", KindImport, noName},
	},
}

var rustSpec = languageSpec{
	tsLanguage: rust.GetLanguage(),
	rules: []rule{
		{"function_item", KindFunction, fieldName("name")},
		{"struct_item", KindStruct, fieldName("name")},
		{"enum_item", KindEnum, fieldName("name")},
		{"impl_item", KindImpl, fieldName("type")},
		{"trait_item", KindTrait, fieldName("name")},
		{"mod_item", KindModule, fieldName("name")},
		{"type_item", KindTypeAlias, fieldName("name")},
		{"const_item", KindConstant, fieldName("name")},
		{"static_item", KindConstant, fieldName("name")},
		{"macro_definition", KindMacro, fieldName("name")},
		{"use_declaration", KindImport, noName},
	},
}

// registry maps a detected language tag (scanner.DetectLanguage's output)
// to its grammar wiring. Unrecognized tags fall back to a raw chunk.
var registry = map[string]languageSpec{
	"go":         goSpec,
	"python":     pythonSpec,
	"javascript": javascriptSpec,
	"jsx":        jsxSpec,
	"typescript": typescriptSpec,
	"tsx":        tsxSpec,
	"c":          cSpec,
	"rust":       rustSpec,
}

func specFor(language string) (languageSpec, bool) {
	spec, ok := registry[language]
	return spec, ok
}

// classify matches a node against its language's rule table. JS/TS
// lexical/variable declarations need a predicate beyond node type, so they
// are special-cased here rather than folded into the generic rule table.
func classify(spec languageSpec, n *sitter.Node, source []byte) (Kind, string, bool) {
	nodeType := n.Type()
	if nodeType == "lexical_declaration" || nodeType == "variable_declaration" {
		if jsDeclarationIsFunction(n, source) {
			return KindFunction, jsDeclarationName(n, source), true
		}
		return "", "", false
	}
	for _, r := range spec.rules {
		if r.nodeType == nodeType {
			return r.kind, r.name(n, source), true
		}
	}
	return "", "", false
}
