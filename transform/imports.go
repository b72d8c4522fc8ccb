package transform

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ImportStatement is an import or re-export discovered in a source file.
type ImportStatement struct {
	Specifier string
	// Bindings are the local names the import declares: the default or
	// namespace name first, then an object pattern for named imports. Empty
	// for side-effect imports and re-exports.
	Bindings []string
	ReExport bool
	TypeOnly bool
	Line     int

	// Byte ranges of the whole statement and of its quoted source string.
	StmtStart, StmtEnd     int
	SourceStart, SourceEnd int
}

var languages = map[string]func() *sitter.Language{
	".js":  javascript.GetLanguage,
	".jsx": javascript.GetLanguage,
	".mjs": javascript.GetLanguage,
	".cjs": javascript.GetLanguage,
	".ts":  typescript.GetLanguage,
	".mts": typescript.GetLanguage,
	".cts": typescript.GetLanguage,
	".tsx": tsx.GetLanguage,
}

// SupportedExtensions returns the source file extensions that can be transformed, sorted.
func SupportedExtensions() []string {
	return slices.Sorted(maps.Keys(languages))
}

// IsSupportedFile reports whether filePath has a transformable extension.
func IsSupportedFile(filePath string) bool {
	_, ok := languages[strings.ToLower(filepath.Ext(filePath))]
	return ok
}

// ParseImports extracts top-level import and `export ... from` statements in source order.
func ParseImports(ctx context.Context, filePath string, sourceCode []byte) ([]ImportStatement, error) {
	getLanguage, ok := languages[strings.ToLower(filepath.Ext(filePath))]
	if !ok {
		return nil, fmt.Errorf("unsupported source file: %s", filePath)
	}
	lang := getLanguage()

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	var imports []ImportStatement
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		if node == nil || node.HasError() {
			continue
		}

		switch node.Type() {
		case "import_statement":
			if stmt, ok := importStatement(node, sourceCode); ok {
				imports = append(imports, stmt)
			}
		case "export_statement":
			if stmt, ok := reExportStatement(node, sourceCode); ok {
				imports = append(imports, stmt)
			}
		}
	}

	return imports, nil
}

func importStatement(node *sitter.Node, sourceCode []byte) (ImportStatement, bool) {
	stmt, ok := newStatement(node, sourceCode)
	if !ok {
		return ImportStatement{}, false
	}
	bindings, typeOnly := importBindings(node, sourceCode)
	stmt.Bindings = bindings
	stmt.TypeOnly = stmt.TypeOnly || typeOnly
	return stmt, true
}

func reExportStatement(node *sitter.Node, sourceCode []byte) (ImportStatement, bool) {
	stmt, ok := newStatement(node, sourceCode)
	if !ok {
		return ImportStatement{}, false
	}
	stmt.ReExport = true
	return stmt, true
}

func newStatement(node *sitter.Node, sourceCode []byte) (ImportStatement, bool) {
	source := node.ChildByFieldName("source")
	if source == nil || source.Type() != "string" {
		return ImportStatement{}, false
	}

	specifier := cleanImportPath(source.Content(sourceCode))
	if specifier == "" {
		return ImportStatement{}, false
	}

	return ImportStatement{
		Specifier:   specifier,
		TypeOnly:    hasTypeKeyword(node),
		Line:        int(node.StartPoint().Row) + 1,
		StmtStart:   int(node.StartByte()),
		StmtEnd:     int(node.EndByte()),
		SourceStart: int(source.StartByte()),
		SourceEnd:   int(source.EndByte()),
	}, true
}

// importBindings returns every local name the import clause declares, default
// or namespace name first, named imports folded into one object pattern.
// typeOnly is set when the clause consists solely of `type` specifiers.
func importBindings(node *sitter.Node, sourceCode []byte) (bindings []string, typeOnly bool) {
	clause := namedChildOfType(node, "import_clause")
	if clause == nil || clause.NamedChildCount() == 0 {
		return nil, false
	}

	var pattern string
	typeOnly = true
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		switch child.Type() {
		case "identifier":
			bindings = append(bindings, child.Content(sourceCode))
			typeOnly = false
		case "namespace_import":
			if id := namedChildOfType(child, "identifier"); id != nil {
				bindings = append(bindings, id.Content(sourceCode))
			}
			typeOnly = false
		case "named_imports":
			named, specifiers := namedBindings(child, sourceCode)
			if len(named) > 0 {
				pattern = "{ " + strings.Join(named, ", ") + " }"
			}
			if len(named) > 0 || specifiers == 0 {
				typeOnly = false
			}
		}
	}

	if pattern != "" {
		bindings = append(bindings, pattern)
	}
	return bindings, typeOnly
}

// namedBindings returns the value specifiers of a named import list and the
// total number of specifiers, `type` ones included.
func namedBindings(namedImports *sitter.Node, sourceCode []byte) (bindings []string, specifiers int) {
	for i := 0; i < int(namedImports.NamedChildCount()); i++ {
		spec := namedImports.NamedChild(i)
		if spec.Type() != "import_specifier" {
			continue
		}
		specifiers++
		if hasTypeKeyword(spec) {
			continue
		}
		name := spec.ChildByFieldName("name")
		if name == nil {
			continue
		}
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			bindings = append(bindings, name.Content(sourceCode)+": "+alias.Content(sourceCode))
			continue
		}
		bindings = append(bindings, name.Content(sourceCode))
	}
	return bindings, specifiers
}

// hasTypeKeyword reports a TypeScript `type` modifier on an import, export or specifier.
func hasTypeKeyword(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == "type" {
			return true
		}
	}
	return false
}

func namedChildOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child != nil && child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// cleanImportPath removes quotes from import path strings
func cleanImportPath(raw string) string {
	cleaned := strings.Trim(raw, "'\"")
	return strings.TrimSpace(cleaned)
}
