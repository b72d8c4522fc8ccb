package transform

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/LegacyCodeHQ/platformext/resolver"
)

// PlatformPrelude binds the runtime platform detection used by conditional requires.
const PlatformPrelude = `import { Platform } from "react-native";`

type edit struct {
	start, end int
	text       string
}

// renderConditional builds the statements replacing an OS-ambiguous import.
// The first binding receives the module; later bindings are declared from it.
// Continuation lines reuse indent so the rewritten block keeps its column.
func renderConditional(rw resolver.Rewrite, bindings []string, indent string) string {
	var b strings.Builder
	if rw.InjectPrelude {
		b.WriteString(PlatformPrelude)
		b.WriteString("\n")
		b.WriteString(indent)
	}
	if len(bindings) > 0 {
		b.WriteString("var ")
		b.WriteString(bindings[0])
		b.WriteString(" = ")
	}
	b.WriteString("Platform.OS === ")
	b.WriteString(strconv.Quote(rw.Platform))
	b.WriteString(" ? require(")
	b.WriteString(strconv.Quote(rw.TruePath))
	b.WriteString(") : require(")
	b.WriteString(strconv.Quote(rw.FalsePath))
	b.WriteString(");")
	if len(bindings) > 1 {
		for _, binding := range bindings[1:] {
			b.WriteString("\n")
			b.WriteString(indent)
			b.WriteString("var ")
			b.WriteString(binding)
			b.WriteString(" = ")
			b.WriteString(bindings[0])
			b.WriteString(";")
		}
	}
	return b.String()
}

// renderSource keeps the quote style of the original string literal.
func renderSource(original []byte, path string) string {
	quote := `"`
	if len(original) > 0 && (original[0] == '\'' || original[0] == '"') {
		quote = string(original[0])
	}
	return quote + path + quote
}

// lineIndent returns the whitespace between the start of the line and offset.
func lineIndent(sourceCode []byte, offset int) string {
	lineStart := bytes.LastIndexByte(sourceCode[:offset], '\n') + 1
	indent := sourceCode[lineStart:offset]
	if len(bytes.TrimLeft(indent, " \t")) != 0 {
		return ""
	}
	return string(indent)
}

// applyEdits splices sorted, non-overlapping edits into sourceCode.
func applyEdits(sourceCode []byte, edits []edit) []byte {
	if len(edits) == 0 {
		return sourceCode
	}

	var out bytes.Buffer
	out.Grow(len(sourceCode))
	last := 0
	for _, e := range edits {
		out.Write(sourceCode[last:e.start])
		out.WriteString(e.text)
		last = e.end
	}
	out.Write(sourceCode[last:])
	return out.Bytes()
}
