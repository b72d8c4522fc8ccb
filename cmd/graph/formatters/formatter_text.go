package formatters

import (
	"strings"

	"github.com/LegacyCodeHQ/platformext/depgraph"
)

func init() {
	Register(OutputFormatText, func() Formatter { return &TextFormatter{} })
}

// TextFormatter writes one line per edge.
type TextFormatter struct{}

func (f *TextFormatter) Format(g *depgraph.VariantGraph) (string, error) {
	var sb strings.Builder
	if err := g.WriteText(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
