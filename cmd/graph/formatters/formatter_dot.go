package formatters

import (
	"strings"

	"github.com/LegacyCodeHQ/platformext/depgraph"
)

func init() {
	Register(OutputFormatDOT, func() Formatter { return &DOTFormatter{} })
}

// DOTFormatter formats variant graphs as Graphviz DOT.
type DOTFormatter struct{}

func (f *DOTFormatter) Format(g *depgraph.VariantGraph) (string, error) {
	var sb strings.Builder
	if err := g.WriteDOT(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
