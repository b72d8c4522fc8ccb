package formatters

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/platformext/depgraph"
)

func init() {
	Register(OutputFormatMermaid, func() Formatter { return &MermaidFormatter{} })
}

// MermaidFormatter formats variant graphs as Mermaid.js flowcharts.
type MermaidFormatter struct{}

func (f *MermaidFormatter) Format(g *depgraph.VariantGraph) (string, error) {
	edges, err := g.Edges()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("flowchart LR\n")

	// Mermaid node IDs can't have dots or slashes.
	nodeIDs := make(map[string]string)
	nodeID := func(path string) string {
		if id, ok := nodeIDs[path]; ok {
			return id
		}
		id := fmt.Sprintf("n%d", len(nodeIDs))
		nodeIDs[path] = id
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, strings.ReplaceAll(path, "\"", "#quot;")))
		return id
	}

	var lines []string
	for _, e := range edges {
		from := nodeID(e.From)
		to := nodeID(e.To)
		lines = append(lines, fmt.Sprintf("    %s -->|%s| %s\n", from, e.Platform, to))
	}

	sb.WriteString("\n")
	for _, line := range lines {
		sb.WriteString(line)
	}
	return sb.String(), nil
}
