package formatters

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/platformext/depgraph"
)

func init() {
	Register(OutputFormatJSON, func() Formatter { return &JSONFormatter{} })
}

// JSONFormatter formats variant graphs as a map from source file to its variants.
type JSONFormatter struct{}

type jsonVariant struct {
	Path     string `json:"path"`
	Platform string `json:"platform"`
}

func (f *JSONFormatter) Format(g *depgraph.VariantGraph) (string, error) {
	edges, err := g.Edges()
	if err != nil {
		return "", err
	}

	out := make(map[string][]jsonVariant)
	for _, e := range edges {
		out[e.From] = append(out[e.From], jsonVariant{Path: e.To, Platform: e.Platform})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
