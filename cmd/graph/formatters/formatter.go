package formatters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/platformext/depgraph"
)

// Formatter renders a variant graph.
type Formatter interface {
	Format(g *depgraph.VariantGraph) (string, error)
}

var registry = map[OutputFormat]func() Formatter{}

// Register makes a formatter available under format.
func Register(format OutputFormat, factory func() Formatter) {
	registry[format] = factory
}

// NewFormatter creates a Formatter for the specified format type.
func NewFormatter(format string) (Formatter, error) {
	factory, ok := registry[OutputFormat(format)]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, strings.Join(Formats(), ", "))
	}
	return factory(), nil
}

// Formats lists the registered format names.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for format := range registry {
		names = append(names, format.String())
	}
	sort.Strings(names)
	return names
}
