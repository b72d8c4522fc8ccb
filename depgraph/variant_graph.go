package depgraph

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/platformext/resolver"
	"github.com/LegacyCodeHQ/platformext/transform"
	graphlib "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

const platformAttribute = "label"

// VariantEdge links a source file to a platform variant its rewritten imports load.
type VariantEdge struct {
	From     string
	To       string
	Platform string
}

// VariantGraph records which platform variant files each transformed file loads.
type VariantGraph struct {
	g    graphlib.Graph[string, string]
	root string
}

func NewVariantGraph() *VariantGraph {
	return &VariantGraph{g: graphlib.New(graphlib.StringHash, graphlib.Directed())}
}

// RelativeTo names nodes added afterwards relative to root when they lie below it.
func (v *VariantGraph) RelativeTo(root string) *VariantGraph {
	v.root = root
	return v
}

func (v *VariantGraph) name(path string) string {
	if v.root == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(v.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

// AddFile adds a source file node.
func (v *VariantGraph) AddFile(path string) error {
	path = v.name(path)
	err := v.g.AddVertex(path, graphlib.VertexAttribute("shape", "box"))
	if err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return err
	}
	return nil
}

// AddVariant adds an edge from source to a platform variant file.
func (v *VariantGraph) AddVariant(source, variant, platform string) error {
	source, variant = v.name(source), v.name(variant)
	if err := v.AddFile(source); err != nil {
		return err
	}
	err := v.g.AddVertex(variant, graphlib.VertexAttribute("shape", "ellipse"))
	if err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return err
	}
	err = v.g.AddEdge(source, variant, graphlib.EdgeAttribute(platformAttribute, platform))
	if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return fmt.Errorf("failed to add edge %s -> %s: %w", source, variant, err)
	}
	return nil
}

// AddResult adds the variants selected by the rewrites of one transformed file.
// A direct rewrite loads its winner; a conditional loads its winner and the next
// existing variant.
func (v *VariantGraph) AddResult(result transform.Result) error {
	if err := v.AddFile(result.Path); err != nil {
		return err
	}

	for _, applied := range result.Rewrites() {
		chain := applied.Resolution.Chain
		existing := chain.Existing()
		if len(existing) == 0 {
			continue
		}

		loaded := existing[:1]
		if applied.Resolution.Rewrite.Kind == resolver.RewriteConditional && len(existing) > 1 {
			loaded = existing[:2]
		}
		for _, i := range loaded {
			if err := v.AddVariant(result.Path, chain[i].Abs, chain[i].Platform); err != nil {
				return err
			}
		}
	}
	return nil
}

// Edges returns all edges sorted by source then target.
func (v *VariantGraph) Edges() ([]VariantEdge, error) {
	adjacency, err := v.g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	var edges []VariantEdge
	for from, targets := range adjacency {
		for to, edge := range targets {
			edges = append(edges, VariantEdge{
				From:     from,
				To:       to,
				Platform: edge.Properties.Attributes[platformAttribute],
			})
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges, nil
}

// WriteDOT renders the graph in Graphviz DOT format.
func (v *VariantGraph) WriteDOT(w io.Writer) error {
	return draw.DOT(v.g, w)
}

// WriteText writes one "from -> to [platform]" line per edge.
func (v *VariantGraph) WriteText(w io.Writer) error {
	edges, err := v.Edges()
	if err != nil {
		return err
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "%s -> %s [%s]\n", e.From, e.To, e.Platform); err != nil {
			return err
		}
	}
	return nil
}
