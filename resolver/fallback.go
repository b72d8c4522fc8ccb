package resolver

import "strings"

const indexName = "index"

// Fallback searches omitted-extension variants of a specifier that carries no
// configured extension. Every direct-file tier is tried before any directory
// index tier; the first tier with an existing candidate wins as a whole.
func (p Prober) Fallback(specifier string, omitExtensions, platforms []string) (ExistenceChain, bool) {
	if chain, ok := p.firstTier(specifier, omitExtensions, platforms); ok {
		return chain, true
	}
	return p.firstTier(indexBase(specifier), omitExtensions, platforms)
}

func (p Prober) firstTier(base string, omitExtensions, platforms []string) (ExistenceChain, bool) {
	for _, ext := range omitExtensions {
		if chain := p.Probe(base, ext, platforms); chain.Any() {
			return chain, true
		}
	}
	return nil, false
}

func indexBase(specifier string) string {
	if strings.HasSuffix(specifier, "/") {
		return specifier + indexName
	}
	return specifier + "/" + indexName
}
