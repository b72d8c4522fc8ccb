package resolver

// RewriteKind identifies what to do with an import statement.
type RewriteKind int

const (
	RewriteNone RewriteKind = iota
	RewriteDirect
	RewriteConditional
)

func (k RewriteKind) String() string {
	switch k {
	case RewriteNone:
		return "none"
	case RewriteDirect:
		return "direct"
	case RewriteConditional:
		return "conditional"
	default:
		return "unknown"
	}
}

// Rewrite is the instruction produced for a single import statement.
type Rewrite struct {
	Kind RewriteKind

	// Path replaces the specifier for RewriteDirect.
	Path string

	// Platform, TruePath and FalsePath describe a RewriteConditional:
	// TruePath is loaded when the runtime platform equals Platform.
	Platform  string
	TruePath  string
	FalsePath string

	// InjectPrelude is set on the first conditional of a file only.
	InjectPrelude bool
}

// Synthesize picks the rewrite for specifier from its existence chain. The
// highest priority existing candidate decides. An OS-ambiguous winner falls back
// to the next existing candidate, or to the unmodified specifier when none is left.
func Synthesize(specifier string, chain ExistenceChain) Rewrite {
	existing := chain.Existing()
	if len(existing) == 0 {
		return Rewrite{Kind: RewriteNone}
	}

	first := chain[existing[0]]
	if !IsOSPlatform(first.Platform) {
		return Rewrite{Kind: RewriteDirect, Path: first.Path}
	}

	falsePath := specifier
	if len(existing) > 1 {
		falsePath = chain[existing[1]].Path
	}

	return Rewrite{
		Kind:      RewriteConditional,
		Platform:  first.Platform,
		TruePath:  first.Path,
		FalsePath: falsePath,
	}
}
