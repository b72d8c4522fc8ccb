package resolver

// Platform tokens with built-in meaning.
const (
	PlatformOS      = "os"
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformNative  = "native"
	PlatformRN      = "rn"
)

// IsOSPlatform reports whether platform can only be chosen at runtime.
func IsOSPlatform(platform string) bool {
	return platform == PlatformIOS || platform == PlatformAndroid
}

// ExpandPlatforms turns configured platform tokens into the search priority list.
// "os" becomes ios, android in place. Literal ios and android tokens are dropped
// and repeated tokens keep their first position. Unknown tokens pass through.
func ExpandPlatforms(platforms []string) []string {
	expanded := make([]string, 0, len(platforms)+1)
	seen := make(map[string]bool, len(platforms)+1)

	add := func(platform string) {
		if seen[platform] {
			return
		}
		seen[platform] = true
		expanded = append(expanded, platform)
	}

	for _, platform := range platforms {
		switch {
		case platform == PlatformOS:
			add(PlatformIOS)
			add(PlatformAndroid)
		case IsOSPlatform(platform):
			continue
		default:
			add(platform)
		}
	}

	return expanded
}
