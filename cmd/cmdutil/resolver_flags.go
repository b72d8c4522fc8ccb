package cmdutil

import (
	"fmt"

	"github.com/LegacyCodeHQ/platformext/config"
	"github.com/spf13/pflag"
)

// ResolverFlags are the configuration flags shared by every command.
type ResolverFlags struct {
	ConfigPath     string
	Extensions     []string
	Platforms      []string
	OmitExtensions []string
}

// Register adds the flags to fs.
func (f *ResolverFlags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Config file (default: "+config.FileName+" in the working directory)")
	fs.StringSliceVarP(&f.Extensions, "ext", "e", nil, "Extensions eligible for platform resolution (comma-separated, e.g. .scss,.json)")
	fs.StringSliceVarP(&f.Platforms, "platform", "p", nil, "Platform priority (comma-separated, default os,native,rn)")
	fs.StringSliceVar(&f.OmitExtensions, "omit-ext", nil, "Extensions tried for specifiers without one (default .tsx,.ts,.jsx,.js)")
}

// Options loads the config file and applies flag overrides.
func (f *ResolverFlags) Options(dir string) (map[string]any, error) {
	raw, _, err := config.Load(config.LoadOptions{ConfigFilePath: f.ConfigPath, Dir: dir})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return config.Overrides{
		Extensions:     f.Extensions,
		Platforms:      f.Platforms,
		OmitExtensions: f.OmitExtensions,
	}.Apply(raw), nil
}
