package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the base name of the project configuration file.
const FileName = ".platformextrc"

// searchNames lists the config file names looked up in a project directory, in order.
var searchNames = []string{
	FileName,
	FileName + ".json",
	FileName + ".yaml",
	FileName + ".yml",
	FileName + ".toml",
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath, when set, is the only file read.
	ConfigFilePath string
	// Dir is searched for FileName variants when ConfigFilePath is empty.
	Dir string
}

// Load reads raw options from a config file. It returns the options, the path
// they were read from ("" when no file exists), and any read error.
func Load(opts LoadOptions) (map[string]any, string, error) {
	path := opts.ConfigFilePath
	if path == "" {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		path = findConfigFile(dir)
		if path == "" {
			return map[string]any{}, "", nil
		}
	} else if !fileExists(path) {
		return nil, "", fmt.Errorf("config file not found: %s", path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" || filepath.Base(path) == FileName {
		v.SetConfigType("json")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, "", fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return v.AllSettings(), path, nil
}

func findConfigFile(dir string) string {
	for _, name := range searchNames {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Overrides are command-line values that replace file options when non-empty.
type Overrides struct {
	Extensions     []string
	Platforms      []string
	OmitExtensions []string
}

// Apply returns a copy of raw with the non-empty overrides set.
func (o Overrides) Apply(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw)+3)
	maps.Copy(out, raw)

	set := func(key string, values []string) {
		if len(values) == 0 {
			return
		}
		for k := range out {
			if strings.EqualFold(k, key) {
				delete(out, k)
			}
		}
		out[key] = values
	}
	set(KeyExtensions, o.Extensions)
	set(KeyPlatforms, o.Platforms)
	set(KeyOmitExtensions, o.OmitExtensions)
	return out
}
