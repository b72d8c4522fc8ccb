package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/platformext/config"
	"github.com/LegacyCodeHQ/platformext/transform"
)

// SkippedDirs are never descended into when expanding directories.
var SkippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"build":        true,
	".gradle":      true,
	".idea":        true,
	".vscode":      true,
	"Pods":         true,
}

// ExpandPaths returns the transformable source files named by paths, walking
// directories recursively. A skipped directory found during a walk is entered
// only for files that match one of the include rules.
func ExpandPaths(paths []string, include []config.IncludeRule) ([]string, error) {
	var result []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", path, err)
		}

		if !info.IsDir() {
			if !transform.IsSupportedFile(path) {
				return nil, fmt.Errorf("unsupported source file: %s", path)
			}
			result = append(result, path)
			continue
		}

		err = filepath.WalkDir(path, func(filePath string, d os.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if filePath != path && SkippedDirs[d.Name()] && !mayInclude(include, filePath) {
					return filepath.SkipDir
				}
				return nil
			}
			if !transform.IsSupportedFile(filePath) {
				return nil
			}
			if underSkippedDir(path, filePath) && !matchesInclude(include, filePath) {
				return nil
			}
			result = append(result, filePath)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", path, err)
		}
	}

	return result, nil
}

// IncludeRules returns the include rules of raw options, or none when the
// options are invalid. Invalid options are reported per file by the transformer.
func IncludeRules(options map[string]any, root string) []config.IncludeRule {
	cfg, _, err := config.Normalize(options, root)
	if err != nil {
		return nil
	}
	return cfg.Include
}

// mayInclude reports whether a file below dir could match an include rule.
func mayInclude(include []config.IncludeRule, dir string) bool {
	slashed := slashedAbs(dir)
	name := filepath.Base(dir)
	for _, rule := range include {
		if strings.Contains(rule.Match, name) || strings.Contains(slashed, rule.Match) {
			return true
		}
	}
	return false
}

func matchesInclude(include []config.IncludeRule, file string) bool {
	_, ok := config.Resolver{Include: include}.MatchInclude(slashedAbs(file))
	return ok
}

func underSkippedDir(root, file string) bool {
	rel, err := filepath.Rel(root, filepath.Dir(file))
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if SkippedDirs[part] {
			return true
		}
	}
	return false
}

func slashedAbs(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.ToSlash(path)
}

// OutputPath maps a source file under root to the same relative path under outDir.
func OutputPath(root, outDir, file string) (string, error) {
	absFile, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, absFile)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate path %q: %w", file, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path must be within %s: %q", root, file)
	}
	return filepath.Join(outDir, rel), nil
}

// WriteFile writes content, creating parent directories.
func WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
