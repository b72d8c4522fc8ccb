// Package logging is the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
)

const appName = "platformext"

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: appName,
	Level:  log.InfoLevel,
})

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetVerbose enables debug output.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(log.DebugLevel)
		return
	}
	logger.SetLevel(log.InfoLevel)
}

func Info(message string, metadata map[string]any) {
	logger.Info(message, keyvals(metadata)...)
}

func Debug(message string, metadata map[string]any) {
	logger.Debug(message, keyvals(metadata)...)
}

func Warn(message string, metadata map[string]any) {
	logger.Warn(message, keyvals(metadata)...)
}

func Error(message string, metadata map[string]any) {
	logger.Error(message, keyvals(metadata)...)
}

func keyvals(metadata map[string]any) []any {
	if len(metadata) == 0 {
		return nil
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, metadata[k])
	}
	return out
}
