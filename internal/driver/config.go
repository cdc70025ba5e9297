// Package driver wires the parser and evaluator together into the
// behaviors a human or a host program actually invokes: evaluating a
// whole source file, and running the interactive read-eval-print loop.
package driver

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Version is the interpreter's version string, reported by the REPL
// banner. The CLI's version command prints its own cmd.Version instead.
const Version = "0.1"

// Config holds the settings an optional .tsirc.yaml in the working
// directory or the user's home directory can override. Any field left
// unset in the file keeps its default.
type Config struct {
	Prompt      string   `yaml:"prompt"`
	SearchPaths []string `yaml:"searchPaths"`
	HistoryFile string   `yaml:"historyFile"`
}

// DefaultConfig returns the settings used when no .tsirc.yaml is found.
func DefaultConfig() Config {
	return Config{
		Prompt: ">> ",
	}
}

// LoadConfig reads .tsirc.yaml from the current directory, falling back
// to $HOME/.tsirc.yaml, and merges it onto DefaultConfig. A missing file
// in either location is not an error; a malformed one is.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path := ".tsirc.yaml"
	if _, err := os.Stat(path); err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".tsirc.yaml")
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
