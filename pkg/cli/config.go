package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oinkcat/scripting-lang/internal/config"
	"github.com/oinkcat/scripting-lang/internal/evaluator"
)

// RunnerConfig is the optional li.yaml file next to the executed
// script. It seeds top-level shared variables and points the store
// module at its database file.
type RunnerConfig struct {
	// Shared seeds values for variables the script declares with a
	// top-level `use`.
	Shared map[string]interface{} `yaml:"shared"`
	Store  struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
}

// LoadConfig reads li.yaml from the script's directory. A missing file
// is not an error; the zero config is returned.
func LoadConfig(scriptDir string) (*RunnerConfig, error) {
	cfg := &RunnerConfig{}

	data, err := os.ReadFile(filepath.Join(scriptDir, config.ConfigFileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", config.ConfigFileName, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

// StorePath resolves the store database location, defaulting to a file
// next to the script.
func (c *RunnerConfig) StorePath(scriptDir string) string {
	if c.Store.Path != "" {
		if filepath.IsAbs(c.Store.Path) {
			return c.Store.Path
		}
		return filepath.Join(scriptDir, c.Store.Path)
	}
	return filepath.Join(scriptDir, "store.db")
}

// sharedValue converts a yaml scalar into a script value.
func sharedValue(v interface{}) evaluator.Object {
	switch v := v.(type) {
	case bool:
		if v {
			return evaluator.TRUE
		}
		return evaluator.FALSE
	case int:
		return &evaluator.Number{Value: float64(v)}
	case float64:
		return &evaluator.Number{Value: v}
	case string:
		return &evaluator.String{Value: v}
	case nil:
		return evaluator.NULL
	default:
		return &evaluator.String{Value: fmt.Sprintf("%v", v)}
	}
}
