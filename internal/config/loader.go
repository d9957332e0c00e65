package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RunnerFile is the config file name looked up in the search directories.
const RunnerFile = "runner.yaml"

// LoadRunner loads runner tuning.
// Search order: customPath -> ~/.funrun/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
//
// Files are decoded over the defaults, so a file may set only the fields it
// changes. An explicit customPath must exist, parse and validate; files found
// on the search path that don't are skipped.
func LoadRunner(customPath string) (RunnerConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decodeRunner(data)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return RunnerConfig{}, fmt.Errorf("config: invalid %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := decodeRunner(data)
		if err != nil || cfg.Validate() != nil {
			continue
		}
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := decodeRunner(defaultRunnerYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed is broken
	}
	return cfg, nil
}

// decodeRunner unmarshals YAML on top of the hard-coded defaults.
func decodeRunner(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

func searchPaths() []string {
	paths := make([]string, 0, 2)
	if p := userConfigPath(RunnerFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", RunnerFile))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".funrun", "configs", filename)
}
