package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EmbeddedSource names the compiled-in defaults in Resolve results.
const EmbeddedSource = "embedded"

// LoadPong returns the Pong config, see ResolvePong.
func LoadPong(customPath string) (PongConfig, error) {
	cfg, _, err := ResolvePong(customPath)
	return cfg, err
}

// ResolvePong loads the Pong config and reports which file it came from.
//
// A non-empty customPath must exist and be valid. Otherwise the first
// valid file among ~/.pong/configs/pong.yaml and ./configs/pong.yaml
// wins, falling back to the embedded defaults. Keys a file leaves out
// keep their default values.
func ResolvePong(customPath string) (PongConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PongConfig{}, "", fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parsePong(data)
		if err != nil {
			return PongConfig{}, "", fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	for _, path := range searchPaths("pong.yaml") {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parsePong(data); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := parsePong(defaultPongYAML)
	if err != nil {
		return DefaultPongConfig(), EmbeddedSource, nil
	}
	return cfg, EmbeddedSource, nil
}

// searchPaths lists where an unnamed config file may live, in order.
func searchPaths(name string) []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".pong", "configs", name))
	}
	return append(paths, filepath.Join("configs", name))
}

// parsePong decodes data over DefaultPongConfig and validates it.
func parsePong(data []byte) (PongConfig, error) {
	cfg := DefaultPongConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PongConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PongConfig{}, err
	}
	return cfg, nil
}

// ApplyPongPreset sets the difficulty level for a named preset.
// The empty preset keeps the file's level.
func ApplyPongPreset(cfg *PongConfig, preset DifficultyPreset) {
	if preset != "" {
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
