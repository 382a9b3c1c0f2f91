package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tplforge/tplforge/platform/script"
)

// definitionsFile is the on-disk shape of a function set.
type definitionsFile struct {
	Functions []script.Definition `json:"functions" yaml:"functions"`
}

// loadDefinitions reads a YAML or JSON definitions file. An empty path
// yields an empty set.
func loadDefinitions(path string) ([]script.Definition, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read functions file: %w", err)
	}

	return parseDefinitions(raw, filepath.Ext(path))
}

func parseDefinitions(raw []byte, ext string) ([]script.Definition, error) {
	var file definitionsFile

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("failed to parse functions file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("failed to parse functions file: %w", err)
		}
	}

	for _, d := range file.Functions {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Functions, nil
}

// loadContext reads a JSON context file. An empty path yields an empty map,
// the degraded fallback the engine tolerates everywhere.
func loadContext(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read context file: %w", err)
	}

	var ctx map[string]any
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("failed to parse context file: %w", err)
	}
	if ctx == nil {
		ctx = map[string]any{}
	}
	return ctx, nil
}
