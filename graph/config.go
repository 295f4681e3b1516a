package graph

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load parses a TOML byte slice into a validated StateGraph
func Load(data []byte) (*StateGraph, error) {
	var g StateGraph
	if err := toml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state graph: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// LoadFile reads and parses a state graph definition file
func LoadFile(path string) (*StateGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	g, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
